package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ciphertext.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing temp ciphertext file: %v", err)
	}
	return path
}

func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.yaml")
}

func TestDecryptCommandEmptyInput(t *testing.T) {
	path := writeTempFile(t, "")

	root := newRootCmd()
	root.SetArgs([]string{"decrypt", "--config", tempConfigPath(t), path})

	err := root.Execute()
	if err == nil {
		t.Fatal("expected an error for empty ciphertext")
	}
	ec, ok := err.(interface{ ExitCode() int })
	if !ok {
		t.Fatalf("error %v does not carry an exit code", err)
	}
	if ec.ExitCode() != 2 {
		t.Errorf("ExitCode() = %d, want 2 (bad input)", ec.ExitCode())
	}
}

func TestDecryptCommandNoDecryption(t *testing.T) {
	path := writeTempFile(t, "HELLO")

	root := newRootCmd()
	root.SetArgs([]string{"decrypt", "--config", tempConfigPath(t), path})

	err := root.Execute()
	if err == nil {
		t.Fatal("expected an error for a too-short ciphertext")
	}
	ec, ok := err.(interface{ ExitCode() int })
	if !ok {
		t.Fatalf("error %v does not carry an exit code", err)
	}
	if ec.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d, want 1 (no decryption)", ec.ExitCode())
	}
}

func TestClassifyCommandShortInput(t *testing.T) {
	path := writeTempFile(t, "HELLO")

	root := newRootCmd()
	root.SetArgs([]string{"classify", path})

	if err := root.Execute(); err != nil {
		t.Fatalf("classify on short input should not error, got: %v", err)
	}
}

func TestDetectLanguageCommandRuns(t *testing.T) {
	path := writeTempFile(t, "THEQUICKBROWNFOXJUMPSOVERTHELAZYDOG")

	root := newRootCmd()
	root.SetArgs([]string{"detect-language", path})

	if err := root.Execute(); err != nil {
		t.Fatalf("detect-language should not error, got: %v", err)
	}
}

func TestBenchmarkCommandRuns(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"benchmark", "--iterations", "1"})

	if err := root.Execute(); err != nil {
		t.Fatalf("benchmark should not error, got: %v", err)
	}
}
