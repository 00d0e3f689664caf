package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tjanssen/cryptanalyst/internal/cli"
	"github.com/tjanssen/cryptanalyst/internal/engine"
)

func newDecryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt [file]",
		Short: "Classify and attempt to recover plaintext for a ciphertext",
		Long: `decrypt runs the full classify -> orchestrate -> solve pipeline
against a ciphertext read from file, or from stdin when file is "-" or
omitted. Exit code is 0 on a confident recovery (confidence >= 0.5), 1
when no strategy produced a plaintext, 2 on bad input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDecrypt,
	}
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	ciphertext, err := cli.ReadCiphertext(path)
	if err != nil {
		return badInput(err)
	}

	opts, err := loadOptions(cmd)
	if err != nil {
		return badInput(err)
	}

	eng, err := engine.New()
	if err != nil {
		return badInput(err)
	}

	result := eng.AutoDecrypt(context.Background(), ciphertext, opts)

	display := cli.NewDisplay()
	display.ShowResult(result)

	if result.MethodTag == "none" {
		return noDecryption(errNoDecryption)
	}
	if result.Confidence < 0.5 {
		return noDecryption(errLowConfidence)
	}
	return nil
}
