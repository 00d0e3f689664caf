// Command cryptanalyst is the illustrative CLI spec §6 describes:
// decrypt [--language auto|en|...] [--max-time MS] [--no-dict] <file>,
// plus classify/detect-language/benchmark helpers built on the same
// engine the library surface exposes.
package main

import (
	"fmt"
	"os"

	"github.com/tjanssen/cryptanalyst/internal/cli"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		cli.NewDisplay().ShowError(err)
		os.Exit(exitCodeFor(err))
	}
}

func exitCodeFor(err error) int {
	if ec, ok := err.(interface{ ExitCode() int }); ok {
		return ec.ExitCode()
	}
	fmt.Fprintln(os.Stderr, err)
	return 2
}
