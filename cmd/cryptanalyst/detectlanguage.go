package main

import (
	"github.com/spf13/cobra"

	"github.com/tjanssen/cryptanalyst/internal/cli"
	"github.com/tjanssen/cryptanalyst/internal/engine"
)

func newDetectLanguageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect-language [file]",
		Short: "Rank language candidates for a ciphertext via script gate + shape score",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDetectLanguage,
	}
}

func runDetectLanguage(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	ciphertext, err := cli.ReadCiphertext(path)
	if err != nil {
		return badInput(err)
	}

	eng, err := engine.New()
	if err != nil {
		return badInput(err)
	}

	candidates := eng.DetectLanguage(ciphertext)
	cli.NewDisplay().ShowLanguageCandidates(candidates)
	return nil
}
