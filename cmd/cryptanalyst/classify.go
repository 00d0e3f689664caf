package main

import (
	"github.com/spf13/cobra"

	"github.com/tjanssen/cryptanalyst/internal/cli"
	"github.com/tjanssen/cryptanalyst/internal/engine"
	"github.com/tjanssen/cryptanalyst/internal/langmodel"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [file]",
		Short: "Rank the likely cipher family for a ciphertext without solving it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runClassify,
	}
}

func runClassify(cmd *cobra.Command, args []string) error {
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

	var hint *langmodel.Language
	if flagLanguage != "" && flagLanguage != "auto" {
		if lang, ok := langmodel.ParseLanguage(flagLanguage); ok {
			hint = &lang
		}
	}

	result := eng.Classify(ciphertext, hint)
	cli.NewDisplay().ShowClassification(result)
	return nil
}
