package main

import (
	"github.com/spf13/cobra"

	"github.com/tjanssen/cryptanalyst/internal/config"
	"github.com/tjanssen/cryptanalyst/internal/engine"
)

// exitError carries spec §6's CLI exit codes (0 success, 1 no
// decryption, 2 bad input) alongside the message cobra prints.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) ExitCode() int { return e.code }

func badInput(err error) error     { return &exitError{code: 2, err: err} }
func noDecryption(err error) error { return &exitError{code: 1, err: err} }

var (
	flagLanguage string
	flagMaxTime  int64
	flagNoDict   bool
	flagConfig   string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cryptanalyst",
		Short:         "Automated cryptanalysis engine for classical ciphers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&flagLanguage, "language", "l", "auto", "language hint: auto|en|es|fr|de|it|pt|ru|zh-pinyin")
	root.PersistentFlags().Int64Var(&flagMaxTime, "max-time", 60000, "time budget in milliseconds")
	root.PersistentFlags().BoolVar(&flagNoDict, "no-dict", false, "disable dictionary validation")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config.yaml (defaults to ~/.cryptanalyst/config.yaml)")

	root.AddCommand(newDecryptCmd())
	root.AddCommand(newClassifyCmd())
	root.AddCommand(newDetectLanguageCmd())
	root.AddCommand(newBenchmarkCmd())

	return root
}

// loadOptions merges the persisted config's engine defaults with the
// flags the user actually set, flags taking precedence.
func loadOptions(cmd *cobra.Command) (engine.Options, error) {
	cfg, err := config.LoadConfig(flagConfig)
	if err != nil {
		return engine.Options{}, err
	}

	opts := engine.Options{
		Language:      cfg.Engine.Language,
		TryMultiple:   cfg.Engine.TryMultiple,
		MaxTimeMS:     cfg.Engine.MaxTimeMS,
		UseDictionary: cfg.Engine.UseDictionary,
	}

	if cmd.Flags().Changed("language") {
		opts.Language = flagLanguage
	}
	if cmd.Flags().Changed("max-time") {
		opts.MaxTimeMS = flagMaxTime
	}
	if cmd.Flags().Changed("no-dict") && flagNoDict {
		opts.UseDictionary = false
	}

	return opts, nil
}
