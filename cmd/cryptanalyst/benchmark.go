package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tjanssen/cryptanalyst/internal/benchmark"
	"github.com/tjanssen/cryptanalyst/internal/dictionary"
	"github.com/tjanssen/cryptanalyst/internal/langmodel"
)

var flagBenchmarkIterations int

func newBenchmarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Time the shift, Vigenere, and substitution solvers against a fixed sample",
		RunE:  runBenchmark,
	}
	cmd.Flags().IntVarP(&flagBenchmarkIterations, "iterations", "n", 50, "iterations per solver")
	return cmd
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	models, err := langmodel.Load()
	if err != nil {
		return badInput(err)
	}

	var dict *dictionary.Dictionary
	if !flagNoDict {
		dict, _ = dictionary.NewStore().Get(langmodel.English)
	}

	_, steps, err := benchmark.RunSolverBenchmark(models, dict, flagBenchmarkIterations)
	if err != nil {
		return badInput(err)
	}

	for _, step := range steps {
		fmt.Println(step)
	}
	return nil
}
