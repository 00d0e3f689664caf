package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/tjanssen/cryptanalyst/internal/classifier"
	"github.com/tjanssen/cryptanalyst/internal/engine"
	"github.com/tjanssen/cryptanalyst/internal/langdetect"
)

// Display renders engine results to an io.Writer, colorized the way
// the teacher's ConsoleDisplay colorizes its result sections with
// utils.Theme — here with fatih/color instead, since the cryptanalyst
// surface is a batch CLI rather than an interactive menu.
type Display struct {
	out io.Writer
}

// NewDisplay builds a Display writing to stdout.
func NewDisplay() *Display {
	return &Display{out: os.Stdout}
}

// ShowResult renders a FinalResult as a labeled summary followed by a
// tablewriter table of its scoring breakdown, mirroring the teacher's
// result-plus-steps-table layout in display.go.
func (d *Display) ShowResult(result engine.FinalResult) {
	if result.MethodTag == "none" {
		color.New(color.FgRed, color.Bold).Fprintln(d.out, "No decryption found")
		if result.Error != "" {
			fmt.Fprintf(d.out, "  reason: %s\n", result.Error)
		}
		return
	}

	color.New(color.FgGreen, color.Bold).Fprintln(d.out, "Plaintext:")
	fmt.Fprintln(d.out, result.Plaintext)
	fmt.Fprintln(d.out)

	table := tablewriter.NewWriter(d.out)
	table.Header([]string{"Field", "Value"})
	rows := [][]string{
		{"Method", result.MethodTag},
		{"Key", result.Key},
		{"Language", result.Language},
		{"Confidence", fmt.Sprintf("%.3f", result.Confidence)},
		{"Word coverage", fmt.Sprintf("%.3f", result.WordCoverage)},
		{"Combined score", fmt.Sprintf("%.3f", result.CombinedScore)},
		{"Cipher family", string(result.ClassifierTop)},
	}
	for _, row := range rows {
		// nolint:errcheck // table append errors are not actionable in a CLI renderer
		table.Append(row)
	}
	// nolint:errcheck // table render errors are not actionable in a CLI renderer
	table.Render()
}

// ShowClassification renders a classifier.Result's ranked family list.
func (d *Display) ShowClassification(result classifier.Result) {
	color.New(color.FgCyan, color.Bold).Fprintln(d.out, "Cipher family candidates:")
	table := tablewriter.NewWriter(d.out)
	table.Header([]string{"Family", "Confidence", "Suggested key length"})
	for _, f := range result.Families {
		keyLen := ""
		if f.SuggestedKeyLength > 0 {
			keyLen = fmt.Sprintf("%d", f.SuggestedKeyLength)
		}
		// nolint:errcheck // table append errors are not actionable in a CLI renderer
		table.Append([]string{string(f.Kind), fmt.Sprintf("%.3f", f.Confidence), keyLen})
	}
	// nolint:errcheck // table render errors are not actionable in a CLI renderer
	table.Render()

	fmt.Fprintf(d.out, "\nlength=%d ic=%.4f entropy=%.4f repetitions=%v\n",
		result.Stats.Length, result.Stats.IC, result.Stats.Entropy, result.Stats.HasRepetitions)
}

// ShowLanguageCandidates renders langdetect.Candidate results.
func (d *Display) ShowLanguageCandidates(candidates []langdetect.Candidate) {
	color.New(color.FgCyan, color.Bold).Fprintln(d.out, "Language candidates:")
	table := tablewriter.NewWriter(d.out)
	table.Header([]string{"Language", "Score"})
	for _, c := range candidates {
		// nolint:errcheck // table append errors are not actionable in a CLI renderer
		table.Append([]string{string(c.Language), fmt.Sprintf("%.4f", c.Score)})
	}
	// nolint:errcheck // table render errors are not actionable in a CLI renderer
	table.Render()
}

// ShowStatusEvent prints one streamed StatusEvent, colored by stage the
// way the teacher colors its processing messages.
func (d *Display) ShowStatusEvent(ev engine.StatusEvent) {
	c := color.New(color.FgYellow)
	switch ev.Stage {
	case "complete":
		c = color.New(color.FgGreen, color.Bold)
	case "failed", "strategy-failed":
		c = color.New(color.FgRed)
	case "early-stop":
		c = color.New(color.FgMagenta, color.Bold)
	}
	c.Fprintf(d.out, "[%3d%%] %-20s %s\n", ev.Progress, ev.Stage, ev.Message)
}

// ShowError prints an error, mirroring the teacher's ShowError styling.
func (d *Display) ShowError(err error) {
	color.New(color.FgRed, color.Bold).Fprintf(d.out, "Error: %s\n", err.Error())
}
