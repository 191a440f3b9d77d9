package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dee-Wang-92/Physician-MB/internal/config"
	"github.com/Dee-Wang-92/Physician-MB/internal/layout"
	"github.com/Dee-Wang-92/Physician-MB/internal/marker"
	"github.com/Dee-Wang-92/Physician-MB/internal/source"
)

func RunMark(cmd *cobra.Command, args []string) error {
	input := args[0]

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		outPath = defaultOutputPath(input, "_marked.txt")
	}
	configPath, _ := cmd.Flags().GetString("config")
	backendName, _ := cmd.Flags().GetString("backend")
	quiet, _ := cmd.Flags().GetBool("quiet")

	rules, err := loadRules(cmd, configPath)
	if err != nil {
		return err
	}

	lines, err := extractLines(input, backendName)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return fmt.Errorf("no extractable content in %s", input)
	}

	output := marker.NewInserter(rules).Mark(lines)

	if err := writeLines(outPath, output); err != nil {
		return err
	}

	if !quiet {
		stats := rules.CountStats(output)
		FormatMarkReport(cmd.OutOrStdout(), MarkReport{
			Input:    input,
			Output:   outPath,
			Pages:    len(layout.Pages(lines)),
			LinesIn:  len(lines),
			LinesOut: len(output),
			Stats:    stats,
		})
	}
	return nil
}

// loadRules loads the pattern catalogue and compiles it. A catalogue
// file that cannot be read or parsed degrades to the defaults with a
// warning; a catalogue that does not compile is fatal.
func loadRules(cmd *cobra.Command, configPath string) (*marker.Ruleset, error) {
	patterns, err := config.LoadPatterns(configPath)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; using built-in patterns\n", err)
	}
	rules, err := marker.Compile(patterns)
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// extractLines opens the input and runs the Source for its extension.
func extractLines(input, backendName string) ([]layout.Line, error) {
	src, err := source.ForFile(input)
	if err != nil {
		return nil, err
	}
	if pdf, ok := src.(*source.PDFSource); ok {
		backend, err := source.ResolveBackend(backendName)
		if err != nil {
			return nil, err
		}
		pdf.Backend = backend
	}

	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return src.Extract(f, input)
}

// defaultOutputPath derives the output name from the input stem, so
// "schedule.pdf" becomes "schedule_marked.txt" alongside it.
func defaultOutputPath(input, suffix string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}

func writeLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			f.Close()
			return fmt.Errorf("write output: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			return fmt.Errorf("write output: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	return f.Close()
}
