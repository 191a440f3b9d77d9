package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dee-Wang-92/Physician-MB/internal/llmtag"
)

func RunClaude(cmd *cobra.Command, args []string) error {
	input := args[0]

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is not set")
	}

	promptPath, _ := cmd.Flags().GetString("prompt")
	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		outPath = defaultOutputPath(input, "_tagged.txt")
	}
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	if batchSize <= 0 {
		batchSize = llmtag.DefaultPagesPerWindow
	}
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = os.Getenv("ANTHROPIC_MODEL")
	}
	if model == "" {
		model = "claude-sonnet-4-5-20250929"
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	backendName, _ := cmd.Flags().GetString("backend")

	instructions, err := llmtag.LoadInstructions(promptPath)
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

	windows := llmtag.Windows(lines, batchSize)
	fmt.Fprintf(cmd.OutOrStdout(), "Tagging %s: %d windows of up to %d pages\n", input, len(windows), batchSize)

	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	client := llmtag.NewClient(apiKey, model)
	defer client.Close()

	runner := llmtag.NewRunner(client, log)
	if delay > 0 {
		runner.Delay = delay
	}

	start := time.Now()
	res, err := runner.Run(cmd.Context(), instructions, windows)
	if err != nil {
		return err
	}

	if findings := llmtag.LintMarkers(res.Text); len(findings) > 0 {
		for _, f := range findings {
			log.Warn("marker lint", "line", f.Line, "problem", f.Problem)
		}
	}

	if err := writeLines(outPath, []string{res.Text}); err != nil {
		return err
	}

	FormatClaudeSummary(cmd.OutOrStdout(), ClaudeSummary{
		Input:         input,
		Output:        outPath,
		Model:         client.Model(),
		Windows:       res.Windows,
		FailedWindows: res.FailedWindows,
		Elapsed:       time.Since(start),
		Latency:       runner.Stats(),
	})
	return nil
}
