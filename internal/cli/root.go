// Package cli wires the schedmark commands. Command logic lives in the
// Run* handlers; the heavy lifting is delegated to the internal
// packages.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "schedmark",
		Short: "Annotate physician payment schedules with structural markers",
		Long: `Schedmark converts a payment-schedule document (PDF, DOCX, Markdown,
HTML, or plain text) into a marked text stream: every line of the
source survives unchanged, and inline marker lines record the section
hierarchy («L1:...» through «L4:...») and tariff codes («CODE:...»)
so downstream tools can reconstruct the schedule outline.`,
	}

	markCmd := &cobra.Command{
		Use:   "mark <input>",
		Short: "Extract a schedule and insert hierarchy and code markers",
		Args:  cobra.ExactArgs(1),
		RunE:  RunMark,
	}
	markCmd.Flags().StringP("output", "o", "", "Output file (default: input stem + _marked.txt)")
	markCmd.Flags().String("config", "", "Pattern catalogue JSON (default: built-in catalogue)")
	markCmd.Flags().String("backend", "auto", "PDF extraction backend: auto|native|poppler")
	markCmd.Flags().BoolP("quiet", "q", false, "Suppress the marker statistics report")

	claudeCmd := &cobra.Command{
		Use:   "claude <input>",
		Short: "Tag a schedule through the Anthropic API in page batches",
		Args:  cobra.ExactArgs(1),
		RunE:  RunClaude,
	}
	claudeCmd.Flags().String("prompt", "", "Markdown file with tagging instructions (required)")
	claudeCmd.Flags().StringP("output", "o", "", "Output file (default: input stem + _tagged.txt)")
	claudeCmd.Flags().Int("batch-size", 10, "Pages per API call")
	claudeCmd.Flags().String("model", "", "Anthropic model (default: ANTHROPIC_MODEL or built-in)")
	claudeCmd.Flags().Duration("delay", 0, "Pause between batches (default 1s)")
	claudeCmd.Flags().String("backend", "auto", "PDF extraction backend: auto|native|poppler")
	_ = claudeCmd.MarkFlagRequired("prompt")

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the built-in pattern catalogue as editable JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")

	outlineCmd := &cobra.Command{
		Use:   "outline <marked.txt>",
		Short: "Reconstruct the section tree from a marked schedule",
		Args:  cobra.ExactArgs(1),
		RunE:  RunOutline,
	}
	outlineCmd.Flags().String("config", "", "Pattern catalogue used when the schedule was marked")
	outlineCmd.Flags().Bool("json", false, "Print the outline as JSON")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the conversion HTTP service",
		Args:  cobra.NoArgs,
		RunE:  RunServe,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the schedmark version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "schedmark %s\n", version)
		},
	}

	rootCmd.AddCommand(markCmd, claudeCmd, initCmd, outlineCmd, serveCmd, versionCmd)
	return rootCmd
}
