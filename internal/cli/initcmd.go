package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dee-Wang-92/Physician-MB/internal/config"
	"github.com/Dee-Wang-92/Physician-MB/internal/marker"
)

const defaultPatternsFile = "patterns.json"

// RunInit dumps the built-in pattern catalogue as JSON so operators can
// tune it and feed it back through --config.
func RunInit(cmd *cobra.Command, args []string) error {
	path := defaultPatternsFile
	if len(args) > 0 {
		path = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := config.SavePatterns(path, marker.DefaultPatterns()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote default pattern catalogue to %s\n", path)
	return nil
}
