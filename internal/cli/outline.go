package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dee-Wang-92/Physician-MB/internal/outline"
)

// RunOutline rebuilds the section tree from a previously marked
// schedule and prints it as indented text or JSON.
func RunOutline(cmd *cobra.Command, args []string) error {
	input := args[0]
	configPath, _ := cmd.Flags().GetString("config")
	asJSON, _ := cmd.Flags().GetBool("json")

	rules, err := loadRules(cmd, configPath)
	if err != nil {
		return err
	}

	lines, err := readLines(input)
	if err != nil {
		return err
	}

	tree := outline.Build(lines, rules)

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	}
	return tree.WriteText(cmd.OutOrStdout())
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open marked file: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read marked file: %w", err)
	}
	return lines, nil
}
