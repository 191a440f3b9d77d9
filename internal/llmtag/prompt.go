package llmtag

import (
	"fmt"
	"os"
	"strings"
)

const userPreamble = "Please tag the following PDF content according to the instructions:\n\n"

// LoadInstructions reads the tagging instruction file used as the
// system prompt. The file is authored alongside the schedule, not
// built in, so a missing file is an error rather than a fallback.
func LoadInstructions(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read instructions: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("instructions file %s is empty", path)
	}
	return text, nil
}

// BuildUserMessage wraps one window of schedule text in the fixed user
// preamble.
func BuildUserMessage(windowText string) string {
	return userPreamble + windowText
}
