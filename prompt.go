package posh

import (
	"os"
	"strings"
	"time"
)

// defaultPromptFormat renders exactly the "<cwd>> " prompt the
// external interface specifies. POSH_PROMPT overrides it with a
// decorated format in the same %-escape style real interactive
// shells use, for users who want one; unset, the spec's literal
// format is used.
const defaultPromptFormat = "%w> "

// Prompt renders the interactive prompt for the given working
// directory.
func Prompt(cwd string) string {
	format := os.Getenv("POSH_PROMPT")
	if format == "" {
		format = defaultPromptFormat
	}
	return expandPromptVariables(format, cwd)
}

func expandPromptVariables(format, cwd string) string {
	hostname, _ := os.Hostname()
	replacements := map[string]string{
		"%u": os.Getenv("USER"),
		"%h": hostname,
		"%w": cwd,
		"%W": shortenPath(cwd),
		"%t": time.Now().Format("15:04:05"),
		"%$": "$",
	}
	for key, value := range replacements {
		format = strings.ReplaceAll(format, key, value)
	}
	return format
}

func shortenPath(path string) string {
	home := os.Getenv("HOME")
	if home != "" && strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
