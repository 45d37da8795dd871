package planner

import (
	"regexp"
	"strings"
)

// Both rewrites are line-oriented, case-insensitive on the command keyword,
// and idempotent: the canonical placeholders themselves re-match and are
// replaced with themselves.
var (
	commitMessageRe = regexp.MustCompile(`(?i)(^|\s)(git\s+commit\s+-m)\s+("[^"]*"|'[^']*'|\S+)`)
	remoteURLRe     = regexp.MustCompile(`(?i)(^|\s)(git\s+remote\s+add\s+origin)\s+("[^"]*"|'[^']*'|\S+)`)
)

// Normalize rewrites any commit message argument to the literal "<message>"
// and any remote URL argument to the literal <url>. It is applied to all
// free-text command output, model-generated or planner-generated, so that
// answers compare deterministically against golden expectations.
func Normalize(text string) string {
	if text == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = commitMessageRe.ReplaceAllString(line, `$1$2 "<message>"`)
		line = remoteURLRe.ReplaceAllString(line, `$1$2 <url>`)
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
