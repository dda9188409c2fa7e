package transcript

import (
	"regexp"
	"strings"
)

// Injected context the assistants prepend to real user input. Stripping is
// order-sensitive: span removal runs before section removal, collapse runs
// last over whatever survived.
var (
	envContextRe = regexp.MustCompile(`(?s)<environment_context>.*?</environment_context>`)
	ideSetupRe   = regexp.MustCompile(`(?s)# Context from my IDE setup:.*?## My request for (?:Claude|Codex):`)
	activeFileRe = regexp.MustCompile(`(?m)^## Active file:.*(?:\n.+)*`)
	openFilesRe  = regexp.MustCompile(`(?m)^## Open files:.*(?:\n.+)*`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
)

// Clean strips injected IDE and environment boilerplate from message text.
// An IDE-setup preamble with no closing request marker is left untouched
// rather than stripped to end of text. The second return is false when
// nothing user-authored remains.
func Clean(text string) (string, bool) {
	text = envContextRe.ReplaceAllString(text, "")
	text = ideSetupRe.ReplaceAllString(text, "")
	text = activeFileRe.ReplaceAllString(text, "")
	text = openFilesRe.ReplaceAllString(text, "")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)
	return text, text != ""
}
