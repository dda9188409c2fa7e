package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mkurosawa/aidesk/internal/markup"
)

const (
	colorReset   = "\033[0m"
	colorUser    = "\033[1;34m"
	colorAssist  = "\033[1;32m"
	colorDim     = "\033[2m"
	colorHit     = "\033[43m"
	colorBoldRed = "\033[1;31m" // keyword highlights
	colorCode    = "\033[36m"
	colorBold    = "\033[1m"
)

// Blocks renders markup display blocks as ANSI terminal text. Ordered list
// items are numbered in sequence; the counter resets whenever a
// non-ordered-item block interrupts the run.
func Blocks(blocks []markup.Block) string {
	var b strings.Builder
	ordinal := 0

	for _, blk := range blocks {
		if blk.Kind != markup.KindListItem || !blk.Ordered {
			ordinal = 0
		}

		switch blk.Kind {
		case markup.KindCodeBlock:
			caption := "```"
			if blk.Lang != "" {
				caption += blk.Lang
			}
			b.WriteString(colorDim + caption + colorReset + "\n")
			for _, line := range blk.Lines {
				b.WriteString(colorCode + line + colorReset + "\n")
			}
			b.WriteString(colorDim + "```" + colorReset + "\n")

		case markup.KindHeading:
			b.WriteString(colorBold + strings.Repeat("#", blk.Level) + " " + blk.Text + colorReset + "\n")

		case markup.KindListItem:
			if blk.Ordered {
				ordinal++
				b.WriteString("  " + strconv.Itoa(ordinal) + ". " + blk.Text + "\n")
			} else {
				b.WriteString("  - " + blk.Text + "\n")
			}

		case markup.KindSeparator:
			b.WriteString("\n")

		case markup.KindParagraph:
			for _, sp := range blk.Spans {
				if sp.Code {
					b.WriteString(colorCode + sp.Text + colorReset)
				} else {
					b.WriteString(sp.Text)
				}
			}
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// highlightKeywords wraps case-insensitive matches of query terms in bold
// red ANSI codes.
func highlightKeywords(text, query string) string {
	if query == "" {
		return text
	}
	terms := strings.Fields(query)
	var filtered []string
	for _, t := range terms {
		if !fts5Operators[t] {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == 0 {
		return text
	}
	for _, term := range filtered {
		lower := strings.ToLower(term)
		i := 0
		for i < len(text) {
			idx := strings.Index(strings.ToLower(text[i:]), lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			orig := text[pos : pos+len(term)]
			replacement := colorBoldRed + orig + colorReset
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

// fts5Operators are query syntax words, not terms the user typed.
var fts5Operators = map[string]bool{
	"AND": true, "OR": true, "NOT": true, "NEAR": true,
	"and": true, "or": true, "not": true, "near": true,
}

// indentLines puts prefix in front of every line.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// roleHeader formats the colored header line for one message.
func roleHeader(role, ts string, hit bool) string {
	var roleColor, roleLabel string
	switch role {
	case "user":
		roleColor = colorUser
		roleLabel = "USER"
	case "assistant":
		roleColor = colorAssist
		roleLabel = "ASST"
	default:
		roleColor = colorDim
		roleLabel = strings.ToUpper(role)
	}

	if hit {
		return fmt.Sprintf("%s>> %s > %s <<%s", colorHit, roleLabel, ts, colorReset)
	}
	return fmt.Sprintf("%s%s >%s %s%s%s", roleColor, roleLabel, colorReset, colorDim, ts, colorReset)
}

// messageBody renders one message's cleaned content: markup blocks, keyword
// highlighting, two-space indent.
func messageBody(content, query string) string {
	text := Blocks(markup.Render(content))
	text = highlightKeywords(text, query)
	return indentLines(text, "  ")
}
