// Package markup converts a cleaned message body into a flat sequence of
// typed display blocks. It understands just enough of the markdown the
// assistants emit: fenced code, inline code, headings, and list items.
// Visual styling is left to the consuming layer.
package markup

import (
	"regexp"
	"strings"
)

// Kind identifies the variant of a Block.
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindListItem
	KindCodeBlock
	KindSeparator
)

// Span is one inline run within a paragraph.
type Span struct {
	Text string
	Code bool
}

// Block is one display unit produced from a message body.
type Block struct {
	Kind    Kind
	Spans   []Span   // KindParagraph
	Level   int      // KindHeading, 1..6
	Text    string   // KindHeading, KindListItem
	Ordered bool     // KindListItem
	Lang    string   // KindCodeBlock, may be empty
	Lines   []string // KindCodeBlock, verbatim interior lines
}

var orderedItemRe = regexp.MustCompile(`^(\d+)\.\s+(.*)$`)

// Render walks the body line by line with a single mode flag: outside a
// fence, the first matching rule below wins; inside, every line is
// accumulated verbatim until a closing fence. A fence left open at end of
// input is closed implicitly with whatever accumulated.
func Render(body string) []Block {
	var blocks []Block
	inFence := false
	var fenceLang string
	var fenceLines []string

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)

		if inFence {
			if strings.HasPrefix(trimmed, "```") {
				blocks = append(blocks, Block{Kind: KindCodeBlock, Lang: fenceLang, Lines: fenceLines})
				inFence = false
				fenceLines = nil
				continue
			}
			fenceLines = append(fenceLines, line)
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "```"):
			inFence = true
			fenceLang = strings.TrimSpace(trimmed[3:])
			fenceLines = nil

		case strings.Contains(line, "`"):
			blocks = append(blocks, Block{Kind: KindParagraph, Spans: inlineSpans(line)})

		case strings.HasPrefix(line, "#"):
			level := 0
			rest := line
			for strings.HasPrefix(rest, "#") {
				level++
				rest = rest[1:]
			}
			if level > 6 {
				level = 6
			}
			blocks = append(blocks, Block{Kind: KindHeading, Level: level, Text: strings.TrimSpace(rest)})

		case isBulletItem(trimmed):
			blocks = append(blocks, Block{Kind: KindListItem, Text: strings.TrimSpace(trimmed[1:])})

		case orderedItemRe.MatchString(trimmed):
			m := orderedItemRe.FindStringSubmatch(trimmed)
			blocks = append(blocks, Block{Kind: KindListItem, Ordered: true, Text: m[2]})

		case trimmed == "":
			blocks = append(blocks, Block{Kind: KindSeparator})

		default:
			blocks = append(blocks, Block{Kind: KindParagraph, Spans: []Span{{Text: line}}})
		}
	}

	if inFence {
		blocks = append(blocks, Block{Kind: KindCodeBlock, Lang: fenceLang, Lines: fenceLines})
	}
	return blocks
}

// isBulletItem reports whether a trimmed line is an unordered list item:
// a dash or asterisk marker followed by whitespace.
func isBulletItem(trimmed string) bool {
	if len(trimmed) < 2 {
		return false
	}
	if trimmed[0] != '-' && trimmed[0] != '*' {
		return false
	}
	return trimmed[1] == ' ' || trimmed[1] == '\t'
}

// inlineSpans splits a line on backtick-delimited spans. Text between a
// matching pair of backticks becomes a code span with the backticks
// stripped; everything else, including a trailing unpaired backtick, stays
// plain.
func inlineSpans(line string) []Span {
	var spans []Span
	rest := line
	for {
		open := strings.IndexByte(rest, '`')
		if open < 0 {
			break
		}
		close := strings.IndexByte(rest[open+1:], '`')
		if close < 0 {
			break
		}
		if open > 0 {
			spans = append(spans, Span{Text: rest[:open]})
		}
		spans = append(spans, Span{Text: rest[open+1 : open+1+close], Code: true})
		rest = rest[open+close+2:]
	}
	if rest != "" {
		spans = append(spans, Span{Text: rest})
	}
	return spans
}
