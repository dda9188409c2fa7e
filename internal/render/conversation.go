package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/mkurosawa/aidesk/internal/index"
	"github.com/mkurosawa/aidesk/internal/transcript"
)

type Options struct {
	HitMsgID int
	Context  int    // messages shown on each side of the hit
	Width    int    // wrap column, 0 disables wrapping
	Query    string // terms to highlight
	Raw      bool   // skip markup block rendering
}

// wrapLine splits a line at maxWidth visible columns. ANSI escape sequences
// contribute zero width and never get split.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// copy an ESC[...m sequence through without measuring it
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

type lineWriter struct {
	b     strings.Builder
	width int
	count int
}

func (w *lineWriter) writeLine(s string) {
	for _, wl := range wrapLine(s, w.width) {
		w.b.WriteString(wl)
		w.b.WriteString("\n")
		w.count++
	}
}

func (w *lineWriter) writeText(text string) {
	for _, tl := range strings.Split(text, "\n") {
		w.writeLine(tl)
	}
}

var separator = colorDim + "--------------------------------------------------" + colorReset

// Sequence renders a freshly extracted conversation for the view command.
func Sequence(seq *transcript.Sequence, title string, opts Options) string {
	w := &lineWriter{width: opts.Width}

	user, assistant := seq.Counts()
	w.writeLine(fmt.Sprintf("%s--- %s (%d messages: %d user, %d assistant) ---%s",
		colorDim, title, seq.Len(), user, assistant, colorReset))

	if seq.Len() == 0 {
		w.writeLine("(no messages found)")
		return w.b.String()
	}

	for i, m := range seq.Messages {
		if i > 0 {
			w.writeLine(separator)
		}
		w.writeLine(roleHeader(m.Role, m.Timestamp, false))
		if opts.Raw {
			w.writeText(indentLines(m.Content, "  "))
		} else {
			w.writeText(messageBody(m.Content, opts.Query))
		}
		w.writeLine("")
	}

	return w.b.String()
}

// Conversation renders an indexed conversation and returns the content, the
// 0-based line number of the hit message header (-1 if no hit), and any
// error.
func Conversation(db *index.DB, sessionKey string, opts Options) (string, int, error) {
	if opts.Context == 0 {
		opts.Context = 10
	}
	if opts.Context < 0 {
		opts.Context = 1000000 // effectively unbounded
	}

	session, err := db.GetSessionByKey(sessionKey)
	if err != nil {
		return "", -1, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return "", -1, fmt.Errorf("session not found: %s", sessionKey)
	}

	msgs, hitIdx, startPos, totalCount, err := db.GetMessageWindow(sessionKey, opts.HitMsgID, opts.Context)
	if err != nil {
		return "", -1, fmt.Errorf("get messages: %w", err)
	}

	if totalCount == 0 {
		return "(empty session)", -1, nil
	}

	skipAfter := totalCount - startPos - len(msgs)

	w := &lineWriter{width: opts.Width}
	hitLine := -1

	project := session.Project
	if project == "" {
		project = session.ResumeID
	}
	w.writeLine(fmt.Sprintf("%s--- %s [%s] %s ---%s", colorDim, sessionKey, session.Source, project, colorReset))

	if startPos > 0 {
		w.writeLine(fmt.Sprintf("%s... (%d messages before) ...%s", colorDim, startPos, colorReset))
	}

	for i, m := range msgs {
		isHit := (i == hitIdx)

		if i > 0 {
			w.writeLine(separator)
		}
		if isHit {
			hitLine = w.count
		}

		w.writeLine(roleHeader(m.Role, m.Ts, isHit))
		w.writeText(messageBody(m.Text, opts.Query))
		w.writeLine("")
	}

	if skipAfter > 0 {
		w.writeLine(fmt.Sprintf("%s... (%d messages after) ...%s", colorDim, skipAfter, colorReset))
	}

	return w.b.String(), hitLine, nil
}
