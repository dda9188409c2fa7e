package transcript

// Format selects which record schema to apply to a transcript. It is always
// supplied by the caller; record content is never sniffed.
type Format string

const (
	FormatClaude Format = "claude"
	FormatCodex  Format = "codex"
)

// Message is one conversation turn after schema extraction and cleaning.
// Content is never empty: records that clean down to nothing are dropped.
type Message struct {
	Role      string // "user" or "assistant"
	Content   string
	Timestamp string // verbatim from the record, may be empty
	Line      int    // 1-based line number in the transcript file
}

// Sequence holds messages in source line order. No deduplication is
// performed; a transcript may legitimately repeat identical content.
type Sequence struct {
	Messages []Message
}

func (s *Sequence) Len() int {
	return len(s.Messages)
}

// Counts returns the per-role message totals for summary display.
func (s *Sequence) Counts() (user, assistant int) {
	for _, m := range s.Messages {
		if m.Role == "user" {
			user++
		} else {
			assistant++
		}
	}
	return user, assistant
}

// extractor maps one decoded record to at most one message.
type extractor func(line []byte) (Message, bool)

func extractorFor(format Format) extractor {
	if format == FormatCodex {
		return extractCodex
	}
	return extractClaude
}

// Extract parses raw transcript text in the given format into an ordered
// message sequence. It never fails: blank lines, malformed records, and
// records that do not match the schema are skipped.
func Extract(text string, format Format) *Sequence {
	seq := &Sequence{}
	ex := extractorFor(format)
	forEachRecord(text, func(lineNum int, line []byte) {
		msg, ok := ex(line)
		if !ok {
			return
		}
		msg.Line = lineNum
		seq.Messages = append(seq.Messages, msg)
	})
	return seq
}
