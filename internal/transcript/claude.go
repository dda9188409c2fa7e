package transcript

import "encoding/json"

// Top-level record in Claude Code JSONL.
type claudeRecord struct {
	Type      string          `json:"type"`
	Timestamp string          `json:"timestamp"`
	Message   json.RawMessage `json:"message"`
}

type claudeMessage struct {
	Content []contentItem `json:"content"`
}

// extractClaude maps one Claude record to a message. Only "user" and
// "assistant" records with an array-form message.content qualify; summary,
// meta, and tool records yield nothing.
func extractClaude(line []byte) (Message, bool) {
	var rec claudeRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return Message{}, false
	}
	if rec.Type != "user" && rec.Type != "assistant" {
		return Message{}, false
	}

	var msg claudeMessage
	if err := json.Unmarshal(rec.Message, &msg); err != nil {
		// message absent, or content is a bare string rather than a block array
		return Message{}, false
	}

	text, ok := Clean(joinContent(msg.Content))
	if !ok {
		return Message{}, false
	}

	return Message{
		Role:      rec.Type,
		Content:   text,
		Timestamp: rec.Timestamp,
	}, true
}
