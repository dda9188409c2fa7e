package transcript

import "encoding/json"

// Top-level record in Codex JSONL.
type codexRecord struct {
	Timestamp string          `json:"timestamp"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
}

// response_item payload
type codexPayload struct {
	Type    string        `json:"type"`
	Role    string        `json:"role"`
	Content []contentItem `json:"content"`
}

// extractCodex maps one Codex record to a message. Only response_item
// records carrying a "message" payload qualify; session_meta, event_msg,
// and function-call payloads yield nothing.
func extractCodex(line []byte) (Message, bool) {
	var rec codexRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return Message{}, false
	}
	if rec.Type != "response_item" {
		return Message{}, false
	}

	var payload codexPayload
	if err := json.Unmarshal(rec.Payload, &payload); err != nil {
		return Message{}, false
	}
	if payload.Type != "message" {
		return Message{}, false
	}

	role := "assistant"
	if payload.Role == "user" {
		role = "user"
	}

	text, ok := Clean(joinContent(payload.Content))
	if !ok {
		return Message{}, false
	}

	return Message{
		Role:      role,
		Content:   text,
		Timestamp: rec.Timestamp,
	}, true
}
