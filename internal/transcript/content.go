package transcript

import "strings"

// contentItem is one entry of a message content array. Both schemas share
// this shape for displayable items.
type contentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// joinContent concatenates the text of displayable content items in item
// order. Tool calls, tool results, images and other item kinds are ignored.
func joinContent(items []contentItem) string {
	var parts []string
	for _, it := range items {
		switch it.Type {
		case "text", "input_text", "output_text":
			if it.Text != "" {
				parts = append(parts, it.Text)
			}
		}
	}
	return strings.Join(parts, "\n")
}
