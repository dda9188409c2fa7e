package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkurosawa/aidesk/internal/index"
	"github.com/mkurosawa/aidesk/internal/render"
	"github.com/mkurosawa/aidesk/internal/search"
)

// previewRenderedMsg carries the result of a background preview render.
type previewRenderedMsg struct {
	sessionKey string
	msgID      int
	content    string
	hitLine    int
	err        error
}

// loadPreviewCmd renders the conversation for the preview pane off the
// update loop.
func loadPreviewCmd(db *index.DB, r search.Result, query string, width int) tea.Cmd {
	return func() tea.Msg {
		content, hitLine, err := render.Conversation(db, r.SessionKey, render.Options{
			HitMsgID: r.MsgID,
			Context:  -1,
			Width:    width,
			Query:    query,
		})
		return previewRenderedMsg{
			sessionKey: r.SessionKey,
			msgID:      r.MsgID,
			content:    content,
			hitLine:    hitLine,
			err:        err,
		}
	}
}

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}
