package open

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mkurosawa/aidesk/internal/index"
)

// Session opens the original JSONL file in $EDITOR, positioned at the line
// of the hit message when one is given.
func Session(db *index.DB, sessionKey string, hitMsgID int) error {
	session, err := db.GetSessionByKey(sessionKey)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return fmt.Errorf("session not found: %s", sessionKey)
	}

	filePath := session.FilePath
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file not found: %s", filePath)
	}

	lineNum := 1
	if hitMsgID >= 0 {
		msgs, err := db.GetMessages(sessionKey)
		if err == nil {
			for _, m := range msgs {
				if m.MsgID == hitMsgID {
					lineNum = m.LineNumber
					break
				}
			}
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	return inEditor(editor, filePath, lineNum)
}

func inEditor(editor, filePath string, lineNum int) error {
	var cmd *exec.Cmd

	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nvim"):
		cmd = exec.Command(editor, fmt.Sprintf("+%d", lineNum), filePath)
	case strings.Contains(editor, "code"):
		cmd = exec.Command(editor, "--goto", filePath+":"+strconv.Itoa(lineNum))
	case strings.Contains(editor, "less"):
		cmd = exec.Command(editor, "+"+strconv.Itoa(lineNum), filePath)
	default:
		cmd = exec.Command(editor, filePath)
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
