package scan

import (
	"fmt"
	"os"
	"path/filepath"
)

// Delete removes a transcript file and prunes the directories it leaves
// empty. The Codex day/month/year tree shrinks as sessions are deleted;
// the claude projects root and codex sessions root themselves are never
// removed.
func Delete(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	pruneEmptyDirs(filepath.Dir(path))
	return nil
}

func pruneEmptyDirs(dir string) {
	for {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		parent := filepath.Dir(dir)
		if isRootDir(parent) {
			// removing the last project dir / day dir is fine, but stop there
			os.Remove(dir)
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = parent
	}
}

func isRootDir(dir string) bool {
	base := filepath.Base(dir)
	return base == "sessions" || base == "projects" || base == string(filepath.Separator)
}
