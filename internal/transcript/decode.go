package transcript

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
)

const maxLineSize = 10 * 1024 * 1024 // 10MB, large tool outputs land on one line

// forEachRecord splits raw transcript text into newline-delimited records
// and calls fn once per decodable line. Blank lines and lines that are not
// valid JSON are skipped; a bad line never aborts the scan. lineNum is
// 1-based and counts every input line, skipped or not.
func forEachRecord(text string, fn func(lineNum int, line []byte)) {
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			continue
		}
		fn(lineNum, line)
	}
	// sc.Err() is deliberately ignored: an oversized or truncated tail line
	// loses only itself, the records already scanned stand.
}
