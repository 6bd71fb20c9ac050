package file

import (
	"bufio"
	"errors"
	"io"
)

// maxLineSize bounds a single line of the accounts or report file. Longer
// lines are reported as oversized and never held in memory whole.
const maxLineSize = 1024 * 1024

// eachLine calls fn for every line of r in order, numbering lines from 1.
// Line terminators (LF or CRLF) are stripped. For a line over maxLineSize fn
// receives an empty line and oversized set; reading continues with the next
// line. The returned error is the first read failure other than io.EOF.
func eachLine(r io.Reader, fn func(lineNo int, line string, oversized bool)) error {
	br := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		line, oversized, err := readLine(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				if line != "" || oversized {
					fn(lineNo, line, oversized)
				}
				return nil
			}
			return err
		}
		fn(lineNo, line, oversized)
	}
}

func readLine(br *bufio.Reader) (string, bool, error) {
	var buf []byte
	oversized := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			return string(buf), oversized, err
		}
		if !oversized {
			if len(buf)+len(chunk) > maxLineSize {
				oversized = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), oversized, nil
		}
	}
}
