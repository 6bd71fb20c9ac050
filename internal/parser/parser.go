// Package parser splits transfer instruction files into raw records.
//
// An instruction file is a sequence of blank-line separated groups. Each group
// may contain from:, to: and amount: directives in any order; other lines are
// ignored. A group becomes a record when at least one directive was seen.
// Lines have no length limit.
package parser

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/iho/ledgerbatch/internal/domain"
)

type directive struct {
	field   domain.Field
	pattern *regexp.Regexp
}

// Checked in order; the first matching directive claims the line.
var directives = []directive{
	{field: domain.FieldFrom, pattern: regexp.MustCompile(`from:\s*(\d{5}-\d{5}|\S+)`)},
	{field: domain.FieldTo, pattern: regexp.MustCompile(`to:\s*(\d{5}-\d{5}|\S+)`)},
	{field: domain.FieldAmount, pattern: regexp.MustCompile(`amount:\s*(.+)`)},
}

// accumulator collects directives for the current record and emits it on a
// blank line or at end of input.
type accumulator struct {
	current domain.RawRecord
	records []domain.RawRecord
}

func newAccumulator() *accumulator {
	return &accumulator{current: domain.RawRecord{}}
}

func (a *accumulator) feed(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		a.flush()
		return
	}

	for _, d := range directives {
		if m := d.pattern.FindStringSubmatch(line); m != nil {
			a.current[d.field] = strings.TrimSpace(m[1])
			return
		}
	}
}

func (a *accumulator) flush() {
	if len(a.current) > 0 {
		a.records = append(a.records, a.current)
	}
	a.current = domain.RawRecord{}
}

// Parse reads r to the end and returns its records. Nothing is returned when
// reading fails part way, so a broken file never yields a partial batch.
func Parse(r io.Reader) ([]domain.RawRecord, error) {
	br := bufio.NewReader(r)

	acc := newAccumulator()
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if line != "" {
			acc.feed(line)
		}
		if err != nil {
			break
		}
	}

	acc.flush()

	return acc.records, nil
}
