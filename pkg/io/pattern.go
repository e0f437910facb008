package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/matzehuels/bricklayer/pkg/errors"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

// Order is the vertical order in which courses appear in a pattern file.
type Order int

const (
	// BottomFirst writes course 0 on the first line.
	BottomFirst Order = iota
	// TopFirst writes the top course on the first line.
	TopFirst
)

// ParseOrder converts "bottom" or "top" into an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bottom", "bottom-first":
		return BottomFirst, nil
	case "top", "top-first":
		return TopFirst, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown course order %q (want bottom or top)", s)
}

// WritePattern encodes p to w, one course per line.
func WritePattern(w io.Writer, p wall.Pattern, order Order) error {
	bw := bufio.NewWriter(w)
	for i := range p {
		c := p[i]
		if order == TopFirst {
			c = p[len(p)-1-i]
		}
		if _, err := fmt.Fprintln(bw, c.String()); err != nil {
			return fmt.Errorf("write course: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write pattern: %w", err)
	}
	return nil
}

// ReadPattern decodes a pattern from r. The result always has course 0
// first, whatever order the file uses.
func ReadPattern(r io.Reader, order Order) (wall.Pattern, error) {
	var p wall.Pattern
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		c := make(wall.Course, len(fields))
		for i, code := range fields {
			k, err := wall.ParseKind(code)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d", line)
			}
			c[i] = k
		}
		p = append(p, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read pattern: %w", err)
	}
	if len(p) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "pattern has no courses")
	}
	if order == TopFirst {
		slices.Reverse(p)
	}
	return p, nil
}

// ExportPattern writes p to a file at path.
func ExportPattern(path string, p wall.Pattern, order Order) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WritePattern(f, p, order)
}

// ImportPattern reads a pattern file at path.
func ImportPattern(path string, order Order) (wall.Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "pattern file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPattern(f, order)
}
