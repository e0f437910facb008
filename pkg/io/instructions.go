package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/bricklayer/pkg/errors"
	"github.com/matzehuels/bricklayer/pkg/geom"
	"github.com/matzehuels/bricklayer/pkg/plan"
)

// WriteInstructions encodes in to w as move and lay lines.
func WriteInstructions(w io.Writer, in plan.Instructions) error {
	bw := bufio.NewWriter(w)
	for _, st := range in {
		fmt.Fprintf(bw, "move %s %s\n", formatFloat(st.Envelope.X), formatFloat(st.Envelope.Y))
		for _, pos := range st.Steps {
			fmt.Fprintf(bw, "lay %d %d\n", pos.Column, pos.Course)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write instructions: %w", err)
	}
	return nil
}

// ReadInstructions decodes instructions from r.
func ReadInstructions(r io.Reader) (plan.Instructions, error) {
	var in plan.Instructions
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"line %d: want 3 fields, got %d", line, len(fields))
		}
		switch fields[0] {
		case "move":
			x, errX := strconv.ParseFloat(fields[1], 64)
			y, errY := strconv.ParseFloat(fields[2], 64)
			if errX != nil || errY != nil {
				return nil, errors.New(errors.ErrCodeInvalidFormat,
					"line %d: bad envelope origin %q %q", line, fields[1], fields[2])
			}
			in = append(in, plan.Stride{Envelope: geom.Point{X: x, Y: y}})
		case "lay":
			if len(in) == 0 {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: lay before any move", line)
			}
			col, errC := strconv.Atoi(fields[1])
			course, errR := strconv.Atoi(fields[2])
			if errC != nil || errR != nil {
				return nil, errors.New(errors.ErrCodeInvalidFormat,
					"line %d: bad position %q %q", line, fields[1], fields[2])
			}
			st := &in[len(in)-1]
			st.Steps = append(st.Steps, geom.Position{Column: col, Course: course})
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: unknown command %q", line, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read instructions: %w", err)
	}
	return in, nil
}

// ExportInstructions writes in to a file at path.
func ExportInstructions(path string, in plan.Instructions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteInstructions(f, in)
}

// ImportInstructions reads an instructions file at path.
func ImportInstructions(path string) (plan.Instructions, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "steps file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadInstructions(f)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
