package wall

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/bricklayer/pkg/errors"
)

func TestLoad(t *testing.T) {
	s, err := Load("testdata/stretcher.wallconfig")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Bond != "stretcher" {
		t.Errorf("Bond = %q, want stretcher", s.Bond)
	}
	if s.Width != 2300 || s.Height != 2000 {
		t.Errorf("wall = %vx%v, want 2300x2000", s.Width, s.Height)
	}
	if s.BedJoint != 12.5 || s.HeadJoint != 10 {
		t.Errorf("joints = %v/%v", s.HeadJoint, s.BedJoint)
	}
	if got := s.Length(Half); got != 100 {
		t.Errorf("Length(h) = %v, want 100", got)
	}
	if s.Envelope != (Dimensions{Length: 800, Height: 1300}) {
		t.Errorf("Envelope = %+v", s.Envelope)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.wallconfig")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"syntax", "wall = ["},
		{"unknown kind", "[bricks.z]\nlength = 1\nheight = 1\n"},
		{"missing bricks", "[wall]\nwidth = 650\nheight = 125\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.input)); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Decode() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoadUnknownKey(t *testing.T) {
	_, err := Load("testdata/unknown_key.wallconfig")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("Load() error = %v, want INVALID_CONFIG", err)
	}
	if !strings.Contains(err.Error(), "colour") {
		t.Errorf("error should name the key: %v", err)
	}
}

func TestEncodeDecode(t *testing.T) {
	want := testSpec()
	var buf bytes.Buffer
	if err := Encode(&buf, want); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error: %v\n%s", err, buf.String())
	}
	if got.Width != want.Width || got.Bond != want.Bond || got.Envelope != want.Envelope {
		t.Errorf("Decode(Encode()) = %+v, want %+v", got, want)
	}
	for _, k := range Kinds {
		if got.Bricks[k] != want.Bricks[k] {
			t.Errorf("bricks.%s = %+v, want %+v", k, got.Bricks[k], want.Bricks[k])
		}
	}
}
