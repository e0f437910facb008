package plan

import (
	"testing"

	"github.com/matzehuels/bricklayer/pkg/errors"
	"github.com/matzehuels/bricklayer/pkg/geom"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

func TestVerify(t *testing.T) {
	s := testSpec(430, 125, wall.Dimensions{Length: 430, Height: 125})
	p := wall.Pattern{{f, f}, {h, f, h}}
	all := []geom.Position{pos(0, 0), pos(1, 0), pos(0, 1), pos(1, 1), pos(2, 1)}

	tests := []struct {
		name    string
		in      Instructions
		wantErr bool
	}{
		{
			name: "valid single stride",
			in:   Instructions{{Steps: all}},
		},
		{
			name: "valid split",
			in: Instructions{
				{Steps: all[:2]},
				{Envelope: geom.Point{Y: 0}, Steps: all[2:]},
			},
		},
		{
			name:    "missing brick",
			in:      Instructions{{Steps: all[:4]}},
			wantErr: true,
		},
		{
			name:    "duplicate brick",
			in:      Instructions{{Steps: append(append([]geom.Position{}, all...), pos(0, 0))}},
			wantErr: true,
		},
		{
			name:    "support laid late",
			in:      Instructions{{Steps: []geom.Position{pos(0, 0), pos(1, 1), pos(1, 0), pos(0, 1), pos(2, 1)}}},
			wantErr: true,
		},
		{
			name:    "outside envelope",
			in:      Instructions{{Envelope: geom.Point{X: 5}, Steps: all}},
			wantErr: true,
		},
		{
			name:    "unknown position",
			in:      Instructions{{Steps: append(append([]geom.Position{}, all...), pos(3, 1))}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(s, p, tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidInstructions) {
					t.Errorf("Verify() error = %v, want INVALID_INSTRUCTIONS", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Verify() error: %v", err)
			}
		})
	}
}

func TestVerifyPlanned(t *testing.T) {
	s := testSpec(430, 125, wall.Dimensions{Length: 430, Height: 125})
	p := wall.Pattern{{f, f}, {h, f, h}}
	in, err := Build(s, p)
	if err != nil {
		t.Fatal(err)
	}
	if err := Verify(s, p, in); err != nil {
		t.Errorf("Verify() error: %v", err)
	}
}
