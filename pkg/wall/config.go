package wall

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bricklayer/pkg/errors"
)

type configFile struct {
	Bond string `toml:"bond"`
	Wall struct {
		Width  float64 `toml:"width"`
		Height float64 `toml:"height"`
	} `toml:"wall"`
	Joints struct {
		Head float64 `toml:"head"`
		Bed  float64 `toml:"bed"`
	} `toml:"joints"`
	Bricks   map[string]brickEntry `toml:"bricks"`
	Envelope struct {
		Width  float64 `toml:"width"`
		Height float64 `toml:"height"`
	} `toml:"envelope"`
}

type brickEntry struct {
	Length float64 `toml:"length"`
	Height float64 `toml:"height"`
}

// Load reads and validates a wall configuration file.
func Load(path string) (Spec, error) {
	f, err := os.Open(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return Spec{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "wall config %s", path)
	}
	if err != nil {
		return Spec{}, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a TOML wall configuration from r and validates it.
// Integer and float values are both accepted for every dimension.
func Decode(r io.Reader) (Spec, error) {
	var cfg configFile
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Spec{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode wall config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Spec{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}

	s := Spec{
		Width:     cfg.Wall.Width,
		Height:    cfg.Wall.Height,
		HeadJoint: cfg.Joints.Head,
		BedJoint:  cfg.Joints.Bed,
		Envelope:  Dimensions{Length: cfg.Envelope.Width, Height: cfg.Envelope.Height},
		Bricks:    make(map[Kind]Dimensions, len(cfg.Bricks)),
		Bond:      cfg.Bond,
	}
	for code, b := range cfg.Bricks {
		k, err := ParseKind(code)
		if err != nil {
			return Spec{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "bricks.%s", code)
		}
		s.Bricks[k] = Dimensions{Length: b.Length, Height: b.Height}
	}
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// Encode writes s in the configuration format accepted by Decode.
func Encode(w io.Writer, s Spec) error {
	var cfg configFile
	cfg.Bond = s.Bond
	cfg.Wall.Width, cfg.Wall.Height = s.Width, s.Height
	cfg.Joints.Head, cfg.Joints.Bed = s.HeadJoint, s.BedJoint
	cfg.Envelope.Width, cfg.Envelope.Height = s.Envelope.Length, s.Envelope.Height
	cfg.Bricks = make(map[string]brickEntry, len(s.Bricks))
	for k, d := range s.Bricks {
		cfg.Bricks[k.String()] = brickEntry{Length: d.Length, Height: d.Height}
	}
	return toml.NewEncoder(w).Encode(cfg)
}
