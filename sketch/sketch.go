// Package sketch reads and writes sketch files, the hole declarations a
// design space is built from, and generates finite-state controller sketches.
package sketch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rfielding/fsc-synth/family"
)

var ErrInvalidSketch = errors.New("invalid sketch")

// HoleSpec declares one hole and its labels in option order.
type HoleSpec struct {
	Name   string   `yaml:"name" json:"name" validate:"required"`
	Labels []string `yaml:"labels" json:"labels" validate:"required,min=1,unique,dive,required"`
}

// Sketch is the content of a sketch file.
type Sketch struct {
	Name        string     `yaml:"name" json:"name" validate:"required"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Constraints []int      `yaml:"constraints,omitempty" json:"constraints,omitempty" validate:"unique,dive,min=0"`
	Holes       []HoleSpec `yaml:"holes" json:"holes" validate:"required,min=1,unique=Name,dive"`
}

// Format is the encoding of a sketch file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from a file extension; anything but .json is YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

var validate = validator.New()

type options struct {
	logger *zap.Logger
}

type Option func(*options)

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Load reads and validates a sketch file.
func Load(path string, opts ...Option) (*Sketch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sketch: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	buildOptions(opts).logger.Debug("sketch loaded",
		zap.String("path", path),
		zap.String("name", s.Name),
		zap.Int("holes", len(s.Holes)))
	return s, nil
}

// Parse decodes and validates a sketch. JSON is accepted as YAML.
func Parse(data []byte) (*Sketch, error) {
	var s Sketch
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSketch, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Sketch) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSketch, err)
	}
	return nil
}

// Build returns the root family of the sketch: every hole at its full option
// set, with the sketch constraints as its constraint ids.
func (s *Sketch) Build(opts ...Option) (*family.Family, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	names := make([]string, len(s.Holes))
	labels := make([][]string, len(s.Holes))
	for i, h := range s.Holes {
		names[i] = h.Name
		labels[i] = h.Labels
	}
	f, err := family.NewRoot(names, labels, s.Constraints)
	if err != nil {
		return nil, err
	}
	buildOptions(opts).logger.Debug("sketch built",
		zap.String("name", s.Name),
		zap.Int("holes", f.NumHoles()),
		zap.String("size", f.SizeOrOrder()))
	return f, nil
}

// Write encodes s in the given format.
func (s *Sketch) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown sketch format %q", format)
}

// Save writes s to path in the format its extension names.
func (s *Sketch) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Write(file, FormatOf(path)); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// FromFamily describes the full option sets of f as a sketch.
func FromFamily(name string, f *family.Family) *Sketch {
	s := &Sketch{Name: name, Constraints: f.Constraints()}
	for h := 0; h < f.NumHoles(); h++ {
		s.Holes = append(s.Holes, HoleSpec{Name: f.HoleName(h), Labels: f.HoleLabels(h)})
	}
	return s
}

// Narrowed describes f keeping only the assumed labels of each hole, so the
// sketch builds a root family equal in content to f.
func Narrowed(name string, f *family.Family) *Sketch {
	s := &Sketch{Name: name, Constraints: f.Constraints()}
	for h := 0; h < f.NumHoles(); h++ {
		var labels []string
		for _, o := range f.HoleOptions(h) {
			labels = append(labels, f.HoleLabel(h, o))
		}
		s.Holes = append(s.Holes, HoleSpec{Name: f.HoleName(h), Labels: labels})
	}
	return s
}
