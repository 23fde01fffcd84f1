// Package template builds lipped C and Z channel sections from catalog
// dimensions and keeps an edited section consistent with its parameters.
package template

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alexiusacademia/gocfs/internal/catalog"
	"github.com/alexiusacademia/gocfs/internal/section"
)

// Shape is the channel family.
type Shape string

const (
	ShapeC Shape = "C"
	ShapeZ Shape = "Z"
)

// ParseShape accepts C or Z in either case.
func ParseShape(s string) (Shape, error) {
	switch Shape(strings.ToUpper(strings.TrimSpace(s))) {
	case ShapeC:
		return ShapeC, nil
	case ShapeZ:
		return ShapeZ, nil
	}
	return "", fmt.Errorf("unknown shape %q (want C or Z)", s)
}

// Params are the template picker choices.
type Params struct {
	Shape       Shape
	Mils        int
	WebDepth    float64
	FlangeWidth float64
	Rounded     bool // fillet the corners with the catalog bend radius
	Centerline  bool // dimensions to the wall centerline rather than out-to-out
}

// DefaultParams is the 162S125-18 lipped channel on its centerline.
func DefaultParams() Params {
	return Params{
		Shape:       ShapeC,
		Mils:        18,
		WebDepth:    section.DefaultWebDepth,
		FlangeWidth: section.DefaultFlangeWidth,
		Centerline:  true,
	}
}

// ErrBendTooLarge is returned when the catalog bend radius of a gauge would
// swallow the whole lip, so the section cannot be rounded.
var ErrBendTooLarge = errors.New("bend radius does not fit the lip")

// dims are the catalog values resolved from Params.
type dims struct {
	t, radius, lip float64
}

func (p Params) resolve() (dims, error) {
	g, err := catalog.GaugeForMils(p.Mils)
	if err != nil {
		return dims{}, err
	}
	if err := catalog.CheckWebDepth(p.WebDepth); err != nil {
		return dims{}, err
	}
	lip, err := catalog.LipLength(p.FlangeWidth)
	if err != nil {
		return dims{}, err
	}
	if p.Shape != ShapeC && p.Shape != ShapeZ {
		return dims{}, fmt.Errorf("unknown shape %q", p.Shape)
	}
	radius, err := catalog.CenterlineRadius(g.Thickness)
	if err != nil {
		return dims{}, err
	}
	return dims{t: g.Thickness, radius: radius, lip: lip}, nil
}

// checkBend rejects rounding when the bend leaves no straight lip.
func (p Params) checkBend(d dims, centerline bool) error {
	fits, err := catalog.LipFitsBend(d.t, d.lip, !centerline)
	if err != nil {
		return err
	}
	if !fits {
		return fmt.Errorf("%s: %w (radius %.4f, lip %.4f)", p.Designation(), ErrBendTooLarge, d.radius, d.lip)
	}
	return nil
}

// Designation returns the member name for the parameters.
func (p Params) Designation() string {
	return catalog.Designation(p.Shape == ShapeZ, p.WebDepth, p.FlangeWidth, p.Mils)
}

// Build creates the section described by p, starting from the default
// channel and applying the section operators in order.
func Build(p Params) (*section.Section, error) {
	d, err := p.resolve()
	if err != nil {
		return nil, err
	}
	z := p.Shape == ShapeZ
	if p.Rounded {
		if err := p.checkBend(d, p.Centerline); err != nil {
			return nil, err
		}
	}

	s := section.DefaultSection()
	steps := []struct {
		name string
		run  func() error
		skip bool
	}{
		{"thickness", func() error { return s.SetAllThicknesses(d.t) }, false},
		{"web depth", func() error { return s.UpdateWebDepth(p.WebDepth, d.lip) }, false},
		{"flange width", func() error { return s.UpdateFlangeWidth(p.FlangeWidth, p.WebDepth, d.lip) }, false},
		{"Z shape", func() error { return s.SwitchCZ() }, !z},
		{"out-to-out", func() error { return s.ConvertToOutToOut(z, d.t) }, p.Centerline},
		{"rounded corners", func() error { return s.AddRoundedCorners(d.radius) }, !p.Rounded},
	}
	for _, step := range steps {
		if step.skip {
			continue
		}
		if err := step.run(); err != nil {
			return nil, fmt.Errorf("%s %s: %w", p.Designation(), step.name, err)
		}
	}
	return s, nil
}

// Editor holds a template section together with the parameters it was built
// from. A failed edit leaves both unchanged.
type Editor struct {
	params  Params
	section *section.Section
	log     *slog.Logger
}

// NewEditor starts an editor on the default channel.
func NewEditor(log *slog.Logger) (*Editor, error) {
	if log == nil {
		log = slog.Default()
	}
	p := DefaultParams()
	s, err := Build(p)
	if err != nil {
		return nil, err
	}
	return &Editor{params: p, section: s, log: log}, nil
}

// Params returns the current parameters.
func (e *Editor) Params() Params { return e.params }

// Section returns a copy of the current section.
func (e *Editor) Section() *section.Section { return e.section.Clone() }

// Apply rebuilds the section from p.
func (e *Editor) Apply(p Params) error {
	s, err := Build(p)
	if err != nil {
		e.log.Debug("template rebuild rejected", "designation", p.Designation(), "error", err)
		return err
	}
	e.params, e.section = p, s
	e.log.Debug("template rebuilt", "designation", p.Designation(), "area", s.Properties().Area)
	return nil
}

func (e *Editor) SetThickness(mils int) error {
	p := e.params
	p.Mils = mils
	return e.Apply(p)
}

func (e *Editor) SetWebDepth(depth float64) error {
	p := e.params
	p.WebDepth = depth
	return e.Apply(p)
}

func (e *Editor) SetFlangeWidth(width float64) error {
	p := e.params
	p.FlangeWidth = width
	return e.Apply(p)
}

func (e *Editor) SetShape(shape Shape) error {
	p := e.params
	p.Shape = shape
	return e.Apply(p)
}

// SetRounded adds or removes the corner fillets in place.
func (e *Editor) SetRounded(rounded bool) error {
	if rounded == e.params.Rounded {
		return nil
	}
	d, err := e.params.resolve()
	if err != nil {
		return err
	}
	if rounded {
		if err := e.params.checkBend(d, e.params.Centerline); err != nil {
			return err
		}
	}
	s := e.section.Clone()
	if rounded {
		err = s.AddRoundedCorners(d.radius)
	} else {
		err = s.RemoveRoundedCorners()
	}
	if err != nil {
		return err
	}
	e.params.Rounded = rounded
	e.section = s
	return nil
}

// SetCenterline switches between centerline and out-to-out dimensions in place.
func (e *Editor) SetCenterline(centerline bool) error {
	if centerline == e.params.Centerline {
		return nil
	}
	d, err := e.params.resolve()
	if err != nil {
		return err
	}
	if e.params.Rounded {
		if err := e.params.checkBend(d, centerline); err != nil {
			return err
		}
	}
	z := e.params.Shape == ShapeZ
	s := e.section.Clone()
	if centerline {
		err = s.ConvertToCenterline(z, d.t)
	} else {
		err = s.ConvertToOutToOut(z, d.t)
	}
	if err != nil {
		return err
	}
	e.params.Centerline = centerline
	e.section = s
	return nil
}
