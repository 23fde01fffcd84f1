package section

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// wireElement is the tagged form of an Element. Arc centers are carried by
// the radius sign together with the stored angles, so decoding never has to
// choose between candidate centers.
type wireElement struct {
	Kind   ElementKind `json:"kind" yaml:"kind" msgpack:"kind"`
	T      float64     `json:"t" yaml:"t" msgpack:"t"`
	Node1  Node        `json:"node1" yaml:"node1" msgpack:"node1"`
	Node2  Node        `json:"node2" yaml:"node2" msgpack:"node2"`
	Radius float64     `json:"radius,omitempty" yaml:"radius,omitempty" msgpack:"radius,omitempty"`
	Theta1 float64     `json:"theta1,omitempty" yaml:"theta1,omitempty" msgpack:"theta1,omitempty"`
	Theta2 float64     `json:"theta2,omitempty" yaml:"theta2,omitempty" msgpack:"theta2,omitempty"`
}

type wireSection struct {
	Straights []wireElement `json:"straights" yaml:"straights" msgpack:"straights"`
	Arcs      []wireElement `json:"arcs,omitempty" yaml:"arcs,omitempty" msgpack:"arcs,omitempty"`
}

func toWire(s *Section) wireSection {
	w := wireSection{Straights: make([]wireElement, 0, len(s.Straights))}
	for _, e := range s.Straights {
		w.Straights = append(w.Straights, wireElement{Kind: KindStraight, T: e.T, Node1: e.N1, Node2: e.N2})
	}
	for _, a := range s.Arcs {
		w.Arcs = append(w.Arcs, wireElement{
			Kind: KindArc, T: a.T, Node1: a.N1, Node2: a.N2,
			Radius: a.Radius, Theta1: a.Theta1, Theta2: a.Theta2,
		})
	}
	return w
}

// fromWire rebuilds and recomputes the section. Arcs written by hand without
// angles are derived from the radius sign.
func fromWire(w wireSection) (*Section, error) {
	s := &Section{}
	for i, e := range append(append([]wireElement(nil), w.Straights...), w.Arcs...) {
		switch e.Kind {
		case KindStraight, "":
			if e.Radius != 0 {
				return nil, fmt.Errorf("element %d: straight element with radius %g", i+1, e.Radius)
			}
			s.Straights = append(s.Straights, Straight{T: e.T, N1: e.Node1, N2: e.Node2})
		case KindArc:
			if e.Theta1 == 0 && e.Theta2 == 0 {
				a, err := NewArc(e.T, e.Radius, e.Node1, e.Node2, nil)
				if err != nil {
					return nil, fmt.Errorf("element %d: %w", i+1, err)
				}
				s.Arcs = append(s.Arcs, a)
				continue
			}
			s.Arcs = append(s.Arcs, Arc{T: e.T, Radius: e.Radius, N1: e.Node1, N2: e.Node2, Theta1: e.Theta1, Theta2: e.Theta2})
		default:
			return nil, fmt.Errorf("element %d: unknown element kind %q", i+1, e.Kind)
		}
	}
	if err := s.Recompute(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Section) MarshalJSON() ([]byte, error) {
	return json.Marshal(toWire(s))
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var w wireSection
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	decoded, err := fromWire(w)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

func (s *Section) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(toWire(s))
}

func (s *Section) DecodeMsgpack(dec *msgpack.Decoder) error {
	var w wireSection
	if err := dec.Decode(&w); err != nil {
		return err
	}
	decoded, err := fromWire(w)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

func (s *Section) MarshalYAML() (any, error) {
	return toWire(s), nil
}

func (s *Section) UnmarshalYAML(node *yaml.Node) error {
	var w wireSection
	if err := node.Decode(&w); err != nil {
		return err
	}
	decoded, err := fromWire(w)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadFromFile loads a section definition from a JSON or YAML file, chosen
// by extension.
func LoadFromFile(path string) (*Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var section Section
	if isYAML(path) {
		err = yaml.Unmarshal(data, &section)
	} else {
		err = json.Unmarshal(data, &section)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &section, nil
}

// SaveToFile writes the section as indented JSON, or YAML for .yaml/.yml paths.
func (s *Section) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
