package section

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Kind identifies a section family. Cold-formed steel is the only family
// today.
type Kind string

const KindCFS Kind = "CFS"

// Any is a section of any known family. Exactly one payload field is set,
// matching Kind.
type Any struct {
	Kind Kind
	CFS  *Section
}

// NewCFS wraps a cold-formed steel section.
func NewCFS(s *Section) Any {
	return Any{Kind: KindCFS, CFS: s}
}

// Properties returns the derived properties of whichever section is held.
func (a Any) Properties() (Properties, error) {
	switch a.Kind {
	case KindCFS:
		if a.CFS == nil {
			return Properties{}, fmt.Errorf("%s section is empty", a.Kind)
		}
		return a.CFS.Properties(), nil
	default:
		return Properties{}, fmt.Errorf("unknown section kind %q", a.Kind)
	}
}

type wireAny struct {
	Kind    Kind            `json:"type" msgpack:"type"`
	Section json.RawMessage `json:"section" msgpack:"-"`
}

func (a Any) MarshalJSON() ([]byte, error) {
	if _, err := a.Properties(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(a.CFS)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireAny{Kind: a.Kind, Section: body})
}

func (a *Any) UnmarshalJSON(data []byte) error {
	var w wireAny
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case KindCFS:
		var s Section
		if err := json.Unmarshal(w.Section, &s); err != nil {
			return err
		}
		*a = NewCFS(&s)
		return nil
	default:
		return fmt.Errorf("unknown section kind %q", w.Kind)
	}
}

func (a Any) EncodeMsgpack(enc *msgpack.Encoder) error {
	if _, err := a.Properties(); err != nil {
		return err
	}
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeString(string(a.Kind)); err != nil {
		return err
	}
	return enc.Encode(a.CFS)
}

func (a *Any) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != 2 {
		return fmt.Errorf("section: expected [kind, section], got %d items", n)
	}
	kind, err := dec.DecodeString()
	if err != nil {
		return err
	}
	switch Kind(kind) {
	case KindCFS:
		var s Section
		if err := dec.Decode(&s); err != nil {
			return err
		}
		*a = NewCFS(&s)
		return nil
	default:
		return fmt.Errorf("unknown section kind %q", kind)
	}
}
