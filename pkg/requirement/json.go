package requirement

import (
	"encoding/json"
	"fmt"
)

// jsonReq is the wire form of a Requirement. The encoding is kind-tagged
// and omits fields that don't apply to the variant, so catalog files stay
// readable:
//
//	{"kind": "all", "of": [
//	    {"kind": "single", "course": "MATH 31A"},
//	    {"kind": "grade", "grade": "C-", "req": {"kind": "single", "course": "CS 31"}}
//	]}
type jsonReq struct {
	Kind     Kind      `json:"kind"`
	Course   string    `json:"course,omitempty"`
	MinGrade string    `json:"min_grade,omitempty"`
	Of       []jsonReq `json:"of,omitempty"`
	Grade    string    `json:"grade,omitempty"`
	Units    string    `json:"units,omitempty"`
	Req      *jsonReq  `json:"req,omitempty"`
	Text     string    `json:"text,omitempty"`
}

// MarshalJSON encodes the requirement in its kind-tagged wire form.
func (r Requirement) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(r))
}

// UnmarshalJSON decodes the kind-tagged wire form. Unknown kinds are
// rejected so malformed catalog data fails loudly at the decode boundary
// instead of silently producing empty requirements.
func (r *Requirement) UnmarshalJSON(data []byte) error {
	var jr jsonReq
	if err := json.Unmarshal(data, &jr); err != nil {
		return err
	}
	req, err := fromJSON(jr)
	if err != nil {
		return err
	}
	*r = req
	return nil
}

func toJSON(r Requirement) jsonReq {
	jr := jsonReq{
		Kind:     r.Kind,
		Course:   r.Course,
		MinGrade: r.MinGrade,
		Grade:    r.Grade,
		Units:    r.Units,
		Text:     r.Text,
	}
	for _, c := range r.Children {
		jr.Of = append(jr.Of, toJSON(c))
	}
	if r.Inner != nil {
		inner := toJSON(*r.Inner)
		jr.Req = &inner
	}
	return jr
}

func fromJSON(jr jsonReq) (Requirement, error) {
	switch jr.Kind {
	case KindNone:
		return None(), nil
	case KindSingle:
		return Requirement{Kind: KindSingle, Course: jr.Course, MinGrade: jr.MinGrade}, nil
	case KindAll, KindAny:
		children := make([]Requirement, 0, len(jr.Of))
		for _, c := range jr.Of {
			child, err := fromJSON(c)
			if err != nil {
				return Requirement{}, err
			}
			children = append(children, child)
		}
		return Requirement{Kind: jr.Kind, Children: children}, nil
	case KindGrade, KindCredits:
		inner := None()
		if jr.Req != nil {
			var err error
			inner, err = fromJSON(*jr.Req)
			if err != nil {
				return Requirement{}, err
			}
		}
		return Requirement{Kind: jr.Kind, Grade: jr.Grade, Units: jr.Units, Inner: &inner}, nil
	case KindFreeText:
		return Note(jr.Text), nil
	default:
		return Requirement{}, fmt.Errorf("unknown requirement kind %q", jr.Kind)
	}
}
