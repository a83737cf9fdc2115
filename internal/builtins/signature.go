package builtins

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Param describes one declared parameter of a function.
type Param struct {
	Name     string `json:"name" msgpack:"name"`
	Type     string `json:"type" msgpack:"type"`
	Required bool   `json:"required" msgpack:"required"`
	Desc     string `json:"desc,omitempty" msgpack:"desc,omitempty"`
}

// Signature is a callable known to the analyzer: a corpus entry or a user definition.
type Signature struct {
	Name        string  `json:"name" msgpack:"name"`
	Description string  `json:"description" msgpack:"description"`
	ReturnType  string  `json:"returnType" msgpack:"return_type"`
	Params      []Param `json:"params" msgpack:"params"`
}

// Variadic reports whether the trailing parameter accepts any number of arguments.
func (s *Signature) Variadic() bool {
	for i := range s.Params {
		if strings.Contains(s.Params[i].Name, "...") {
			return true
		}
	}
	return false
}

// RequiredCount returns the number of parameters without a default.
func (s *Signature) RequiredCount() int {
	n := 0
	for i := range s.Params {
		if s.Params[i].Required {
			n++
		}
	}
	return n
}

// Param returns the parameter declared under name.
func (s *Signature) Param(name string) (*Param, bool) {
	for i := range s.Params {
		if s.Params[i].Name == name {
			return &s.Params[i], true
		}
	}
	return nil, false
}

// Void reports whether calls of s yield no value.
func (s *Signature) Void() bool {
	return strings.EqualFold(s.ReturnType, "void") || IsVoid(s.Name)
}

// Label renders s as `name(p: type, ...)`.
func (s *Signature) Label() string {
	var sb strings.Builder
	sb.WriteString(s.Name)
	sb.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		sb.WriteString(": ")
		sb.WriteString(p.Type)
	}
	sb.WriteByte(')')
	if s.ReturnType != "" {
		sb.WriteString(" -> ")
		sb.WriteString(s.ReturnType)
	}
	return sb.String()
}

// rawSignature mirrors the corpus JSON, where returnType may be a string or a
// list and a parameter may carry either "required" or "optional".
type rawSignature struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ReturnType  json.RawMessage `json:"returnType"`
	Params      []rawParam      `json:"params"`
}

type rawParam struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required *bool  `json:"required"`
	Optional *bool  `json:"optional"`
	Desc     string `json:"desc"`
}

func (r *rawSignature) signature() (Signature, error) {
	sig := Signature{
		Name:        r.Name,
		Description: r.Description,
		Params:      make([]Param, 0, len(r.Params)),
	}
	rt, err := decodeReturnType(r.ReturnType)
	if err != nil {
		return sig, fmt.Errorf("%s: returnType: %w", r.Name, err)
	}
	sig.ReturnType = rt
	for _, p := range r.Params {
		param := Param{Name: p.Name, Type: p.Type, Desc: p.Desc}
		switch {
		case p.Required != nil:
			param.Required = *p.Required
		case p.Optional != nil:
			param.Required = !*p.Optional
		}
		sig.Params = append(sig.Params, param)
	}
	return sig, nil
}

func decodeReturnType(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return "", err
	}
	return strings.Join(list, "|"), nil
}
