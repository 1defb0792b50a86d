// Package skey describes a symbol record and its classification.
package skey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var ErrEmptyName = errors.New("skey name cannot be empty")

type Orientation int

const (
	Symmetrical Orientation = iota
	NonSymmetrical
	Reducers
	Flanges
)

func (o Orientation) String() string {
	switch o {
	case Symmetrical:
		return "symmetrical"
	case NonSymmetrical:
		return "non-symmetrical"
	case Reducers:
		return "reducers"
	case Flanges:
		return "flanges"
	}
	return strconv.Itoa(int(o))
}

// TriState is the default/off/on switch shared by flow arrow, dimensioning,
// tracing and insulation.
type TriState int

const (
	Default TriState = iota
	Off
	On
)

func (t TriState) String() string {
	switch t {
	case Default:
		return "default"
	case Off:
		return "off"
	case On:
		return "on"
	}
	return strconv.Itoa(int(t))
}

// ParseOrientation accepts the stored number or the name.
func ParseOrientation(text string) (Orientation, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	for o := Symmetrical; o <= Flanges; o++ {
		if text == o.String() || text == strconv.Itoa(int(o)) {
			return o, nil
		}
	}
	return 0, fmt.Errorf("invalid orientation %q", text)
}

// ParseTriState accepts the stored number or the name.
func ParseTriState(text string) (TriState, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	for t := Default; t <= On; t++ {
		if text == t.String() || text == strconv.Itoa(int(t)) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("invalid switch value %q", text)
}

// Symbol is one skey: metadata plus its ordered geometry strings.
type Symbol struct {
	Name        string
	Group       string
	Subgroup    string
	Description string
	Spindle     string
	Orientation Orientation
	FlowArrow   TriState
	Dimensioned TriState
	Tracing     TriState
	Insulation  TriState
	Geometry    []string
}

func (s Symbol) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// IsSpindle reports whether the symbol is itself a spindle by name.
func (s Symbol) IsSpindle() bool {
	return strings.Contains(s.Name, "SP")
}

// NormalizeKey turns a group or subgroup label into the stored key.
func NormalizeKey(s string) string {
	s = strings.TrimSpace(norm.NFKC.String(s))
	for _, prefix := range []string{"group.", "subgroup.", "description."} {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimPrefix(s, prefix)
			break
		}
	}
	if s == "" {
		return "unknown"
	}
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
