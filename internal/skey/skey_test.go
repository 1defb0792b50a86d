package skey

import (
	"errors"
	"reflect"
	"testing"
)

func TestValidate(t *testing.T) {
	if err := (Symbol{Name: "  "}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Validate blank name = %v, want ErrEmptyName", err)
	}
	if err := (Symbol{Name: "VALV"}).Validate(); err != nil {
		t.Errorf("Validate = %v", err)
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Valves", "valves"},
		{"group.Check Valves", "check_valves"},
		{"  Fittings-Elbows ", "fittings_elbows"},
		{"", "unknown"},
		{"subgroup.", "unknown"},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCatalog(t *testing.T) {
	c := CatalogOf([]Symbol{
		{Name: "VB", Group: "valves", Subgroup: "ball"},
		{Name: "VA", Group: "valves", Subgroup: "ball"},
		{Name: "VG", Group: "valves", Subgroup: "gate"},
		{Name: "EL", Group: "fittings", Subgroup: "elbows"},
	})
	if got, want := c.Groups(), []string{"fittings", "valves"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Groups = %v, want %v", got, want)
	}
	if got, want := c.Subgroups("valves"), []string{"ball", "gate"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Subgroups = %v, want %v", got, want)
	}
	if got, want := c.Symbols("valves", "ball"), []string{"VA", "VB"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Symbols = %v, want %v", got, want)
	}
	if c.Len() != 4 {
		t.Errorf("Len = %d, want 4", c.Len())
	}

	f := c.Filter("gate")
	if f.Len() != 1 || f.Symbols("valves", "gate")[0] != "VG" {
		t.Errorf("Filter(gate) kept %d symbols", f.Len())
	}
	if f := c.Filter("el"); f.Len() != 1 {
		t.Errorf("Filter(el) kept %d symbols, want 1", f.Len())
	}
	if f := c.Filter("V"); f.Len() != 3 {
		t.Errorf("Filter(V) kept %d symbols, want 3", f.Len())
	}
}

func TestLookupConnectionType(t *testing.T) {
	ct, ok := LookupConnectionType(" fl ")
	if !ok || ct.Description != "Flanged" {
		t.Errorf("LookupConnectionType(fl) = %+v, %v", ct, ok)
	}
	if _, ok := LookupConnectionType("XX"); ok {
		t.Error("unexpected connection type XX")
	}
}

func TestParseFlags(t *testing.T) {
	if o, err := ParseOrientation("2"); err != nil || o != Reducers {
		t.Errorf("ParseOrientation(2) = %v, %v", o, err)
	}
	if o, err := ParseOrientation(" Non-Symmetrical"); err != nil || o != NonSymmetrical {
		t.Errorf("ParseOrientation(name) = %v, %v", o, err)
	}
	if _, err := ParseOrientation("4"); err == nil {
		t.Error("ParseOrientation(4) succeeded")
	}
	if s, err := ParseTriState("on"); err != nil || s != On {
		t.Errorf("ParseTriState(on) = %v, %v", s, err)
	}
	if _, err := ParseTriState("-1"); err == nil {
		t.Error("ParseTriState(-1) succeeded")
	}
}
