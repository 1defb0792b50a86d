// Package codec converts between the three geometry representations: legacy
// pen-plot triples, geometry strings ("Type: key=value ..."), and primitives
// placed on a sheet.
package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"skeyedit/internal/geom"
)

// ParseError reports a geometry string that cannot be used. Loaders skip the
// entry and carry on.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("geometry %q: %s", e.Input, e.Reason)
}

// Record is a parsed geometry string. Keys keeps the order they appeared in
// so Format can reproduce the input.
type Record struct {
	Type string
	Keys []string
	Nums map[string]float64
	Strs map[string]string
}

func NewRecord(typ string) *Record {
	return &Record{Type: typ, Nums: map[string]float64{}, Strs: map[string]string{}}
}

func isStringKey(key string) bool {
	return key == "name" || key == "type"
}

func (r *Record) SetNum(key string, v float64) {
	if _, ok := r.Nums[key]; !ok {
		r.Keys = append(r.Keys, key)
	}
	r.Nums[key] = geom.Round3(v)
}

// SetStr stores a string value; empty values are left out of the record.
func (r *Record) SetStr(key, v string) {
	if v == "" {
		return
	}
	if _, ok := r.Strs[key]; !ok {
		r.Keys = append(r.Keys, key)
	}
	r.Strs[key] = v
}

func (r *Record) Num(key string) (float64, bool) {
	v, ok := r.Nums[key]
	return v, ok
}

// Parse splits s on the first colon, then on whitespace, then on "=". Keys
// "name" and "type" keep their text; every other value must be a number.
func Parse(s string) (*Record, error) {
	head, rest, ok := strings.Cut(s, ":")
	if !ok {
		return nil, &ParseError{Input: s, Reason: "missing ':'"}
	}
	typ := strings.TrimSpace(head)
	if typ == "" {
		return nil, &ParseError{Input: s, Reason: "empty type"}
	}
	rec := NewRecord(typ)
	for _, tok := range strings.Fields(rest) {
		key, val, ok := strings.Cut(tok, "=")
		if !ok || key == "" {
			return nil, &ParseError{Input: s, Reason: fmt.Sprintf("bad token %q", tok)}
		}
		if isStringKey(key) {
			if _, seen := rec.Strs[key]; !seen {
				rec.Keys = append(rec.Keys, key)
			}
			rec.Strs[key] = val
			continue
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &ParseError{Input: s, Reason: fmt.Sprintf("bad number for %s: %q", key, val)}
		}
		if _, seen := rec.Nums[key]; !seen {
			rec.Keys = append(rec.Keys, key)
		}
		rec.Nums[key] = f
	}
	return rec, nil
}

// Format writes the record back in canonical form.
func Format(r *Record) string {
	var b strings.Builder
	b.WriteString(r.Type)
	b.WriteString(":")
	for _, k := range r.Keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		if v, ok := r.Strs[k]; ok && isStringKey(k) {
			b.WriteString(v)
			continue
		}
		b.WriteString(FormatFloat(r.Nums[k], 3))
	}
	return b.String()
}

// FormatFloat rounds v to places decimals and always keeps a fractional
// part, so whole numbers read "2.0" rather than "2".
func FormatFloat(v float64, places int) string {
	s := strconv.FormatFloat(geom.RoundTo(v, places), 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
