// Package importer reads symbol libraries written by older plotting tools:
// fixed column ASCII skey files and IDF files.
package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"skeyedit/internal/codec"
	"skeyedit/internal/skey"
)

var ErrUnsupported = errors.New("unsupported file format")

// LineError is a record that could not be read. The importer skips it and
// carries on.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Result is what one import produced. Symbols keep file order.
type Result struct {
	Symbols []skey.Symbol
	Errors  []error
}

// Importer reads one library file.
type Importer interface {
	Import(r io.Reader) Result
}

// Format says how a 501 header names its symbol and where record types end.
type Format int

const (
	FormatASCII Format = iota
	FormatIDF
)

// Reader imports either format. Descriptions, when set, classify the
// imported symbols by name.
type Reader struct {
	Format       Format
	Descriptions Descriptions
}

func NewASCII(d Descriptions) *Reader { return &Reader{Format: FormatASCII, Descriptions: d} }
func NewIDF(d Descriptions) *Reader   { return &Reader{Format: FormatIDF, Descriptions: d} }

// ForFile picks the importer for a file by its extension.
func ForFile(path string, d Descriptions) (Importer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".skey", ".asc", ".txt":
		return NewASCII(d), nil
	case ".idf":
		return NewIDF(d), nil
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
}

// Supported reports whether ForFile knows the file's extension.
func Supported(path string) bool {
	_, err := ForFile(path, nil)
	return err == nil
}

// ImportFile opens path and imports it with the importer its extension
// calls for.
func ImportFile(path string, d Descriptions) (Result, error) {
	imp, err := ForFile(path, d)
	if err != nil {
		return Result{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()
	return imp.Import(f), nil
}

type parser struct {
	r       *Reader
	res     Result
	cur     int // index into res.Symbols, -1 when no symbol is open
	raw     []codec.Triple
	lineNum int
}

func (r *Reader) Import(in io.Reader) Result {
	p := &parser{r: r, cur: -1}
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		p.lineNum++
		p.line(strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		p.fail(err)
	}
	p.flush()
	return p.res
}

func (p *parser) fail(err error) {
	p.res.Errors = append(p.res.Errors, &LineError{Line: p.lineNum, Err: err})
}

// flush decodes the pen plot gathered for the open symbol.
func (p *parser) flush() {
	if p.cur >= 0 {
		sym := &p.res.Symbols[p.cur]
		sym.Geometry = codec.DecodeLegacy(sym.Name, p.raw)
	}
	p.cur = -1
	p.raw = nil
}

func (p *parser) line(row string) {
	if strings.HasPrefix(row, "!") {
		return
	}
	width := 4
	if p.r.Format == FormatIDF {
		width = 5
	}
	rt := strings.TrimSpace(row[:min(width, len(row))])

	switch rt {
	case "":
	case "501":
		p.flush()
		p.header(row)
	case "502":
		if p.cur < 0 {
			return
		}
		if err := p.plot(row); err != nil {
			p.fail(err)
		}
	default:
		if p.r.Format == FormatIDF {
			p.flush()
		}
	}
}

func (p *parser) header(row string) {
	var name, base, spindle string
	switch p.r.Format {
	case FormatIDF:
		names, _ := codec.Field(row, codec.Column{Start: 5, End: 21})
		parts := strings.Split(names, ",")
		name = strings.TrimSpace(parts[0])
		if len(parts) > 1 {
			base = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			spindle = strings.TrimSpace(parts[2])
		}
	default:
		name, _ = codec.Field(row, codec.HeaderName)
		base, _ = codec.Field(row, codec.HeaderBase)
		spindle, _ = codec.Field(row, codec.HeaderSpindle)
	}

	var flags [3]int
	for i, col := range []codec.Column{codec.HeaderOrientation, codec.HeaderFlow, codec.HeaderDimensioned} {
		text, ok := codec.Field(row, col)
		if !ok {
			p.fail(errors.New("501 record too short"))
			return
		}
		v, err := strconv.Atoi(text)
		if err != nil {
			p.fail(fmt.Errorf("501 record: %w", err))
			return
		}
		flags[i] = v
	}

	if name == "" {
		name = base
	}
	if name == "" {
		return
	}
	group, subgroup := p.r.Descriptions.Classify(name)
	p.res.Symbols = append(p.res.Symbols, skey.Symbol{
		Name:        name,
		Group:       group,
		Subgroup:    subgroup,
		Spindle:     spindle,
		Orientation: skey.Orientation(flags[0]),
		FlowArrow:   skey.TriState(flags[1]),
		Dimensioned: skey.TriState(flags[2]),
	})
	p.cur = len(p.res.Symbols) - 1
}

// plot reads the pen triples of a 502 record. The first slot the row does
// not reach, or leaves blank, ends the record.
func (p *parser) plot(row string) error {
	var got []codec.Triple
	for _, slot := range codec.RecordSlots {
		code, ok := codec.Field(row, slot.Code)
		if !ok || code == "" {
			break
		}
		xs, _ := codec.Field(row, slot.X)
		ys, _ := codec.Field(row, slot.Y)
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return fmt.Errorf("502 record: x: %w", err)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return fmt.Errorf("502 record: y: %w", err)
		}
		got = append(got, codec.Triple{Code: code, X: x, Y: y})
	}
	p.raw = append(p.raw, got...)
	return nil
}
