package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"skeyedit/internal/codec"
	"skeyedit/internal/skey"
)

// row builds one fixed column record.
type row []byte

func (r *row) put(c codec.Column, v string, right bool) {
	for len(*r) < c.End {
		*r = append(*r, ' ')
	}
	at := c.Start
	if right {
		at = c.End - len(v)
	}
	copy((*r)[at:], v)
}

func header(name, base, spindle string, flags ...int) string {
	var r row
	r.put(codec.Column{Start: 0, End: 3}, "501", false)
	r.put(codec.HeaderName, name, false)
	r.put(codec.HeaderBase, base, false)
	r.put(codec.HeaderSpindle, spindle, false)
	cols := []codec.Column{codec.HeaderOrientation, codec.HeaderFlow, codec.HeaderDimensioned}
	for i, f := range flags {
		r.put(cols[i], strconv.Itoa(f), true)
	}
	return string(r)
}

func plot(ts ...codec.Triple) string {
	var r row
	r.put(codec.Column{Start: 0, End: 3}, "502", false)
	for i, t := range ts {
		slot := codec.RecordSlots[i]
		r.put(slot.Code, t.Code, true)
		r.put(slot.X, strconv.FormatFloat(t.X, 'f', 1, 64), true)
		r.put(slot.Y, strconv.FormatFloat(t.Y, 'f', 1, 64), true)
	}
	return string(r)
}

func tr(code string, x, y float64) codec.Triple { return codec.Triple{Code: code, X: x, Y: y} }

var teeGeometry = []string{
	"ArrivePoint: x0=-1.0 y0=-1.0",
	"Line: x1=-1.0 y1=-1.0 x2=1.0 y2=-1.0",
	"TeePoint: x0=0.0 y0=1.0",
}

func teeLines() []string {
	return []string{
		header("TEE", "TEE", "SP01", 1, 2, 0),
		plot(tr("1", 0, 0), tr("2", 40, 0), tr("1", 20, 0), tr("3", 20, 40)),
		plot(tr("0", 0, 0)),
	}
}

func TestImportASCII(t *testing.T) {
	lines := append([]string{"! library exported for testing", plot(tr("2", 1, 1))}, teeLines()...)
	lines = append(lines,
		"",
		header("VALV", "VALV", "", 0, 0, 0),
		plot(tr("1", 0, 0), tr("2", 100, 0), tr("1", 100, 0)),
	)
	res := NewASCII(nil).Import(strings.NewReader(strings.Join(lines, "\n")))
	if len(res.Errors) != 0 {
		t.Fatalf("errors: %v", res.Errors)
	}
	if len(res.Symbols) != 2 {
		t.Fatalf("got %d symbols, want 2", len(res.Symbols))
	}

	tee := res.Symbols[0]
	want := skey.Symbol{
		Name:        "TEE",
		Group:       "unknown",
		Subgroup:    "unknown",
		Spindle:     "SP01",
		Orientation: skey.NonSymmetrical,
		FlowArrow:   skey.On,
		Dimensioned: skey.Default,
		Geometry:    teeGeometry,
	}
	if !reflect.DeepEqual(tee, want) {
		t.Errorf("TEE =\n%+v\nwant\n%+v", tee, want)
	}

	valv := []string{
		"ArrivePoint: x0=-2.5 y0=-0.025",
		"Line: x1=-2.5 y1=-0.025 x2=2.5 y2=-0.025",
		"LeavePoint: x0=2.5 y0=-0.025",
	}
	if !reflect.DeepEqual(res.Symbols[1].Geometry, valv) {
		t.Errorf("VALV geometry = %v, want %v", res.Symbols[1].Geometry, valv)
	}
}

func TestImportBadHeaderSkipsBlock(t *testing.T) {
	bad := header("BAD", "BAD", "", 0, 0, 0)
	bad = bad[:codec.HeaderFlow.Start] + "      x" + bad[codec.HeaderFlow.End:]
	lines := append([]string{bad, plot(tr("1", 0, 0), tr("2", 20, 0))}, teeLines()...)

	res := NewASCII(nil).Import(strings.NewReader(strings.Join(lines, "\r\n")))
	if len(res.Symbols) != 1 || res.Symbols[0].Name != "TEE" {
		t.Fatalf("symbols = %+v", res.Symbols)
	}
	if !reflect.DeepEqual(res.Symbols[0].Geometry, teeGeometry) {
		t.Errorf("geometry = %v", res.Symbols[0].Geometry)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %v, want one", res.Errors)
	}
	var le *LineError
	if !errors.As(res.Errors[0], &le) || le.Line != 1 {
		t.Errorf("error = %v, want line 1", res.Errors[0])
	}
}

func TestImportShortHeader(t *testing.T) {
	res := NewASCII(nil).Import(strings.NewReader("501  ABC"))
	if len(res.Symbols) != 0 || len(res.Errors) != 1 {
		t.Errorf("result = %+v", res)
	}
}

func TestImportBadSlot(t *testing.T) {
	bad := plot(tr("1", 0, 0))
	bad = bad[:codec.RecordSlots[0].X.Start] + "    abc" + bad[codec.RecordSlots[0].X.End:]
	lines := []string{header("TEE", "TEE", "", 0, 0, 0), bad}
	res := NewASCII(nil).Import(strings.NewReader(strings.Join(lines, "\n")))
	if len(res.Symbols) != 1 || len(res.Errors) != 1 {
		t.Fatalf("result = %+v", res)
	}
	if len(res.Symbols[0].Geometry) != 0 {
		t.Errorf("geometry = %v, want none", res.Symbols[0].Geometry)
	}
}

func TestImportIDF(t *testing.T) {
	var h row
	h.put(codec.Column{Start: 0, End: 3}, "501", false)
	h.put(codec.Column{Start: 5, End: 21}, "TEE,TEEB,SP02", false)
	h.put(codec.HeaderOrientation, "3", true)
	h.put(codec.HeaderFlow, "1", true)
	h.put(codec.HeaderDimensioned, "2", true)
	lines := []string{
		string(h),
		plot(tr("1", 0, 0), tr("2", 40, 0), tr("1", 20, 0), tr("3", 20, 40)),
		"503  end of symbol",
		plot(tr("2", 100, 100)),
	}
	d, err := LoadDescriptions(strings.NewReader(`{"TEE": ["Fittings", "Equal Tees", "tee piece"]}`))
	if err != nil {
		t.Fatal(err)
	}
	res := NewIDF(d).Import(strings.NewReader(strings.Join(lines, "\n")))
	if len(res.Errors) != 0 || len(res.Symbols) != 1 {
		t.Fatalf("result = %+v", res)
	}
	got := res.Symbols[0]
	if got.Spindle != "SP02" || got.Orientation != skey.Flanges || got.FlowArrow != skey.Off || got.Dimensioned != skey.On {
		t.Errorf("metadata = %+v", got)
	}
	if got.Group != "fittings" || got.Subgroup != "equal_tees" {
		t.Errorf("classified as %s/%s", got.Group, got.Subgroup)
	}
	if !reflect.DeepEqual(got.Geometry, teeGeometry) {
		t.Errorf("geometry = %v, want %v", got.Geometry, teeGeometry)
	}
}

func TestRoundTripMetadata(t *testing.T) {
	sym := skey.Symbol{
		Name:        "FLAN",
		Spindle:     "SP01",
		Orientation: skey.Reducers,
		FlowArrow:   skey.On,
		Dimensioned: skey.Off,
		Geometry:    []string{"Line: x1=-1.0 y1=0.0 x2=1.0 y2=0.0"},
	}
	text := codec.Default().ExportASCII(sym)
	res := NewASCII(nil).Import(strings.NewReader(text))
	if len(res.Errors) != 0 || len(res.Symbols) != 1 {
		t.Fatalf("result = %+v", res)
	}
	got := res.Symbols[0]
	if got.Name != sym.Name || got.Spindle != sym.Spindle || got.Orientation != sym.Orientation ||
		got.FlowArrow != sym.FlowArrow || got.Dimensioned != sym.Dimensioned {
		t.Errorf("metadata = %+v", got)
	}
	if len(got.Geometry) != 2 {
		t.Errorf("geometry = %v, want arrive point and line", got.Geometry)
	}
}

func TestForFile(t *testing.T) {
	for _, tc := range []struct {
		path string
		want Format
		err  bool
	}{
		{"lib.skey", FormatASCII, false},
		{"LIB.ASC", FormatASCII, false},
		{"lib.txt", FormatASCII, false},
		{"lib.idf", FormatIDF, false},
		{"lib.dxf", 0, true},
		{"lib", 0, true},
	} {
		imp, err := ForFile(tc.path, nil)
		if tc.err {
			if !errors.Is(err, ErrUnsupported) {
				t.Errorf("ForFile(%q) err = %v, want ErrUnsupported", tc.path, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ForFile(%q): %v", tc.path, err)
			continue
		}
		if r := imp.(*Reader); r.Format != tc.want {
			t.Errorf("ForFile(%q) format = %d, want %d", tc.path, r.Format, tc.want)
		}
	}
}

func TestImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tee.skey")
	if err := os.WriteFile(path, []byte(strings.Join(teeLines(), "\n")), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := ImportFile(path, Descriptions{"TEE": {"Fittings", "Tees"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Symbols) != 1 || res.Symbols[0].Group != "fittings" {
		t.Errorf("result = %+v", res)
	}
	if _, err := ImportFile(filepath.Join(t.TempDir(), "missing.skey"), nil); err == nil {
		t.Error("missing file imported")
	}
}

func TestClassify(t *testing.T) {
	d := Descriptions{"TEE": {"group.Fittings", "subgroup.Tees"}, "ODD": {"Only Group"}}
	for _, tc := range []struct{ name, group, sub string }{
		{"TEE", "fittings", "tees"},
		{"ODD", "unknown", "unknown"},
		{"NONE", "unknown", "unknown"},
	} {
		g, s := d.Classify(tc.name)
		if g != tc.group || s != tc.sub {
			t.Errorf("Classify(%q) = %s/%s, want %s/%s", tc.name, g, s, tc.group, tc.sub)
		}
	}
	if _, err := LoadDescriptions(strings.NewReader("[1,2")); err == nil {
		t.Error("bad descriptions accepted")
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seen := make(chan string, 8)
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, dir, nil, func(p string) { seen <- p }) }()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)
	os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644)
	target := filepath.Join(dir, "tee.skey")
	os.WriteFile(target, []byte(strings.Join(teeLines(), "\n")), 0o644)

	select {
	case p := <-seen:
		if filepath.Base(p) != "tee.skey" {
			t.Errorf("watch reported %s", p)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event for tee.skey")
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch: %v", err)
	}
}
