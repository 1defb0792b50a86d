package command

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"skeyedit/internal/geom"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"by x 1.5", Command{Kind: KindBy, Moves: []Move{{"X", 1.5}}}},
		{"BY X 1 y -0.5 X 1", Command{Kind: KindBy, Moves: []Move{{"X", 1}, {"Y", -0.5}, {"X", 1}}}},
		{"rotate", Command{Kind: KindRotate, Angle: 90}},
		{"ROTATE -180", Command{Kind: KindRotate, Angle: -180}},
		{"  clr ", Command{Kind: KindClear}},
		{"help by", Command{Kind: KindHelp, Topic: "BY"}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.line)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.line, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"", ErrEmpty},
		{"zoom 2", ErrUnknown},
		{"BY", ErrUsage},
		{"BY Z 1", ErrUsage},
		{"BY X", ErrUsage},
		{"BY X one", ErrUsage},
		{"ROTATE 45", ErrUsage},
		{"ROTATE left", ErrUsage},
	}
	for _, tt := range tests {
		if _, err := Parse(tt.line); !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.line, err, tt.want)
		}
	}
}

func TestDelta(t *testing.T) {
	cmd, err := Parse("BY X 1 Y 0.5 X -0.2")
	if err != nil {
		t.Fatal(err)
	}
	got := cmd.Delta(100)
	if !got.Near(geom.Pt(80, -50), 1e-9) {
		t.Errorf("Delta = %v, want (80, -50)", got)
	}
}

func TestQuarterTurns(t *testing.T) {
	for angle, want := range map[float64]int{90: 1, 180: 2, -90: -1, 360: 4} {
		if got := (Command{Kind: KindRotate, Angle: angle}).QuarterTurns(); got != want {
			t.Errorf("QuarterTurns(%v) = %d, want %d", angle, got, want)
		}
	}
}

func TestHelp(t *testing.T) {
	if got := Help(""); got != "commands: BY, CLR, HELP, ROTATE. HELP <COMMAND> for details." {
		t.Errorf("Help() = %q", got)
	}
	if got := Help("rotate"); !strings.HasPrefix(got, "ROTATE [<ANGLE>]") {
		t.Errorf("Help(rotate) = %q", got)
	}
	if got := Help("zoom"); got != "no help for zoom" {
		t.Errorf("Help(zoom) = %q", got)
	}
}
