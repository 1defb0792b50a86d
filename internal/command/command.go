// Package command parses the editor's command line.
package command

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"skeyedit/internal/geom"
)

type Kind int

const (
	KindBy Kind = iota + 1
	KindRotate
	KindClear
	KindHelp
)

var names = map[string]Kind{
	"BY":     KindBy,
	"ROTATE": KindRotate,
	"CLR":    KindClear,
	"HELP":   KindHelp,
}

var usage = map[Kind]string{
	KindBy:     "BY <AXIS> <VALUE> [<AXIS> <VALUE> ...] - move the selection. Axes: X, Y.",
	KindRotate: "ROTATE [<ANGLE>] - rotate the selection. Default angle: 90.",
	KindClear:  "CLR - clear the selection.",
	KindHelp:   "HELP [<COMMAND>] - list commands or show help for one.",
}

func (k Kind) String() string {
	for name, kk := range names {
		if kk == k {
			return name
		}
	}
	return "UNKNOWN"
}

var (
	ErrEmpty   = errors.New("empty command")
	ErrUnknown = errors.New("unknown command")
	ErrUsage   = errors.New("bad arguments")
)

// Move is one axis step of a BY command, in relative units with Y up.
type Move struct {
	Axis  string
	Value float64
}

type Command struct {
	Kind  Kind
	Moves []Move
	// Angle is in degrees, clockwise on screen.
	Angle float64
	// Topic is the command HELP was asked about, if any.
	Topic string
}

// Parse reads one command line. Names and axes are case-insensitive.
func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, ErrEmpty
	}
	name := strings.ToUpper(parts[0])
	kind, ok := names[name]
	if !ok {
		return Command{}, fmt.Errorf("%s: %w", name, ErrUnknown)
	}
	args := parts[1:]
	cmd := Command{Kind: kind}

	switch kind {
	case KindBy:
		if len(args) == 0 {
			return Command{}, fmt.Errorf("%s: %w", usage[kind], ErrUsage)
		}
		for i := 0; i < len(args); i += 2 {
			axis := strings.ToUpper(args[i])
			if axis != "X" && axis != "Y" {
				return Command{}, fmt.Errorf("unknown axis %s, use X or Y: %w", axis, ErrUsage)
			}
			if i+1 >= len(args) {
				return Command{}, fmt.Errorf("value expected after %s: %w", axis, ErrUsage)
			}
			v, err := strconv.ParseFloat(args[i+1], 64)
			if err != nil {
				return Command{}, fmt.Errorf("bad number %q: %w", args[i+1], ErrUsage)
			}
			cmd.Moves = append(cmd.Moves, Move{Axis: axis, Value: v})
		}
	case KindRotate:
		cmd.Angle = 90
		if len(args) > 0 {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return Command{}, fmt.Errorf("bad angle %q: %w", args[0], ErrUsage)
			}
			if math.Mod(v, 90) != 0 {
				return Command{}, fmt.Errorf("angle %v is not a multiple of 90: %w", v, ErrUsage)
			}
			cmd.Angle = v
		}
	case KindHelp:
		if len(args) > 0 {
			cmd.Topic = strings.ToUpper(args[0])
		}
	}
	return cmd, nil
}

// Delta is the total BY movement in sheet pixels for the given grid step.
// Screen Y grows downward, so Y moves are inverted.
func (c Command) Delta(step float64) geom.Point {
	var d geom.Point
	for _, m := range c.Moves {
		switch m.Axis {
		case "X":
			d.X += m.Value * step
		case "Y":
			d.Y -= m.Value * step
		}
	}
	return d
}

// QuarterTurns is the ROTATE angle as clockwise quarter turns.
func (c Command) QuarterTurns() int {
	return int(math.Round(c.Angle / 90))
}

// Help answers HELP: the usage of one command, or the list of commands.
func Help(topic string) string {
	if topic != "" {
		if k, ok := names[strings.ToUpper(topic)]; ok {
			return usage[k]
		}
		return "no help for " + topic
	}
	list := make([]string, 0, len(names))
	for name := range names {
		list = append(list, name)
	}
	sort.Strings(list)
	return "commands: " + strings.Join(list, ", ") + ". HELP <COMMAND> for details."
}
