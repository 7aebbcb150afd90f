package command

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/sandsim/internal/dynamo"
)

// Parse reads one console line. A blank line yields a nil Command and no
// error.
func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil, nil
	}
	verb, args := strings.ToLower(parts[0]), parts[1:]

	switch verb {
	case "circle", "c":
		return parseCircle(args)
	case "rope", "r":
		return parseRope(args)
	case "softbody", "soft":
		return parseRing(verb, args, false)
	case "springbody", "spring":
		return parseRing(verb, args, true)
	case "set":
		return parseSet(args)
	case "get":
		if len(args) > 1 {
			return nil, fmt.Errorf("%w: get takes at most one parameter", dynamo.ErrInvalidArgs)
		}
		if len(args) == 1 {
			return Get{Param: args[0]}, nil
		}
		return Get{}, nil
	case "reset":
		if len(args) != 0 {
			return nil, fmt.Errorf("%w: reset takes no arguments", dynamo.ErrInvalidArgs)
		}
		return Reset{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownCommand, parts[0])
	}
}

func parseCircle(args []string) (Command, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, usage("circle X Y [R]")
	}
	pos, err := point(args)
	if err != nil {
		return nil, err
	}
	c := Circle{Pos: pos}
	if len(args) == 3 {
		if c.Radius, err = float("R", args[2]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func parseRope(args []string) (Command, error) {
	if len(args) < 2 || len(args) > 4 {
		return nil, usage("rope X Y [LENGTH] [SEGMENTS]")
	}
	anchor, err := point(args)
	if err != nil {
		return nil, err
	}
	r := Rope{Anchor: anchor}
	if len(args) >= 3 && args[2] != defaultArg {
		length, err := float("LENGTH", args[2])
		if err != nil {
			return nil, err
		}
		r.Length = &length
	}
	if len(args) == 4 {
		segments, err := integer("SEGMENTS", args[3])
		if err != nil {
			return nil, err
		}
		r.Segments = &segments
	}
	return r, nil
}

func parseRing(verb string, args []string, springs bool) (Command, error) {
	if len(args) < 4 || len(args) > 5 {
		return nil, usage(verb + " X Y COUNT RADIUS [SUBRADIUS]")
	}
	center, err := point(args)
	if err != nil {
		return nil, err
	}
	r := Ring{Center: center, Springs: springs}
	if r.Count, err = integer("COUNT", args[2]); err != nil {
		return nil, err
	}
	if r.Radius, err = float("RADIUS", args[3]); err != nil {
		return nil, err
	}
	if len(args) == 5 {
		if r.SubRadius, err = float("SUBRADIUS", args[4]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func parseSet(args []string) (Command, error) {
	if len(args) != 2 {
		return nil, usage("set PARAM VALUE")
	}
	v, err := float("VALUE", args[1])
	if err != nil {
		return nil, err
	}
	return Set{Param: args[0], Value: v}, nil
}

func point(args []string) (dynamo.Vec2, error) {
	x, err := float("X", args[0])
	if err != nil {
		return dynamo.Vec2{}, err
	}
	y, err := float("Y", args[1])
	if err != nil {
		return dynamo.Vec2{}, err
	}
	return dynamo.V(x, y), nil
}

func float(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s %q is not a number", dynamo.ErrInvalidArgs, name, s)
	}
	return v, nil
}

func integer(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", dynamo.ErrInvalidArgs, name, s)
	}
	return v, nil
}

func usage(form string) error {
	return fmt.Errorf("%w: usage: %s", dynamo.ErrInvalidArgs, form)
}
