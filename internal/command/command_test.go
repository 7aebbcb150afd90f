package command

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/san-kum/sandsim/internal/dynamo"
	"github.com/san-kum/sandsim/internal/sim"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"circle 10 20", Circle{Pos: dynamo.V(10, 20)}},
		{"circle 10 20 7.5", Circle{Pos: dynamo.V(10, 20), Radius: 7.5}},
		{"  C   1 2  ", Circle{Pos: dynamo.V(1, 2)}},
		{"rope 400 50", Rope{Anchor: dynamo.V(400, 50)}},
		{"rope 400 50 200", Rope{Anchor: dynamo.V(400, 50), Length: ptr(200.0)}},
		{"rope 400 50 200 8", Rope{Anchor: dynamo.V(400, 50), Length: ptr(200.0), Segments: ptr(8)}},
		{"rope 400 50 - 8", Rope{Anchor: dynamo.V(400, 50), Segments: ptr(8)}},
		{"rope 400 50 100 0", Rope{Anchor: dynamo.V(400, 50), Length: ptr(100.0), Segments: ptr(0)}},
		{"softbody 300 200 12 40", Ring{Center: dynamo.V(300, 200), Count: 12, Radius: 40}},
		{"springbody 300 200 12 40 4", Ring{Center: dynamo.V(300, 200), Count: 12, Radius: 40, SubRadius: 4, Springs: true}},
		{"set gravity -3.5", Set{Param: "gravity", Value: -3.5}},
		{"get loss", Get{Param: "loss"}},
		{"get", Get{}},
		{"reset", Reset{}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Parse(tt.line)
			if err != nil {
				t.Fatalf("parse %q: %v", tt.line, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parse %q: expected %v, got %v", tt.line, tt.want, got)
			}
		})
	}
}

func TestParseBlank(t *testing.T) {
	cmd, err := Parse("   ")
	if cmd != nil || err != nil {
		t.Errorf("expected nil command and error, got %v, %v", cmd, err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"explode 1 2", dynamo.ErrUnknownCommand},
		{"circle 1", dynamo.ErrInvalidArgs},
		{"circle 1 2 3 4", dynamo.ErrInvalidArgs},
		{"circle x 2", dynamo.ErrInvalidArgs},
		{"circle NaN 2", dynamo.ErrInvalidArgs},
		{"circle 1 +Inf", dynamo.ErrInvalidArgs},
		{"rope 1 2 10 2.5", dynamo.ErrInvalidArgs},
		{"softbody 1 2 3", dynamo.ErrInvalidArgs},
		{"springbody 1 2 many 3", dynamo.ErrInvalidArgs},
		{"set gravity", dynamo.ErrInvalidArgs},
		{"set gravity heavy", dynamo.ErrInvalidArgs},
		{"get a b", dynamo.ErrInvalidArgs},
		{"reset now", dynamo.ErrInvalidArgs},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := Parse(tt.line)
			if !errors.Is(err, tt.want) {
				t.Errorf("parse %q: expected %v, got %v", tt.line, tt.want, err)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	cmds := []Command{
		Circle{Pos: dynamo.V(1.5, 2)},
		Circle{Pos: dynamo.V(0, 0), Radius: 3},
		Rope{Anchor: dynamo.V(10, 10)},
		Rope{Anchor: dynamo.V(10, 10), Segments: ptr(4)},
		Rope{Anchor: dynamo.V(10, 10), Length: ptr(80.0), Segments: ptr(4)},
		Ring{Center: dynamo.V(5, 6), Count: 8, Radius: 30},
		Ring{Center: dynamo.V(5, 6), Count: 8, Radius: 30, SubRadius: 2, Springs: true},
		Set{Param: "air", Value: 0.001},
		Get{Param: "spring"},
		Get{},
		Reset{},
	}

	for _, c := range cmds {
		got, err := Parse(c.String())
		if err != nil {
			t.Errorf("parse %q: %v", c.String(), err)
			continue
		}
		if !reflect.DeepEqual(got, c) {
			t.Errorf("round trip of %q: got %#v", c.String(), got)
		}
	}
}

func ptr[T any](v T) *T { return &v }

func newWorld(t *testing.T) *sim.World {
	t.Helper()
	w, err := sim.New(sim.DefaultOptions())
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return w
}

func run(t *testing.T, w World, line string) (string, error) {
	t.Helper()
	cmd, err := Parse(line)
	if err != nil {
		t.Fatalf("parse %q: %v", line, err)
	}
	return cmd.Apply(w)
}

func TestApplySpawns(t *testing.T) {
	w := newWorld(t)

	if _, err := run(t, w, "circle 100 100"); err != nil {
		t.Fatal(err)
	}
	b, _ := w.Body(0)
	if b.Radius != dynamo.DefaultRadius {
		t.Errorf("expected default radius, got %f", b.Radius)
	}

	if _, err := run(t, w, "rope 400 50"); err != nil {
		t.Fatal(err)
	}
	if got := len(w.StaticLinks()); got != DefaultRopeSegments+1 {
		t.Errorf("expected %d static links, got %d", DefaultRopeSegments+1, got)
	}
	if rest := w.StaticLinks()[0].RestLength; rest != dynamo.DefaultLinkLength {
		t.Errorf("expected rest %f, got %f", dynamo.DefaultLinkLength, rest)
	}

	if _, err := run(t, w, "springbody 300 300 6 40"); err != nil {
		t.Fatal(err)
	}
	if len(w.Links()) != 6 {
		t.Errorf("expected 6 springs, got %d", len(w.Links()))
	}
	last, _ := w.Body(w.Len() - 1)
	if last.Radius != dynamo.DefaultRadius {
		t.Errorf("expected ring bodies to use the default radius, got %f", last.Radius)
	}
}

func TestApplyRejectedCompositeLeavesWorld(t *testing.T) {
	w := newWorld(t)

	_, err := run(t, w, "softbody 300 300 1 40")
	if !errors.Is(err, dynamo.ErrInvalidComposite) {
		t.Errorf("expected ErrInvalidComposite, got %v", err)
	}
	if w.Len() != 0 {
		t.Errorf("expected empty world, got %d bodies", w.Len())
	}
}

func TestApplyRopeExplicitArgs(t *testing.T) {
	tests := []string{
		"rope 400 50 100 0",
		"rope 400 50 100 -3",
		"rope 400 50 0",
		"rope 400 50 -20 4",
	}

	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			w := newWorld(t)
			_, err := run(t, w, line)
			if !errors.Is(err, dynamo.ErrInvalidComposite) {
				t.Errorf("expected ErrInvalidComposite, got %v", err)
			}
			if w.Len() != 0 {
				t.Errorf("expected empty world, got %d bodies", w.Len())
			}
		})
	}
}

func TestApplyRopeDefaultLength(t *testing.T) {
	w := newWorld(t)

	if _, err := run(t, w, "rope 400 50 - 4"); err != nil {
		t.Fatal(err)
	}
	if got := len(w.StaticLinks()); got != 5 {
		t.Errorf("expected 5 static links, got %d", got)
	}
	if rest := w.StaticLinks()[0].RestLength; rest != dynamo.DefaultLinkLength {
		t.Errorf("expected rest %f, got %f", dynamo.DefaultLinkLength, rest)
	}
}

func TestApplyTunables(t *testing.T) {
	w := newWorld(t)

	if _, err := run(t, w, "set gravity 0"); err != nil {
		t.Fatal(err)
	}
	if w.Tunables().Gravity != 0 {
		t.Errorf("expected gravity 0, got %f", w.Tunables().Gravity)
	}

	msg, err := run(t, w, "get gravity")
	if err != nil || msg != "gravity = 0" {
		t.Errorf("unexpected get result %q, %v", msg, err)
	}

	msg, err = run(t, w, "get")
	if err != nil || !strings.Contains(msg, "spring=4") {
		t.Errorf("unexpected listing %q, %v", msg, err)
	}

	if _, err := run(t, w, "set wind 3"); !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestApplyReset(t *testing.T) {
	w := newWorld(t)
	run(t, w, "circle 10 10")
	run(t, w, "reset")
	if w.Len() != 0 {
		t.Errorf("expected empty world after reset, got %d", w.Len())
	}
}
