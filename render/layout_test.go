package render

import (
	"testing"

	"github.com/lixenwraith/gesture-pong/engine"
	"github.com/lixenwraith/gesture-pong/physics"
)

func standardLayout() Layout {
	return NewLayout(80, 25, engine.Size{Width: 1920, Height: 1080}, physics.Playfield{Width: 1440, Height: 1080})
}

func TestLayoutMapping(t *testing.T) {
	l := standardLayout()
	tests := []struct {
		name     string
		got      int
		expected int
	}{
		{"left edge", l.CellX(0), 0},
		{"field edge", l.CellX(1440), 60},
		{"window center x", l.CellX(960), 40},
		{"top row below hud", l.CellY(0), 1},
		{"window center y", l.CellY(540), 13},
		{"bottom", l.CellY(1079), 24},
		{"field columns", l.FieldColumns(), 60},
	}
	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.expected)
		}
	}

	x0, x1 := l.PanelColumns()
	if x0 != 61 || x1 != 80 {
		t.Errorf("panel columns = [%d,%d), want [61,80)", x0, x1)
	}
}

func TestCellRectNeverEmpty(t *testing.T) {
	l := standardLayout()
	x0, y0, x1, y1 := l.CellRect(engine.Rect{X: 100, Y: 100, Width: 1, Height: 1})
	if x1-x0 != 1 || y1-y0 != 1 {
		t.Errorf("tiny rect maps to %dx%d cells, want 1x1", x1-x0, y1-y0)
	}

	x0, y0, x1, y1 = l.CellRect(engine.Rect{X: 645, Y: 1030, Width: 150, Height: 20})
	if x0 != 26 || x1 != 33 || y0 != 23 || y1 != 24 {
		t.Errorf("paddle cells = [%d,%d)x[%d,%d)", x0, x1, y0, y1)
	}
}

func TestInField(t *testing.T) {
	l := standardLayout()
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 1, true},
		{59, 24, true},
		{60, 5, false}, // border
		{70, 5, false}, // panel
		{10, 0, false}, // hud
		{-1, 5, false},
	}
	for _, tt := range tests {
		if got := l.InField(tt.x, tt.y); got != tt.want {
			t.Errorf("InField(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestBufferClipsAndClears(t *testing.T) {
	b := NewBuffer(4, 2)
	b.Set(-1, 0, 'x', StyleBackground)
	b.Set(4, 1, 'x', StyleBackground)
	b.Text(2, 1, "abc", StyleBackground)

	if got := b.Get(3, 1).Rune; got != 'b' {
		t.Errorf("clipped text cell = %q, want 'b'", got)
	}
	b.Fill(0, 0, 10, 10, '#', StylePanel)
	if b.Get(3, 1).Rune != '#' || b.Get(0, 0).Style != StylePanel {
		t.Error("Fill did not cover the buffer")
	}
	b.Clear()
	if c := b.Get(2, 1); c.Rune != 0 || c.Style != StyleBackground {
		t.Errorf("cleared cell = %+v", c)
	}
	if (b.Get(9, 9) != Cell{}) {
		t.Error("out-of-bounds Get returned content")
	}
}

type orderRecorder struct {
	name string
	log  *[]string
}

func (r orderRecorder) Render(Context, *Buffer) { *r.log = append(*r.log, r.name) }

func TestOrchestratorPriorityOrder(t *testing.T) {
	screen := newScreen(t)
	o := NewOrchestrator(screen, 10, 5)
	var log []string
	o.Register(orderRecorder{"overlay", &log}, PriorityOverlay)
	o.Register(orderRecorder{"field", &log}, PriorityField)
	o.Register(orderRecorder{"ui", &log}, PriorityUI)
	o.Register(orderRecorder{"field2", &log}, PriorityField)

	o.RenderFrame(Context{})
	want := []string{"field", "field2", "ui", "overlay"}
	if len(log) != len(want) {
		t.Fatalf("order = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("order = %v, want %v", log, want)
		}
	}
}
