package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/san-kum/wheelsim/internal/config"
	"github.com/san-kum/wheelsim/internal/host"
)

func newTestModel(t *testing.T) (Model, *host.ManualClock) {
	t.Helper()
	clock := host.NewManualClock(0)
	cfg := config.DefaultConfig()
	cfg.Picker.Value = 50
	m, err := newModel(cfg, clock)
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	return m, clock
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func frames(m Model, clock *host.ManualClock, n int) Model {
	for i := 0; i < n; i++ {
		clock.Advance(16)
		m = send(m, TickMsg(time.Time{}))
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, row int) tea.MouseMsg {
	return tea.MouseMsg{X: 4, Y: wheelTop + row, Action: action, Button: tea.MouseButtonLeft}
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"42", 6, "  42  "},
		{"7", 4, " 7  "},
		{"abcdefgh", 5, "abcd…"},
		{"日本", 6, " 日本 "},
		{"x", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := centerText(tt.in, tt.width)
			if got != tt.want {
				t.Errorf("centerText(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
			if tt.width > 0 && runewidth.StringWidth(got) != tt.width {
				t.Errorf("width = %d, want %d", runewidth.StringWidth(got), tt.width)
			}
		})
	}
}

func TestKeysStepPicker(t *testing.T) {
	m, clock := newTestModel(t)

	m = send(m, runes("j"))
	m = frames(m, clock, 60)
	if m.Value() != 51 {
		t.Errorf("value after j = %d, want 51", m.Value())
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyUp})
	m = frames(m, clock, 60)
	if m.Value() != 50 {
		t.Errorf("value after up = %d, want 50", m.Value())
	}
}

func TestMouseDrag(t *testing.T) {
	m, clock := newTestModel(t)

	m = send(m, mouse(tea.MouseActionPress, 3))
	clock.Advance(16)
	m = send(m, mouse(tea.MouseActionMotion, 2))
	clock.Advance(16)
	m = send(m, mouse(tea.MouseActionMotion, 1))
	if m.Value() != 51 {
		t.Fatalf("value while dragging = %d, want 51", m.Value())
	}

	clock.Advance(100)
	m = send(m, mouse(tea.MouseActionRelease, 1))
	m = frames(m, clock, 80)
	if m.Value() != 51 {
		t.Errorf("value after release = %d, want 51", m.Value())
	}
	if m.dragging {
		t.Error("still dragging after release")
	}
}

func TestMouseOutsideWheelIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(m, mouse(tea.MouseActionPress, -2))
	if m.dragging {
		t.Error("press above the wheel started a drag")
	}
}

func TestClickFlashes(t *testing.T) {
	m, clock := newTestModel(t)
	m = send(m, runes(" "))
	if *m.flash == 0 {
		t.Fatal("expected click highlight")
	}
	m = frames(m, clock, 60)
	if *m.flash != 0 {
		t.Errorf("highlight still on after %d frames", 60)
	}
}

func TestFlingAnimatesGauge(t *testing.T) {
	m, clock := newTestModel(t)
	m = send(m, runes("f"))
	m = frames(m, clock, 5)
	if m.gaugePos <= 0 {
		t.Errorf("gauge did not move: %v", m.gaugePos)
	}
	if len(m.speeds) != 5 {
		t.Errorf("speed history = %d, want 5", len(m.speeds))
	}
	m = frames(m, clock, 200)
	if m.Value() <= 50 {
		t.Errorf("value after forward fling = %d", m.Value())
	}
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	for _, want := range []string{"WHEELSIM", "50", "idle"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = send(m, runes("?"))
	if !strings.Contains(m.View(), "KEYS") {
		t.Error("help overlay not shown")
	}
}

func TestThemeAndToggles(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(m, runes("T"))
	if m.theme.Name != "cyberpunk" {
		t.Errorf("theme = %s, want cyberpunk", m.theme.Name)
	}

	m = send(m, runes("w"))
	if m.picker.WrapEnabled() {
		t.Error("wrap still enabled after w")
	}
	m = send(m, runes("o"))
	if m.picker.Order().String() != "descending" {
		t.Error("order not toggled")
	}

	before := m.cfg.Physics.Friction
	m = send(m, runes("+"))
	if m.cfg.Physics.Friction <= before {
		t.Error("friction not raised")
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("ocean").Name != "ocean" {
		t.Error("expected ocean theme")
	}
	if GetTheme("nope").Name != "dark" {
		t.Error("unknown theme should fall back to dark")
	}
	if NextTheme(Themes[len(Themes)-1]).Name != Themes[0].Name {
		t.Error("NextTheme should wrap around")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names length mismatch")
	}
}
