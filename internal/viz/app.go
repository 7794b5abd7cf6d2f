package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/san-kum/wheelsim/internal/config"
	"github.com/san-kum/wheelsim/internal/gesture"
	"github.com/san-kum/wheelsim/internal/host"
	"github.com/san-kum/wheelsim/internal/wheel"
)

const (
	// px per terminal row; one row holds one slot
	rowPixels       = 40
	labelPixels     = 16
	historyCapacity = 120
	// terminal rows above the first slot: title, subtitle, blank, border
	wheelTop   = 4
	wheelWidth = 24
	flingSpeed = 1000
)

type TickMsg time.Time

// Model is the bubbletea model for one picker.
type Model struct {
	cfg     *config.Config
	clock   host.Clock
	looper  *host.Looper
	redraw  *host.RedrawFlag
	picker  *wheel.Picker
	tracker *gesture.VelocityTracker

	theme  Theme
	styles styles
	fps    int

	spring    harmonica.Spring
	gaugePos  float64
	gaugeVel  float64
	needlePos float64
	needleVel float64
	speeds    []float64

	dragging bool
	pointer  float64
	// frames left to highlight a click; shared with the picker callback
	flash         *int
	showHelp      bool
	width, height int
}

// NewModel builds the TUI for cfg on the system clock.
func NewModel(cfg *config.Config) (Model, error) {
	return newModel(cfg, host.NewSystemClock())
}

func newModel(cfg *config.Config, clock host.Clock) (Model, error) {
	fps := cfg.UI.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	m := Model{
		cfg:     cfg,
		clock:   clock,
		looper:  host.NewLooper(clock),
		redraw:  &host.RedrawFlag{},
		tracker: gesture.NewVelocityTracker(),
		theme:   GetTheme(cfg.UI.Theme),
		fps:     fps,
		spring:  harmonica.NewSpring(harmonica.FPS(fps), 6.0, 0.8),
		speeds:  make([]float64, 0, historyCapacity),
		flash:   new(int),
		width:   80,
		height:  24,
	}
	m.styles = newStyles(m.theme)

	p, err := wheel.New(cfg.PickerConfig(), wheel.Env{
		Clock:       clock,
		Scheduler:   m.looper,
		Invalidator: m.redraw,
		Logger:      zerolog.Nop(),
	})
	if err != nil {
		return Model{}, err
	}
	p.SetFormatter(cfg.Formatter())
	if len(cfg.Picker.Displayed) > 0 {
		p.SetDisplayedValues(cfg.Picker.Displayed)
		if err := p.Validate(); err != nil {
			return Model{}, err
		}
	}
	p.Layout(rowPixels, labelPixels, p.MiddleIndex()*rowPixels+rowPixels/2)
	m.picker = p

	flash := m.flash
	p.OnClick(func() { *flash = fps / 4 })
	return m, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case TickMsg:
		m.step()
		return m, m.tick()
	}
	return m, nil
}

// step advances the picker by one frame and eases the gauges toward it.
func (m *Model) step() {
	m.looper.RunDue()
	m.picker.Tick()
	m.redraw.Take()

	speed := math.Abs(m.picker.Velocity())
	fraction := speed / float64(m.picker.MaxFlingVelocity())
	m.gaugePos, m.gaugeVel = m.spring.Update(m.gaugePos, m.gaugeVel, math.Min(fraction, 1))

	drift := float64(m.picker.Offset()-m.picker.InitialOffset()) / rowPixels
	m.needlePos, m.needleVel = m.spring.Update(m.needlePos, m.needleVel, drift)

	if len(m.speeds) == historyCapacity {
		m.speeds = m.speeds[1:]
	}
	m.speeds = append(m.speeds, speed)

	if *m.flash > 0 {
		*m.flash--
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.picker
	switch msg.String() {
	case "q", "ctrl+c":
		p.Detach()
		return m, tea.Quit
	case "up", "k":
		p.HandleKey(wheel.KeyUp)
	case "down", "j":
		p.HandleKey(wheel.KeyDown)
	case "enter", " ":
		p.HandleKey(wheel.KeyCenter)
	case "f":
		m.fling(-flingSpeed)
	case "F":
		m.fling(flingSpeed)
	case "w":
		p.SetWrap(!p.WrapEnabled())
	case "o":
		if p.Order() == wheel.Ascending {
			p.SetOrder(wheel.Descending)
		} else {
			p.SetOrder(wheel.Ascending)
		}
	case "+", "=":
		m.adjustFriction(1.25)
	case "-", "_":
		m.adjustFriction(0.8)
	case "T":
		m.theme = NextTheme(m.theme)
		m.styles = newStyles(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) fling(velocity float64) {
	center := float64(m.picker.MiddleIndex()*rowPixels + rowPixels/2)
	m.picker.HandleGestureStart(center)
	m.picker.HandleGestureEnd(velocity, center)
}

func (m *Model) adjustFriction(factor float64) {
	f := m.cfg.Physics.Friction * factor
	f = math.Max(0.001, math.Min(f, 0.5))
	m.cfg.Physics.Friction = f
	m.picker.SetFriction(f)
}

// rowToPos maps a terminal row to a wheel coordinate at the middle of the
// slot drawn on that row.
func rowToPos(y int) float64 {
	return float64((y-wheelTop)*rowPixels + rowPixels/2)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	p := m.picker
	now := m.clock.NowMillis()
	pos := rowToPos(msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			p.HandleKey(wheel.KeyUp)
		case tea.MouseButtonWheelDown:
			p.HandleKey(wheel.KeyDown)
		case tea.MouseButtonLeft:
			row := msg.Y - wheelTop
			if row < 0 || row >= p.WheelItemCount() {
				return
			}
			m.dragging = true
			m.pointer = pos
			m.tracker.Clear()
			m.tracker.AddMovement(now, pos)
			p.HandleGestureStart(pos)
		}
	case tea.MouseActionMotion:
		if !m.dragging {
			return
		}
		m.pointer = pos
		m.tracker.AddMovement(now, pos)
		p.HandleGestureMove(pos)
	case tea.MouseActionRelease:
		if !m.dragging {
			return
		}
		m.dragging = false
		m.tracker.AddMovement(now, m.pointer)
		v := m.tracker.ComputeVelocity(1000, float64(p.MaxFlingVelocity()))
		p.HandleGestureEnd(v, m.pointer)
		m.tracker.Clear()
	}
}

func (m Model) View() string {
	if m.showHelp {
		return m.viewHelp()
	}
	s := m.styles
	p := m.picker

	var b strings.Builder
	b.WriteString(s.title.Render("WHEELSIM") + "\n")
	b.WriteString(s.subtitle.Render(fmt.Sprintf("%d..%d  %s  wrap:%v", p.Min(), p.Max(), p.Order(), p.WrapEnabled())) + "\n\n")

	wheelView := s.panel.Render(m.viewWheel())
	statsView := lipgloss.NewStyle().PaddingLeft(2).Render(m.viewStats())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, wheelView, statsView))
	b.WriteString("\n\n")
	b.WriteString(s.keyHint("j/k", "step") + s.keyHint("f/F", "fling") + s.keyHint("drag", "scroll") +
		s.keyHint("T", "theme") + s.keyHint("?", "help") + s.keyHint("q", "quit"))
	return b.String()
}

func (m Model) viewWheel() string {
	s := m.styles
	p := m.picker
	labels := p.Labels()
	mid := p.MiddleIndex()
	needle := mid + int(math.Round(m.needlePos))

	rows := make([]string, len(labels))
	for i, label := range labels {
		text := centerText(label, wheelWidth-4)
		var line string
		switch d := absInt(i - mid); {
		case d == 0 && *m.flash > 0:
			line = s.value.Render("▸ " + text + " ◂")
		case d == 0:
			line = s.marker.Render("▸ ") + s.selected.Render(text) + s.marker.Render(" ◂")
		case d == 1:
			line = "  " + s.near.Render(text) + "  "
		default:
			line = "  " + s.far.Render(text) + "  "
		}
		if i == needle {
			line += s.marker.Render("┃")
		} else {
			line += s.far.Render("│")
		}
		rows[i] = line
	}
	return strings.Join(rows, "\n")
}

func (m Model) viewStats() string {
	s := m.styles
	p := m.picker
	row := func(label, value string) string {
		return s.label.Render(label) + s.value.Render(value) + "\n"
	}

	var b strings.Builder
	b.WriteString(row("value", fmt.Sprintf("%d", p.Value())))
	b.WriteString(row("label", p.Label()))
	b.WriteString(row("state", p.ScrollState().String()))
	b.WriteString(row("velocity", fmt.Sprintf("%.0f px/s", math.Abs(p.Velocity()))))
	b.WriteString(row("friction", fmt.Sprintf("%.4f", m.cfg.Physics.Friction)))
	b.WriteString(row("offset", fmt.Sprintf("%+d", p.Offset()-p.InitialOffset())))
	b.WriteString(s.label.Render("speed") + s.gauge(m.gaugePos, 20) + "\n")
	b.WriteString(s.label.Render("history") + s.sparkline(m.speeds, 20) + "\n")
	return b.String()
}

func (m Model) viewHelp() string {
	s := m.styles
	lines := []struct{ key, desc string }{
		{"k/↑", "previous value"},
		{"j/↓", "next value"},
		{"enter", "click the selected slot"},
		{"f/F", "fling forward/back"},
		{"w", "toggle wrapping"},
		{"o", "toggle order"},
		{"+/-", "raise/lower friction"},
		{"T", "cycle theme (" + m.theme.Name + ")"},
		{"drag", "scroll, release to fling"},
		{"wheel", "step"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(s.title.Render("KEYS") + "\n\n")
	for _, l := range lines {
		b.WriteString("  " + s.key.Render(fmt.Sprintf("%-6s", l.key)) + s.hint.Render(l.desc) + "\n")
	}
	b.WriteString("\n" + s.hint.Render("? to close"))
	return b.String()
}

// Value returns the currently selected value.
func (m Model) Value() int {
	return m.picker.Value()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Run starts the TUI and returns the value selected when it quits.
func Run(cfg *config.Config) (int, error) {
	m, err := NewModel(cfg)
	if err != nil {
		return 0, err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return 0, err
	}
	return final.(Model).Value(), nil
}
