package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/wheelsim/internal/config"
	"github.com/san-kum/wheelsim/internal/gesture"
	"github.com/san-kum/wheelsim/internal/host"
	"github.com/san-kum/wheelsim/internal/scroller"
	"github.com/san-kum/wheelsim/internal/trace"
	"github.com/san-kum/wheelsim/internal/wheel"
)

var (
	ErrUnknownAction     = errors.New("automation: unknown action")
	ErrExpectationFailed = errors.New("automation: expectation failed")
)

const (
	DefaultFrameMs = 16
	// frames allowed for a settle before giving up
	maxSettleFrames = 5000
	startMillis     = 1_000
)

// Scenario is a scripted gesture sequence replayed against one picker.
type Scenario struct {
	Name        string                `yaml:"name"`
	Description string                `yaml:"description"`
	Preset      string                `yaml:"preset"`
	Picker      *config.PickerConfig  `yaml:"picker"`
	Physics     *config.PhysicsConfig `yaml:"physics"`
	Layout      *config.LayoutConfig  `yaml:"layout"`
	FrameMs     int64                 `yaml:"frame_ms"`
	Steps       []Step                `yaml:"steps"`
}

// Step is one scripted action. Which fields matter depends on Action:
//
//	down      press at Pos
//	move      drag to To over DurationMs
//	up        release; Velocity overrides the tracked velocity
//	cancel    abandon the gesture
//	wait      run frames for DurationMs, or until idle when zero
//	key       press Key (up, down, center)
//	set       SetValue(Value)
//	scroll_to SmoothScrollToPosition(Value)
//	fling     press and release at Pos with Velocity
//	tap       press and release at Pos
type Step struct {
	Action     string  `yaml:"action"`
	Pos        float64 `yaml:"pos"`
	To         float64 `yaml:"to"`
	DurationMs int64   `yaml:"duration_ms"`
	Velocity   float64 `yaml:"velocity"`
	Key        string  `yaml:"key"`
	Value      int     `yaml:"value"`
	Expect     *Expect `yaml:"expect"`
}

// Expect is checked after its step has run.
type Expect struct {
	Value *int   `yaml:"value"`
	State string `yaml:"state"`
}

// StepResult is the picker as it stood after a step.
type StepResult struct {
	Index  int
	Action string
	T      int64
	Value  int
	State  wheel.ScrollState
	Label  string
}

type Report struct {
	Name    string
	Steps   []StepResult
	Final   int
	Changes [][2]int
	Samples []trace.Sample
	Metrics []trace.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// Config resolves the picker config a scenario runs with: base (or the
// defaults), then the named preset, then the inline sections.
func (s *Scenario) Config(base *config.Config) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if base != nil {
		c := *base
		cfg = &c
	}
	if s.Preset != "" {
		p, err := config.GetPreset(s.Preset)
		if err != nil {
			return nil, err
		}
		cfg.Picker = p.Picker
	}
	if s.Picker != nil {
		cfg.Picker = *s.Picker
	}
	if s.Physics != nil {
		cfg.Physics = *s.Physics
	}
	if s.Layout != nil {
		cfg.Layout = *s.Layout
	}
	return cfg, nil
}

// runner drives one picker on a manual clock.
type runner struct {
	clock   *host.ManualClock
	looper  *host.Looper
	picker  *wheel.Picker
	tracker *gesture.VelocityTracker
	rec     *trace.Recorder
	log     zerolog.Logger
	frameMs int64
	pointer float64
	changes [][2]int
}

func newRunner(cfg *config.Config, frameMs int64, log zerolog.Logger) (*runner, error) {
	if frameMs <= 0 {
		frameMs = DefaultFrameMs
	}
	clock := host.NewManualClock(startMillis)
	r := &runner{
		clock:   clock,
		looper:  host.NewLooper(clock),
		tracker: gesture.NewVelocityTracker(),
		rec:     trace.NewRecorder(),
		log:     log,
		frameMs: frameMs,
	}
	p, err := cfg.NewPicker(wheel.Env{
		Clock:     clock,
		Scheduler: r.looper,
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}
	p.OnValueChange(func(prev, cur int) {
		r.changes = append(r.changes, [2]int{prev, cur})
	})
	p.AddObserver(r.rec)
	r.picker = p
	r.rec.Observe(p)
	return r, nil
}

func (r *runner) frame() {
	r.clock.Advance(r.frameMs)
	r.looper.RunDue()
	r.picker.Tick()
	r.rec.Observe(r.picker)
}

func (r *runner) runFor(ctx context.Context, ms int64) error {
	for elapsed := int64(0); elapsed < ms; elapsed += r.frameMs {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.frame()
	}
	return nil
}

// settle runs frames until the wheel stops moving and no repeat is pending.
func (r *runner) settle(ctx context.Context) error {
	for i := 0; i < maxSettleFrames; i++ {
		if !r.picker.Animating() && r.looper.Pending() == 0 {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		r.frame()
	}
	return fmt.Errorf("automation: wheel still moving after %d frames", maxSettleFrames)
}

func (r *runner) press(pos float64) {
	r.pointer = pos
	r.tracker.Clear()
	r.tracker.AddMovement(r.clock.NowMillis(), pos)
	r.picker.HandleGestureStart(pos)
}

func (r *runner) drag(ctx context.Context, to float64, durationMs int64) error {
	from := r.pointer
	frames := durationMs / r.frameMs
	if frames < 1 {
		frames = 1
	}
	for i := int64(1); i <= frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		pos := from + (to-from)*float64(i)/float64(frames)
		r.clock.Advance(r.frameMs)
		r.looper.RunDue()
		r.tracker.AddMovement(r.clock.NowMillis(), pos)
		r.picker.HandleGestureMove(pos)
		r.pointer = pos
		r.picker.Tick()
		r.rec.Observe(r.picker)
	}
	return nil
}

func (r *runner) release(velocity float64) {
	r.tracker.AddMovement(r.clock.NowMillis(), r.pointer)
	if velocity == 0 {
		velocity = r.tracker.ComputeVelocity(1000, float64(r.picker.MaxFlingVelocity()))
	}
	r.picker.HandleGestureEnd(velocity, r.pointer)
	r.tracker.Clear()
}

func (r *runner) step(ctx context.Context, st Step) error {
	switch strings.ToLower(st.Action) {
	case "down":
		r.press(st.Pos)
	case "move":
		return r.drag(ctx, st.To, st.DurationMs)
	case "up":
		r.release(st.Velocity)
	case "cancel":
		r.picker.HandleGestureCancel()
		r.tracker.Clear()
	case "wait":
		if st.DurationMs <= 0 {
			return r.settle(ctx)
		}
		return r.runFor(ctx, st.DurationMs)
	case "key":
		k, err := parseKey(st.Key)
		if err != nil {
			return err
		}
		r.picker.HandleKey(k)
	case "set":
		r.picker.SetValue(st.Value)
	case "scroll_to":
		r.picker.SmoothScrollToPosition(st.Value)
	case "fling":
		r.press(st.Pos)
		r.picker.HandleGestureEnd(st.Velocity, st.Pos)
	case "tap":
		r.press(st.Pos)
		r.release(0)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, st.Action)
	}
	return nil
}

func parseKey(name string) (wheel.Key, error) {
	switch strings.ToLower(name) {
	case "up":
		return wheel.KeyUp, nil
	case "down":
		return wheel.KeyDown, nil
	case "center", "enter":
		return wheel.KeyCenter, nil
	}
	return 0, fmt.Errorf("%w: key %q", ErrUnknownAction, name)
}

func (e *Expect) check(p *wheel.Picker) error {
	if e == nil {
		return nil
	}
	if e.Value != nil && p.Value() != *e.Value {
		return fmt.Errorf("%w: value %d, want %d", ErrExpectationFailed, p.Value(), *e.Value)
	}
	if e.State != "" && p.ScrollState().String() != e.State {
		return fmt.Errorf("%w: state %s, want %s", ErrExpectationFailed, p.ScrollState(), e.State)
	}
	return nil
}

// RunScenario replays every step against a fresh picker and lets the wheel
// settle at the end.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, log zerolog.Logger) (*Report, error) {
	cfg, err := scenario.Config(base)
	if err != nil {
		return nil, err
	}
	r, err := newRunner(cfg, scenario.FrameMs, log)
	if err != nil {
		return nil, err
	}

	report := &Report{Name: scenario.Name}
	for i, st := range scenario.Steps {
		if err := r.step(ctx, st); err != nil {
			return report, fmt.Errorf("step %d: %w", i+1, err)
		}
		res := StepResult{
			Index:  i + 1,
			Action: st.Action,
			T:      r.clock.NowMillis() - startMillis,
			Value:  r.picker.Value(),
			State:  r.picker.ScrollState(),
			Label:  r.picker.Label(),
		}
		report.Steps = append(report.Steps, res)
		log.Info().
			Int("step", res.Index).
			Str("action", res.Action).
			Int("value", res.Value).
			Stringer("state", res.State).
			Msg("step done")

		if err := st.Expect.check(r.picker); err != nil {
			return report, fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	if err := r.settle(ctx); err != nil {
		return report, err
	}
	report.Final = r.picker.Value()
	report.Changes = r.changes
	report.Samples = r.rec.Samples()
	report.Metrics = r.rec.Report()
	return report, nil
}

// Fling releases a fresh picker at velocity px/s and records it until it
// settles.
func Fling(ctx context.Context, cfg *config.Config, velocity float64, log zerolog.Logger) (*Report, error) {
	scenario := &Scenario{
		Name:  fmt.Sprintf("fling %.0f", velocity),
		Steps: []Step{{Action: "fling", Pos: centerOf(cfg), Velocity: velocity}},
	}
	return RunScenario(ctx, scenario, cfg, log)
}

func centerOf(cfg *config.Config) float64 {
	_, _, center := cfg.LayoutSizes(cfg.PickerConfig().WheelItemCount / 2)
	return float64(center)
}

// Sweep describes a range of release velocities.
type Sweep struct {
	MinVelocity float64
	MaxVelocity float64
	NumSteps    int
}

// SweepResult compares the spline prediction for one velocity with what
// the picker did. The prediction ignores the picker's fling velocity cap.
type SweepResult struct {
	Velocity          float64
	PredictedDistance float64
	PredictedDuration int
	Travel            float64
	SettleMs          float64
	ValueChanges      int
	Final             int
}

// RunSweep flings a fresh picker once per velocity in the sweep.
func RunSweep(ctx context.Context, sweep Sweep, cfg *config.Config, log zerolog.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("automation: sweep needs at least one step")
	}

	predictor := scroller.New(host.NewManualClock(0), cfg.Physics.Density, nil)
	if cfg.Physics.Friction > 0 {
		predictor.SetFriction(cfg.Physics.Friction)
	}

	stepSize := 0.0
	if sweep.NumSteps > 1 {
		stepSize = (sweep.MaxVelocity - sweep.MinVelocity) / float64(sweep.NumSteps-1)
	}

	// every fling owns its picker and clock, so they run side by side
	results := make([]SweepResult, sweep.NumSteps)
	errs := make([]error, sweep.NumSteps)
	var wg sync.WaitGroup
	for i := 0; i < sweep.NumSteps; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			v := sweep.MinVelocity + float64(idx)*stepSize
			report, err := Fling(ctx, cfg, v, zerolog.Nop())
			if err != nil {
				errs[idx] = fmt.Errorf("sweep %.0f: %w", v, err)
				return
			}
			results[idx] = sweepResult(v, report)
		}(i)
	}
	wg.Wait()

	for i := range results {
		if errs[i] != nil {
			return nil, errs[i]
		}
		res := &results[i]
		res.PredictedDistance = predictor.SplineFlingDistance(res.Velocity)
		res.PredictedDuration = predictor.SplineFlingDuration(res.Velocity)

		log.Info().
			Int("run", i+1).
			Int("of", sweep.NumSteps).
			Float64("velocity", res.Velocity).
			Float64("travel", res.Travel).
			Msg("sweep")
	}
	return results, nil
}

func sweepResult(v float64, report *Report) SweepResult {
	res := SweepResult{Velocity: v, Final: report.Final}
	for _, m := range report.Metrics {
		switch m.Name {
		case "travel":
			res.Travel = m.Value
		case "settle_time":
			res.SettleMs = m.Value
		case "value_changes":
			res.ValueChanges = int(m.Value)
		}
	}
	return res
}
