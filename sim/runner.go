package sim

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/anisan-cli/vidman/autoplay"
	"github.com/anisan-cli/vidman/internal/loop"
	"github.com/anisan-cli/vidman/log"
	"github.com/anisan-cli/vidman/manager"
	"github.com/anisan-cli/vidman/metrics"
	"github.com/anisan-cli/vidman/player"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// tickTimeout bounds how long a tick waits for the poll goroutine to post.
const tickTimeout = 2 * time.Second

// Trace event kinds.
const (
	KindStep = "step"
	KindCall = "call"
)

// Event is one line of a run trace.
type Event struct {
	// Step is the 1-based index of the step that caused the event, 0 during setup.
	Step   int    `json:"step"`
	Kind   string `json:"kind"`
	Video  string `json:"video,omitempty"`
	Detail string `json:"detail"`
}

func (e Event) String() string {
	if e.Kind == KindCall {
		return fmt.Sprintf("[%d] %s.%s", e.Step, e.Video, e.Detail)
	}
	return fmt.Sprintf("[%d] > %s", e.Step, e.Detail)
}

// RunnerOptions override parts of a scenario.
type RunnerOptions struct {
	// Lite forces the lite viewer mode on.
	Lite bool
}

// Runner drives a manager over a simulated page. It owns the loop and runs every task on the
// caller's goroutine, so it is not safe for concurrent use.
type Runner struct {
	scenario *Scenario

	loop     *loop.Loop
	page     *Page
	probe    *autoplay.Probe
	clock    clockwork.FakeClock
	registry *prometheus.Registry
	manager  *manager.Manager
	interval time.Duration

	hold     chan struct{}
	held     bool
	released sync.Once

	step  int
	trace []Event
}

// NewRunner builds the page of s, registers every player and settles the initial state.
func NewRunner(s *Scenario, opts RunnerOptions) *Runner {
	r := &Runner{
		scenario: s,
		loop:     loop.New(),
		page:     s.Build(),
		clock:    clockwork.NewFakeClock(),
		registry: prometheus.NewRegistry(),
	}

	policy := s.Policy()
	if s.HoldProbe {
		r.hold = make(chan struct{})
		r.held = true
		policy.Hold = r.hold
	}
	r.probe = autoplay.NewProbe(SurfaceFactory(policy), r.loop.Post)

	m := metrics.New(r.registry)
	m.TrackDetections(r.probe.Detections)

	r.page.OnCall(func(c Call) {
		r.trace = append(r.trace, Event{Step: r.step, Kind: KindCall, Video: c.Video, Detail: c.Action})
	})

	managerOpts := manager.ApplyConfig(manager.Options{
		Document: r.page,
		Viewport: r.page,
		Viewer:   r.page,
		Probe:    r.probe,
		Post:     r.loop.Post,
		Clock:    r.clock,
		Metrics:  m,
	})
	managerOpts.Lite = s.Lite || opts.Lite
	r.interval = managerOpts.PollInterval
	if r.interval <= 0 {
		r.interval = manager.DefaultPollInterval
	}

	r.manager = manager.New(managerOpts)
	for _, v := range r.page.Videos() {
		r.manager.Register(v)
	}
	r.Settle()

	log.Debugf("sim: scenario %q ready with %d tracked players", s.Name, r.manager.Len())
	return r
}

// Run applies every remaining scenario step in order.
func (r *Runner) Run() ([]Event, error) {
	for _, step := range r.scenario.Steps {
		if err := r.Apply(step); err != nil {
			return r.trace, err
		}
	}
	return r.trace, nil
}

// Apply performs one step and settles.
func (r *Runner) Apply(step Step) error {
	r.step++
	r.trace = append(r.trace, Event{Step: r.step, Kind: KindStep, Detail: step.String()})

	switch step.Action {
	case ActionScroll:
		r.page.ScrollTo(step.Value)
	case ActionScrollBy:
		r.page.ScrollBy(step.Value)
	case ActionResize:
		r.page.Resize(step.Width, step.Height)
	case ActionBlur:
		r.page.Blur()
	case ActionHideDocument:
		r.page.SetForeground(false)
	case ActionShowDocument:
		r.page.SetForeground(true)
		// Coming back to the foreground re-evaluates what is on screen.
		for _, v := range r.page.Videos() {
			v.element.Dispatch(player.EventVisibility, nil)
		}
	case ActionTick:
		for range step.Ticks() {
			if err := r.Tick(); err != nil {
				return err
			}
		}
		return nil
	case ActionReleaseProbe:
		r.ReleaseProbe()
	case ActionLoad, ActionFocus, ActionClickShim, ActionVisibility:
		v, ok := r.page.Video(step.Target)
		if !ok {
			return suggest(ErrUnknownTarget, step.Target, r.ids())
		}
		r.applyTargeted(step.Action, v)
	default:
		return suggest(ErrUnknownAction, step.Action, Actions)
	}

	r.Settle()
	return nil
}

func (r *Runner) applyTargeted(action string, v *Video) {
	switch action {
	case ActionLoad:
		v.Load()
	case ActionFocus:
		r.page.Focus(v.Element())
	case ActionClickShim:
		if !v.ClickShim() {
			log.Debugf("sim: %s has no shim to click", v.ID())
		}
	case ActionVisibility:
		v.element.Dispatch(player.EventVisibility, nil)
	}
}

// Settle runs the loop until no work is left. Pending detection answers are awaited unless the
// probe is held.
func (r *Runner) Settle() {
	for {
		if !r.held {
			r.probe.Flush()
		}
		if r.loop.Drain() == 0 {
			return
		}
	}
}

// Tick advances the clock by one poll interval and runs what the poll posted.
func (r *Runner) Tick() error {
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	r.clock.BlockUntil(1)
	r.clock.Advance(r.interval)

	if err := r.loop.Await(ctx); err != nil {
		return fmt.Errorf("interaction poll did not fire: %w", err)
	}
	r.Settle()
	return nil
}

// ReleaseProbe lets a held detection finish.
func (r *Runner) ReleaseProbe() {
	r.released.Do(func() {
		if r.hold != nil {
			close(r.hold)
		}
		r.held = false
	})
}

// Close stops the manager.
func (r *Runner) Close() {
	r.ReleaseProbe()
	r.manager.Close()
}

// Page returns the simulated page.
func (r *Runner) Page() *Page { return r.page }

// Manager returns the coordinator under test.
func (r *Runner) Manager() *manager.Manager { return r.manager }

// Probe returns the autoplay probe.
func (r *Runner) Probe() *autoplay.Probe { return r.probe }

// Scenario returns the scenario being run.
func (r *Runner) Scenario() *Scenario { return r.scenario }

// Trace returns the events recorded so far.
func (r *Runner) Trace() []Event { return r.trace }

// Registry returns the registry the runner's metrics are registered on.
func (r *Runner) Registry() *prometheus.Registry { return r.registry }

// WriteMetrics writes the current metrics in the Prometheus text format.
func (r *Runner) WriteMetrics(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func (r *Runner) ids() []string {
	ids := make([]string, 0, len(r.page.videos))
	for _, v := range r.page.videos {
		ids = append(ids, v.id)
	}
	return ids
}

// PollInterval returns the interaction poll interval in use.
func (r *Runner) PollInterval() time.Duration { return r.interval }
