package tui

import (
	"context"
	"time"

	"github.com/Iron-Ham/clap/internal/animation"
	"github.com/Iron-Ham/clap/internal/animation/termfx"
	"github.com/Iron-Ham/clap/internal/clap"
	"github.com/Iron-Ham/clap/internal/effect"
	"github.com/Iron-Ham/clap/internal/errors"
	"github.com/Iron-Ham/clap/internal/event"
	"github.com/Iron-Ham/clap/internal/logging"
	"github.com/Iron-Ham/clap/internal/sink"
	"github.com/Iron-Ham/clap/internal/target"
	"github.com/Iron-Ham/clap/internal/tui/msg"
	"github.com/Iron-Ham/clap/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
)

// Widget defaults.
const (
	DefaultWidgetID      = "clap"
	DefaultFrameInterval = 16 * time.Millisecond
	DefaultUploadDelay   = 3 * time.Second
)

// stepper is a Timeline that advances frame by frame.
type stepper interface {
	Step(now time.Time) bool
}

// Widget is the clap control: a counter state machine, the role-tagged
// sub-elements it animates, and the effects that tie them together.
//
// Every Update, Press and Reset call is one render pass. After the pass is
// applied the widget commits: the coordinator observes the target map, then
// the replay, onClap and reset-upload effects run in that order. The widget
// is not safe for concurrent use; the Bubbletea loop serializes calls.
type Widget struct {
	id string

	machine  *clap.Machine
	registry *target.Registry
	coord    *animation.Coordinator
	elements map[target.Role]*termfx.Element

	replayFx *effect.AfterMount[int]
	clapFx   *effect.AfterMount[clap.State]
	uploadFx *effect.AfterMount[uint64]
	pending  *effect.Pending

	initial       clap.State
	reducer       clap.Reducer
	toggler       clap.Props
	engine        animation.Engine
	buttonEase    termfx.Easing
	duration      time.Duration
	frameInterval time.Duration
	uploadDelay   time.Duration
	sched         effect.Scheduler
	clock         func() time.Time
	ticker        msg.Ticker
	post          func(tea.Msg)
	sink          sink.ResetSink
	bus           *event.Bus
	logger        *logging.Logger
	styles        *styles.Set
	overrides     styles.Overrides
	onClap        func(clap.State)
	onUploaded    func(uint64, clap.State)

	frameSeq  uint64
	uploading bool
	uploadGen uint64
	torn      bool
	cmds      []tea.Cmd
}

// Option configures a Widget.
type Option func(*Widget)

// WithID sets the widget ID that tags messages, events and log lines.
func WithID(id string) Option {
	return func(w *Widget) {
		if id != "" {
			w.id = id
		}
	}
}

// WithInitialState sets the state the widget starts from and resets to.
func WithInitialState(s clap.State) Option {
	return func(w *Widget) { w.initial = s }
}

// WithReducer substitutes the reducer.
func WithReducer(r clap.Reducer) Option {
	return func(w *Widget) { w.reducer = r }
}

// WithTogglerProps sets the caller props merged into the toggler on every
// Press. A caller onPress runs after the built-in clap.
func WithTogglerProps(extra clap.Props) Option {
	return func(w *Widget) { w.toggler = extra }
}

// WithOnClap registers fn to run with the new state after every state
// change except the mount-time render.
func WithOnClap(fn func(clap.State)) Option {
	return func(w *Widget) { w.onClap = fn }
}

// WithOnUploaded registers fn to run after the reset upload was handed to
// the sink.
func WithOnUploaded(fn func(generation uint64, state clap.State)) Option {
	return func(w *Widget) { w.onUploaded = fn }
}

// WithEngine substitutes the animation engine.
func WithEngine(e animation.Engine) Option {
	return func(w *Widget) { w.engine = e }
}

// WithDuration sets the base animation duration.
func WithDuration(d time.Duration) Option {
	return func(w *Widget) { w.duration = d }
}

// WithFrameInterval sets the delay between animation frames.
func WithFrameInterval(d time.Duration) Option {
	return func(w *Widget) {
		if d > 0 {
			w.frameInterval = d
		}
	}
}

// WithUploadDelay sets how long after a reset the upload fires.
func WithUploadDelay(d time.Duration) Option {
	return func(w *Widget) {
		if d >= 0 {
			w.uploadDelay = d
		}
	}
}

// WithScheduler sets the scheduler the upload timer runs on.
func WithScheduler(s effect.Scheduler) Option {
	return func(w *Widget) {
		if s != nil {
			w.sched = s
		}
	}
}

// WithButtonEasing sets the button scale curve of the default engine. Nil
// keeps the spring.
func WithButtonEasing(ease termfx.Easing) Option {
	return func(w *Widget) { w.buttonEase = ease }
}

// WithClock sets the clock used for press events and the default engine.
func WithClock(clock func() time.Time) Option {
	return func(w *Widget) {
		if clock != nil {
			w.clock = clock
		}
	}
}

// WithTicker sets how frame ticks are scheduled.
func WithTicker(t msg.Ticker) Option {
	return func(w *Widget) {
		if t != nil {
			w.ticker = t
		}
	}
}

// WithPost sets how timer callbacks deliver messages back into the loop,
// usually tea.Program.Send. Without it the reset upload is never delivered.
func WithPost(post func(tea.Msg)) Option {
	return func(w *Widget) { w.post = post }
}

// WithSink sets the reset sink.
func WithSink(s sink.ResetSink) Option {
	return func(w *Widget) {
		if s != nil {
			w.sink = s
		}
	}
}

// WithBus sets the event bus domain events are published on.
func WithBus(b *event.Bus) Option {
	return func(w *Widget) { w.bus = b }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *Widget) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithStyles sets the base style set.
func WithStyles(s *styles.Set) Option {
	return func(w *Widget) {
		if s != nil {
			w.styles = s
		}
	}
}

// WithOverrides sets per-role style overrides.
func WithOverrides(o styles.Overrides) Option {
	return func(w *Widget) { w.overrides = o }
}

// NewWidget builds a widget and runs its mount-time commit. The sub-elements
// are not mounted until the commands returned by Init run.
func NewWidget(opts ...Option) *Widget {
	w := &Widget{
		id:            DefaultWidgetID,
		initial:       clap.DefaultInitialState,
		frameInterval: DefaultFrameInterval,
		uploadDelay:   DefaultUploadDelay,
		sched:         effect.RealScheduler{},
		clock:         time.Now,
		ticker:        msg.DefaultTicker,
		post:          func(tea.Msg) {},
		sink:          sink.Nop{},
		logger:        logging.NopLogger(),
		registry:      target.NewRegistry(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.WithWidget(w.id)
	if w.styles == nil {
		w.styles = styles.New(nil)
	}
	if w.engine == nil {
		w.engine = termfx.NewEngine(
			termfx.WithClock(w.clock),
			termfx.WithFPS(int(time.Second/w.frameInterval)),
			termfx.WithBurstColors(string(w.styles.Palette.BurstTriangle), string(w.styles.Palette.BurstCircle)),
			termfx.WithButtonEasing(w.buttonEase),
		)
	}

	w.machine = clap.NewMachine(w.initial, clap.WithReducer(w.reducer))
	w.coord = animation.NewCoordinator(w.engine, w.duration,
		animation.WithLogger(w.logger),
		animation.WithBuildHook(func(animation.Timeline) {
			w.publish(event.NewTimelineBuiltEvent(w.id, w.coord.Duration()))
		}),
	)
	w.pending = effect.NewPending(w.sched)

	counter := termfx.NewElement(string(target.RoleCounter))
	counter.SetOpacity(0)
	w.elements = map[target.Role]*termfx.Element{
		target.RoleButton:  termfx.NewElement(string(target.RoleButton)),
		target.RoleCounter: counter,
		target.RoleTotal:   termfx.NewElement(string(target.RoleTotal)),
	}

	w.replayFx = effect.NewAfterMount[int](w.replay)
	w.clapFx = effect.NewAfterMount[clap.State](w.notifyClap)
	w.uploadFx = effect.NewAfterMount[uint64](w.scheduleUpload)

	w.commit()
	w.logger.Debug("widget mounted", "state", w.machine.State().String())
	return w
}

// ID returns the widget ID.
func (w *Widget) ID() string { return w.id }

// State returns the current counter state.
func (w *Widget) State() clap.State { return w.machine.State() }

// ResetGeneration returns how many resets were accepted.
func (w *Widget) ResetGeneration() uint64 { return w.machine.ResetGeneration() }

// Uploading reports whether a reset upload is pending, and for which
// generation.
func (w *Widget) Uploading() (bool, uint64) { return w.uploading, w.uploadGen }

// UploadDelay returns how long after a reset the upload fires.
func (w *Widget) UploadDelay() time.Duration { return w.uploadDelay }

// TimelineBuilt reports whether every target mounted and the timeline exists.
func (w *Widget) TimelineBuilt() bool { return w.coord.Built() }

// Timeline returns the widget's timeline, the unbuilt placeholder until
// every target has mounted.
func (w *Widget) Timeline() animation.Timeline { return w.coord.Timeline() }

// Element returns the render node for role.
func (w *Widget) Element(role target.Role) *termfx.Element { return w.elements[role] }

// TogglerProps returns the toggler props merged with extra.
func (w *Widget) TogglerProps(extra clap.Props) clap.Props {
	return w.machine.TogglerProps(extra)
}

// CounterProps returns the counter props merged with extra.
func (w *Widget) CounterProps(extra clap.Props) clap.Props {
	return w.machine.CounterProps(extra)
}

// Init mounts the sub-elements. Each handle arrives as its own message.
func (w *Widget) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(w.elements))
	for _, role := range target.Roles() {
		cmds = append(cmds, msg.MountTarget(w.id, role, w.elements[role]))
	}
	return tea.Batch(cmds...)
}

// Update applies one message and commits. Messages tagged for another
// widget are ignored.
func (w *Widget) Update(m tea.Msg) tea.Cmd {
	if w.torn {
		return nil
	}
	switch m := m.(type) {
	case msg.TargetMountedMsg:
		if m.WidgetID != w.id {
			return nil
		}
		w.mountTarget(m)
	case msg.FrameMsg:
		if m.WidgetID != w.id {
			return nil
		}
		w.frame(m)
	case msg.UploadDueMsg:
		if m.WidgetID != w.id {
			return nil
		}
		w.upload(m)
	default:
		return nil
	}
	w.commit()
	return w.drain()
}

// Press activates the toggler as if key was pressed, then commits.
func (w *Widget) Press(key string) tea.Cmd {
	if w.torn {
		return nil
	}
	before := w.machine.State()
	onPress := w.machine.TogglerProps(w.toggler).Handler(clap.PropOnPress)
	onPress(clap.PressEvent{Key: key, At: w.clock()})
	after := w.machine.State()

	// A press is accepted when it changed any field, including the first
	// press at the cap that only sets IsClicked; onClap fires for the same
	// presses.
	if after != before {
		w.logger.Debug("clap accepted", "count", after.Count, "count_total", after.CountTotal)
		w.publish(event.NewClapAcceptedEvent(w.id, after))
	} else {
		reason := event.RejectedRateLimit
		if before.AtCap() {
			reason = event.RejectedAtCap
		}
		w.logger.Debug("clap rejected", "reason", reason, "count", after.Count)
		w.publish(event.NewClapRejectedEvent(w.id, after, reason))
	}

	w.commit()
	return w.drain()
}

// Reset restores the initial state if the count moved, then commits.
func (w *Widget) Reset() tea.Cmd {
	if w.torn {
		return nil
	}
	if w.machine.Reset() {
		gen := w.machine.ResetGeneration()
		w.logger.Info("reset applied", "generation", gen)
		w.publish(event.NewResetAppliedEvent(w.id, gen, w.machine.State()))
	} else {
		w.logger.Debug("reset skipped, count unchanged")
	}
	w.commit()
	return w.drain()
}

// Teardown unmounts the widget: effect cleanups run, the pending upload is
// cancelled and frame loops stop. Later calls are ignored.
func (w *Widget) Teardown() {
	if w.torn {
		return
	}
	w.torn = true
	w.frameSeq++
	w.replayFx.Teardown()
	w.clapFx.Teardown()
	w.uploadFx.Teardown()
	w.pending.Cancel()
	w.uploading = false
	w.logger.Debug("widget torn down")
}

// commit runs layout, then the effects in declaration order.
func (w *Widget) commit() {
	w.coord.Observe(w.registry.Map())

	s := w.machine.State()
	w.replayFx.Run(s.Count)
	w.clapFx.Run(s)
	w.uploadFx.Run(w.machine.ResetGeneration())
}

func (w *Widget) drain() tea.Cmd {
	if len(w.cmds) == 0 {
		return nil
	}
	cmds := w.cmds
	w.cmds = nil
	return tea.Batch(cmds...)
}

func (w *Widget) mountTarget(m msg.TargetMountedMsg) {
	added, err := w.registry.Register(m.Role, m.Handle)
	if err != nil {
		w.logger.Warn("target rejected", "role", string(m.Role), "error", err)
		return
	}
	if added {
		w.logger.Debug("target mounted", "role", string(m.Role))
		w.publish(event.NewTargetMountedEvent(w.id, m.Role))
	}
}

func (w *Widget) replay() func() {
	if w.coord.Replay() {
		w.publish(event.NewTimelineReplayedEvent(w.id, w.machine.State().Count))
		w.startFrames()
	}
	return nil
}

func (w *Widget) notifyClap() func() {
	if w.onClap != nil {
		w.onClap(w.machine.State())
	}
	return nil
}

func (w *Widget) scheduleUpload() func() {
	gen := w.machine.ResetGeneration()
	w.uploading = true
	w.uploadGen = gen
	w.pending.Schedule(w.uploadDelay, func() {
		w.post(msg.UploadDueMsg{WidgetID: w.id, Generation: gen})
	})
	w.logger.Debug("reset upload scheduled", "generation", gen, "delay_ms", w.uploadDelay.Milliseconds())
	w.publish(event.NewUploadStartedEvent(w.id, gen, w.uploadDelay))
	return func() { w.pending.Cancel() }
}

func (w *Widget) upload(m msg.UploadDueMsg) {
	if !w.uploading || m.Generation != w.uploadGen {
		w.logger.Debug("stale reset upload dropped", "generation", m.Generation)
		return
	}
	w.uploading = false

	state := w.machine.State()
	if err := w.sink.Notify(context.Background(), state); err != nil {
		w.logger.Warn("reset upload failed", "generation", m.Generation, "error", err)
		w.cmds = append(w.cmds, msg.Err(errors.Wrapf(err, "reset upload %d", m.Generation)))
	} else {
		w.logger.Info("reset upload delivered", "generation", m.Generation)
	}
	w.publish(event.NewUploadCompletedEvent(w.id, m.Generation, state))
	if w.onUploaded != nil {
		w.onUploaded(m.Generation, state)
	}
}

// startFrames begins a new frame loop, superseding any running one.
func (w *Widget) startFrames() {
	if _, ok := w.coord.Timeline().(stepper); !ok {
		return
	}
	w.frameSeq++
	w.cmds = append(w.cmds, msg.Frame(w.ticker, w.frameInterval, w.id, w.frameSeq))
}

func (w *Widget) frame(m msg.FrameMsg) {
	if m.Seq != w.frameSeq {
		return
	}
	st, ok := w.coord.Timeline().(stepper)
	if !ok {
		return
	}
	if st.Step(m.Time) {
		w.cmds = append(w.cmds, msg.Frame(w.ticker, w.frameInterval, w.id, w.frameSeq))
	}
}

func (w *Widget) publish(e event.Event) {
	if w.bus != nil {
		w.bus.Publish(e)
	}
}
