package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/clap/internal/animation"
	"github.com/Iron-Ham/clap/internal/animation/termfx"
	"github.com/Iron-Ham/clap/internal/clap"
	"github.com/Iron-Ham/clap/internal/effect"
	"github.com/Iron-Ham/clap/internal/errors"
	"github.com/Iron-Ham/clap/internal/event"
	"github.com/Iron-Ham/clap/internal/sink"
	"github.com/Iron-Ham/clap/internal/target"
	"github.com/Iron-Ham/clap/internal/tui/msg"
	tea "github.com/charmbracelet/bubbletea"
)

type countingTimeline struct{ replays int }

func (tl *countingTimeline) Replay() { tl.replays++ }

type countingEngine struct {
	builds   int
	timeline *countingTimeline
}

func (e *countingEngine) BuildTimeline(animation.Targets, time.Duration) animation.Timeline {
	e.builds++
	e.timeline = &countingTimeline{}
	return e.timeline
}

type harness struct {
	w      *Widget
	sched  *effect.ManualScheduler
	engine *countingEngine
	posted []tea.Msg
	sunk   []clap.State
	claps  []clap.State
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		sched:  effect.NewManualScheduler(time.Unix(1_700_000_000, 0)),
		engine: &countingEngine{},
	}
	base := []Option{
		WithID("w1"),
		WithEngine(h.engine),
		WithScheduler(h.sched),
		WithClock(h.sched.Now),
		WithPost(func(m tea.Msg) { h.posted = append(h.posted, m) }),
		WithSink(sink.Func(func(_ context.Context, s clap.State) error {
			h.sunk = append(h.sunk, s)
			return nil
		})),
		WithOnClap(func(s clap.State) { h.claps = append(h.claps, s) }),
	}
	h.w = NewWidget(append(base, opts...)...)
	return h
}

// mountAll runs the widget's mount commands and feeds each result back in.
func (h *harness) mountAll(t *testing.T) {
	t.Helper()
	for _, m := range runCmd(h.w.Init()) {
		h.w.Update(m)
	}
}

// runCmd executes cmd and every command batched inside it.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch m := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, runCmd(c)...)
		}
		return out
	default:
		return []tea.Msg{m}
	}
}

func TestWidget_MountDoesNotFireEffects(t *testing.T) {
	h := newHarness(t, WithInitialState(clap.State{Count: 7, CountTotal: 70}))

	if len(h.claps) != 0 {
		t.Errorf("onClap fired %d times on mount, want 0", len(h.claps))
	}
	if up, _ := h.w.Uploading(); up {
		t.Error("upload scheduled on mount")
	}
	if h.sched.PendingCount() != 0 {
		t.Errorf("PendingCount() = %d, want 0", h.sched.PendingCount())
	}

	h.mountAll(t)
	if len(h.claps) != 0 {
		t.Errorf("onClap fired %d times while mounting targets, want 0", len(h.claps))
	}
	if h.engine.timeline.replays != 0 {
		t.Errorf("timeline replayed %d times while mounting, want 0", h.engine.timeline.replays)
	}
}

func TestWidget_TimelineBuiltOnceOnThirdTarget(t *testing.T) {
	h := newHarness(t)

	order := []target.Role{target.RoleCounter, target.RoleTotal, target.RoleButton}
	for i, role := range order {
		h.w.Update(msg.TargetMountedMsg{WidgetID: "w1", Role: role, Handle: h.w.Element(role)})
		wantBuilds := 0
		if i == len(order)-1 {
			wantBuilds = 1
		}
		if h.engine.builds != wantBuilds {
			t.Errorf("after mounting %s: builds = %d, want %d", role, h.engine.builds, wantBuilds)
		}
	}

	// Remounts and further passes never rebuild.
	h.w.Update(msg.TargetMountedMsg{WidgetID: "w1", Role: target.RoleButton, Handle: termfx.NewElement("other")})
	h.w.Press("c")
	h.w.Reset()
	if h.engine.builds != 1 {
		t.Errorf("builds = %d, want 1", h.engine.builds)
	}
	if !h.w.TimelineBuilt() {
		t.Error("TimelineBuilt() = false")
	}
}

func TestWidget_PressBeforeMountIsSafe(t *testing.T) {
	h := newHarness(t)

	h.w.Press("c")

	if got := h.w.State().Count; got != 1 {
		t.Errorf("Count = %d, want 1", got)
	}
	if h.engine.builds != 0 {
		t.Errorf("builds = %d, want 0", h.engine.builds)
	}
	if !animation.IsUnbuilt(h.w.Timeline()) {
		t.Error("timeline should still be the placeholder")
	}
	if len(h.claps) != 1 {
		t.Errorf("onClap fired %d times, want 1", len(h.claps))
	}
}

func TestWidget_PressReplaysAndNotifies(t *testing.T) {
	h := newHarness(t)
	h.mountAll(t)

	h.w.Press("c")
	h.w.Press("c")

	if got := h.engine.timeline.replays; got != 2 {
		t.Errorf("replays = %d, want 2", got)
	}
	if len(h.claps) != 2 {
		t.Fatalf("onClap fired %d times, want 2", len(h.claps))
	}
	want := clap.State{Count: 2, CountTotal: 58, IsClicked: true}
	if h.claps[1] != want {
		t.Errorf("onClap state = %+v, want %+v", h.claps[1], want)
	}
}

func TestWidget_ClapAtCapDoesNotReplay(t *testing.T) {
	h := newHarness(t, WithInitialState(clap.State{Count: clap.MaxUserClap, CountTotal: 100, IsClicked: true}))
	h.mountAll(t)

	h.w.Press("c")

	if got := h.engine.timeline.replays; got != 0 {
		t.Errorf("replays = %d, want 0 when count is unchanged", got)
	}
	if len(h.claps) != 0 {
		t.Errorf("onClap fired %d times, want 0 for an unchanged state", len(h.claps))
	}
}

func TestWidget_ResetSchedulesUpload(t *testing.T) {
	var uploaded []uint64
	h := newHarness(t, WithOnUploaded(func(gen uint64, _ clap.State) { uploaded = append(uploaded, gen) }))
	h.mountAll(t)

	for range 3 {
		h.w.Press("c")
	}
	if got, want := h.w.State(), (clap.State{Count: 3, CountTotal: 59, IsClicked: true}); got != want {
		t.Fatalf("State() = %+v, want %+v", got, want)
	}

	h.w.Reset()

	if got := h.w.State(); got != clap.DefaultInitialState {
		t.Errorf("State() after reset = %+v, want %+v", got, clap.DefaultInitialState)
	}
	if got := h.w.ResetGeneration(); got != 1 {
		t.Errorf("ResetGeneration() = %d, want 1", got)
	}
	if up, gen := h.w.Uploading(); !up || gen != 1 {
		t.Errorf("Uploading() = (%v, %d), want (true, 1)", up, gen)
	}
	if h.sched.PendingCount() != 1 {
		t.Fatalf("PendingCount() = %d, want 1", h.sched.PendingCount())
	}

	h.sched.Advance(DefaultUploadDelay - time.Millisecond)
	if len(h.posted) != 0 {
		t.Fatalf("upload posted early: %v", h.posted)
	}
	h.sched.Advance(time.Millisecond)
	if len(h.posted) != 1 {
		t.Fatalf("posted = %d messages, want 1", len(h.posted))
	}
	if want := (msg.UploadDueMsg{WidgetID: "w1", Generation: 1}); h.posted[0] != want {
		t.Errorf("posted = %+v, want %+v", h.posted[0], want)
	}

	h.w.Update(h.posted[0])

	if len(h.sunk) != 1 || h.sunk[0] != clap.DefaultInitialState {
		t.Errorf("sink received %v, want one initial state", h.sunk)
	}
	if up, _ := h.w.Uploading(); up {
		t.Error("Uploading() = true after delivery")
	}
	if len(uploaded) != 1 || uploaded[0] != 1 {
		t.Errorf("onUploaded = %v, want [1]", uploaded)
	}
}

func TestWidget_UploadFailureReportsError(t *testing.T) {
	h := newHarness(t, WithSink(sink.Func(func(context.Context, clap.State) error {
		return errors.NewSinkError("publish reset", errors.ErrSinkUnavailable).WithSink("redis")
	})))
	h.w.Press("c")
	h.w.Reset()
	h.sched.Advance(DefaultUploadDelay)
	if len(h.posted) != 1 {
		t.Fatalf("posted = %d messages, want 1", len(h.posted))
	}

	var reported []error
	for _, m := range runCmd(h.w.Update(h.posted[0])) {
		if e, ok := m.(msg.ErrMsg); ok {
			reported = append(reported, e.Err)
		}
	}

	if len(reported) != 1 {
		t.Fatalf("reported %d errors, want 1", len(reported))
	}
	if !errors.Is(reported[0], errors.ErrSinkUnavailable) {
		t.Errorf("reported error = %v, want it to wrap ErrSinkUnavailable", reported[0])
	}
	if !strings.Contains(reported[0].Error(), "reset upload 1") {
		t.Errorf("reported error = %q, want the generation in the message", reported[0])
	}
	if up, _ := h.w.Uploading(); up {
		t.Error("Uploading() = true after a failed delivery")
	}
}

func TestWidget_RepeatedResetIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.mountAll(t)
	h.w.Press("c")

	h.w.Reset()
	h.w.Reset()

	if got := h.w.ResetGeneration(); got != 1 {
		t.Errorf("ResetGeneration() = %d, want 1", got)
	}
	if h.sched.PendingCount() != 1 {
		t.Errorf("PendingCount() = %d, want 1", h.sched.PendingCount())
	}
}

func TestWidget_ResetWithoutClapsIsSkipped(t *testing.T) {
	h := newHarness(t)
	h.mountAll(t)

	h.w.Reset()

	if got := h.w.ResetGeneration(); got != 0 {
		t.Errorf("ResetGeneration() = %d, want 0", got)
	}
	if h.sched.PendingCount() != 0 {
		t.Errorf("PendingCount() = %d, want 0", h.sched.PendingCount())
	}
}

func TestWidget_NewGenerationCancelsPendingUpload(t *testing.T) {
	h := newHarness(t)
	h.mountAll(t)

	h.w.Press("c")
	h.w.Reset()
	h.sched.Advance(time.Second)
	h.w.Press("c")
	h.w.Reset()

	if h.sched.PendingCount() != 1 {
		t.Fatalf("PendingCount() = %d, want 1 after the first timer was cancelled", h.sched.PendingCount())
	}

	h.sched.Advance(DefaultUploadDelay)
	if len(h.posted) != 1 {
		t.Fatalf("posted = %v, want only the second generation", h.posted)
	}
	if got := h.posted[0].(msg.UploadDueMsg).Generation; got != 2 {
		t.Errorf("Generation = %d, want 2", got)
	}
}

func TestWidget_TeardownCancelsUpload(t *testing.T) {
	h := newHarness(t)
	h.mountAll(t)
	h.w.Press("c")
	h.w.Reset()

	h.w.Teardown()

	if h.sched.PendingCount() != 0 {
		t.Errorf("PendingCount() = %d, want 0 after teardown", h.sched.PendingCount())
	}
	h.sched.Advance(DefaultUploadDelay)
	if len(h.posted) != 0 {
		t.Errorf("posted after teardown: %v", h.posted)
	}
	if cmd := h.w.Press("c"); cmd != nil || h.w.State().Count != 0 {
		t.Error("Press after teardown should be ignored")
	}
	h.w.Teardown()
}

func TestWidget_StaleUploadDropped(t *testing.T) {
	h := newHarness(t)
	h.mountAll(t)

	h.w.Update(msg.UploadDueMsg{WidgetID: "w1", Generation: 5})

	if len(h.sunk) != 0 {
		t.Errorf("sink received %v for a stale upload", h.sunk)
	}
}

func TestWidget_ForeignMessagesIgnored(t *testing.T) {
	h := newHarness(t)

	for _, role := range target.Roles() {
		h.w.Update(msg.TargetMountedMsg{WidgetID: "other", Role: role, Handle: h.w.Element(role)})
	}

	if h.w.TimelineBuilt() {
		t.Error("targets tagged for another widget were registered")
	}
}

func TestWidget_RejectionEvents(t *testing.T) {
	tests := []struct {
		name    string
		initial clap.State
		reducer clap.Reducer
		want    string
	}{
		{
			name:    "at cap",
			initial: clap.State{Count: clap.MaxUserClap, CountTotal: 106, IsClicked: true},
			want:    event.RejectedAtCap,
		},
		{
			name:    "rate limited",
			initial: clap.DefaultInitialState,
			reducer: clap.RateLimit(clap.Reduce, func() bool { return true }),
			want:    event.RejectedRateLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := event.NewBus()
			var reasons []string
			bus.Subscribe(event.TypeClapRejected, func(e event.Event) {
				reasons = append(reasons, e.(event.ClapRejectedEvent).Reason)
			})
			bus.Subscribe(event.TypeClapAccepted, func(event.Event) {
				t.Error("clap should not be accepted")
			})

			h := newHarness(t, WithBus(bus), WithInitialState(tt.initial), WithReducer(tt.reducer))
			h.w.Press("c")

			if len(reasons) != 1 || reasons[0] != tt.want {
				t.Errorf("reasons = %v, want [%s]", reasons, tt.want)
			}
		})
	}
}

func TestWidget_FirstPressAtCapIsAccepted(t *testing.T) {
	bus := event.NewBus()
	var types []string
	bus.Subscribe(event.TypeClapAccepted, func(e event.Event) { types = append(types, e.EventType()) })
	bus.Subscribe(event.TypeClapRejected, func(e event.Event) {
		types = append(types, e.EventType()+":"+e.(event.ClapRejectedEvent).Reason)
	})

	h := newHarness(t, WithBus(bus), WithInitialState(clap.State{Count: clap.MaxUserClap, CountTotal: 80}))
	h.w.Press("c")
	h.w.Press("c")

	want := []string{event.TypeClapAccepted, event.TypeClapRejected + ":" + event.RejectedAtCap}
	if strings.Join(types, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", types, want)
	}
	if len(h.claps) != 1 {
		t.Errorf("onClap fired %d times, want 1 for the press that set IsClicked", len(h.claps))
	}
	if got := h.w.State(); got != (clap.State{Count: clap.MaxUserClap, CountTotal: 80, IsClicked: true}) {
		t.Errorf("State() = %+v", got)
	}
}

func TestWidget_PublishesLifecycleEvents(t *testing.T) {
	bus := event.NewBus()
	var types []string
	bus.SubscribeAll(func(e event.Event) { types = append(types, e.EventType()) })

	h := newHarness(t, WithBus(bus))
	h.mountAll(t)
	h.w.Press("c")
	h.w.Reset()
	h.sched.Advance(DefaultUploadDelay)
	h.w.Update(h.posted[0])

	want := []string{
		event.TypeTargetMounted,
		event.TypeTargetMounted,
		event.TypeTargetMounted,
		event.TypeTimelineBuilt,
		event.TypeClapAccepted,
		event.TypeTimelineReplayed,
		event.TypeResetApplied,
		event.TypeTimelineReplayed,
		event.TypeUploadStarted,
		event.TypeUploadCompleted,
	}
	if strings.Join(types, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v\nwant %v", types, want)
	}
}

func TestWidget_TogglerPropsComposeCallerHandler(t *testing.T) {
	var seen []string
	h := newHarness(t, WithTogglerProps(clap.Props{
		clap.PropOnPress: clap.Handler(func(ev clap.PressEvent) { seen = append(seen, ev.Key) }),
	}))

	h.w.Press("enter")

	if h.w.State().Count != 1 {
		t.Errorf("Count = %d, want the built-in clap to still run", h.w.State().Count)
	}
	if len(seen) != 1 || seen[0] != "enter" {
		t.Errorf("caller handler saw %v, want [enter]", seen)
	}
	if got, _ := h.w.CounterProps(clap.Props{clap.PropCount: 99}).Int(clap.PropCount); got != 99 {
		t.Errorf("CounterProps caller override = %d, want 99", got)
	}
}

func TestWidget_FramesDriveTimeline(t *testing.T) {
	sched := effect.NewManualScheduler(time.Unix(1_700_000_000, 0))
	ticker := func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
		return func() tea.Msg {
			sched.Advance(d)
			return fn(sched.Now())
		}
	}
	w := NewWidget(
		WithID("w1"),
		WithScheduler(sched),
		WithClock(sched.Now),
		WithTicker(ticker),
		WithFrameInterval(50*time.Millisecond),
	)
	for _, m := range runCmd(w.Init()) {
		w.Update(m)
	}
	counter := w.Element(target.RoleCounter)
	if counter.Opacity() != 0 {
		t.Fatalf("counter opacity at rest = %v, want 0", counter.Opacity())
	}

	frames := runCmd(w.Press("c"))
	if len(frames) != 1 {
		t.Fatalf("Press produced %d messages, want one frame", len(frames))
	}
	first := frames[0].(msg.FrameMsg)

	next := runCmd(w.Update(first))
	if counter.Opacity() <= 0 {
		t.Errorf("counter opacity after a frame = %v, want > 0", counter.Opacity())
	}
	if len(next) != 1 {
		t.Fatalf("frame produced %d messages, want the next frame", len(next))
	}

	// A new press supersedes the running loop.
	runCmd(w.Press("c"))
	if cmd := w.Update(next[0]); cmd != nil {
		t.Error("frame from a superseded loop should be dropped")
	}

	// Playing to the end stops the loop.
	tl := w.Timeline().(*termfx.Timeline)
	steps := 0
	pending := runCmd(w.Press("c"))
	for len(pending) > 0 && steps < 1000 {
		pending = runCmd(w.Update(pending[0]))
		steps++
	}
	if tl.Running() {
		t.Error("timeline still running after its frame loop ended")
	}
	if !strings.Contains(w.View(), "clap") {
		t.Error("View() should render the button")
	}
}

func TestWidget_View(t *testing.T) {
	h := newHarness(t, WithInitialState(clap.State{Count: 0, CountTotal: 1234}))
	h.mountAll(t)

	view := h.w.View()
	if !strings.Contains(view, "1234") {
		t.Errorf("View() missing total:\n%s", view)
	}
	if !strings.Contains(view, iconIdle) {
		t.Errorf("View() missing idle icon:\n%s", view)
	}
	if strings.Contains(view, "+0") {
		t.Errorf("count bubble should be hidden at rest:\n%s", view)
	}

	h.w.Press("c")
	if !strings.Contains(h.w.Icon(), iconClicked) {
		t.Errorf("Icon() = %q, want clicked variant", h.w.Icon())
	}
}
