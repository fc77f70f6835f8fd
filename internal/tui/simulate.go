package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Iron-Ham/clap/internal/effect"
	"github.com/Iron-Ham/clap/internal/tui/msg"
	tea "github.com/charmbracelet/bubbletea"
)

// SimulateConfig configures a headless run.
type SimulateConfig struct {
	// Claps is how many times the toggler is pressed.
	Claps int
	// Reset presses reset after the claps and waits for the upload.
	Reset bool
	// Frames also records animation frame passes.
	Frames bool
	// Start is the virtual clock's start. Zero uses the Unix epoch.
	Start time.Time
	// Model configures the hosted model. Scheduling options are replaced
	// by the simulator's virtual clock.
	Model ModelConfig
	// Out, when set, receives one JSON line per recorded pass.
	Out io.Writer
}

// Snapshot is the widget state after one render pass.
type Snapshot struct {
	Pass            int    `json:"pass"`
	Trigger         string `json:"trigger"`
	TimesClapped    int    `json:"timesClapped"`
	Count           int    `json:"count"`
	CountTotal      int    `json:"countTotal"`
	IsClicked       bool   `json:"isClicked"`
	ResetGeneration uint64 `json:"resetGeneration"`
	Uploading       bool   `json:"uploading"`
	TimelineBuilt   bool   `json:"timelineBuilt"`
	Elapsed         string `json:"elapsed"`
}

// simulator runs a Model without a terminal. Commands are executed inline,
// frame ticks and the upload timer run on a manual clock.
type simulator struct {
	cfg   SimulateConfig
	sched *effect.ManualScheduler
	model *Model
	queue []tea.Msg
	start time.Time
	pass  int
	shots []Snapshot
}

// Simulate drives a widget through cfg.Claps presses and an optional reset
// and returns a snapshot per recorded pass.
func Simulate(ctx context.Context, cfg SimulateConfig) ([]Snapshot, error) {
	if cfg.Claps < 0 {
		return nil, fmt.Errorf("claps must be non-negative, got %d", cfg.Claps)
	}
	start := cfg.Start
	if start.IsZero() {
		start = time.Unix(0, 0).UTC()
	}

	s := &simulator{cfg: cfg, sched: effect.NewManualScheduler(start), start: start}

	mc := cfg.Model
	mc.Headless = true
	mc.WidgetOptions = append(append([]Option{}, mc.WidgetOptions...),
		WithScheduler(s.sched),
		WithClock(s.sched.Now),
		WithTicker(s.tick),
		WithPost(s.post),
	)
	s.model = NewModel(mc)

	if err := s.run(ctx, "mount", s.model.Init()); err != nil {
		return s.shots, err
	}
	for i := 0; i < cfg.Claps; i++ {
		if err := s.key(ctx, "clap", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}}); err != nil {
			return s.shots, err
		}
	}
	if cfg.Reset {
		if err := s.key(ctx, "reset", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}); err != nil {
			return s.shots, err
		}
		s.sched.Advance(s.model.widget.UploadDelay())
		if err := s.drain(ctx); err != nil {
			return s.shots, err
		}
	}
	s.model.widget.Teardown()
	return s.shots, nil
}

func (s *simulator) tick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		s.sched.Advance(d)
		return fn(s.sched.Now())
	}
}

func (s *simulator) post(m tea.Msg) {
	s.queue = append(s.queue, m)
}

func (s *simulator) key(ctx context.Context, trigger string, k tea.KeyMsg) error {
	_, cmd := s.model.Update(k)
	if err := s.record(trigger); err != nil {
		return err
	}
	return s.run(ctx, "", cmd)
}

// run executes cmd, queues what it produces and drains the queue. A
// non-empty trigger records a pass before any message is handled.
func (s *simulator) run(ctx context.Context, trigger string, cmd tea.Cmd) error {
	if trigger != "" {
		if err := s.record(trigger); err != nil {
			return err
		}
	}
	s.exec(cmd)
	return s.drain(ctx)
}

// exec runs cmd and every command batched inside it.
func (s *simulator) exec(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch m := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range m {
			s.exec(c)
		}
	case tea.QuitMsg:
	default:
		s.queue = append(s.queue, m)
	}
}

func (s *simulator) drain(ctx context.Context) error {
	for len(s.queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		m := s.queue[0]
		s.queue = s.queue[1:]

		_, cmd := s.model.Update(m)
		_, isFrame := m.(msg.FrameMsg)
		if !isFrame || s.cfg.Frames {
			if err := s.record(triggerName(m)); err != nil {
				return err
			}
		}
		s.exec(cmd)
	}
	return nil
}

func (s *simulator) record(trigger string) error {
	s.pass++
	w := s.model.widget
	st := w.State()
	uploading, _ := w.Uploading()
	shot := Snapshot{
		Pass:            s.pass,
		Trigger:         trigger,
		TimesClapped:    s.model.TimesClapped(),
		Count:           st.Count,
		CountTotal:      st.CountTotal,
		IsClicked:       st.IsClicked,
		ResetGeneration: w.ResetGeneration(),
		Uploading:       uploading,
		TimelineBuilt:   w.TimelineBuilt(),
		Elapsed:         s.sched.Now().Sub(s.start).String(),
	}
	s.shots = append(s.shots, shot)

	if s.cfg.Out == nil {
		return nil
	}
	line, err := json.Marshal(shot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	_, err = fmt.Fprintf(s.cfg.Out, "%s\n", line)
	return err
}

func triggerName(m tea.Msg) string {
	switch m := m.(type) {
	case msg.TargetMountedMsg:
		return "mount:" + string(m.Role)
	case msg.FrameMsg:
		return "frame"
	case msg.UploadDueMsg:
		return "upload"
	default:
		return fmt.Sprintf("%T", m)
	}
}
