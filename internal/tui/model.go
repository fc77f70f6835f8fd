package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Iron-Ham/clap/internal/clap"
	"github.com/Iron-Ham/clap/internal/effect"
	"github.com/Iron-Ham/clap/internal/errors"
	"github.com/Iron-Ham/clap/internal/tui/keymap"
	"github.com/Iron-Ham/clap/internal/tui/msg"
	"github.com/Iron-Ham/clap/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ModelConfig configures the hosting model.
type ModelConfig struct {
	// RateLimit rejects claps once this many presses were counted since
	// the last reset. Zero disables it.
	RateLimit int
	// Styles is the base style set. Nil uses the default theme.
	Styles *styles.Set
	// Headless disables the spinner animation.
	Headless bool
	// WidgetOptions are applied after the model's own options and win.
	WidgetOptions []Option
}

// Model hosts a Widget together with its controls: a reset action, a
// status line, a user-defined counter, the upload notice and the rate-limit
// warning.
type Model struct {
	widget  *Widget
	keys    keymap.KeyMap
	help    help.Model
	spinner spinner.Model
	styles  *styles.Set

	// resetFx clears timesClapped whenever a reset is accepted.
	resetFx *effect.AfterMount[uint64]

	timesClapped int
	rateLimit    int
	headless     bool
	spinning     bool
	quitting     bool
	err          error
}

// NewModel builds the model and its widget.
func NewModel(cfg ModelConfig) *Model {
	st := cfg.Styles
	if st == nil {
		st = styles.New(nil)
	}

	m := &Model{
		keys:      keymap.Default(),
		help:      help.New(),
		styles:    st,
		rateLimit: cfg.RateLimit,
		headless:  cfg.Headless,
	}
	m.help.Styles.ShortKey = st.HelpKey
	m.help.Styles.ShortDesc = st.HelpDesc
	m.help.Styles.FullKey = st.HelpKey
	m.help.Styles.FullDesc = st.HelpDesc
	m.spinner = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(st.Spinner),
	)

	opts := []Option{
		WithStyles(st),
		WithTogglerProps(clap.Props{
			clap.PropPressed: false,
			clap.PropOnPress: clap.Handler(m.handleClick),
		}),
	}
	if m.rateLimit > 0 {
		opts = append(opts, WithReducer(clap.RateLimit(clap.Reduce, m.clappedTooMuch)))
	}
	opts = append(opts, cfg.WidgetOptions...)
	m.widget = NewWidget(opts...)

	m.resetFx = effect.NewAfterMount[uint64](func() func() {
		m.timesClapped = 0
		return nil
	})
	m.resetFx.Run(m.widget.ResetGeneration())
	return m
}

// Widget returns the hosted widget.
func (m *Model) Widget() *Widget { return m.widget }

// TimesClapped returns the presses counted since the last reset.
func (m *Model) TimesClapped() int { return m.timesClapped }

func (m *Model) handleClick(clap.PressEvent) {
	m.timesClapped++
}

func (m *Model) clappedTooMuch() bool {
	return m.rateLimit > 0 && m.timesClapped >= m.rateLimit
}

// Init mounts the widget.
func (m *Model) Init() tea.Cmd {
	return m.widget.Init()
}

// Update handles keys and forwards everything else to the widget.
func (m *Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch message := message.(type) {
	case tea.KeyMsg:
		switch m.keys.Lookup(message) {
		case keymap.CmdClap:
			cmds = append(cmds, m.widget.Press(message.String()))
		case keymap.CmdReset:
			cmds = append(cmds, m.widget.Reset())
		case keymap.CmdToggleHelp:
			m.help.ShowAll = !m.help.ShowAll
		case keymap.CmdQuit:
			m.quitting = true
			m.widget.Teardown()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.help.Width = message.Width

	case spinner.TickMsg:
		if uploading, _ := m.widget.Uploading(); !uploading {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(message)
		cmds = append(cmds, cmd)

	case msg.ErrMsg:
		m.err = message.Err

	default:
		cmds = append(cmds, m.widget.Update(message))
	}

	m.resetFx.Run(m.widget.ResetGeneration())

	if uploading, _ := m.widget.Uploading(); uploading && !m.spinning && !m.headless {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

// Status is the JSON status line.
type Status struct {
	TimesClapped int `json:"timesClapped"`
	Count        int `json:"count"`
	CountTotal   int `json:"countTotal"`
}

// Status returns the values shown on the status line.
func (m *Model) Status() Status {
	s := m.widget.State()
	return Status{TimesClapped: m.timesClapped, Count: s.Count, CountTotal: s.CountTotal}
}

// UploadNotice returns the upload notice, empty when nothing is pending.
func (m *Model) UploadNotice() string {
	uploading, gen := m.widget.Uploading()
	if !uploading {
		return ""
	}
	return fmt.Sprintf("The reset data is uploading... %d", gen)
}

// Warning returns the rate-limit warning, empty below the limit.
func (m *Model) Warning() string {
	if !m.clappedTooMuch() {
		return ""
	}
	return fmt.Sprintf("You have clapped %d times. Don't be so generous :)", m.widget.State().Count)
}

// View renders the widget and its controls.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("clap"))
	b.WriteString("\n")
	b.WriteString(m.widget.View())
	b.WriteString("\n\n")

	status, _ := json.Marshal(m.Status())
	b.WriteString(m.styles.Status.Render(string(status)))
	b.WriteString("\n")
	b.WriteString(m.userCounter())
	b.WriteString("\n")

	if notice := m.UploadNotice(); notice != "" {
		if !m.headless {
			b.WriteString(m.spinner.View())
			b.WriteString(" ")
		}
		b.WriteString(m.styles.Notice.Render(notice))
	}
	b.WriteString("\n")
	if warning := m.Warning(); warning != "" {
		b.WriteString(m.styles.Warning.Render(warning))
	}
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.styles.Warning.Render(errorText(m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// unexpectedErrorText replaces messages not meant for users; the details are
// in the debug log.
const unexpectedErrorText = "something went wrong, see the debug log"

// errorText renders err prefixed with its severity.
func errorText(err error) string {
	text := unexpectedErrorText
	if errors.IsUserFacing(err) {
		text = err.Error()
	}
	return errors.GetSeverity(err).String() + ": " + text
}

// userCounter renders a caller-defined counter built only from the counter
// props.
func (m *Model) userCounter() string {
	props := m.widget.CounterProps(nil)
	count, _ := props.Int(clap.PropCount)
	limit, _ := props.Int(clap.PropValueMax)
	return m.styles.Status.Render(fmt.Sprintf("your claps: %d/%d", count, limit))
}
