package tui

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Iron-Ham/clap/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
)

// AppConfig configures an App.
type AppConfig struct {
	Model     ModelConfig
	AltScreen bool
	Logger    *logging.Logger
}

// App wraps the Bubbletea program
type App struct {
	mu      sync.Mutex
	program *tea.Program
	model   *Model
	cfg     AppConfig
	logger  *logging.Logger
}

// NewApp creates a new TUI application. Timer callbacks from the widget are
// delivered through the program once it runs.
func NewApp(cfg AppConfig) *App {
	a := &App{cfg: cfg, logger: cfg.Logger}
	if a.logger == nil {
		a.logger = logging.NopLogger()
	}
	mc := cfg.Model
	mc.WidgetOptions = append([]Option{WithPost(a.Send), WithLogger(a.logger)}, mc.WidgetOptions...)
	a.model = NewModel(mc)
	return a
}

// Model returns the hosted model.
func (a *App) Model() *Model { return a.model }

// Send delivers m to the running program. Messages sent before Run or
// after it returns are dropped.
func (a *App) Send(m tea.Msg) {
	a.mu.Lock()
	p := a.program
	a.mu.Unlock()
	if p == nil {
		a.logger.Debug("message dropped, program not running", "type", typeName(m))
		return
	}
	p.Send(m)
}

// Run starts the TUI application and blocks until it exits. The widget is
// torn down on exit so no upload fires against a closed program.
func (a *App) Run() error {
	opts := []tea.ProgramOption{}
	if a.cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	a.mu.Lock()
	a.program = tea.NewProgram(a.model, opts...)
	program := a.program
	a.mu.Unlock()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		if _, ok := <-sigChan; ok {
			a.logger.Info("signal received, quitting")
			program.Send(tea.Quit())
		}
	}()

	_, err := program.Run()

	// Clean up signal handler
	signal.Stop(sigChan)
	close(sigChan)

	a.model.widget.Teardown()
	a.mu.Lock()
	a.program = nil
	a.mu.Unlock()
	return err
}

func typeName(m tea.Msg) string {
	if m == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", m)
}
