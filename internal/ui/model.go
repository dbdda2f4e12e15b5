package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/noafk/internal/keepalive"
)

// Session is the running session the dashboard observes and can stop.
// *keepalive.Keeper satisfies it.
type Session interface {
	Stop() error
	Done() <-chan struct{}
	TimeRemaining() time.Duration
}

// Model is the dashboard state.
type Model struct {
	session Session
	events  <-chan keepalive.Event
	now     func() time.Time

	title  string
	state  keepalive.State
	stats  keepalive.Stats
	window string

	waitStarted time.Time
	wait        time.Duration
	longBreak   bool

	lastAction string
	lastErr    string

	spinner  spinner.Model
	progress progress.Model
	help     help.Model
	keys     KeyMap

	ShowHelp bool
	stopping bool
}

// NewModel returns a dashboard for session fed by events. title is the
// configured window title, shown until a window is matched.
func NewModel(session Session, events <-chan keepalive.Event, title string) Model {
	return Model{
		session: session,
		events:  events,
		now:     time.Now,
		title:   title,
		state:   keepalive.StateSeekingWindow,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(Current.WarningStatus),
		),
		progress: progress.New(
			progress.WithGradient(gradientStart, gradientEnd),
			progress.WithWidth(40),
			progress.WithoutPercentage(),
		),
		help: NewHelpModel(),
		keys: DefaultKeys(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForEvent(m.events),
		waitForDone(m.session),
		tick(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return Update(msg, m)
}

// View implements tea.Model
func (m Model) View() string {
	return View(m)
}

// NextActionIn returns the time left in the current wait, or zero outside one.
func (m Model) NextActionIn() time.Duration {
	if m.state != keepalive.StateWaiting || m.wait <= 0 {
		return 0
	}
	remaining := m.wait - m.now().Sub(m.waitStarted)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// waitProgress is the completed share of the current wait in [0,1].
func (m Model) waitProgress() float64 {
	if m.wait <= 0 {
		return 0
	}
	p := 1 - float64(m.NextActionIn())/float64(m.wait)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
