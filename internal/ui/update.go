package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/noafk/internal/keepalive"
)

// tickMsg is sent when the countdown timer ticks
type tickMsg time.Time

// eventMsg carries one loop event.
type eventMsg keepalive.Event

// doneMsg reports that the session ended on its own.
type doneMsg struct{}

// stoppedMsg reports the result of a user-requested stop.
type stoppedMsg struct{ err error }

// Update handles messages and updates the model accordingly.
func Update(msg tea.Msg, m Model) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.stopping {
				return m, nil
			}
			m.stopping = true
			return m, stopSession(m.session)
		case key.Matches(msg, m.keys.ToggleHelp):
			m.ShowHelp = !m.ShowHelp
			m.help.ShowAll = m.ShowHelp
		}
		return m, nil

	case eventMsg:
		m = applyEvent(m, keepalive.Event(msg))
		return m, waitForEvent(m.events)

	case stoppedMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
		}
		m.state = keepalive.StateStopped
		return m, tea.Quit

	case doneMsg:
		m.state = keepalive.StateStopped
		return m, tea.Quit

	case tickMsg:
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		if w := msg.Width - 4; w > 10 && w < 60 {
			m.progress.Width = w
		}
		return m, nil
	}

	return m, nil
}

func applyEvent(m Model, e keepalive.Event) Model {
	m.state = e.State
	m.stats = e.Stats
	if e.Window != "" {
		m.window = e.Window
	}

	switch e.State {
	case keepalive.StateSeekingWindow:
		m.window = ""
	case keepalive.StateWaiting:
		m.waitStarted = e.At
		m.wait = e.Wait
		m.longBreak = e.LongBreak
	}

	if e.Action != "" {
		m.lastAction = e.Action
	}
	if e.Err != nil {
		m.lastErr = e.Err.Error()
	}
	return m
}

func waitForEvent(events <-chan keepalive.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg(e)
	}
}

func waitForDone(s Session) tea.Cmd {
	if s == nil || s.Done() == nil {
		return nil
	}
	done := s.Done()
	return func() tea.Msg {
		<-done
		return doneMsg{}
	}
}

func stopSession(s Session) tea.Cmd {
	return func() tea.Msg {
		if s == nil {
			return stoppedMsg{}
		}
		return stoppedMsg{err: s.Stop()}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
