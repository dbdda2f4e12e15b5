package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stigoleg/noafk/internal/keepalive"
	"github.com/stigoleg/noafk/internal/util"
)

// View renders the current state of the model to a string.
func View(m Model) string {
	var b strings.Builder

	b.WriteString(Current.Title.Render("noafk"))
	b.WriteString("\n\n")

	status := statusLine(m.state)
	if m.state == keepalive.StateSeekingWindow {
		status = m.spinner.View() + " " + status
	}
	b.WriteString(row("Status", status))

	window := m.window
	if window == "" {
		window = Current.InactiveStatus.Render(m.title + " (searching)")
	}
	b.WriteString(row("Window", window))

	if id := m.stats.SessionID; id != "" {
		b.WriteString(row("Session", shortID(id)))
	}
	if !m.stats.Started.IsZero() {
		b.WriteString(row("Elapsed", util.FormatElapsed(m.now().Sub(m.stats.Started))))
	}
	b.WriteString(row("Actions", strconv.Itoa(m.stats.Actions)))
	b.WriteString(row("Failures", strconv.Itoa(m.stats.Failures)))
	b.WriteString(row("Long breaks", strconv.Itoa(m.stats.LongBreaks)))

	if m.state == keepalive.StateWaiting {
		b.WriteString("\n")
		label := "Next action in " + util.FormatElapsed(m.NextActionIn())
		if m.longBreak {
			label += " (long break)"
		}
		b.WriteString(Current.Countdown.Render(label))
		b.WriteString("\n ")
		b.WriteString(m.progress.ViewAs(m.waitProgress()))
		b.WriteString("\n")
	}

	if m.session != nil {
		if left := m.session.TimeRemaining(); left > 0 {
			b.WriteString("\n")
			b.WriteString(row("Session ends", util.FormatElapsed(left)))
		}
	}

	if m.lastAction != "" || m.lastErr != "" {
		b.WriteString("\n")
	}
	if m.lastAction != "" {
		b.WriteString(row("Last action", m.lastAction))
	}
	if m.lastErr != "" {
		b.WriteString(row("Last error", Current.Error.UnsetPaddingLeft().Render(m.lastErr)))
	}

	b.WriteString("\n")
	b.WriteString(Current.Help.Render(m.help.View(m.keys)))
	if m.ShowHelp {
		b.WriteString("\n\n")
		b.WriteString(Current.Help.Render(helpText))
	}
	return b.String()
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, Current.Label.Render(label), Current.Value.Render(value)) + "\n"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

const helpText = `The session finds the game window, waits a randomized interval,
brings the window to the front and sends one humanized key press.
Settings come from noafk.yaml, a .env file or NOAFK_* variables.

Stopping releases any held key and writes the session summary
to the log file.`

// RenderError formats a startup error for the terminal. Multi-line errors
// get a bordered box with the first paragraph as header.
func RenderError(err error) string {
	msg := err.Error()
	parts := strings.SplitN(msg, "\n\n", 2)
	if len(parts) == 2 {
		header := Current.ErrorHeader.Render(parts[0])
		details := Current.ErrorDetails.Render(parts[1])
		return Current.ErrorBox.Render(fmt.Sprintf("%s\n\n%s", header, details))
	}
	return Current.Error.Render(msg)
}
