package ui

import "github.com/stigoleg/noafk/internal/keepalive"

// statusLine renders the loop state with a marker and a color per state.
func statusLine(s keepalive.State) string {
	switch s {
	case keepalive.StateSeekingWindow:
		return Current.WarningStatus.Render(s.String())
	case keepalive.StateWaiting:
		return Current.ActiveStatus.Render("● " + s.String())
	case keepalive.StateFocusing, keepalive.StateActing:
		return Current.ActiveStatus.Render("▶ " + s.String())
	case keepalive.StateStopped:
		return Current.InactiveStatus.Render("■ " + s.String())
	default:
		return Current.InactiveStatus.Render(s.String())
	}
}
