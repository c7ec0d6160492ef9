package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// After delivers fn's message once delay has elapsed, unless ctx is done
// first. A cancelled task delivers nothing.
func After(ctx context.Context, delay time.Duration, fn func() tea.Msg) tea.Cmd {
	return func() tea.Msg {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
		if ctx.Err() != nil {
			return nil
		}
		return fn()
	}
}
