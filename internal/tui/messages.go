package tui

import "github.com/mmcdole/shelf/internal/domain"

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ListUpdatedMsg carries a fresh snapshot of the reading list
type ListUpdatedMsg struct {
	Books      []domain.Book
	Position   int
	TotalPages int
	Status     string // Optional status line describing what changed

	// Selected is the row to select after a reorder; -1 keeps the current row
	Selected int
}

// ClearStatusMsg clears the status line
type ClearStatusMsg struct{}
