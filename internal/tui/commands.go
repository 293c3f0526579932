package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shelf/internal/readinglist"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

// commandTimeout bounds each engine call; random.org lookups are the slow path
const commandTimeout = 30 * time.Second

// Command factories for engine operations

// engineCmd runs fn under the engine lock and answers with a fresh snapshot
func engineCmd(list *readinglist.Guarded, action string, selected int, fn func(ctx context.Context, e *readinglist.Engine) (string, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		var msg ListUpdatedMsg
		err := list.Do(func(e *readinglist.Engine) error {
			status, err := fn(ctx, e)
			if err != nil {
				return err
			}
			msg, err = snapshot(ctx, e)
			msg.Status = status
			msg.Selected = selected
			return err
		})
		if err != nil {
			return ErrMsg{Err: err, Context: action}
		}
		return msg
	}
}

// snapshot captures the books, cursor and page total of the reading list
func snapshot(ctx context.Context, e *readinglist.Engine) (ListUpdatedMsg, error) {
	msg := ListUpdatedMsg{Position: e.Position()}
	if e.Len() == 0 {
		return msg, nil
	}

	books, err := e.All(ctx)
	if err != nil {
		return msg, err
	}
	pages, err := e.TotalPages(ctx)
	if err != nil {
		return msg, err
	}
	msg.Books = books
	msg.TotalPages = pages
	return msg, nil
}

// LoadListCmd loads the reading list
func LoadListCmd(list *readinglist.Guarded) tea.Cmd {
	return engineCmd(list, "loading reading list", -1, func(context.Context, *readinglist.Engine) (string, error) {
		return "", nil
	})
}

// ReadCurrentCmd reads the book at the cursor
func ReadCurrentCmd(list *readinglist.Guarded) tea.Cmd {
	return engineCmd(list, "reading", -1, func(ctx context.Context, e *readinglist.Engine) (string, error) {
		book, err := e.ReadCurrent(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s Read %s", styles.ReadMark, book), nil
	})
}

// ReadRestCmd reads from the cursor to the end of the list
func ReadRestCmd(list *readinglist.Guarded) tea.Cmd {
	return engineCmd(list, "reading", -1, func(ctx context.Context, e *readinglist.Engine) (string, error) {
		books, err := e.ReadRest(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s Read %d %s", styles.ReadMark, len(books), plural(len(books), "book")), nil
	})
}

// RewindCmd returns the cursor to the first book
func RewindCmd(list *readinglist.Guarded) tea.Cmd {
	return engineCmd(list, "rewinding", -1, func(_ context.Context, e *readinglist.Engine) (string, error) {
		return "Rewound to the first book", e.Rewind()
	})
}

// RandomCmd moves the cursor to a random book
func RandomCmd(list *readinglist.Guarded) tea.Cmd {
	return engineCmd(list, "picking a random book", -1, func(ctx context.Context, e *readinglist.Engine) (string, error) {
		if err := e.GotoRandom(ctx); err != nil {
			return "", err
		}
		return fmt.Sprintf("Jumped to selection %d", e.Position()), nil
	})
}

// MoveCmd moves the book at selection from to selection to
func MoveCmd(list *readinglist.Guarded, from, to int) tea.Cmd {
	return engineCmd(list, "moving book", to-1, func(ctx context.Context, e *readinglist.Engine) (string, error) {
		book, err := e.ByPosition(ctx, from)
		if err != nil {
			return "", err
		}
		return "", e.MoveToPosition(ctx, book.ID, to)
	})
}

// RemoveCmd removes the book at selection n
func RemoveCmd(list *readinglist.Guarded, n int) tea.Cmd {
	return engineCmd(list, "removing book", -1, func(ctx context.Context, e *readinglist.Engine) (string, error) {
		book, err := e.ByPosition(ctx, n)
		if err != nil {
			return "", err
		}
		if err := e.RemoveByPosition(n); err != nil {
			return "", err
		}
		return "Removed " + book.Title, nil
	})
}

// ClearStatusCmd clears the status line after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
