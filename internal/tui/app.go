package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/readinglist"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

// statusTimeout is how long a status line stays visible
const statusTimeout = 4 * time.Second

// Model is the reading list browser
type Model struct {
	list   *readinglist.Guarded
	logger *slog.Logger
	keys   KeyMap
	help   help.Model

	books      []domain.Book
	position   int // Engine cursor (1-indexed)
	totalPages int
	selected   int // Highlighted row (0-indexed)

	status  string
	err     error
	loading bool

	width  int
	height int
}

// NewModel creates a reader over list
func NewModel(list *readinglist.Guarded, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	return Model{
		list:     list,
		logger:   logger,
		keys:     Keys,
		help:     h,
		position: 1,
		loading:  true,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return LoadListCmd(m.list)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ListUpdatedMsg:
		m.loading = false
		m.err = nil
		m.books = msg.Books
		m.position = msg.Position
		m.totalPages = msg.TotalPages
		if msg.Selected >= 0 {
			m.selected = msg.Selected
		}
		m.clampSelection()
		if msg.Status != "" {
			m.status = msg.Status
			return m, ClearStatusCmd(statusTimeout)
		}
		return m, nil

	case ErrMsg:
		m.loading = false
		m.err = msg
		m.logger.Error("reader command failed", "error", msg.Err, "context", msg.Context)
		return m, nil

	case ClearStatusMsg:
		m.status = ""
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.books)-1 {
			m.selected++
		}
		return m, nil
	}

	// Everything below talks to the engine; clear the previous error first
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Read):
		return m, ReadCurrentCmd(m.list)

	case key.Matches(msg, m.keys.ReadRest):
		return m, ReadRestCmd(m.list)

	case key.Matches(msg, m.keys.Rewind):
		return m, RewindCmd(m.list)

	case key.Matches(msg, m.keys.Random):
		return m, RandomCmd(m.list)

	case key.Matches(msg, m.keys.MoveUp):
		if len(m.books) == 0 || m.selected == 0 {
			return m, nil
		}
		return m, MoveCmd(m.list, m.selected+1, m.selected)

	case key.Matches(msg, m.keys.MoveDown):
		if len(m.books) == 0 || m.selected >= len(m.books)-1 {
			return m, nil
		}
		return m, MoveCmd(m.list, m.selected+1, m.selected+2)

	case key.Matches(msg, m.keys.Remove):
		if len(m.books) == 0 {
			return m, nil
		}
		return m, RemoveCmd(m.list, m.selected+1)
	}

	return m, nil
}

// clampSelection keeps the highlighted row inside the list
func (m *Model) clampSelection() {
	if m.selected >= len(m.books) {
		m.selected = len(m.books) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}
