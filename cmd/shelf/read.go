package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shelf/internal/readinglist"
	"github.com/mmcdole/shelf/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <id>...",
		Short: "Build a reading list from book ids and read it",
		Long: "Adds the given books to a reading list in order. On a terminal the list opens in an\n" +
			"interactive reader; otherwise every book is read once and printed.",
		Args: cobra.MinimumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			engine := a.newEngine()
			for _, raw := range args {
				id, err := engine.ValidateID(cmd.Context(), raw, false)
				if err != nil {
					return err
				}
				if err := engine.Add(cmd.Context(), id); err != nil {
					return err
				}
			}

			plain, _ := cmd.Flags().GetBool("plain")
			if !plain && isTerminal(cmd.OutOrStdout()) {
				return runReader(a, engine)
			}
			return readAll(cmd, engine)
		}),
	}
	cmd.Flags().BoolP("plain", "p", false, "Read the whole list and print it, even on a terminal")
	return cmd
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runReader(a *app, engine *readinglist.Engine) error {
	p := tea.NewProgram(
		tui.NewModel(readinglist.NewGuarded(engine), a.logger),
		tea.WithAltScreen(),
	)

	a.logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	a.logger.Info("shutting down")
	return nil
}

func readAll(cmd *cobra.Command, engine *readinglist.Engine) error {
	books, err := engine.ReadAll(cmd.Context())
	if err != nil {
		return err
	}
	pages, err := engine.TotalPages(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, b := range books {
		fmt.Fprintf(out, "%2d. %s\n", i+1, b)
	}
	fmt.Fprintf(out, "Read %d books, %d pages\n", len(books), pages)
	return nil
}
