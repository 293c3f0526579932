package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/readinglist"
	"github.com/mmcdole/shelf/internal/search"
	"github.com/spf13/cobra"
)

func newBooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Manage the book catalog",
	}
	cmd.AddCommand(
		newBooksAddCmd(),
		newBooksListCmd(),
		newBooksShowCmd(),
		newBooksSearchCmd(),
		newBooksRmCmd(),
	)
	return cmd
}

func newBooksAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			var book domain.Book
			book.Author, _ = cmd.Flags().GetString("author")
			book.Title, _ = cmd.Flags().GetString("title")
			book.Year, _ = cmd.Flags().GetInt("year")
			book.Genre, _ = cmd.Flags().GetString("genre")
			book.Length, _ = cmd.Flags().GetInt("length")

			created, err := a.books.CreateBook(cmd.Context(), book)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added book %d: %s\n", created.ID, created)
			return nil
		}),
	}
	cmd.Flags().StringP("author", "a", "", "Author")
	cmd.Flags().StringP("title", "t", "", "Title")
	cmd.Flags().IntP("year", "y", 0, "Publication year")
	cmd.Flags().StringP("genre", "g", "", "Genre")
	cmd.Flags().IntP("length", "l", 0, "Page count")
	return cmd
}

func newBooksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every book in the catalog",
		Args:    cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			books, err := a.books.ListBooks(cmd.Context())
			if err != nil {
				return err
			}
			if len(books) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "The catalog is empty.")
				return nil
			}
			for _, b := range books {
				printBook(cmd.OutOrStdout(), b)
			}
			return nil
		}),
	}
}

func newBooksShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			id, err := readinglist.ParseID(args[0])
			if err != nil {
				return err
			}
			b, err := a.books.GetBook(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:     %d\n", b.ID)
			fmt.Fprintf(out, "Author: %s\n", b.Author)
			fmt.Fprintf(out, "Title:  %s\n", b.Title)
			fmt.Fprintf(out, "Year:   %d\n", b.Year)
			fmt.Fprintf(out, "Genre:  %s\n", b.Genre)
			fmt.Fprintf(out, "Pages:  %d\n", b.Length)
			fmt.Fprintf(out, "Read:   %d times\n", b.ReadCount)
			return nil
		}),
	}
}

func newBooksSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>...",
		Short: "Fuzzy search titles and authors",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			results, err := search.NewService(a.books, a.logger).Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
				return nil
			}
			for _, r := range results {
				printBook(cmd.OutOrStdout(), r.Book)
			}
			return nil
		}),
	}
}

func newBooksRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Delete books from the catalog",
		Args:    cobra.MinimumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			for _, raw := range args {
				id, err := readinglist.ParseID(raw)
				if err != nil {
					return err
				}
				if err := a.books.DeleteBook(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed book %d\n", id)
			}
			return nil
		}),
	}
}

func printBook(w io.Writer, b domain.Book) {
	fmt.Fprintf(w, "%4d  %s  (%d pages, read %d)\n", b.ID, b, b.Length, b.ReadCount)
}
