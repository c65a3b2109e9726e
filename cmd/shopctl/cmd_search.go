package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// searchCmd runs an AI text search against the catalog
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog with AI",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	result, err := a.search.SearchText(ctx, a.session, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(result.Products) == 0 {
		fmt.Fprintln(out, "No matches in the archives. Try `shopctl chat` to ask the Librarian.")
		return nil
	}

	fmt.Fprintf(out, "Results for %q (%s)\n", result.Query, result.Source)
	printProducts(out, result.Products)
	return nil
}
