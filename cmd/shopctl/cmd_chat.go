package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// chatCmd starts an interactive conversation with the Digital Librarian
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the Digital Librarian",
	Long: `Start an interactive conversation. Each line read from stdin is one message.
Type "exit" or send EOF to quit.`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, m := range a.chat.Transcript(a.session) {
		fmt.Fprintf(out, "librarian> %s\n", m.Text)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		reply, err := a.chat.Send(ctx, a.session, line)
		cancel()
		if err != nil {
			return fmt.Errorf("chat failed: %w", err)
		}

		fmt.Fprintf(out, "librarian> %s\n", reply.Text)
		if len(reply.RelatedProducts) > 0 {
			printProducts(out, reply.RelatedProducts)
		}
	}
}
