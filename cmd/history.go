package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kotoba-ai/kotoba/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past tutoring sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		sessionID, _ := cmd.Flags().GetString("session")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		events, err := s.EventRepo().QuerySessionEvents(ctx, store.QueryOpts{Limit: limit, SessionID: sessionID})
		if err != nil {
			return fmt.Errorf("query session events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		fmt.Printf("%-19s  %-10s  %-9s  %-6s  %-22s  %s\n",
			"Timestamp", "Session", "Action", "Turn", "Category", "Detail")
		fmt.Println(strings.Repeat("─", 100))

		for _, e := range events {
			detail := e.Detail
			if len(detail) > 40 {
				detail = detail[:40]
			}
			fmt.Printf("%-19s  %-10s  %-9s  %-6d  %-22s  %s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				shortID(e.SessionID),
				e.Action,
				e.Turn,
				e.Category,
				detail,
			)
		}
		return nil
	},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 50, "Number of events to show")
	historyCmd.Flags().StringP("session", "s", "", "Filter by session ID (prefix not supported, full ID)")
}
