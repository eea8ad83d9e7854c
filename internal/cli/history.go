package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/kirkbot2/speedaudit/pkg/client"
)

func newHistoryCmd() *cobra.Command {
	var (
		targetURL string
		minScore  int
		maxScore  int
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored audit results",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			opts := &client.AuditListOptions{
				URL:   targetURL,
				Limit: limit,
			}
			if cmd.Flags().Changed("min-score") {
				opts.MinScore = &minScore
			}
			if cmd.Flags().Changed("max-score") {
				opts.MaxScore = &maxScore
			}

			audits, err := apiClient.Audits().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list audits: %w", err)
			}

			if format := getOutputFormat(); format != "table" {
				return printOutput(audits)
			}

			t := NewTable("ID", "URL", "SCORE", "LOAD", "TTFB", "SIZE", "AUDITED")
			for _, a := range audits {
				t.AddRow(
					strconv.FormatInt(a.ID, 10),
					truncate(a.URL, 50),
					formatScore(a.Score),
					fmt.Sprintf("%dms", a.Performance.LoadTimeMs),
					fmt.Sprintf("%dms", a.Performance.TimeToFirstByteMs),
					formatSize(a.Performance.BodySizeBytes),
					a.Timestamp.Format(time.RFC3339),
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&targetURL, "url", "", "filter by audited URL")
	cmd.Flags().IntVar(&minScore, "min-score", 0, "only show audits scoring at least this")
	cmd.Flags().IntVar(&maxScore, "max-score", 100, "only show audits scoring at most this")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results (server default 50)")

	return cmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a stored audit result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid audit ID: %s", args[0])
			}

			audit, err := apiClient.Audits().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get audit: %w", err)
			}

			return printAuditDetail(audit)
		},
	}
}

func newLatestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "latest <url>",
		Short: "Show the most recent stored audit for a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			audit, err := apiClient.Audits().Latest(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get latest audit: %w", err)
			}

			return printAuditDetail(audit)
		},
	}
}

func printAuditDetail(a *client.Audit) error {
	if format := getOutputFormat(); format != "table" {
		return printOutput(a)
	}

	fmt.Printf("ID:          %d\n", a.ID)
	fmt.Printf("URL:         %s\n", a.URL)
	fmt.Printf("Audited:     %s\n", a.Timestamp.Format(time.RFC1123))
	fmt.Printf("Score:       %s\n", formatScore(a.Score))
	fmt.Printf("Load time:   %dms\n", a.Performance.LoadTimeMs)
	fmt.Printf("TTFB:        %dms\n", a.Performance.TimeToFirstByteMs)
	fmt.Printf("Page size:   %s\n", formatSize(a.Performance.BodySizeBytes))
	fmt.Printf("HTTP status: %d\n", a.Performance.StatusCode)

	if len(a.Recommendations) > 0 {
		fmt.Printf("\nRecommendations:\n")
		t := NewTable("SEVERITY", "CATEGORY", "RECOMMENDATION", "IMPACT", "EFFORT")
		for _, r := range a.Recommendations {
			t.AddRow(formatSeverity(r.Severity), r.Category, truncate(r.Title, 50), r.Impact, r.Effort)
		}
		t.Render()
	}

	if len(a.Competitive) > 0 {
		fmt.Printf("\nCompetitive comparison:\n")
		t := NewTable("URL", "SCORE")
		for _, c := range a.Competitive {
			t.AddRow(truncate(c.URL, 60), formatScore(c.Score))
		}
		t.Render()
	}

	return nil
}
