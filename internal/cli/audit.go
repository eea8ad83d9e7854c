package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kirkbot2/speedaudit/internal/audit"
	domain "github.com/kirkbot2/speedaudit/internal/domain/audit"
	"github.com/kirkbot2/speedaudit/internal/pkg/logger"
	"github.com/kirkbot2/speedaudit/internal/report"
)

// passingScore is the minimum score treated as a pass for the exit code.
const passingScore = 60

// ErrScoreBelowThreshold signals a completed audit whose score failed the
// passing threshold. The audit output has already been printed when this
// is returned; main turns it into a non-zero exit without a message.
var ErrScoreBelowThreshold = errors.New("score below passing threshold")

func newAuditCmd() *cobra.Command {
	var (
		timeout     time.Duration
		userAgent   string
		competitors []string
		htmlPath    string
		maxRecs     int
	)

	cmd := &cobra.Command{
		Use:   "audit <url>",
		Short: "Run a performance audit against a URL",
		Long: `Audit fetches the page once, measures load time, time to first
byte and transferred body size, then derives recommendations and an
overall 0-100 score.

The exit code is 0 when the score is at least 60 and 1 otherwise, so
the command can gate CI pipelines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]

			log := logger.New(logger.Config{Level: "warn", Format: "console"})
			engine := audit.NewEngine(audit.EngineConfig{
				Timeout:   timeout,
				UserAgent: userAgent,
			}, log)

			ctx := context.Background()

			result, err := engine.Run(ctx, target)
			if err != nil {
				return fmt.Errorf("audit failed: %w", err)
			}

			if len(competitors) > 0 {
				result.Competitive = engine.CompareCompetitors(ctx, competitors)
			}

			if htmlPath != "" {
				if err := writeHTMLReport(result, htmlPath); err != nil {
					return err
				}
				fmt.Printf("HTML report written to %s\n", htmlPath)
			}

			if format := getOutputFormat(); format != "table" {
				if err := printOutput(result); err != nil {
					return err
				}
			} else {
				printSummary(result, maxRecs)
			}

			if result.Score < passingScore {
				return ErrScoreBelowThreshold
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "per-audit budget (default 30s)")
	cmd.Flags().StringVar(&userAgent, "user-agent", "", "User-Agent header for the audit request")
	cmd.Flags().StringSliceVar(&competitors, "competitors", nil, "competitor URLs to score for comparison")
	cmd.Flags().StringVar(&htmlPath, "html", "", "write an HTML report to this file")
	cmd.Flags().IntVar(&maxRecs, "max-recommendations", 5, "number of recommendations to show in the summary")

	return cmd
}

func writeHTMLReport(result *domain.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := report.GenerateHTML(result, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSummary(result *domain.Result, maxRecs int) {
	fmt.Printf("Speed audit: %s\n", result.Target)
	fmt.Printf("Audited:     %s\n\n", result.ObservedAt.Format(time.RFC1123))

	fmt.Printf("Score:       %s\n", formatScore(result.Score))
	fmt.Printf("Load time:   %dms\n", result.Metrics.LoadTimeMs)
	fmt.Printf("TTFB:        %dms\n", result.Metrics.TimeToFirstByteMs)
	fmt.Printf("Page size:   %s\n", formatSize(result.Metrics.BodySizeBytes))
	fmt.Printf("HTTP status: %d\n", result.Metrics.StatusCode)

	recs := result.Recommendations
	if len(recs) > 0 {
		fmt.Printf("\nTop recommendations:\n")
		t := NewTable("SEVERITY", "CATEGORY", "RECOMMENDATION")
		for i, r := range recs {
			if maxRecs > 0 && i >= maxRecs {
				break
			}
			t.AddRow(formatSeverity(r.Severity), r.Category, truncate(r.Title, 60))
		}
		t.Render()
		if maxRecs > 0 && len(recs) > maxRecs {
			fmt.Printf("(%d more; use -o json for the full list)\n", len(recs)-maxRecs)
		}
	}

	if len(result.Competitive) > 0 {
		fmt.Printf("\nCompetitive comparison:\n")
		t := NewTable("URL", "SCORE")
		for _, c := range result.Competitive {
			t.AddRow(truncate(c.URL, 60), formatScore(c.Score))
		}
		t.Render()
	}
}
