package audit

import (
	"context"
	"sort"

	domain "github.com/kirkbot2/speedaudit/internal/domain/audit"
)

// CompareCompetitors audits each competitor URL once and returns their
// scores sorted descending. Recommendation output is discarded for
// competitor runs; only the score is kept. A failing competitor audit is
// logged and excluded rather than aborting the whole comparison.
func (e *Engine) CompareCompetitors(ctx context.Context, urls []string) []domain.CompetitorScore {
	scores := make([]domain.CompetitorScore, 0, len(urls))

	for _, u := range urls {
		res, err := e.Run(ctx, u)
		if err != nil {
			e.logger.WithFields(map[string]interface{}{
				"competitor": u,
			}).WithError(err).Warn("competitor audit failed, excluding from comparison")
			continue
		}
		scores = append(scores, domain.CompetitorScore{URL: u, Score: res.Score})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	return scores
}
