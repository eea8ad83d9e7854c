package audit

import (
	"math"

	domain "github.com/kirkbot2/speedaudit/internal/domain/audit"
	"github.com/kirkbot2/speedaudit/internal/domain/recommendation"
)

// ComputeScore folds metrics and the critical-recommendation count into a
// single 0-100 score. Pure function: re-scoring identical metrics always
// yields an identical score.
func ComputeScore(m domain.Metrics, recs []recommendation.Recommendation) int {
	score := 100

	if m.LoadTimeMs > LoadTimeTargetMs {
		score -= cappedDeduction(m.LoadTimeMs-LoadTimeTargetMs, 100, 30)
	}
	if m.TimeToFirstByteMs > TTFBTargetMs {
		score -= cappedDeduction(m.TimeToFirstByteMs-TTFBTargetMs, 50, 20)
	}
	if m.BodySizeBytes > BodySizeTargetBytes {
		score -= cappedDeduction(m.BodySizeBytes-BodySizeTargetBytes, 100_000, 15)
	}

	for _, r := range recs {
		if r.Severity == recommendation.SeverityCritical {
			score -= 10
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// cappedDeduction rounds excess/unit to the nearest integer and caps it.
func cappedDeduction(excess, unit int64, cap int) int {
	d := int(math.Round(float64(excess) / float64(unit)))
	if d > cap {
		return cap
	}
	return d
}
