package audit

import (
	"fmt"
	"sort"

	domain "github.com/kirkbot2/speedaudit/internal/domain/audit"
	"github.com/kirkbot2/speedaudit/internal/domain/recommendation"
)

// Performance targets. All rules compare with strict > so a measurement
// exactly at the target does not fire.
const (
	LoadTimeTargetMs    = 3000
	TTFBTargetMs        = 600
	BodySizeTargetBytes = 3_000_000
)

// DeriveRecommendations maps measured metrics through the fixed-threshold
// rules into a prioritized recommendation list. Pure function: identical
// metrics always yield identical output.
//
// The three info entries at the tail are unconditional advisory
// boilerplate, so the list is never empty even for a perfect score.
func DeriveRecommendations(m domain.Metrics) []recommendation.Recommendation {
	recs := make([]recommendation.Recommendation, 0, 6)

	if m.LoadTimeMs > LoadTimeTargetMs {
		recs = append(recs, recommendation.Recommendation{
			Severity: recommendation.SeverityCritical,
			Category: recommendation.CategoryLoadTime,
			Title:    "Reduce full page load time",
			Description: fmt.Sprintf(
				"Page fully loaded in %d ms against a %d ms target. Cut render-blocking resources and total payload to get under the target.",
				m.LoadTimeMs, LoadTimeTargetMs),
			Impact: recommendation.ImpactHigh,
			Effort: recommendation.EffortMedium,
		})
	}

	if m.TimeToFirstByteMs > TTFBTargetMs {
		recs = append(recs, recommendation.Recommendation{
			Severity: recommendation.SeverityWarning,
			Category: recommendation.CategoryServer,
			Title:    "Improve server response time",
			Description: fmt.Sprintf(
				"Time to first byte was %d ms against a %d ms target. Review server processing, database queries, and consider a CDN.",
				m.TimeToFirstByteMs, TTFBTargetMs),
			Impact: recommendation.ImpactMedium,
			Effort: recommendation.EffortMedium,
		})
	}

	if m.BodySizeBytes > BodySizeTargetBytes {
		recs = append(recs, recommendation.Recommendation{
			Severity: recommendation.SeverityWarning,
			Category: recommendation.CategorySize,
			Title:    "Reduce page weight",
			Description: fmt.Sprintf(
				"Page transferred %d bytes against a %d byte target. Compress assets and defer below-the-fold content.",
				m.BodySizeBytes, BodySizeTargetBytes),
			Impact: recommendation.ImpactMedium,
			Effort: recommendation.EffortLow,
		})
	}

	recs = append(recs, staticAdvisories()...)

	// Critical before warning before info; ties keep rule evaluation order.
	sort.SliceStable(recs, func(i, j int) bool {
		return recommendation.SeverityRank(recs[i].Severity) < recommendation.SeverityRank(recs[j].Severity)
	})

	return recs
}

// staticAdvisories returns the three unconditional info entries appended
// to every audit regardless of measured metrics.
func staticAdvisories() []recommendation.Recommendation {
	return []recommendation.Recommendation{
		{
			Severity:    recommendation.SeverityInfo,
			Category:    recommendation.CategoryImages,
			Title:       "Optimize images",
			Description: "Serve appropriately sized images in modern formats (WebP/AVIF) with lazy loading.",
			Impact:      recommendation.ImpactMedium,
			Effort:      recommendation.EffortLow,
		},
		{
			Severity:    recommendation.SeverityInfo,
			Category:    recommendation.CategoryScripts,
			Title:       "Review script loading",
			Description: "Defer non-critical JavaScript and remove unused third-party scripts.",
			Impact:      recommendation.ImpactMedium,
			Effort:      recommendation.EffortMedium,
		},
		{
			Severity:    recommendation.SeverityInfo,
			Category:    recommendation.CategoryCaching,
			Title:       "Set cache headers",
			Description: "Add long-lived Cache-Control headers for static assets so repeat visits skip the network.",
			Impact:      recommendation.ImpactLow,
			Effort:      recommendation.EffortLow,
		},
	}
}
