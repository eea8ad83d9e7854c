package recommendation

// Recommendation is a single prioritized suggestion derived from
// threshold comparisons against measured page metrics.
type Recommendation struct {
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Effort      string `json:"effort"`
}

// Severity levels, highest first.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Categories
const (
	CategoryLoadTime = "load-time"
	CategoryServer   = "server"
	CategorySize     = "size"
	CategoryImages   = "images"
	CategoryScripts  = "scripts"
	CategoryCaching  = "caching"
)

// Impact levels
const (
	ImpactHigh   = "high"
	ImpactMedium = "medium"
	ImpactLow    = "low"
)

// Effort levels
const (
	EffortLow    = "low"
	EffortMedium = "medium"
	EffortHigh   = "high"
)

var severityRank = map[string]int{
	SeverityCritical: 0,
	SeverityWarning:  1,
	SeverityInfo:     2,
}

// SeverityRank returns the sort rank for a severity; lower sorts first.
// Unknown severities sort after the known ones.
func SeverityRank(severity string) int {
	if r, ok := severityRank[severity]; ok {
		return r
	}
	return len(severityRank)
}
