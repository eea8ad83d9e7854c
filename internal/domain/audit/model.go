package audit

import (
	"time"

	"github.com/kirkbot2/speedaudit/internal/domain/recommendation"
)

// Metrics holds the measurements taken during a single page fetch.
// All values are derived from one HTTP round trip.
type Metrics struct {
	LoadTimeMs        int64 `json:"loadTime"`
	TimeToFirstByteMs int64 `json:"ttfb"`
	BodySizeBytes     int64 `json:"contentSize"`
	StatusCode        int   `json:"statusCode"`
}

// CompetitorScore is one entry of a competitive comparison. Competitor
// runs skip recommendation generation, so only the score is kept.
type CompetitorScore struct {
	URL   string `json:"url"`
	Score int    `json:"score"`
}

// Result is the immutable output record of one performance audit.
// It is created fresh per invocation and never mutated afterwards;
// persistence is the service layer's concern, not the engine's.
type Result struct {
	ID              int64                           `json:"id,omitempty"`
	Target          string                          `json:"url"`
	ObservedAt      time.Time                       `json:"timestamp"`
	Metrics         Metrics                         `json:"performance"`
	Recommendations []recommendation.Recommendation `json:"recommendations"`
	Score           int                             `json:"score"`
	Competitive     []CompetitorScore               `json:"competitive,omitempty"`
}

// Filter contains audit history filtering options.
type Filter struct {
	Target   string
	MinScore *int
	MaxScore *int
	Limit    int
}
