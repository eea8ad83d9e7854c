package client

import "time"

// Metrics holds the measurements of one audited page fetch
type Metrics struct {
	LoadTimeMs        int64 `json:"loadTime"`
	TimeToFirstByteMs int64 `json:"ttfb"`
	BodySizeBytes     int64 `json:"contentSize"`
	StatusCode        int   `json:"statusCode"`
}

// Recommendation is one prioritized optimization suggestion
type Recommendation struct {
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Effort      string `json:"effort"`
}

// CompetitorScore is one entry of a competitive comparison
type CompetitorScore struct {
	URL   string `json:"url"`
	Score int    `json:"score"`
}

// Audit is a completed audit result
type Audit struct {
	ID              int64             `json:"id,omitempty"`
	URL             string            `json:"url"`
	Timestamp       time.Time         `json:"timestamp"`
	Performance     Metrics           `json:"performance"`
	Recommendations []Recommendation  `json:"recommendations"`
	Score           int               `json:"score"`
	Competitive     []CompetitorScore `json:"competitive,omitempty"`
}
