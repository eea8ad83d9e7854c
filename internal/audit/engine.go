package audit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"time"

	domain "github.com/kirkbot2/speedaudit/internal/domain/audit"
	apperrors "github.com/kirkbot2/speedaudit/internal/pkg/errors"
	"github.com/kirkbot2/speedaudit/internal/pkg/logger"
)

const (
	// DefaultTimeout is the per-audit budget when none is configured.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies the auditing client on every request.
	DefaultUserAgent = "speedaudit/1.0"
)

// Engine converts a URL into an audit Result via one network round trip
// plus deterministic post-processing. It performs no retries and keeps no
// state between runs.
type Engine struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	logger    *logger.Logger
}

// EngineConfig contains audit engine configuration
type EngineConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// NewEngine creates a new audit engine
func NewEngine(cfg EngineConfig, log *logger.Logger) *Engine {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	return &Engine{
		// The per-run context deadline is the single cancellation
		// boundary; no client-level timeout on top of it.
		client:    &http.Client{},
		timeout:   cfg.Timeout,
		userAgent: cfg.UserAgent,
		logger:    log,
	}
}

// Timeout returns the per-audit budget.
func (e *Engine) Timeout() time.Duration {
	return e.timeout
}

// Run issues a single timed GET to target and returns the completed
// Result. Exactly one outbound request is made; the only error kinds are
// the NETWORK_ERROR and TIMEOUT_ERROR taxonomy and both are terminal for
// the invocation (no partial Result, no retry).
func (e *Engine) Run(ctx context.Context, target string) (*domain.Result, error) {
	if err := validateTarget(target); err != nil {
		return nil, err
	}

	// A caller-supplied deadline wins; otherwise the engine budget applies.
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	var ttfb time.Duration

	trace := &httptrace.ClientTrace{
		GotFirstResponseByte: func() {
			ttfb = time.Since(start)
		},
	}

	req, err := http.NewRequestWithContext(httptrace.WithClientTrace(ctx, trace), http.MethodGet, target, nil)
	if err != nil {
		return nil, apperrors.BadRequest(fmt.Sprintf("invalid audit target %q: %v", target, err))
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, classify(target, err)
	}
	defer resp.Body.Close()

	// Drain the full body so loadTime covers the complete transfer.
	bodySize, err := io.Copy(io.Discard, resp.Body)
	if err != nil {
		return nil, classify(target, err)
	}
	loadTime := time.Since(start)

	metrics := domain.Metrics{
		LoadTimeMs:        loadTime.Milliseconds(),
		TimeToFirstByteMs: ttfb.Milliseconds(),
		BodySizeBytes:     bodySize,
		StatusCode:        resp.StatusCode,
	}

	recs := DeriveRecommendations(metrics)

	result := &domain.Result{
		Target:          target,
		ObservedAt:      start,
		Metrics:         metrics,
		Recommendations: recs,
		Score:           ComputeScore(metrics, recs),
	}

	e.logger.WithFields(map[string]interface{}{
		"target":    target,
		"load_ms":   metrics.LoadTimeMs,
		"ttfb_ms":   metrics.TimeToFirstByteMs,
		"body_size": metrics.BodySizeBytes,
		"status":    metrics.StatusCode,
		"score":     result.Score,
	}).Debug("audit completed")

	return result, nil
}

// validateTarget requires a syntactically valid absolute http/https URL.
func validateTarget(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return apperrors.BadRequest(fmt.Sprintf("invalid audit target %q: %v", target, err))
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.BadRequest(fmt.Sprintf("audit target must be an absolute http or https URL, got %q", target))
	}
	return nil
}

// classify maps a transport failure onto the engine error taxonomy.
func classify(target string, err error) *apperrors.AppError {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError(target, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.TimeoutError(target, err)
	}
	return apperrors.NetworkError(target, err)
}
