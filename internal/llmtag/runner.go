package llmtag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Tagger is the API surface the runner needs; *Client satisfies it.
type Tagger interface {
	Tag(ctx context.Context, instructions, text string) (string, error)
}

// Runner feeds windows through the tagging API sequentially. One
// window failing does not abort the run: its page range is replaced
// with a failure placeholder so the output keeps every page range
// accounted for.
type Runner struct {
	client  Tagger
	stats   *CallStats
	log     *slog.Logger
	backoff func(int) time.Duration

	// MaxAttempts bounds retries per window for retryable errors.
	MaxAttempts int
	// Delay is the pause between consecutive windows.
	Delay time.Duration
}

func NewRunner(client Tagger, log *slog.Logger) *Runner {
	return &Runner{
		client:      client,
		stats:       NewCallStats(time.Hour),
		log:         log,
		backoff:     Backoff,
		MaxAttempts: MaxRetries,
		Delay:       time.Second,
	}
}

// Result is the outcome of one tagging run.
type Result struct {
	Text          string
	Windows       int
	FailedWindows []int
}

// Run tags every window in order and concatenates the outputs.
func (r *Runner) Run(ctx context.Context, instructions string, windows []Window) (Result, error) {
	res := Result{Windows: len(windows)}

	parts := make([]string, 0, len(windows))
	for _, w := range windows {
		tagged, err := r.tagWindow(ctx, instructions, w)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			r.log.Error("window failed", "window", w.Index, "pages", fmt.Sprintf("%d-%d", w.StartPage, w.EndPage), "error", err)
			res.FailedWindows = append(res.FailedWindows, w.Index)
			parts = append(parts, fmt.Sprintf("--- BATCH %d FAILED (pages %d-%d) ---", w.Index+1, w.StartPage, w.EndPage))
		} else {
			parts = append(parts, tagged)
		}

		if r.Delay > 0 && w.Index < len(windows)-1 {
			select {
			case <-time.After(r.Delay):
			case <-ctx.Done():
				return res, ctx.Err()
			}
		}
	}

	res.Text = strings.Join(parts, "\n\n")
	return res, nil
}

func (r *Runner) tagWindow(ctx context.Context, instructions string, w Window) (string, error) {
	var lastErr error
	for attempt := 0; attempt < r.MaxAttempts; attempt++ {
		start := time.Now()
		tagged, err := r.client.Tag(ctx, instructions, w.Text)
		if err == nil {
			r.stats.Record(time.Since(start).Milliseconds())
			return tagged, nil
		}
		lastErr = err
		if !IsRetryable(err) || attempt == r.MaxAttempts-1 {
			break
		}
		r.log.Warn("retryable tagging error", "window", w.Index, "attempt", attempt, "error", err)
		select {
		case <-time.After(r.backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

// Stats returns the latency snapshot for the run's successful calls.
func (r *Runner) Stats() StatsSnapshot {
	return r.stats.Snapshot()
}
