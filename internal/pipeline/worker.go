package pipeline

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Dee-Wang-92/Physician-MB/internal/layout"
	"github.com/Dee-Wang-92/Physician-MB/internal/marker"
	"github.com/Dee-Wang-92/Physician-MB/internal/source"
)

// Worker converts a single queued schedule.
type Worker struct {
	rules   *marker.Ruleset
	cache   *lru.Cache[string, cachedResult]
	totals  *runTotals
	log     *slog.Logger
	backend source.Backend
}

func newWorker(rules *marker.Ruleset, cache *lru.Cache[string, cachedResult], totals *runTotals, log *slog.Logger, backend source.Backend) *Worker {
	return &Worker{
		rules:   rules,
		cache:   cache,
		totals:  totals,
		log:     log,
		backend: backend,
	}
}

// Process runs the full conversion for a job: extract lines, insert
// markers, tally. Identical uploads are answered from the result cache.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	data := job.FileData()
	key := cacheKey(data, job.Filename)
	job.SetContentHash(key)

	if res, ok := w.cache.Get(key); ok {
		job.SetExtracted(res.Pages, res.Lines)
		job.SetResult(res.Output, res.Stats, true)
		job.SetStatus(StatusCompleted, "done")
		w.totals.addCompleted(len(res.Output), res.Stats, true)
		log.Info("conversion served from cache", "lines_out", len(res.Output))
		return
	}

	// Phase 1: extract lines.
	job.SetStatus(StatusExtracting, "extracting")
	src, err := source.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		w.fail(job, err.Error(), "extracting")
		return
	}
	if pdf, ok := src.(*source.PDFSource); ok {
		pdf.Backend = w.backend
	}

	lines, err := src.Extract(bytes.NewReader(data), job.Filename)
	if err != nil {
		log.Error("extraction failed", "error", err)
		w.fail(job, fmt.Sprintf("extract: %s", err), "extracting")
		return
	}
	if len(lines) == 0 {
		log.Warn("no lines extracted")
		w.fail(job, "no extractable content", "extracting")
		return
	}
	pages := len(layout.Pages(lines))
	job.SetExtracted(pages, len(lines))
	log.Info("extracted schedule", "pages", pages, "lines", len(lines))

	// Phase 2: mark.
	job.SetStatus(StatusMarking, "marking")
	if err := ctx.Err(); err != nil {
		w.fail(job, err.Error(), "marking")
		return
	}
	output := marker.NewInserter(w.rules).Mark(lines)
	stats := w.rules.CountStats(output)

	w.cache.Add(key, cachedResult{
		Output: output,
		Stats:  stats,
		Pages:  pages,
		Lines:  len(lines),
	})
	job.SetResult(output, stats, false)
	job.SetStatus(StatusCompleted, "done")
	w.totals.addCompleted(len(output), stats, false)
	log.Info("conversion complete",
		"lines_in", len(lines),
		"lines_out", len(output),
		"markers", stats.Markers(),
		"codes", stats.Codes)
}

func (w *Worker) fail(job *Job, msg, phase string) {
	job.AddError(msg)
	job.SetStatus(StatusFailed, phase)
	w.totals.addFailed()
}

// cacheKey hashes the raw bytes together with the file extension: the
// same bytes extract differently under a different Source.
func cacheKey(data []byte, filename string) string {
	h := sha256.New()
	h.Write(data)
	h.Write([]byte(strings.ToLower(filepath.Ext(filename))))
	return fmt.Sprintf("%x", h.Sum(nil))
}
