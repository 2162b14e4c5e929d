package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/numthm/internal/book"
	"github.com/dgallion1/numthm/internal/config"
	"github.com/dgallion1/numthm/internal/envs"
	"github.com/dgallion1/numthm/internal/ingest"
	"github.com/dgallion1/numthm/internal/publish"
	"github.com/dgallion1/numthm/internal/transform"
)

// Worker processes a single book transformation job.
type Worker struct {
	publisher *publish.Client
	stats     *transform.Stats
	log       *slog.Logger

	ingestOpts ingest.Options
	custom     []envs.Spec
}

func NewWorker(cfg config.Config, publisher *publish.Client, stats *transform.Stats, log *slog.Logger) *Worker {
	// Config is validated at startup; a parse failure here means the
	// environment changed under us, so fall back to built-ins only.
	custom, err := cfg.CustomEnvs()
	if err != nil {
		log.Error("invalid CUSTOM_ENVS, using built-ins only", "error", err)
		custom = nil
	}
	return &Worker{
		publisher: publisher,
		stats:     stats,
		log:       log,
		ingestOpts: ingest.Options{
			PDFFallbackPdftotext: cfg.PDFFallbackPdftotext,
		},
		custom: custom,
	}
}

// Process runs the full pipeline for a job: ingest, transform, publish.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "book_id", job.BookID)

	// Phase 1: Ingest
	job.SetStatus(StatusIngesting, "ingesting")
	b, err := ingest.FromUpload(job.FileData(), job.Filename, w.ingestOpts)
	if err != nil {
		log.Error("ingest failed", "error", err)
		job.AddError(fmt.Sprintf("ingest: %s", err))
		job.SetStatus(StatusFailed, "ingesting")
		return
	}

	chapters := 0
	b.Walk(func(c *book.Chapter) {
		if !c.IsDraft() {
			chapters++
		}
	})
	if chapters == 0 {
		log.Warn("no chapters to transform")
		job.AddError("book has no non-draft chapters")
		job.SetStatus(StatusFailed, "ingesting")
		return
	}

	// Phase 2: Transform (pass 1 numbering, pass 2 reference resolution).
	job.SetStatus(StatusTransforming, "transforming")
	start := time.Now()
	res, err := transform.Run(b, transform.Options{
		Prefix: job.Prefix,
		Custom: w.custom,
	})
	if err != nil {
		// Fatal: no output is kept on this path.
		log.Error("transform failed", "error", err)
		job.AddError(fmt.Sprintf("transform: %s", err))
		job.SetStatus(StatusFailed, "transforming")
		return
	}
	w.stats.Record(time.Since(start))

	job.SetCounts(chapters, res.Environments, res.LabelsDefined, res.RefsResolved, len(res.Warnings))
	job.SetResult(b, res.Warnings)
	for _, warn := range res.Warnings {
		log.Warn("transform warning", "message", warn.Message, "path", warn.Path)
	}
	log.Info("transform complete",
		"chapters", chapters,
		"environments", res.Environments,
		"labels", res.LabelsDefined,
		"refs", res.RefsResolved,
		"warnings", len(res.Warnings),
	)

	// Phase 3: Publish (optional).
	if !w.publisher.Enabled() {
		job.SetStatus(StatusCompleted, "done")
		return
	}

	job.SetStatus(StatusPublishing, "publishing")
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		lastErr = w.publisher.PublishResult(ctx, job.BookID, b, res.Warnings)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable publish error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			lastErr = ctx.Err()
		}
		if ctx.Err() != nil {
			break
		}
	}
	if lastErr != nil {
		// The transformed book is still available from the job store.
		log.Error("publish failed", "error", lastErr)
		job.AddError(fmt.Sprintf("publish: %s", lastErr))
		job.SetStatus(StatusPartial, "publishing")
		return
	}

	job.SetStatus(StatusCompleted, "done")
}
