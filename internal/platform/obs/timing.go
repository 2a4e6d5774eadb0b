package obs

import (
	"context"
	"time"

	"itinerary-remediation-service/internal/platform/logger"
)

type ctxKey string

// RunIDKey carries the remediation run id through contexts so adapter timings
// can be correlated with the audit rows of the same run.
const RunIDKey ctxKey = "run_id"

func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

func RunID(ctx context.Context) string {
	id, _ := ctx.Value(RunIDKey).(string)
	return id
}

// Time logs the duration of an operation. Use as
//
//	defer obs.Time(ctx, log, "ors.matrix")(&err)
func Time(ctx context.Context, log *logger.Logger, name string) func(errp *error) {
	start := time.Now()
	if log == nil {
		log = logger.Nop()
	}

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Warn("operation failed", "run_id", RunID(ctx), "op", name, "dur_ms", dur.Milliseconds(), "err", *errp)
			return
		}
		log.Debug("operation done", "run_id", RunID(ctx), "op", name, "dur_ms", dur.Milliseconds())
	}
}
