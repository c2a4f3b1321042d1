package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/augmenter/pkg/domain"
)

// LoggingHooks returns hooks that audit shaping calls and configuration builds to logger.
// Failed calls are logged at Warn, everything else at Debug.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnShapeEnd: func(ctx context.Context, ev *domain.ShapeEvent) {
			if ev.Err != nil {
				logger.WarnContext(ctx, "shape failed", "root_type", ev.RootType, "duration", ev.Duration, "error", ev.Err)
				return
			}
			logger.DebugContext(ctx, "shape completed", "root_type", ev.RootType, "duration", ev.Duration)
		},
		OnResolve: func(ev *domain.ResolveEvent) {
			logger.Debug("type configuration resolved", "type", ev.TypeName, "declared", ev.Declared, "bases", ev.Bases)
		},
	}
}
