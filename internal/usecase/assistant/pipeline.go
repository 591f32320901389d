package assistant

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// stagePolicy decides what a stage failure does to the request
type stagePolicy int

const (
	// abortOnError ends the request with the stage error
	abortOnError stagePolicy = iota
	// degradeOnError logs the error and continues with the stage's fallback result
	degradeOnError
)

func (p stagePolicy) String() string {
	if p == degradeOnError {
		return "degrade"
	}
	return "abort"
}

type stage[S any] struct {
	name   string
	policy stagePolicy
	run    func(ctx context.Context, state *S) error
}

// runStages executes every stage exactly once, in order
func runStages[S any](ctx context.Context, state *S, stages ...stage[S]) error {
	for _, st := range stages {
		ctxzap.Debug(ctx, "pipeline stage started", zap.String("stage", st.name))

		err := st.run(ctx, state)
		if err == nil {
			continue
		}

		if st.policy == degradeOnError {
			ctxzap.Warn(ctx, "pipeline stage degraded",
				zap.String("stage", st.name),
				zap.Error(err),
			)
			continue
		}

		ctxzap.Error(ctx, "pipeline stage failed",
			zap.String("stage", st.name),
			zap.String("policy", st.policy.String()),
			zap.Error(err),
		)
		return fmt.Errorf("%s: %w", st.name, err)
	}

	return nil
}
