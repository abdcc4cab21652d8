package interfaces

import (
	"context"

	"ea-sentinel/internal/types"
)

// Commentator turns an analysis report into qualitative prose.
type Commentator interface {
	Comment(ctx context.Context, report types.AnalysisReport) (string, error)
}
