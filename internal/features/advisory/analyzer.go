package advisory

import (
	"context"

	"github.com/crimewatch/crimewatch-api/internal/features/reports"
)

// Analyzer produces an opaque fake-report assessment for a crime report.
//
// The output is surfaced to moderators as-is: it is never parsed and never
// feeds the verification score. Implementations are external scorers; the
// handler bounds them with a deadline and maps any failure to a 503 so a
// broken scorer cannot touch the vote/verification path.
type Analyzer interface {
	Analyze(ctx context.Context, report *reports.CrimeReport) (string, error)
}
