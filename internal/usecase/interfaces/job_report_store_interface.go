package interfaces

import (
	"context"

	"eldercare_billing/internal/domain/entities"
)

// IJobReportStore keeps the last report of each drift-correction job.
type IJobReportStore interface {
	Save(ctx context.Context, report entities.JobReport) error
	Last(ctx context.Context, name entities.JobName) (entities.JobReport, bool, error)
}
