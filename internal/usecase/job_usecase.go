package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/logger"
	"eldercare_billing/internal/usecase/interfaces"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Job is one drift-correction batch.
type Job interface {
	Name() entities.JobName
	Run(ctx context.Context) (entities.JobReport, error)
}

// IJobUseCase runs drift-correction jobs and exposes their last report.
type IJobUseCase interface {
	Run(ctx context.Context, name entities.JobName) (entities.JobReport, error)
	Last(ctx context.Context, name entities.JobName) (entities.JobReport, bool, error)
}

type JobUseCase struct {
	jobs           map[entities.JobName]Job
	reports        interfaces.IJobReportStore
	alertThreshold int
	now            func() time.Time
	log            zerolog.Logger
}

var _ IJobUseCase = (*JobUseCase)(nil)

func NewJobUseCase(reports interfaces.IJobReportStore, alertThreshold int, jobs ...Job) *JobUseCase {
	byName := make(map[entities.JobName]Job, len(jobs))
	for _, j := range jobs {
		byName[j.Name()] = j
	}
	return &JobUseCase{
		jobs:           byName,
		reports:        reports,
		alertThreshold: alertThreshold,
		now:            time.Now,
		log:            logger.WithComponent("jobs.runner"),
	}
}

// Run executes the job and stores its report. A job-level failure is
// reported in FatalError rather than returned.
func (u *JobUseCase) Run(ctx context.Context, name entities.JobName) (entities.JobReport, error) {
	job, ok := u.jobs[name]
	if !ok {
		return entities.JobReport{}, ErrUnknownJob
	}

	started := u.now().UTC()
	u.log.Info().Str("job", string(name)).Msg("job started")
	report, err := job.Run(ctx)
	report.Name = name
	report.StartedAt = started
	report.FinishedAt = u.now().UTC()
	if err != nil {
		report.FatalError = err.Error()
	}
	report.Alert = report.FatalError != "" || (u.alertThreshold > 0 && report.Failed >= u.alertThreshold)

	evt := u.log.Info()
	if report.Alert {
		evt = u.log.Error()
	}
	evt.Str("job", string(name)).
		Int("tenants", report.Tenants).
		Int("processed", report.Processed).
		Int("succeeded", report.Succeeded).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Bool("alert", report.Alert).
		Str("fatal_error", report.FatalError).
		Interface("failures", report.Failures).
		Dur("elapsed", report.FinishedAt.Sub(report.StartedAt)).
		Msg("job finished")

	if u.reports != nil {
		if err := u.reports.Save(ctx, report); err != nil {
			u.log.Warn().Err(err).Str("job", string(name)).Msg("failed to store job report")
		}
	}
	return report, nil
}

func (u *JobUseCase) Last(ctx context.Context, name entities.JobName) (entities.JobReport, bool, error) {
	if !name.Valid() {
		return entities.JobReport{}, false, ErrUnknownJob
	}
	return u.reports.Last(ctx, name)
}

// tally collects one tenant's contribution to a job report.
type tally struct {
	tenantID string
	report   entities.JobReport
}

func (t *tally) skip() {
	t.report.Processed++
	t.report.Skipped++
}

func (t *tally) ok() {
	t.report.Processed++
	t.report.Succeeded++
}

func (t *tally) fail(ref string, err error) {
	t.report.Processed++
	t.report.Failed++
	t.report.Failures = append(t.report.Failures, entities.JobFailure{TenantID: t.tenantID, Ref: ref, Error: err.Error()})
}

// tenantFailure records an error that prevented a tenant from being
// processed at all.
func (t *tally) tenantFailure(err error) {
	t.report.Failed++
	t.report.Failures = append(t.report.Failures, entities.JobFailure{TenantID: t.tenantID, Ref: "tenant:" + t.tenantID, Error: err.Error()})
}

// forEachTenant fans out over active tenants, one goroutine each, and merges
// the per-tenant tallies. Items inside a tenant are handled by fn in order.
func forEachTenant(ctx context.Context, tenants interfaces.ITenantRepository, fn func(ctx context.Context, t entities.Tenant, tl *tally)) (entities.JobReport, error) {
	list, err := tenants.ListActive(ctx)
	if err != nil {
		return entities.JobReport{}, fmt.Errorf("list tenants: %w", err)
	}

	var (
		mu     sync.Mutex
		merged = entities.JobReport{Tenants: len(list)}
		g      errgroup.Group
	)
	for _, t := range list {
		t := t
		g.Go(func() error {
			tl := &tally{tenantID: t.ID}
			fn(ctx, t, tl)

			mu.Lock()
			defer mu.Unlock()
			merged.Processed += tl.report.Processed
			merged.Succeeded += tl.report.Succeeded
			merged.Skipped += tl.report.Skipped
			merged.Failed += tl.report.Failed
			merged.Paid += tl.report.Paid
			merged.Overdue += tl.report.Overdue
			merged.Failures = append(merged.Failures, tl.report.Failures...)
			return nil
		})
	}
	_ = g.Wait()
	return merged, nil
}
