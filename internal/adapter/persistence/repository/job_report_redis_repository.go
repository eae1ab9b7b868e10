package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const jobReportKeyPrefix = "billing:jobs:"

// JobReportRedisRepository keeps the last report of each job under
// billing:jobs:<name>:last with a TTL.
type JobReportRedisRepository struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ interfaces.IJobReportStore = (*JobReportRedisRepository)(nil)

func NewJobReportRedisRepository(client redis.Cmdable, ttl time.Duration) *JobReportRedisRepository {
	return &JobReportRedisRepository{client: client, ttl: ttl}
}

func jobReportKey(name entities.JobName) string {
	return jobReportKeyPrefix + string(name) + ":last"
}

func (r *JobReportRedisRepository) Save(ctx context.Context, report entities.JobReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, jobReportKey(report.Name), raw, r.ttl).Err()
}

func (r *JobReportRedisRepository) Last(ctx context.Context, name entities.JobName) (entities.JobReport, bool, error) {
	raw, err := r.client.Get(ctx, jobReportKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entities.JobReport{}, false, nil
	}
	if err != nil {
		return entities.JobReport{}, false, err
	}
	var report entities.JobReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return entities.JobReport{}, false, err
	}
	return report, true, nil
}
