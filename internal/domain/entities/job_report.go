package entities

import "time"

type JobName string

const (
	JobSubscriptionSync  JobName = "subscription-sync"
	JobPaymentSync       JobName = "payment-sync"
	JobInvoiceGeneration JobName = "invoice-generation"
)

func (n JobName) Valid() bool {
	switch n {
	case JobSubscriptionSync, JobPaymentSync, JobInvoiceGeneration:
		return true
	}
	return false
}

// JobFailure is one item that failed inside a batch.
type JobFailure struct {
	TenantID string `json:"tenant_id,omitempty"`
	Ref      string `json:"ref"`
	Error    string `json:"error"`
}

// JobReport aggregates the outcome of one drift-correction run.
type JobReport struct {
	Name       JobName      `json:"name"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Tenants    int          `json:"tenants"`
	Processed  int          `json:"processed"`
	Succeeded  int          `json:"succeeded"`
	Skipped    int          `json:"skipped"`
	Failed     int          `json:"failed"`
	Paid       int          `json:"paid,omitempty"`
	Overdue    int          `json:"overdue,omitempty"`
	Failures   []JobFailure `json:"failures,omitempty"`
	Alert      bool         `json:"alert"`
	FatalError string       `json:"fatal_error,omitempty"`
}
