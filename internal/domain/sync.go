package domain

import "fmt"

// SyncStatus classifies the outcome of one vendor order-create call.
type SyncStatus string

const (
	SyncSuccess       SyncStatus = "success"
	SyncAlreadyExists SyncStatus = "already_exists"
	SyncFailed        SyncStatus = "failed"
	SyncError         SyncStatus = "error"
)

// ClassifyStatusCode maps a vendor status code onto a SyncStatus. The mapping
// is a fixed contract with the vendor: 200 means created, 400 means the order
// already exists on the dashboard, anything else is a failure.
func ClassifyStatusCode(code int) SyncStatus {
	switch code {
	case 200:
		return SyncSuccess
	case 400:
		return SyncAlreadyExists
	default:
		return SyncFailed
	}
}

// SyncOutcome is the per-order result of a single sync attempt.
type SyncOutcome struct {
	OrderID     string     `json:"order_id"`
	OrderNumber string     `json:"order_number"`
	Status      SyncStatus `json:"status"`
	StatusCode  int        `json:"status_code"`
	Message     string     `json:"message,omitempty"`
}

// BatchSummary aggregates the outcomes of a batch sync. The three counts
// always sum to the batch size.
type BatchSummary struct {
	SuccessCount       int           `json:"success_count"`
	AlreadyExistsCount int           `json:"already_exists_count"`
	FailedCount        int           `json:"failed_count"`
	Message            string        `json:"message"`
	Outcomes           []SyncOutcome `json:"outcomes"`
}

// Summarize buckets outcomes by classification and builds the operator-facing
// message.
func Summarize(outcomes []SyncOutcome) *BatchSummary {
	s := &BatchSummary{Outcomes: outcomes}
	for _, o := range outcomes {
		switch o.Status {
		case SyncSuccess:
			s.SuccessCount++
		case SyncAlreadyExists:
			s.AlreadyExistsCount++
		default:
			s.FailedCount++
		}
	}
	s.Message = fmt.Sprintf("%d Orders synced successfully, %d Failed", s.SuccessCount, s.FailedCount)
	if s.AlreadyExistsCount > 0 {
		s.Message += fmt.Sprintf(" & %d already exist.", s.AlreadyExistsCount)
	}
	return s
}
