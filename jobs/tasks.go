package jobs

import "github.com/hibiken/asynq"

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"

	// TaskQuoteExpirySweep marks open quotes past their validity as expired.
	TaskQuoteExpirySweep = "sales:quote_expiry"
	// TaskEventOverdueSweep marks pending tender milestones past their date as late.
	TaskEventOverdueSweep = "tenders:event_overdue"
	// TaskReportWarmup precomputes the current-month report after invalidation.
	TaskReportWarmup = "reports:warmup"
)

// NewQuoteExpiryTask constructs the quote expiry sweep task.
func NewQuoteExpiryTask() *asynq.Task {
	return asynq.NewTask(TaskQuoteExpirySweep, nil)
}

// NewEventOverdueTask constructs the milestone overdue sweep task.
func NewEventOverdueTask() *asynq.Task {
	return asynq.NewTask(TaskEventOverdueSweep, nil)
}

// NewReportWarmupTask constructs the report warmup task.
func NewReportWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskReportWarmup, nil)
}
