package domain

// ReportQueueName is the durable queue the api publishes report jobs to and
// the report worker consumes from.
const ReportQueueName = "report_queue"

type ReportJob struct {
	To     string       `json:"to"`
	Report WeeklyReport `json:"report"`
}
