package job

// Status is a named stage in the job lifecycle.
type Status string

const (
	StatusPending        Status = "Pending"
	StatusConfirmed      Status = "Confirmed"
	StatusDesign         Status = "Design"
	StatusPrinting       Status = "Printing"
	StatusFinishing      Status = "Finishing"
	StatusQualityCheck   Status = "Quality Check"
	StatusReady          Status = "Ready"
	StatusOutForDelivery Status = "Out for Delivery"
	StatusCompleted      Status = "Completed"

	// StatusCancelled sits outside the fixed sequence; a cancelled job has
	// no progress.
	StatusCancelled Status = "Cancelled"
)

// StageOrder is the fixed ordered sequence of production stages. Progress is
// a linear function of position in this list.
var StageOrder = []Status{
	StatusPending,
	StatusConfirmed,
	StatusDesign,
	StatusPrinting,
	StatusFinishing,
	StatusQualityCheck,
	StatusReady,
	StatusOutForDelivery,
	StatusCompleted,
}

// Progress returns the linear completion percentage for a status:
// (index+1)/len(StageOrder)*100. Statuses outside the fixed sequence,
// including Cancelled and unknown strings, yield 0.
func Progress(s Status) float64 {
	for i, stage := range StageOrder {
		if stage == s {
			return float64(i+1) / float64(len(StageOrder)) * 100
		}
	}
	return 0
}

// IsAssignable reports whether a status may be written to a job. Any stage
// in the fixed sequence may be assigned at any time — moving backward or
// skipping stages is a deliberate staff override — plus Cancelled.
func IsAssignable(s Status) bool {
	if s == StatusCancelled {
		return true
	}
	for _, stage := range StageOrder {
		if stage == s {
			return true
		}
	}
	return false
}
