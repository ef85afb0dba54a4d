package payroll

const (
	StatusProcessing = "PROCESSING"
	StatusProcessed  = "PROCESSED"
	StatusApproved   = "APPROVED"
	StatusPaid       = "PAID"
	StatusCancelled  = "CANCELLED"
)

// isAllowedStatusTransition encodes the run lifecycle:
// processing -> processed -> approved -> paid, with cancellation possible
// before approval. Paid and cancelled are terminal.
func isAllowedStatusTransition(from, to string) bool {
	switch from {
	case StatusProcessing:
		return to == StatusProcessed || to == StatusCancelled
	case StatusProcessed:
		return to == StatusApproved || to == StatusCancelled
	case StatusApproved:
		return to == StatusPaid
	default:
		return false
	}
}
