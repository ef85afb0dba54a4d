package leave

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// resolveRequestStatus derives the request status from the two approval
// gates. Approved requires the manager's yes AND, when the HR gate applies,
// HR's yes; a no from either gate rejects outright. Anything else stays
// pending, so an illegal combination like hr_approved with a rejected status
// cannot be stored.
func resolveRequestStatus(requiresHRApproval bool, managerApproved, hrApproved *bool) string {
	if managerApproved != nil && !*managerApproved {
		return StatusRejected
	}
	if hrApproved != nil && !*hrApproved {
		return StatusRejected
	}

	if managerApproved == nil || !*managerApproved {
		return StatusPending
	}
	if !requiresHRApproval {
		return StatusApproved
	}
	if hrApproved != nil && *hrApproved {
		return StatusApproved
	}
	return StatusPending
}
