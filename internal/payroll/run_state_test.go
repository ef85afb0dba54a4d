package payroll

import "testing"

func TestIsAllowedStatusTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusProcessing, StatusProcessed, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusApproved, false},
		{StatusProcessed, StatusApproved, true},
		{StatusProcessed, StatusCancelled, true},
		{StatusProcessed, StatusPaid, false},
		{StatusApproved, StatusPaid, true},
		{StatusApproved, StatusCancelled, false},
		{StatusPaid, StatusCancelled, false},
		{StatusPaid, StatusApproved, false},
		{StatusCancelled, StatusProcessed, false},
	}

	for _, tc := range cases {
		if got := isAllowedStatusTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("isAllowedStatusTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
