package leave

import "testing"

func TestResolveRequestStatus(t *testing.T) {
	yes, no := true, false

	cases := []struct {
		name            string
		requiresHR      bool
		manager, hr     *bool
		want            string
	}{
		{"no decisions yet", true, nil, nil, StatusPending},
		{"manager approved, hr gate pending", true, &yes, nil, StatusPending},
		{"manager approved, no hr gate", false, &yes, nil, StatusApproved},
		{"both gates approved", true, &yes, &yes, StatusApproved},
		{"manager rejected", true, &no, nil, StatusRejected},
		{"manager rejected without hr gate", false, &no, nil, StatusRejected},
		{"hr rejected after manager approval", true, &yes, &no, StatusRejected},
		{"hr approved before manager", true, nil, &yes, StatusPending},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveRequestStatus(tc.requiresHR, tc.manager, tc.hr)
			if got != tc.want {
				t.Errorf("resolveRequestStatus(%v, %v, %v) = %s, want %s",
					tc.requiresHR, tc.manager, tc.hr, got, tc.want)
			}
		})
	}
}
