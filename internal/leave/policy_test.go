package leave_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/leave"
)

func testPolicy() leave.LeavePolicy {
	return leave.LeavePolicy{
		ProbationMonths:       6,
		MinDaysAdvancePlanned: 3,
		ProbationUnpaid:       true,
	}
}

func paidAnnualType() leave.LeaveType {
	return leave.LeaveType{
		Name:        "Annual Leave",
		DaysPerYear: 18,
		IsPaid:      true,
	}
}

func baseInput() leave.EvaluateInput {
	today := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	return leave.EvaluateInput{
		TenureMonths:     24,
		Category:         leave.CategoryConfirmed,
		Policy:           testPolicy(),
		LeaveType:        paidAnnualType(),
		Today:            today,
		StartDate:        today.AddDate(0, 0, 7),
		TotalDays:        2,
		AvailableBalance: 10,
		AccruedBalance:   10,
	}
}

func TestEvaluate_Classification(t *testing.T) {
	t.Run("sufficient notice is planned, manager only", func(t *testing.T) {
		in := baseInput()
		in.StartDate = in.Today.AddDate(0, 0, 3)

		result := leave.Evaluate(in)

		assert.True(t, result.IsValid)
		assert.Equal(t, leave.RequestTypePlanned, result.RequestType)
		assert.False(t, result.RequiresHRApproval)
	})

	t.Run("two days notice against a three day minimum is unplanned", func(t *testing.T) {
		in := baseInput()
		in.StartDate = in.Today.AddDate(0, 0, 2)

		result := leave.Evaluate(in)

		assert.True(t, result.IsValid)
		assert.Equal(t, leave.RequestTypeUnplanned, result.RequestType)
		assert.True(t, result.RequiresHRApproval)
	})

	t.Run("emergency flag wins regardless of notice", func(t *testing.T) {
		in := baseInput()
		in.StartDate = in.Today.AddDate(0, 0, 2)
		in.Emergency = true

		result := leave.Evaluate(in)

		assert.Equal(t, leave.RequestTypeEmergency, result.RequestType)
		assert.True(t, result.RequiresHRApproval)
	})

	t.Run("emergency with long notice is still emergency", func(t *testing.T) {
		in := baseInput()
		in.StartDate = in.Today.AddDate(0, 0, 30)
		in.Emergency = true

		result := leave.Evaluate(in)

		assert.Equal(t, leave.RequestTypeEmergency, result.RequestType)
	})
}

func TestEvaluate_PaidDowngrade(t *testing.T) {
	t.Run("confirmed employee keeps the paid flag", func(t *testing.T) {
		result := leave.Evaluate(baseInput())

		assert.True(t, result.IsPaid)
		assert.Nil(t, result.AutoUnpaidReason)
	})

	t.Run("probation employee is downgraded when policy says so", func(t *testing.T) {
		in := baseInput()
		in.Category = leave.CategoryProbation
		in.TenureMonths = 2

		result := leave.Evaluate(in)

		assert.False(t, result.IsPaid)
		if assert.NotNil(t, result.AutoUnpaidReason) {
			assert.Contains(t, *result.AutoUnpaidReason, "probation")
		}
	})

	t.Run("confirmed but short tenure still counts as probation", func(t *testing.T) {
		in := baseInput()
		in.Category = leave.CategoryConfirmed
		in.TenureMonths = 3

		result := leave.Evaluate(in)

		assert.False(t, result.IsPaid)
	})

	t.Run("unplanned downgraded only when the policy flag is on", func(t *testing.T) {
		in := baseInput()
		in.StartDate = in.Today.AddDate(0, 0, 1)

		result := leave.Evaluate(in)
		assert.True(t, result.IsPaid)

		in.Policy.UnplannedDefaultUnpaid = true
		result = leave.Evaluate(in)
		assert.False(t, result.IsPaid)
		if assert.NotNil(t, result.AutoUnpaidReason) {
			assert.Contains(t, *result.AutoUnpaidReason, "unplanned")
		}
	})

	t.Run("emergency downgraded only when the policy flag is on", func(t *testing.T) {
		in := baseInput()
		in.Emergency = true
		in.Policy.EmergencyDefaultUnpaid = true

		result := leave.Evaluate(in)

		assert.False(t, result.IsPaid)
	})

	t.Run("unpaid leave type never records a downgrade reason", func(t *testing.T) {
		in := baseInput()
		in.LeaveType.IsPaid = false
		in.Category = leave.CategoryProbation

		result := leave.Evaluate(in)

		assert.False(t, result.IsPaid)
		assert.Nil(t, result.AutoUnpaidReason)
	})
}

func TestEvaluate_BalanceChecks(t *testing.T) {
	t.Run("insufficient balance rejects", func(t *testing.T) {
		in := baseInput()
		in.TotalDays = 3
		in.AvailableBalance = 2
		in.AccruedBalance = 2

		result := leave.Evaluate(in)

		assert.False(t, result.IsValid)
		assert.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "available balance")
	})

	t.Run("negative balance allowance lifts the rejection", func(t *testing.T) {
		in := baseInput()
		in.TotalDays = 3
		in.AvailableBalance = 2
		in.AccruedBalance = 2
		in.Policy.AllowNegativeBalance = true

		result := leave.Evaluate(in)

		assert.True(t, result.IsValid)
		assert.Empty(t, result.Errors)
		assert.NotEmpty(t, result.Warnings)
	})

	t.Run("accrued overrun is a warning, not an error", func(t *testing.T) {
		in := baseInput()
		in.TotalDays = 8
		in.AvailableBalance = 10
		in.AccruedBalance = 6

		result := leave.Evaluate(in)

		assert.True(t, result.IsValid)
		assert.Empty(t, result.Errors)
		assert.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "accrued")
	})

	t.Run("zero days rejected", func(t *testing.T) {
		in := baseInput()
		in.TotalDays = 0

		result := leave.Evaluate(in)

		assert.False(t, result.IsValid)
	})
}

func TestLeaveType_AccruedDays(t *testing.T) {
	annual := leave.LeaveType{DaysPerYear: 12}
	monthly := leave.LeaveType{IsMonthlyQuota: true, MonthlyLimit: 1.5}

	assert.Equal(t, 0.0, annual.AccruedDays(0))
	assert.Equal(t, 6.0, annual.AccruedDays(6))
	assert.Equal(t, 12.0, annual.AccruedDays(12))
	assert.Equal(t, 12.0, annual.AccruedDays(15))
	assert.Equal(t, 4.5, monthly.AccruedDays(3))
	assert.Equal(t, 18.0, monthly.AnnualAllocation())
	assert.Equal(t, 12.0, annual.AnnualAllocation())
}
