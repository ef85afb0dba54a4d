package salarycomponent_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/salarycomponent"
	componenterrors "github.com/webflowdev33/hr-haven-space-sub000/internal/salarycomponent/errors"
)

func fixedEarning(code string, sortOrder int, pf, esi bool) salarycomponent.SalaryComponent {
	return salarycomponent.SalaryComponent{
		Name:          code,
		Code:          code,
		Kind:          salarycomponent.KindEarning,
		Calc:          salarycomponent.CalcFixed,
		Taxable:       true,
		PFApplicable:  pf,
		ESIApplicable: esi,
		Active:        true,
		SortOrder:     sortOrder,
	}
}

func percentageEarning(code, base string, pct int64, sortOrder int) salarycomponent.SalaryComponent {
	p := decimal.NewFromInt(pct)
	return salarycomponent.SalaryComponent{
		Name:            code,
		Code:            code,
		Kind:            salarycomponent.KindEarning,
		Calc:            salarycomponent.CalcPercentage,
		PercentageOf:    &base,
		PercentageValue: &p,
		Taxable:         true,
		ESIApplicable:   true,
		Active:          true,
		SortOrder:       sortOrder,
	}
}

func percentageDeduction(code, base string, pct int64, sortOrder int) salarycomponent.SalaryComponent {
	p := decimal.NewFromInt(pct)
	return salarycomponent.SalaryComponent{
		Name:            code,
		Code:            code,
		Kind:            salarycomponent.KindDeduction,
		Calc:            salarycomponent.CalcPercentage,
		PercentageOf:    &base,
		PercentageValue: &p,
		Active:          true,
		SortOrder:       sortOrder,
	}
}

func TestResolve(t *testing.T) {
	t.Run("fixed components sum into gross and wage bases", func(t *testing.T) {
		components := []salarycomponent.SalaryComponent{
			fixedEarning("BASIC", 1, true, true),
			fixedEarning("SPECIAL", 4, false, true),
		}
		amounts := map[string]int64{
			"BASIC":   1500000,
			"SPECIAL": 500000,
		}

		resolved, err := salarycomponent.Resolve(components, amounts)

		assert.NoError(t, err)
		assert.Len(t, resolved.Earnings, 2)
		assert.Equal(t, int64(2000000), resolved.Gross)
		assert.Equal(t, int64(1500000), resolved.PFWageBase)
		assert.Equal(t, int64(2000000), resolved.ESIWageBase)
	})

	t.Run("percentage earning computed from its base", func(t *testing.T) {
		components := []salarycomponent.SalaryComponent{
			fixedEarning("BASIC", 1, true, true),
			percentageEarning("HRA", "BASIC", 40, 2),
		}
		amounts := map[string]int64{"BASIC": 2000000}

		resolved, err := salarycomponent.Resolve(components, amounts)

		assert.NoError(t, err)
		assert.Equal(t, "BASIC", resolved.Earnings[0].Code)
		assert.Equal(t, "HRA", resolved.Earnings[1].Code)
		assert.Equal(t, int64(800000), resolved.Earnings[1].Amount)
		assert.Equal(t, int64(2800000), resolved.Gross)
	})

	t.Run("explicit amount overrides a percentage component", func(t *testing.T) {
		components := []salarycomponent.SalaryComponent{
			fixedEarning("BASIC", 1, true, true),
			percentageEarning("HRA", "BASIC", 40, 2),
		}
		amounts := map[string]int64{
			"BASIC": 2000000,
			"HRA":   600000,
		}

		resolved, err := salarycomponent.Resolve(components, amounts)

		assert.NoError(t, err)
		assert.Equal(t, int64(600000), resolved.Earnings[1].Amount)
		assert.Equal(t, int64(2600000), resolved.Gross)
	})

	t.Run("chained percentage earnings resolve in dependency order", func(t *testing.T) {
		// COMM depends on HRA which depends on BASIC; declaration order is
		// deliberately reversed to exercise the ordering.
		components := []salarycomponent.SalaryComponent{
			percentageEarning("COMM", "HRA", 50, 3),
			percentageEarning("HRA", "BASIC", 40, 2),
			fixedEarning("BASIC", 1, true, true),
		}
		amounts := map[string]int64{"BASIC": 1000000}

		resolved, err := salarycomponent.Resolve(components, amounts)

		assert.NoError(t, err)
		assert.Equal(t, int64(400000), resolved.Earnings[1].Amount) // HRA
		assert.Equal(t, int64(200000), resolved.Earnings[2].Amount) // COMM
	})

	t.Run("percentage rounding is half away from zero", func(t *testing.T) {
		components := []salarycomponent.SalaryComponent{
			fixedEarning("BASIC", 1, true, true),
			percentageEarning("HRA", "BASIC", 40, 2),
		}
		// 40% of 1001 = 400.4 -> 400
		amounts := map[string]int64{"BASIC": 1001}

		resolved, err := salarycomponent.Resolve(components, amounts)

		assert.NoError(t, err)
		assert.Equal(t, int64(400), resolved.Earnings[1].Amount)
	})

	t.Run("cycle between percentage earnings is rejected", func(t *testing.T) {
		components := []salarycomponent.SalaryComponent{
			percentageEarning("A", "B", 50, 1),
			percentageEarning("B", "A", 50, 2),
		}

		_, err := salarycomponent.Resolve(components, nil)

		assert.ErrorIs(t, err, componenterrors.ErrComponentCycle)
	})

	t.Run("override breaks what would otherwise be a cycle", func(t *testing.T) {
		components := []salarycomponent.SalaryComponent{
			percentageEarning("A", "B", 50, 1),
			percentageEarning("B", "A", 50, 2),
		}
		amounts := map[string]int64{"A": 1000}

		resolved, err := salarycomponent.Resolve(components, amounts)

		assert.NoError(t, err)
		assert.Equal(t, int64(1000), resolved.Earnings[0].Amount)
		assert.Equal(t, int64(500), resolved.Earnings[1].Amount)
	})

	t.Run("gross base on an earning is rejected", func(t *testing.T) {
		components := []salarycomponent.SalaryComponent{
			fixedEarning("BASIC", 1, true, true),
			percentageEarning("HRA", salarycomponent.PercentageBaseGross, 40, 2),
		}
		amounts := map[string]int64{"BASIC": 1000000}

		_, err := salarycomponent.Resolve(components, amounts)

		assert.ErrorIs(t, err, componenterrors.ErrGrossBaseOnEarning)
	})

	t.Run("deduction as percentage of gross", func(t *testing.T) {
		components := []salarycomponent.SalaryComponent{
			fixedEarning("BASIC", 1, true, true),
			fixedEarning("SPECIAL", 2, false, true),
			percentageDeduction("WELFARE", salarycomponent.PercentageBaseGross, 1, 10),
		}
		amounts := map[string]int64{
			"BASIC":   600000,
			"SPECIAL": 400000,
		}

		resolved, err := salarycomponent.Resolve(components, amounts)

		assert.NoError(t, err)
		assert.Len(t, resolved.Deductions, 1)
		assert.Equal(t, int64(10000), resolved.Deductions[0].Amount)
		assert.Equal(t, int64(1000000), resolved.Gross)
	})

	t.Run("deduction as percentage of a single earning", func(t *testing.T) {
		components := []salarycomponent.SalaryComponent{
			fixedEarning("BASIC", 1, true, true),
			percentageDeduction("LOAN", "BASIC", 10, 10),
		}
		amounts := map[string]int64{"BASIC": 500000}

		resolved, err := salarycomponent.Resolve(components, amounts)

		assert.NoError(t, err)
		assert.Equal(t, int64(50000), resolved.Deductions[0].Amount)
	})

	t.Run("amount for unknown component is rejected", func(t *testing.T) {
		components := []salarycomponent.SalaryComponent{
			fixedEarning("BASIC", 1, true, true),
		}
		amounts := map[string]int64{"BASIC": 1000, "BOGUS": 500}

		_, err := salarycomponent.Resolve(components, amounts)

		assert.ErrorIs(t, err, componenterrors.ErrUnknownComponent)
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		components := []salarycomponent.SalaryComponent{
			fixedEarning("BASIC", 1, true, true),
		}
		amounts := map[string]int64{"BASIC": -1}

		_, err := salarycomponent.Resolve(components, amounts)

		assert.ErrorIs(t, err, componenterrors.ErrNegativeAmount)
	})

	t.Run("inactive components are ignored", func(t *testing.T) {
		inactive := fixedEarning("OLD", 5, false, false)
		inactive.Active = false
		components := []salarycomponent.SalaryComponent{
			fixedEarning("BASIC", 1, true, true),
			inactive,
		}
		amounts := map[string]int64{"BASIC": 1000}

		resolved, err := salarycomponent.Resolve(components, amounts)

		assert.NoError(t, err)
		assert.Len(t, resolved.Earnings, 1)
		assert.Equal(t, int64(1000), resolved.Gross)
	})

	t.Run("unknown percentage base is rejected", func(t *testing.T) {
		components := []salarycomponent.SalaryComponent{
			percentageEarning("HRA", "MISSING", 40, 2),
		}

		_, err := salarycomponent.Resolve(components, nil)

		assert.ErrorIs(t, err, componenterrors.ErrUnknownPercentageBase)
	})
}
