package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/payroll"
)

func testSettings() *payroll.PayrollSettings {
	return &payroll.PayrollSettings{
		PFEnabled:       true,
		PFEmployeeRate:  decimal.NewFromInt(12),
		PFEmployerRate:  decimal.NewFromInt(12),
		PFWageCeiling:   15000,
		ESIEnabled:      true,
		ESIEmployeeRate: decimal.NewFromFloat(0.75),
		ESIEmployerRate: decimal.NewFromFloat(3.25),
		ESIWageCeiling:  21000,
		TDSEnabled:      true,
	}
}

func testSlabs() []payroll.TaxSlab {
	cap1 := int64(300000)
	cap2 := int64(700000)
	return []payroll.TaxSlab{
		{MinAnnual: 0, MaxAnnual: &cap1, Rate: decimal.Zero},
		{MinAnnual: 300000, MaxAnnual: &cap2, Rate: decimal.NewFromInt(5)},
		{MinAnnual: 700000, Rate: decimal.NewFromInt(10)},
	}
}

func TestCalculateStatutory_PF(t *testing.T) {
	t.Run("wage base above ceiling is capped", func(t *testing.T) {
		settings := testSettings()
		settings.ESIEnabled = false
		settings.TDSEnabled = false

		res := payroll.CalculateStatutory(25000, 20000, settings, nil)

		// 12% of the 15000 ceiling, not of the 20000 base.
		assert.Equal(t, int64(1800), res.PFEmployee)
		assert.Equal(t, int64(1800), res.PFEmployer)
	})

	t.Run("wage base below ceiling is used as is", func(t *testing.T) {
		settings := testSettings()
		settings.ESIEnabled = false
		settings.TDSEnabled = false

		res := payroll.CalculateStatutory(12000, 10000, settings, nil)

		assert.Equal(t, int64(1200), res.PFEmployee)
		assert.Equal(t, int64(1200), res.PFEmployer)
	})

	t.Run("disabled PF contributes nothing", func(t *testing.T) {
		settings := testSettings()
		settings.PFEnabled = false
		settings.ESIEnabled = false
		settings.TDSEnabled = false

		res := payroll.CalculateStatutory(25000, 20000, settings, nil)

		assert.Zero(t, res.PFEmployee)
		assert.Zero(t, res.PFEmployer)
	})
}

func TestCalculateStatutory_ESI(t *testing.T) {
	t.Run("gross at the ceiling is eligible", func(t *testing.T) {
		settings := testSettings()
		settings.PFEnabled = false
		settings.TDSEnabled = false

		res := payroll.CalculateStatutory(21000, 0, settings, nil)

		// 0.75% and 3.25% of 21000.
		assert.Equal(t, int64(158), res.ESIEmployee)
		assert.Equal(t, int64(683), res.ESIEmployer)
	})

	t.Run("gross one unit above the ceiling drops to zero", func(t *testing.T) {
		settings := testSettings()
		settings.PFEnabled = false
		settings.TDSEnabled = false

		res := payroll.CalculateStatutory(21001, 0, settings, nil)

		assert.Zero(t, res.ESIEmployee)
		assert.Zero(t, res.ESIEmployer)
	})
}

func TestCalculateStatutory_TDS(t *testing.T) {
	t.Run("income inside the zero slab pays nothing", func(t *testing.T) {
		settings := testSettings()
		settings.PFEnabled = false
		settings.ESIEnabled = false

		// 20000/month = 240000/year, inside the 0% bracket.
		res := payroll.CalculateStatutory(20000, 0, settings, testSlabs())

		assert.Zero(t, res.TDS)
	})

	t.Run("income across two slabs is taxed progressively", func(t *testing.T) {
		settings := testSettings()
		settings.PFEnabled = false
		settings.ESIEnabled = false

		// 50000/month = 600000/year: 5% of (600000-300000) = 15000/year.
		res := payroll.CalculateStatutory(50000, 0, settings, testSlabs())

		assert.Equal(t, int64(1250), res.TDS)
	})

	t.Run("income in the open slab uses every bracket below it", func(t *testing.T) {
		settings := testSettings()
		settings.PFEnabled = false
		settings.ESIEnabled = false

		// 100000/month = 1200000/year:
		// 5% of 400000 + 10% of 500000 = 20000 + 50000 = 70000/year.
		res := payroll.CalculateStatutory(100000, 0, settings, testSlabs())

		assert.Equal(t, int64(5833), res.TDS)
	})

	t.Run("unsorted slab input still evaluates correctly", func(t *testing.T) {
		settings := testSettings()
		settings.PFEnabled = false
		settings.ESIEnabled = false

		slabs := testSlabs()
		slabs[0], slabs[2] = slabs[2], slabs[0]

		res := payroll.CalculateStatutory(50000, 0, settings, slabs)

		assert.Equal(t, int64(1250), res.TDS)
	})

	t.Run("disabled TDS pays nothing", func(t *testing.T) {
		settings := testSettings()
		settings.PFEnabled = false
		settings.ESIEnabled = false
		settings.TDSEnabled = false

		res := payroll.CalculateStatutory(100000, 0, settings, testSlabs())

		assert.Zero(t, res.TDS)
	})
}

func TestCalculateStatutory_Totals(t *testing.T) {
	t.Run("totals aggregate the individual amounts", func(t *testing.T) {
		res := payroll.CalculateStatutory(20000, 15000, testSettings(), testSlabs())

		assert.Equal(t, res.PFEmployee+res.ESIEmployee+res.TDS, res.TotalEmployeeDeductions)
		assert.Equal(t, res.PFEmployer+res.ESIEmployer, res.TotalEmployerContributions)
	})

	t.Run("nil settings produce all zeroes", func(t *testing.T) {
		res := payroll.CalculateStatutory(50000, 50000, nil, testSlabs())

		assert.Equal(t, payroll.StatutoryResult{}, res)
	})
}
