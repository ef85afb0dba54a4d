package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
)

// StatutoryResult carries the statutory amounts for a single employee's
// month, all in the smallest currency unit.
type StatutoryResult struct {
	PFEmployee  int64
	PFEmployer  int64
	ESIEmployee int64
	ESIEmployer int64
	TDS         int64

	TotalEmployeeDeductions    int64
	TotalEmployerContributions int64
}

var (
	decimalHundred = decimal.NewFromInt(100)
	decimalTwelve  = decimal.NewFromInt(12)
)

// CalculateStatutory computes PF, ESI and TDS for one employee month.
//
// PF is computed on the PF wage base capped at the configured ceiling. ESI is
// an eligibility cliff: at or below the ceiling both shares are computed on
// gross, above it both are exactly zero. TDS evaluates the configured slab
// table progressively over annualised gross and divides back to a month.
//
// A company without settings gets zeroes across the board: payroll must not
// guess statutory rates.
func CalculateStatutory(gross, pfWageBase int64, settings *PayrollSettings, slabs []TaxSlab) StatutoryResult {
	var out StatutoryResult
	if settings == nil {
		return out
	}

	if settings.PFEnabled && pfWageBase > 0 {
		base := pfWageBase
		if settings.PFWageCeiling > 0 && base > settings.PFWageCeiling {
			base = settings.PFWageCeiling
		}
		out.PFEmployee = shareOf(base, settings.PFEmployeeRate)
		out.PFEmployer = shareOf(base, settings.PFEmployerRate)
	}

	if settings.ESIEnabled && gross > 0 && gross <= settings.ESIWageCeiling {
		out.ESIEmployee = shareOf(gross, settings.ESIEmployeeRate)
		out.ESIEmployer = shareOf(gross, settings.ESIEmployerRate)
	}

	if settings.TDSEnabled {
		out.TDS = monthlyTDS(gross, slabs)
	}

	out.TotalEmployeeDeductions = out.PFEmployee + out.ESIEmployee + out.TDS
	out.TotalEmployerContributions = out.PFEmployer + out.ESIEmployer

	return out
}

func shareOf(base int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(base).
		Mul(rate).
		Div(decimalHundred).
		Round(0).
		IntPart()
}

// monthlyTDS annualises the monthly gross, walks the slab table
// progressively and returns one twelfth of the annual tax.
func monthlyTDS(gross int64, slabs []TaxSlab) int64 {
	if gross <= 0 || len(slabs) == 0 {
		return 0
	}

	ordered := make([]TaxSlab, len(slabs))
	copy(ordered, slabs)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].MinAnnual < ordered[j].MinAnnual
	})

	annual := gross * 12
	tax := decimal.Zero

	for _, slab := range ordered {
		if annual <= slab.MinAnnual {
			break
		}
		upper := annual
		if slab.MaxAnnual != nil && *slab.MaxAnnual < upper {
			upper = *slab.MaxAnnual
		}
		taxable := upper - slab.MinAnnual
		if taxable <= 0 {
			continue
		}
		tax = tax.Add(decimal.NewFromInt(taxable).Mul(slab.Rate).Div(decimalHundred))
	}

	return tax.Div(decimalTwelve).Round(0).IntPart()
}
