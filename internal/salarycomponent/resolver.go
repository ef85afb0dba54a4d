package salarycomponent

import (
	"sort"

	"github.com/shopspring/decimal"

	componenterrors "github.com/webflowdev33/hr-haven-space-sub000/internal/salarycomponent/errors"
)

// ResolvedLine is one concrete earning or deduction amount for an employee.
type ResolvedLine struct {
	Code          string
	Name          string
	Kind          string
	Amount        int64
	SortOrder     int
	Taxable       bool
	PFApplicable  bool
	ESIApplicable bool
}

type ResolvedSalary struct {
	Earnings   []ResolvedLine
	Deductions []ResolvedLine

	// Gross is the sum of all earning amounts.
	Gross int64
	// PFWageBase is the sum of earning amounts flagged pf_applicable.
	PFWageBase int64
	// ESIWageBase is the sum of earning amounts flagged esi_applicable.
	ESIWageBase int64
}

// Resolve expands a company's component set plus the per-employee amounts
// into concrete pay lines.
//
// An explicit amount always wins, for fixed and percentage components alike.
// Percentage components without an explicit amount are computed from their
// base in dependency order: earnings may only reference other earnings
// (a gross base would be circular), deductions may reference an earning or
// GROSS. Cycles among the computed components are rejected.
func Resolve(components []SalaryComponent, amounts map[string]int64) (ResolvedSalary, error) {
	byCode := make(map[string]*SalaryComponent, len(components))
	var earnings, deductions []*SalaryComponent
	for i := range components {
		c := &components[i]
		if !c.Active {
			continue
		}
		byCode[c.Code] = c
		switch c.Kind {
		case KindDeduction:
			deductions = append(deductions, c)
		default:
			earnings = append(earnings, c)
		}
	}

	for code, amount := range amounts {
		if _, ok := byCode[code]; !ok {
			return ResolvedSalary{}, componenterrors.ErrUnknownComponent
		}
		if amount < 0 {
			return ResolvedSalary{}, componenterrors.ErrNegativeAmount
		}
	}

	ordered, err := orderEarnings(earnings, amounts)
	if err != nil {
		return ResolvedSalary{}, err
	}

	resolved := make(map[string]int64, len(byCode))
	var out ResolvedSalary

	for _, c := range ordered {
		amount, ok := amounts[c.Code]
		if !ok && c.Calc == CalcPercentage {
			base, ok := resolved[*c.PercentageOf]
			if !ok {
				return ResolvedSalary{}, componenterrors.ErrUnknownPercentageBase
			}
			amount = percentageOf(base, *c.PercentageValue)
		}
		resolved[c.Code] = amount

		out.Earnings = append(out.Earnings, toLine(c, amount))
		out.Gross += amount
		if c.PFApplicable {
			out.PFWageBase += amount
		}
		if c.ESIApplicable {
			out.ESIWageBase += amount
		}
	}

	for _, c := range deductions {
		amount, ok := amounts[c.Code]
		if !ok && c.Calc == CalcPercentage {
			if c.PercentageOf == nil || c.PercentageValue == nil {
				return ResolvedSalary{}, componenterrors.ErrPercentageBaseRequired
			}
			switch {
			case *c.PercentageOf == PercentageBaseGross:
				amount = percentageOf(out.Gross, *c.PercentageValue)
			default:
				base, ok := resolved[*c.PercentageOf]
				if !ok {
					return ResolvedSalary{}, componenterrors.ErrUnknownPercentageBase
				}
				amount = percentageOf(base, *c.PercentageValue)
			}
		}
		out.Deductions = append(out.Deductions, toLine(c, amount))
	}

	sortLines(out.Earnings)
	sortLines(out.Deductions)

	return out, nil
}

// orderEarnings returns the earning components in dependency order so a
// percentage component is always evaluated after its base. Only components
// that will actually be computed (no explicit amount) contribute edges; a
// cycle among them is a configuration error.
func orderEarnings(earnings []*SalaryComponent, amounts map[string]int64) ([]*SalaryComponent, error) {
	byCode := make(map[string]*SalaryComponent, len(earnings))
	for _, c := range earnings {
		byCode[c.Code] = c
	}

	indegree := make(map[string]int, len(earnings))
	dependents := make(map[string][]string, len(earnings))

	for _, c := range earnings {
		indegree[c.Code] += 0
		if _, ok := amounts[c.Code]; ok {
			continue
		}
		if c.Calc != CalcPercentage {
			continue
		}
		if c.PercentageOf == nil || c.PercentageValue == nil {
			return nil, componenterrors.ErrPercentageBaseRequired
		}
		if *c.PercentageOf == PercentageBaseGross {
			return nil, componenterrors.ErrGrossBaseOnEarning
		}
		base, ok := byCode[*c.PercentageOf]
		if !ok || base.Kind == KindDeduction {
			return nil, componenterrors.ErrUnknownPercentageBase
		}
		dependents[base.Code] = append(dependents[base.Code], c.Code)
		indegree[c.Code]++
	}

	queue := make([]string, 0, len(earnings))
	for _, c := range earnings {
		if indegree[c.Code] == 0 {
			queue = append(queue, c.Code)
		}
	}
	sort.Strings(queue)

	ordered := make([]*SalaryComponent, 0, len(earnings))
	for len(queue) > 0 {
		code := queue[0]
		queue = queue[1:]
		ordered = append(ordered, byCode[code])

		for _, dep := range dependents[code] {
			indegree[dep]--
			if indegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(ordered) != len(earnings) {
		return nil, componenterrors.ErrComponentCycle
	}

	return ordered, nil
}

func percentageOf(base int64, pct decimal.Decimal) int64 {
	return decimal.NewFromInt(base).
		Mul(pct).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

func toLine(c *SalaryComponent, amount int64) ResolvedLine {
	return ResolvedLine{
		Code:          c.Code,
		Name:          c.Name,
		Kind:          c.Kind,
		Amount:        amount,
		SortOrder:     c.SortOrder,
		Taxable:       c.Taxable,
		PFApplicable:  c.PFApplicable,
		ESIApplicable: c.ESIApplicable,
	}
}

func sortLines(lines []ResolvedLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].SortOrder < lines[j].SortOrder
	})
}
