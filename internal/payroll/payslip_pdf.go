package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/salarycomponent"
)

func buildPayslipPDF(run *PayrollRun, slip *Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Payslip %s", run.RunNumber))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", slip.EmployeeName, slip.EmployeeCode))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s to %s",
		run.PeriodStart.Format("2006-01-02"),
		run.PeriodEnd.Format("2006-01-02"),
	))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Pay date: %s", run.PayDate.Format("2006-01-02")))
	pdf.Ln(6)
	if slip.BankName != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Bank: %s %s", slip.BankName, slip.BankAccountNumber))
		pdf.Ln(6)
	}
	if slip.PAN != "" {
		pdf.Cell(0, 7, fmt.Sprintf("PAN: %s", slip.PAN))
		pdf.Ln(6)
	}
	if slip.UAN != "" {
		pdf.Cell(0, 7, fmt.Sprintf("UAN: %s", slip.UAN))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	writeSection := func(title, kind string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, item := range slip.LineItems {
			if item.Kind != kind {
				continue
			}
			pdf.Cell(120, 6, item.Name)
			pdf.CellFormat(50, 6, formatAmount(item.Amount), "", 0, "R", false, 0, "")
			pdf.Ln(6)
		}
		pdf.Ln(3)
	}

	writeSection("Earnings", salarycomponent.KindEarning)
	writeSection("Deductions", salarycomponent.KindDeduction)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(120, 7, "Gross Earnings")
	pdf.CellFormat(50, 7, formatAmount(slip.GrossEarnings), "", 0, "R", false, 0, "")
	pdf.Ln(7)
	pdf.Cell(120, 7, "Total Deductions")
	pdf.CellFormat(50, 7, formatAmount(slip.TotalDeductions), "", 0, "R", false, 0, "")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(120, 9, "Net Pay")
	pdf.CellFormat(50, 9, formatAmount(slip.NetPay), "", 0, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatAmount(v int64) string {
	return fmt.Sprintf("%d", v)
}
