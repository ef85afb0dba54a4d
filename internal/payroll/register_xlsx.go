package payroll

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// buildRegisterXLSX renders one row per payslip plus a totals row.
func buildRegisterXLSX(run *PayrollRun, payslips []Payslip) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Payroll Register"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Payroll Register %s", run.RunNumber))
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Period %s to %s, pay date %s",
		run.PeriodStart.Format("2006-01-02"),
		run.PeriodEnd.Format("2006-01-02"),
		run.PayDate.Format("2006-01-02"),
	))

	headers := []string{
		"Employee Code", "Employee Name", "Gross Earnings",
		"Total Deductions", "Employer PF", "Employer ESI", "Net Pay",
	}
	for i, h := range headers {
		cell := fmt.Sprintf("%c4", 'A'+i)
		f.SetCellValue(sheetName, cell, h)
	}

	for idx, slip := range payslips {
		row := idx + 5
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), slip.EmployeeCode)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), slip.EmployeeName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), slip.GrossEarnings)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), slip.TotalDeductions)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), slip.EmployerPF)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), slip.EmployerESI)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), slip.NetPay)
	}

	totalRow := len(payslips) + 5
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", totalRow), "Total")
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", totalRow), run.TotalGross)
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", totalRow), run.TotalDeductions)
	f.SetCellValue(sheetName, fmt.Sprintf("G%d", totalRow), run.TotalNet)

	f.SetColWidth(sheetName, "A", "A", 16)
	f.SetColWidth(sheetName, "B", "B", 28)
	f.SetColWidth(sheetName, "C", "G", 16)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
