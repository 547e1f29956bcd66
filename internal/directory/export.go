package directory

import (
	"io"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Employees"

var exportHeaders = []string{"ID", "Name", "Email", "Phone", "Department", "Position", "Hire Date", "Salary", "Address"}

// ExportXLSX 把当前可见的列表写成 xlsx，日期和薪资保留为可计算的单元格
func ExportXLSX(w io.Writer, employees []*domain.Employee) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 15}) // d-mmm-yy
	if err != nil {
		return err
	}
	salaryStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return err
	}

	for i, h := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(exportSheet, "A1", "I1", headerStyle); err != nil {
		return err
	}

	for i, e := range employees {
		row := i + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []any{e.ID, e.Name, e.Email, e.Phone, string(e.Department), e.Position, e.HireDate, e.Salary, e.Address}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return err
		}
	}

	if n := len(employees); n > 0 {
		last := n + 1
		dateFrom, _ := excelize.CoordinatesToCellName(7, 2)
		dateTo, _ := excelize.CoordinatesToCellName(7, last)
		if err := f.SetCellStyle(exportSheet, dateFrom, dateTo, dateStyle); err != nil {
			return err
		}
		salaryFrom, _ := excelize.CoordinatesToCellName(8, 2)
		salaryTo, _ := excelize.CoordinatesToCellName(8, last)
		if err := f.SetCellStyle(exportSheet, salaryFrom, salaryTo, salaryStyle); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "A", 10); err != nil {
		return err
	}
	if err := f.SetColWidth(exportSheet, "B", "I", 22); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
