package employee

import (
	"context"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportSheetName = "Employees"

var exportColumns = []struct {
	Header string
	Width  float64
}{
	{"Employee ID", 15},
	{"Name", 25},
	{"Email", 30},
	{"Phone", 15},
	{"Designation", 20},
	{"Department", 20},
	{"Joining Date", 15},
	{"Leaving Date", 15},
	{"Current CTC", 15},
	{"Status", 10},
}

// ExportExcel renders the full directory as an .xlsx workbook and returns the
// raw file bytes. The handler sets the download headers.
func (s *service) ExportExcel(ctx context.Context) ([]byte, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("export employees query failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheetName); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E6E6FA"}},
	})
	if err != nil {
		return nil, err
	}

	for i, col := range exportColumns {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		cell := colName + "1"
		if err := f.SetCellValue(exportSheetName, cell, col.Header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(exportSheetName, cell, cell, headerStyle); err != nil {
			return nil, err
		}
		if err := f.SetColWidth(exportSheetName, colName, colName, col.Width); err != nil {
			return nil, err
		}
	}

	for i, e := range employees {
		leavingDate := ""
		if e.LeavingDate != nil {
			leavingDate = e.LeavingDate.Format(employeeDateLayout)
		}
		row := []interface{}{
			e.EmployeeID,
			e.FullName,
			e.Email,
			e.Phone,
			e.Designation,
			e.Department,
			e.JoiningDate.Format(employeeDateLayout),
			leavingDate,
			e.CurrentCTC,
			e.Status,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("export employees write workbook failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("export employees success", zap.Int("rows", len(employees)))
	return buf.Bytes(), nil
}
