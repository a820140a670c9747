package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/highburybarber/booking-api/internal/calendar"
)

const sheetName = "Ventas"

// ToExcel renders a summary as a spreadsheet: one row per sale followed by
// the aggregate blocks.
func ToExcel(s *Summary) (*excelize.File, error) {
	f := excelize.NewFile()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{"Fecha", "Hora", "Cliente", "Servicio", "Barbero", "Monto"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	row := 2
	for _, sale := range s.Sales {
		values := []any{
			sale.Date.Format(calendar.DateLayout),
			calendar.SlotLabel(sale.TimeSlot),
			sale.ClientName,
			sale.ServiceName,
			sale.EmployeeName,
			sale.Amount,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
		row++
	}

	row++
	if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Total"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), s.Total); err != nil {
		return nil, err
	}
	row += 2

	if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Por Barbero"); err != nil {
		return nil, err
	}
	row++
	for _, e := range s.PerEmployee {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), e.EmployeeName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.Count)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), e.Total)
		row++
	}
	row++

	if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Por Servicio"); err != nil {
		return nil, err
	}
	row++
	for _, sv := range s.PerService {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), sv.ServiceName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), sv.Count)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), sv.Total)
		row++
	}

	return f, nil
}
