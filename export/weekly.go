// Package export renders weekly payroll summaries to a spreadsheet. The
// product started life inside a shared sheet, so payroll still expects one.
package export

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/xuri/excelize/v2"

	"fichaje.app/fichaje/shifts"
)

const sheetName = "Resumen Semanal"

// WriteWeeklySummary renders one week of summaries as an xlsx workbook.
func WriteWeeklySummary(w io.Writer, summaries []shifts.WeeklySummary, window shifts.WeekWindow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return fmt.Errorf("title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	anomalyStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "CC0000", Bold: true},
	})
	if err != nil {
		return fmt.Errorf("anomaly style: %w", err)
	}

	title := fmt.Sprintf("Semana %s - %s",
		window.Start.Format("02 Jan 2006"),
		window.End.Add(-time.Second).Format("02 Jan 2006"))
	f.SetCellValue(sheetName, "A1", title)
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	headers := []string{"Empleado", "Horas", "Pago estimado", "Turnos", "Anomalías"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	row := 4
	for _, s := range summaries {
		f.SetCellValue(sheetName, cellRef(1, row), s.Employee.FullName)
		f.SetCellValue(sheetName, cellRef(2, row), round2(s.TotalHours))
		f.SetCellValue(sheetName, cellRef(3, row), round2(s.EstimatedPay))
		f.SetCellValue(sheetName, cellRef(4, row), len(s.Shifts))
		if s.HasAnomalousShift {
			f.SetCellValue(sheetName, cellRef(5, row), "Sí")
			f.SetCellStyle(sheetName, cellRef(5, row), cellRef(5, row), anomalyStyle)
		} else {
			f.SetCellValue(sheetName, cellRef(5, row), "No")
		}
		row++
	}

	f.SetColWidth(sheetName, "A", "A", 28)
	f.SetColWidth(sheetName, "B", "E", 14)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func cellRef(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
