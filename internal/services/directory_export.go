package services

import (
	"bytes"
	"fmt"

	"github.com/prefeitura-rio/bot-massagistas/internal/models"
	"github.com/xuri/excelize/v2"
)

// ExportSheetName is the worksheet name used in directory exports
const ExportSheetName = "Massagistas"

// ExportDirectoryXLSX renders the directory as a spreadsheet with the same
// header row and column order as the storage tab.
func ExportDirectoryXLSX(entries []models.DirectoryEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(ExportSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeRow(f, 1, models.DirectoryHeaders()); err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(models.DirectoryColumnCount, 1)
	if err := f.SetCellStyle(ExportSheetName, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}
	if err := f.SetColWidth(ExportSheetName, "A", "G", 22); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	for i, entry := range entries {
		if err := writeRow(f, i+2, entry.ToRow()); err != nil {
			return nil, err
		}
	}

	if err := f.SetPanes(ExportSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(ExportSheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
