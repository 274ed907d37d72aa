package export

import (
	"fmt"
	"strings"

	"github.com/jmoroz/cookbook-backend/internal/app/service"
	"github.com/xuri/excelize/v2"
)

// ShoppingListText renders the consolidated totals as plain text, one
// line per (name, unit) pair in the order the aggregator produced.
func ShoppingListText(totals []service.IngredientTotal) string {
	var b strings.Builder
	for _, total := range totals {
		fmt.Fprintf(&b, "%s (%s) - %d\n", total.Name, total.Unit, total.Amount)
	}
	return b.String()
}

// ShoppingListXLSX renders the totals as an xlsx workbook with a header
// row, returned as raw bytes ready to stream to the client.
func ShoppingListXLSX(totals []service.IngredientTotal) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	headers := []string{"Ingredient", "Unit", "Amount"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, total := range totals {
		values := []interface{}{total.Name, total.Unit, total.Amount}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
