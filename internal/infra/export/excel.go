package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	domproduct "example.com/productgrid/internal/domain/product"
	griduc "example.com/productgrid/internal/usecase/grid"
)

const (
	ExcelFileName    = "MyExcelExport.xlsx"
	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	excelSheet       = "Products"
)

// ExcelExporter writes the dataset as a single-sheet workbook.
type ExcelExporter struct {
	FileName string
}

func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{FileName: ExcelFileName}
}

func (e *ExcelExporter) Export(ctx context.Context, products []domproduct.Product, columns []griduc.Column) (*griduc.Document, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), excelSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#F5F5F5"}},
	})
	if err != nil {
		return nil, err
	}
	currencyFmt := `"$"#,##0.00`
	currencyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFmt})
	if err != nil {
		return nil, err
	}
	numberFmt := `#,##0.00`
	numberStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numberFmt})
	if err != nil {
		return nil, err
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(excelSheet, cell, col.Title); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(excelSheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for r, p := range products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i, col := range columns {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return nil, err
			}
			value, _ := p.FieldValue(col.Field)
			if err := f.SetCellValue(excelSheet, cell, excelValue(value)); err != nil {
				return nil, fmt.Errorf("set %s: %w", cell, err)
			}
			style := 0
			switch col.Format {
			case FormatCurrency:
				style = currencyStyle
			case FormatNumber:
				style = numberStyle
			}
			if style != 0 {
				if err := f.SetCellStyle(excelSheet, cell, cell, style); err != nil {
					return nil, err
				}
			}
		}
	}

	if len(columns) > 0 {
		last, err := excelize.ColumnNumberToName(len(columns))
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(excelSheet, "A", last, 20); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	name := e.FileName
	if name == "" {
		name = ExcelFileName
	}
	return &griduc.Document{FileName: name, ContentType: ExcelContentType, Data: buf.Bytes()}, nil
}

// excelValue keeps numbers numeric so spreadsheet formulas work on them.
func excelValue(value any) any {
	switch v := value.(type) {
	case nil:
		return ""
	case interface{ InexactFloat64() float64 }:
		return v.InexactFloat64()
	}
	return value
}
