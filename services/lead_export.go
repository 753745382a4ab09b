package services

import (
	"bytes"
	"fmt"

	"lawyer_landing_go/models"

	"github.com/xuri/excelize/v2"
)

const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	leadsSheet      = "Contatos"
)

var leadExportHeaders = []string{"Data", "Nome", "E-mail", "Telefone", "Assunto", "Mensagem", "Origem"}

// BuildLeadWorkbook writes the leads into a single-sheet workbook, one row per lead
func BuildLeadWorkbook(leads []models.Lead) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", leadsSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	dateStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("dd/mm/yyyy hh:mm")})

	for i, header := range leadExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(leadsSheet, cell, header)
	}
	f.SetCellStyle(leadsSheet, "A1", "G1", headerStyle)

	for i, lead := range leads {
		row := i + 2
		values := []interface{}{
			lead.CreatedAt.In(saoPaulo),
			lead.Name,
			lead.Email,
			lead.Phone,
			lead.Subject,
			lead.Message,
			lead.Source,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(leadsSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", cell, err)
			}
		}
		cell := fmt.Sprintf("A%d", row)
		f.SetCellStyle(leadsSheet, cell, cell, dateStyle)
	}

	f.SetColWidth(leadsSheet, "A", "A", 18)
	f.SetColWidth(leadsSheet, "B", "E", 24)
	f.SetColWidth(leadsSheet, "F", "F", 60)
	f.SetPanes(leadsSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func strPtr(s string) *string { return &s }
