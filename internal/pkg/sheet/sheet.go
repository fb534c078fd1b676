package sheet

import (
	"fmt"
	"io"

	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

// Statement layout, 0-based rows.
const (
	OrganizationRow = 0
	TitleRow        = 2
	CaptionRow      = 4
	HeaderRow       = 6
	FirstDataRow    = 7
)

// FooterRow is the row right after the last data row. An empty statement keeps
// row 7 blank and puts the footer on row 8, same as a single-row statement.
func FooterRow(rows int) int {
	return FirstDataRow + max(rows, 1)
}

// SignatureRow follows the footer.
func SignatureRow(rows int) int {
	return FooterRow(rows) + 1
}

// Render writes the statement into a single-sheet workbook.
func Render(r report.Report) ([]byte, error) {
	f, err := build(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Write streams the statement workbook to w.
func Write(w io.Writer, r report.Report) error {
	f, err := build(r)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func build(r report.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	name := r.Title
	if name == "" {
		name = report.Title
	}
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		f.Close()
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	w := &sheetWriter{f: f, sheet: name}
	w.text(0, OrganizationRow, r.OrganizationName)
	w.text(0, TitleRow, r.Title)
	w.text(0, CaptionRow, r.Caption)
	for col, title := range r.Header {
		w.text(col, HeaderRow, title)
	}
	for i, row := range r.Rows {
		w.row(FirstDataRow+i, row)
	}
	w.row(FooterRow(len(r.Rows)), r.Footer)
	w.text(0, SignatureRow(len(r.Rows)), r.Signature)

	if w.err != nil {
		f.Close()
		return nil, w.err
	}
	return f, nil
}

// sheetWriter keeps the first error so the layout code reads top to bottom.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(col, row int, value any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		w.err = fmt.Errorf("cell address (%d, %d): %w", col, row, err)
		return
	}
	if err := w.f.SetCellValue(w.sheet, cell, value); err != nil {
		w.err = fmt.Errorf("set %s: %w", cell, err)
	}
}

func (w *sheetWriter) text(col, row int, s string) {
	if s == "" {
		return
	}
	w.set(col, row, s)
}

func (w *sheetWriter) row(row int, cells report.Row) {
	for col, c := range cells {
		switch c.Type {
		case report.CellInt:
			w.set(col, row, c.Int)
		case report.CellDecimal:
			w.set(col, row, c.Decimal.StringFixed(2))
		case report.CellText:
			w.text(col, row, c.Text)
		}
	}
}
