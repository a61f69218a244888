package storage

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

// XLSXSource reads the dataset from one sheet of an Excel workbook.
// The first row of the sheet is the header.
type XLSXSource struct {
	path  string
	sheet string
}

// NewXLSXSource returns a source for sheet in the workbook at path. An empty
// sheet name selects the first sheet.
func NewXLSXSource(path, sheet string) *XLSXSource {
	return &XLSXSource{path: path, sheet: sheet}
}

func (s *XLSXSource) Name() string {
	return s.path
}

func (s *XLSXSource) ReadTable() (dataframe.DataFrame, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("xlsx: open %q: %w", s.path, err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return dataframe.DataFrame{}, fmt.Errorf("xlsx: %q has no sheets", s.path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("xlsx: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("xlsx: sheet %q is empty", sheet)
	}

	df := dataframe.LoadRecords(padRows(rows), loadOptions()...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("xlsx: decode sheet %q: %w", sheet, df.Err)
	}
	return df, nil
}

// padRows squares off rows to the header width: short rows are padded with
// empty (NA) cells and cells beyond the header are dropped. excelize trims
// trailing empty cells, and CSV exports carry shifted rows.
func padRows(rows [][]string) [][]string {
	width := len(rows[0])
	out := make([][]string, len(rows))
	for i, row := range rows {
		r := make([]string, width)
		copy(r, row)
		out[i] = r
	}
	return out
}
