package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// NAValues are the cell contents treated as missing when a table is decoded.
var NAValues = []string{"", "NA", "NaN", "N/A", "null"}

// TableSource is the interface any dataset backend must satisfy. ReadTable
// returns every column as a string series; NA cells are marked missing.
type TableSource interface {
	ReadTable() (dataframe.DataFrame, error)
	Name() string
}

// TableWriter is the interface for exporting a derived table.
type TableWriter interface {
	WriteRows(rows [][]string) error
	Close() error
}

// OpenSource picks a TableSource from the file extension of path.
// sheet is only used for workbooks; empty means the first sheet.
func OpenSource(path, sheet string) (TableSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return NewCSVFileSource(path), nil
	case ".xlsx", ".xlsm":
		return NewXLSXSource(path, sheet), nil
	default:
		return nil, fmt.Errorf("storage: unsupported dataset extension %q", filepath.Ext(path))
	}
}

// NewTableWriter opens a TableWriter for path, chosen by extension.
// Only CSV output is supported.
func NewTableWriter(path string, header []string) (TableWriter, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".csv" {
		return nil, fmt.Errorf("storage: unsupported export extension %q", ext)
	}
	w, err := NewCSVWriter(path, header)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func loadOptions() []dataframe.LoadOption {
	return []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(NAValues),
	}
}
