package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
)

// CSVSource reads the dataset from a comma-separated file or stream.
type CSVSource struct {
	path string
	r    io.Reader
}

// NewCSVFileSource returns a source that opens path on every ReadTable call.
func NewCSVFileSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// NewCSVSource returns a source reading from r. r is consumed by the first
// ReadTable call.
func NewCSVSource(r io.Reader) *CSVSource {
	return &CSVSource{r: r}
}

func (s *CSVSource) Name() string {
	if s.path != "" {
		return s.path
	}
	return "<stream>"
}

// ReadTable decodes every record. Rows narrower or wider than the header are
// squared off to it, so a shifted row still yields one table row.
func (s *CSVSource) ReadTable() (dataframe.DataFrame, error) {
	r := s.r
	if s.path != "" {
		f, err := os.Open(s.path)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("csv: open %q: %w", s.path, err)
		}
		defer f.Close()
		r = f
	}
	if r == nil {
		return dataframe.DataFrame{}, fmt.Errorf("csv: no input configured")
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("csv: read %s: %w", s.Name(), err)
	}
	if len(records) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("csv: %s is empty", s.Name())
	}

	df := dataframe.LoadRecords(padRows(records), loadOptions()...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("csv: decode %s: %w", s.Name(), df.Err)
	}
	return df, nil
}
