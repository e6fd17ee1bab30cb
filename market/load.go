package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// LoadCloses reads a date,close CSV into a PriceSeries. The first column is
// ignored beyond ordering (the file is assumed oldest-first); a header row
// starting with "date" is skipped. Files ending in .xz or .lzma are
// decompressed on the fly, which is how archived close windows are shipped.
func LoadCloses(path, symbol string) (PriceSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return PriceSeries{}, err
	}
	defer f.Close()

	var r io.Reader = f
	switch {
	case strings.HasSuffix(path, ".xz"):
		r, err = xz.NewReader(f)
	case strings.HasSuffix(path, ".lzma"):
		r, err = lzma.NewReader(f)
	}
	if err != nil {
		return PriceSeries{}, fmt.Errorf("open %s: %w", path, err)
	}

	series, err := ReadCloses(r, symbol)
	if err != nil {
		return PriceSeries{}, fmt.Errorf("read %s: %w", path, err)
	}
	return series, nil
}

// ReadCloses parses date,close rows from r. Rows with a single column are
// treated as bare closes.
func ReadCloses(r io.Reader, symbol string) (PriceSeries, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	series := PriceSeries{Symbol: symbol}
	first := true

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return PriceSeries{}, err
		}
		if len(row) == 0 {
			continue
		}
		if first {
			first = false
			if strings.EqualFold(strings.TrimSpace(row[0]), "date") {
				continue
			}
		}

		field := row[0]
		if len(row) > 1 {
			field = row[1]
		}
		c, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return PriceSeries{}, fmt.Errorf("bad close %q: %w", field, err)
		}
		series.Closes = append(series.Closes, c)
	}

	if err := series.Validate(); err != nil {
		return PriceSeries{}, err
	}
	return series, nil
}
