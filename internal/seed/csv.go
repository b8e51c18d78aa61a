package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/unclebandit/customer-segmentation/internal/model"
)

// ReadCSV parses customer rows. The header must name every feature using
// the JSON field names; column order and extra columns do not matter.
func ReadCSV(r io.Reader) ([]model.CustomerRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	// position of each feature in the CSV row
	cols := make([]int, len(model.FeatureNames))
	for i, name := range model.FeatureNames {
		cols[i] = -1
		for j, h := range header {
			if strings.TrimSpace(h) == name {
				cols[i] = j
				break
			}
		}
		if cols[i] < 0 {
			return nil, fmt.Errorf("missing column %s", name)
		}
	}

	var records []model.CustomerRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		var rec model.CustomerRecord
		for i, target := range rec.ScanTargets() {
			raw := strings.TrimSpace(row[cols[i]])
			switch p := target.(type) {
			case *int:
				v, err := strconv.Atoi(raw)
				if err != nil {
					return nil, fmt.Errorf("line %d, %s: %w", line, model.FeatureNames[i], err)
				}
				*p = v
			case *float64:
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, fmt.Errorf("line %d, %s: %w", line, model.FeatureNames[i], err)
				}
				*p = v
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

func LoadFile(path string) ([]model.CustomerRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadCSV(f)
}
