package citius

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer serializes a record set to two sibling files, one delimited
// and one structured, holding the identical logical content. Both
// files are created even for an empty set: a search that ran must
// leave evidence that it ran.
type Writer struct{}

// Write derives `<base>.csv` and `<base>.json` from the base name
// (stripping any extension it came with) and writes both. A failure
// on one format does not stop the other.
func (w Writer) Write(records []Record, base string) (csvPath, jsonPath string, err error) {
	base = strings.TrimSuffix(base, filepath.Ext(base))
	csvPath = base + ".csv"
	jsonPath = base + ".json"

	if dir := filepath.Dir(base); dir != "." {
		if mkdirErr := os.MkdirAll(dir, 0755); mkdirErr != nil {
			return csvPath, jsonPath, fmt.Errorf("output directory: %v: %w", mkdirErr, ErrPersistence)
		}
	}

	csvErr := writeCsv(records, csvPath)
	jsonErr := writeJson(records, jsonPath)
	return csvPath, jsonPath, errors.Join(csvErr, jsonErr)
}

func writeCsv(records []Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %v: %w", path, err, ErrPersistence)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(recordFields); err != nil {
		return fmt.Errorf("write %s: %v: %w", path, err, ErrPersistence)
	}
	for _, rec := range records {
		row := []string{
			rec.Court,
			rec.Process,
			rec.Date,
			rec.Act,
			rec.Description,
			rec.Parties,
			rec.Status,
			strings.Join(rec.Links, "; "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s: %v: %w", path, err, ErrPersistence)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %v: %w", path, err, ErrPersistence)
	}
	return nil
}

func writeJson(records []Record, path string) error {
	if records == nil {
		records = []Record{}
	}
	contents, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %v: %w", path, err, ErrPersistence)
	}
	err = os.WriteFile(path, contents, 0644)
	if err != nil {
		return fmt.Errorf("write %s: %v: %w", path, err, ErrPersistence)
	}
	return nil
}
