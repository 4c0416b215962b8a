// Package loader reads the tab-separated config-directory files and
// builds the domain objects the solver consumes.
package loader

import (
	"fmt"
	"os"
	"strings"
)

// Tsv is a parsed tab-separated file: a header row naming columns and
// data rows with exactly as many fields.
type Tsv struct {
	path          string
	headerFields  []string
	headerToIndex map[string]int
	rows          [][]string
}

// Row is a cheap handle onto one data row of a Tsv.
type Row struct {
	tsv   *Tsv
	index int
}

func splitLine(line string) []string {
	return strings.Split(line, "\t")
}

// ParseTsv parses file contents; path is only used in error messages.
func ParseTsv(path, contents string) (*Tsv, error) {
	lines := strings.Split(strings.TrimRight(contents, "\n"), "\n")

	headerFields := splitLine(lines[0])
	headerToIndex := make(map[string]int, len(headerFields))
	for i, field := range headerFields {
		headerToIndex[field] = i
	}

	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := splitLine(line)
		if len(fields) != len(headerFields) {
			return nil, fmt.Errorf("row %q has %d fields, but the header for TSV %s has %d fields",
				line, len(fields), path, len(headerFields))
		}
		rows = append(rows, fields)
	}

	return &Tsv{
		path:          path,
		headerFields:  headerFields,
		headerToIndex: headerToIndex,
		rows:          rows,
	}, nil
}

// ReadTsv loads and parses the file at path.
func ReadTsv(path string) (*Tsv, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseTsv(path, string(contents))
}

// HasColumn reports whether the header names the column; optional
// columns are probed with this before Get.
func (t *Tsv) HasColumn(name string) bool {
	_, ok := t.headerToIndex[name]
	return ok
}

// Rows returns a handle per data row.
func (t *Tsv) Rows() []Row {
	rows := make([]Row, len(t.rows))
	for i := range rows {
		rows[i] = Row{tsv: t, index: i}
	}
	return rows
}

// Get returns the cell under the named column, or an error naming the
// file and the missing column.
func (r Row) Get(field string) (string, error) {
	index, ok := r.tsv.headerToIndex[field]
	if !ok {
		return "", fmt.Errorf("the TSV %q is missing the field %q", r.tsv.path, field)
	}
	return r.tsv.rows[r.index][index], nil
}
