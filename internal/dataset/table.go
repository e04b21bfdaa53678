package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names the character set of a source file.
type Encoding string

const (
	UTF8  Encoding = "utf-8"
	EUCKR Encoding = "euc-kr"
)

// ParseEncoding normalizes an encoding name. cp949 is accepted as an alias
// of euc-kr since the x/text decoder handles the Windows superset.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-8", "utf8":
		return UTF8, nil
	case "euc-kr", "euckr", "cp949", "ms949":
		return EUCKR, nil
	}
	return "", fmt.Errorf("unsupported encoding %q", s)
}

func (e Encoding) decoder() transform.Transformer {
	if e == EUCKR {
		return korean.EUCKR.NewDecoder()
	}
	// Strips a leading UTF-8 BOM, which pandas writes with utf-8-sig.
	return unicode.BOMOverride(unicode.UTF8.NewDecoder())
}

// table iterates the data rows of a delimited file whose first column is an
// unnamed index.
type table struct {
	source string
	reader *csv.Reader
	cols   map[string]int
	record []string
	row    int
}

func openTable(source string, r io.Reader, enc Encoding, required []string) (*table, error) {
	reader := csv.NewReader(transform.NewReader(r, enc.decoder()))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, schemaError(source, required[0])
	}
	if err != nil {
		return nil, accessError(source, err)
	}

	cols := make(map[string]int, len(header))
	for i := 1; i < len(header); i++ {
		name := strings.TrimSpace(header[i])
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, schemaError(source, name)
		}
	}

	return &table{source: source, reader: reader, cols: cols}, nil
}

func (t *table) next() (bool, error) {
	record, err := t.reader.Read()
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, accessError(t.source, err)
	}
	t.record = record
	t.row++
	return true, nil
}

func (t *table) index() string {
	if len(t.record) == 0 {
		return ""
	}
	return strings.TrimSpace(t.record[0])
}

func (t *table) get(col string) string {
	i := t.cols[col]
	if i >= len(t.record) {
		return ""
	}
	return strings.TrimSpace(t.record[i])
}

const packedDateLayout = "20060102"

func (t *table) date(col string) (int, time.Time, error) {
	raw := t.get(col)
	ymd, date, err := parsePackedDate(raw)
	if err != nil {
		return 0, time.Time{}, dateError(t.source, col, t.row, raw, err)
	}
	return ymd, date, nil
}

func (t *table) integer(col string) (int64, error) {
	raw := t.get(col)
	v, err := parseInteger(raw)
	if err != nil {
		return 0, valueError(t.source, col, t.row, raw, err)
	}
	return v, nil
}

// naTokens are the cell values pandas reads as missing by default.
var naTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// missing reports whether the cell holds no value.
func (t *table) missing(col string) bool {
	_, ok := naTokens[t.get(col)]
	return ok
}

// optionalInt returns nil for a missing cell.
func (t *table) optionalInt(col string) (*int64, error) {
	if t.missing(col) {
		return nil, nil
	}
	v, err := t.integer(col)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parsePackedDate parses a YYYYMMDD numeral. A trailing ".0" left by a float
// column is tolerated; anything else that is not eight digits of a real
// calendar day is rejected.
func parsePackedDate(s string) (int, time.Time, error) {
	s = strings.TrimSuffix(s, ".0")
	if len(s) != 8 {
		return 0, time.Time{}, fmt.Errorf("want 8 digits, got %d characters", len(s))
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, time.Time{}, fmt.Errorf("non-digit %q", r)
		}
	}
	date, err := time.Parse(packedDateLayout, s)
	if err != nil {
		return 0, time.Time{}, err
	}
	ymd, _ := strconv.Atoi(s)
	return ymd, date, nil
}

// parseInteger accepts plain integers and integral floats such as "1995.0".
func parseInteger(s string) (int64, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integral number")
	}
	if f < -(1<<63) || f >= 1<<63 {
		return 0, fmt.Errorf("out of int64 range")
	}
	return int64(f), nil
}
