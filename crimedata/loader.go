package crimedata

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"go-kiezmap/cache"
	"go-kiezmap/config"
	"go-kiezmap/logger"
	"go-kiezmap/types"
)

var (
	ErrNoHeader       = errors.New("no header row")
	ErrDistrictColumn = errors.New("district column not found")
	ErrTotalColumn    = errors.New("total offences column not found")
)

type Options struct {
	Sheet          string
	SkipRows       int
	Districts      []string
	DistrictColumn HeaderMatcher
	TotalColumn    HeaderMatcher
}

// OptionsFromProfile wires the profile's allow-list and header candidates.
func OptionsFromProfile(p config.Profile) Options {
	return Options{
		Sheet:          p.Crime.Sheet,
		SkipRows:       p.Crime.SkipRows,
		Districts:      p.Districts,
		DistrictColumn: RankedFromFragments(p.Crime.DistrictHeaders),
		TotalColumn:    RankedFromFragments(p.Crime.TotalHeaders),
	}
}

type Loader struct {
	opts  Options
	allow map[string]bool
	memo  *cache.Memo
	log   *logger.Logger
}

func NewLoader(opts Options, memo *cache.Memo, log *logger.Logger) *Loader {
	allow := make(map[string]bool, len(opts.Districts))
	for _, d := range opts.Districts {
		allow[d] = true
	}
	return &Loader{opts: opts, allow: allow, memo: memo, log: log.With("component", "CrimeLoader")}
}

// Load returns the normalized table for path. It never fails: unusable input yields an empty table.
// Non-empty tables are memoized per path.
func (l *Loader) Load(ctx context.Context, path string) types.CrimeTable {
	return cache.Remember(ctx, l.memo, "crime:"+path, func(ctx context.Context) (types.CrimeTable, bool) {
		table, err := l.parse(path)
		if err != nil {
			l.log.Warn("crime data unusable", "path", path, "error", err)
			return types.CrimeTable{}, false
		}
		l.log.Info("crime data loaded", "path", path, "districts", len(table.Rows))
		return table, !table.Empty()
	})
}

func (l *Loader) parse(path string) (types.CrimeTable, error) {
	records, err := readRecords(path, l.opts.Sheet)
	if err != nil {
		return types.CrimeTable{}, err
	}
	return l.Normalize(records)
}

// Normalize turns raw sheet records (title block, header, data rows) into the two-column table.
func (l *Loader) Normalize(records [][]string) (types.CrimeTable, error) {
	skip := l.opts.SkipRows
	if len(records) <= skip {
		return types.CrimeTable{}, fmt.Errorf("%w after %d title rows", ErrNoHeader, skip)
	}

	header := make([]string, len(records[skip]))
	for i, h := range records[skip] {
		header[i] = NormalizeHeader(h)
	}

	districtCol, ok := l.opts.DistrictColumn.Match(header)
	if !ok {
		return types.CrimeTable{}, fmt.Errorf("%w in %q", ErrDistrictColumn, header)
	}
	totalCol, ok := l.opts.TotalColumn.Match(header)
	if !ok {
		return types.CrimeTable{}, fmt.Errorf("%w in %q", ErrTotalColumn, header)
	}

	table := types.CrimeTable{}
	seen := make(map[string]bool, len(l.allow))
	for _, row := range records[skip+1:] {
		district := strings.TrimSpace(cell(row, districtCol))
		if !l.allow[district] || seen[district] {
			continue
		}
		seen[district] = true
		table.Rows = append(table.Rows, types.CrimeRow{
			District:   district,
			TotalCrime: coerce(cell(row, totalCol)),
		})
	}
	return table, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// coerce parses a count; anything unparseable, non-finite or negative becomes 0.
func coerce(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func readRecords(path, sheet string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	default:
		return readWorkbook(path, sheet)
	}
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv file: %w", err)
	}
	return records, nil
}

func readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading rows of sheet %q: %w", sheet, err)
	}
	return rows, nil
}
