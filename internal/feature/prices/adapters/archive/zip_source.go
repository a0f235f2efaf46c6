// Package archive reads zipped per-symbol CSV price files from a data directory.
package archive

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"stock_api/internal/feature/prices/domain/entity"
	"stock_api/internal/feature/prices/usecase"
)

// dateLayouts are tried in order for the Date column.
var dateLayouts = []string{"02-Jan-2006", "2006-01-02"}

var _ usecase.ArchiveSource = (*ZipSource)(nil)

// ZipSource lists the *.zip files of a directory.
type ZipSource struct {
	dir string
}

func NewZipSource(dir string) *ZipSource {
	return &ZipSource{dir: dir}
}

// List returns the archive paths sorted by name.
func (s *ZipSource) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir %s: %w", s.dir, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".zip") {
			continue
		}
		out = append(out, filepath.Join(s.dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// Read streams every CSV file of the archive to emit.
func (s *ZipSource) Read(ctx context.Context, archive string, emit func(entity.PriceRecord) error) (int, error) {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return 0, fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	archiveMarket := entity.MarketFromName(filepath.Base(archive))
	skipped := 0
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(f.Name), ".csv") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return skipped, err
		}

		market := entity.MarketFromName(filepath.Base(f.Name))
		if market == entity.MarketUnknown {
			market = archiveMarket
		}

		n, err := readCSV(f, market, emit)
		skipped += n
		if err != nil {
			return skipped, fmt.Errorf("%s: %w", f.Name, err)
		}
	}
	return skipped, nil
}

func readCSV(f *zip.File, market entity.Market, emit func(entity.PriceRecord) error) (int, error) {
	rc, err := f.Open()
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	fallback := strings.ToUpper(strings.TrimSuffix(filepath.Base(f.Name), filepath.Ext(f.Name)))
	return parseCSV(rc, f.Name, market, fallback, emit)
}

// columns holds header positions; symbol is -1 when the file has no symbol column.
type columns struct {
	date, symbol, open, high, low, close, volume int
}

func parseHeader(header []string) (columns, error) {
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}

	c := columns{symbol: -1, volume: -1}
	if i, ok := idx["symbol"]; ok {
		c.symbol = i
	} else if i, ok := idx["stock_symbol"]; ok {
		c.symbol = i
	}
	if i, ok := idx["volume"]; ok {
		c.volume = i
	}

	required := []struct {
		name string
		dst  *int
	}{
		{"date", &c.date},
		{"open", &c.open},
		{"high", &c.high},
		{"low", &c.low},
		{"close", &c.close},
	}
	for _, r := range required {
		i, ok := idx[r.name]
		if !ok {
			return columns{}, fmt.Errorf("missing column %q", r.name)
		}
		*r.dst = i
	}
	return c, nil
}

// parseCSV emits valid rows and counts the malformed ones.
func parseCSV(r io.Reader, name string, market entity.Market, fallbackSymbol string, emit func(entity.PriceRecord) error) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	cols, err := parseHeader(header)
	if err != nil {
		return 0, err
	}

	skipped := 0
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return skipped, nil
		}
		line++
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				skipped++
				continue
			}
			return skipped, err
		}

		rec, err := parseRow(row, cols, market, fallbackSymbol)
		if err != nil {
			slog.Warn("skip malformed row", "file", name, "line", line, "error", err)
			skipped++
			continue
		}
		if err := emit(rec); err != nil {
			return skipped, err
		}
	}
}

func parseRow(row []string, c columns, market entity.Market, fallbackSymbol string) (entity.PriceRecord, error) {
	field := func(i int) (string, error) {
		if i >= len(row) {
			return "", fmt.Errorf("row has %d fields, need %d", len(row), i+1)
		}
		return strings.TrimSpace(row[i]), nil
	}

	rawDate, err := field(c.date)
	if err != nil {
		return entity.PriceRecord{}, err
	}
	date, err := parseDate(rawDate)
	if err != nil {
		return entity.PriceRecord{}, err
	}

	symbol := fallbackSymbol
	if c.symbol >= 0 {
		if symbol, err = field(c.symbol); err != nil {
			return entity.PriceRecord{}, err
		}
		symbol = strings.ToUpper(symbol)
	}
	if symbol == "" {
		return entity.PriceRecord{}, errors.New("empty symbol")
	}

	var prices [4]float64
	for i, col := range []int{c.open, c.high, c.low, c.close} {
		raw, err := field(col)
		if err != nil {
			return entity.PriceRecord{}, err
		}
		if prices[i], err = strconv.ParseFloat(raw, 64); err != nil {
			return entity.PriceRecord{}, fmt.Errorf("parse price %q: %w", raw, err)
		}
	}

	var volume int64
	if c.volume >= 0 {
		raw, err := field(c.volume)
		if err != nil {
			return entity.PriceRecord{}, err
		}
		if raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return entity.PriceRecord{}, fmt.Errorf("parse volume %q: %w", raw, err)
			}
			volume = int64(v)
		}
	}

	return entity.PriceRecord{
		Market: market,
		Symbol: symbol,
		Date:   date,
		Open:   prices[0],
		High:   prices[1],
		Low:    prices[2],
		Close:  prices[3],
		Volume: volume,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
