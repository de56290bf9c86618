// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Phantosirius/steam-dashboard/internal/games"
)

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// RequiredColumns must be present in the CSV header (matched case-insensitively,
// spaces and underscores equivalent).
var RequiredColumns = []string{"AppID", "Name", "Positive", "Negative", "Genres"}

// Row is one parsed CSV line. Record holds the raw values only: genres are
// not parsed and derived fields are not computed yet.
type Row struct {
	Record games.GameRecord
	// Line is the 1-based line number in the source, header included.
	Line int
}

// column keys after normalizeHeader
const (
	colAppID       = "appid"
	colName        = "name"
	colReleaseDate = "release_date"
	colReleaseYear = "release_year"
	colDeveloper   = "developer"
	colPublisher   = "publisher"
	colPositive    = "positive"
	colNegative    = "negative"
	colGenres      = "genres"
	colTags        = "tags"
	colPrice       = "price"
	colDiscount    = "discount"
	colDLCCount    = "dlc_count"
	colWindows     = "windows"
	colMac         = "mac"
	colLinux       = "linux"
)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// releaseDateLayouts are tried in order before falling back to yearPattern.
var releaseDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"Jan 2, 2006",
	"2 Jan, 2006",
	"Jan 2006",
	"2006",
}

// ReadCSV reads a header-driven games CSV. Unknown columns are ignored,
// optional columns default to zero values, and malformed numeric cells read
// as 0. Release_year is derived from Release_date when the column is absent
// or the cell is empty.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty dataset: %w", ErrMissingColumn)
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	for _, col := range RequiredColumns {
		if _, ok := index[normalizeHeader(col)]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var rows []Row
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		get := func(key string) string {
			i, ok := index[key]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		rec := games.GameRecord{
			ID:          parseInt(get(colAppID)),
			Name:        get(colName),
			ReleaseDate: get(colReleaseDate),
			Developer:   get(colDeveloper),
			Publisher:   get(colPublisher),
			RawGenres:   get(colGenres),
			Tags:        get(colTags),
			Positive:    parseInt(get(colPositive)),
			Negative:    parseInt(get(colNegative)),
			Price:       parseFloat(get(colPrice)),
			Discount:    parseFloat(get(colDiscount)),
			DLCCount:    int(parseInt(get(colDLCCount))),
			Windows:     parseBool(get(colWindows)),
			Mac:         parseBool(get(colMac)),
			Linux:       parseBool(get(colLinux)),
		}

		rec.ReleaseYear = int(parseInt(get(colReleaseYear)))
		if rec.ReleaseYear == 0 {
			rec.ReleaseYear = YearFromDate(rec.ReleaseDate)
		}

		rows = append(rows, Row{Record: rec, Line: line})
	}
	return rows, nil
}

// normalizeHeader maps "Release date", "Release_date" and "release_date" to one key.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.ReplaceAll(h, " ", "_")
}

// YearFromDate extracts the release year from a date string, or 0.
func YearFromDate(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year()
		}
	}
	if m := yearPattern.FindString(s); m != "" {
		y, _ := strconv.Atoi(m)
		return y
	}
	return 0
}

// parseInt accepts "123" and the "123.0" form written for nullable integer
// columns. Anything else reads as 0.
func parseInt(s string) int64 {
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
		switch {
		case f >= math.MaxInt64:
			return math.MaxInt64
		case f <= math.MinInt64:
			return math.MinInt64
		}
		return int64(f)
	}
	return 0
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return parseInt(s) != 0
	}
	return b
}
