// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package dataset

import (
	"errors"
	"math"
	"strings"
	"testing"
)

const sampleCSV = `AppID,Name,Release_date,Release_year,Developer,Publisher,Positive,Negative,Genres,Tags,Price,Discount,DLC_count,Windows,Mac,Linux
620,Portal 2,2011-04-18,2011,Valve,Valve,300000,3000,"['Action', 'Adventure']",Puzzle,9.99,0,5,True,True,True
1091500,Cyberpunk 2077,2020-12-09,2020,CD PROJEKT RED,CD PROJEKT RED,500000.0,100000.0,RPG,Open World,59.99,50,2,True,False,False
730,Counter-Strike 2,2023-09-27,,Valve,Valve,7000000,1000000,Action/Free to Play,FPS,0,0,0,1,0,1
`

func TestReadCSV(t *testing.T) {
	t.Parallel()

	rows, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("ReadCSV() = %d rows, want 3", len(rows))
	}

	portal := rows[0].Record
	if portal.ID != 620 || portal.Name != "Portal 2" || portal.ReleaseYear != 2011 {
		t.Errorf("row 0 = %+v", portal)
	}
	if portal.RawGenres != "['Action', 'Adventure']" {
		t.Errorf("RawGenres = %q", portal.RawGenres)
	}
	if portal.Price != 9.99 || portal.DLCCount != 5 || !portal.Windows || !portal.Linux {
		t.Errorf("optional columns not parsed: %+v", portal)
	}
	if rows[0].Line != 2 {
		t.Errorf("Line = %d, want 2", rows[0].Line)
	}

	// Float-formatted integers
	cyberpunk := rows[1].Record
	if cyberpunk.Positive != 500000 || cyberpunk.Negative != 100000 {
		t.Errorf("Positive/Negative = %d/%d, want 500000/100000", cyberpunk.Positive, cyberpunk.Negative)
	}
	if cyberpunk.Mac {
		t.Error("Mac should be false")
	}

	// Empty Release_year falls back to Release_date
	if rows[2].Record.ReleaseYear != 2023 {
		t.Errorf("ReleaseYear = %d, want 2023 from date", rows[2].Record.ReleaseYear)
	}
	if !rows[2].Record.Windows || rows[2].Record.Mac {
		t.Error("numeric booleans not parsed")
	}

	// Derived fields are left to the catalog builder
	if portal.TotalReviews != 0 || portal.Genres != nil {
		t.Error("ReadCSV should not derive fields")
	}
}

func TestReadCSV_RawSteamHeaders(t *testing.T) {
	t.Parallel()

	input := "\ufeffAppID,Name,Release date,Positive,Negative,Genres,DLC count\n" +
		"10,Half-Life,\"Nov 1, 2000\",5000,100,Action,3\n" +
		"20,Missing Optional,,60,0,Indie,\n"

	rows, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ReadCSV() = %d rows, want 2", len(rows))
	}
	if rows[0].Record.ID != 10 {
		t.Errorf("BOM-prefixed AppID header not recognized, ID = %d", rows[0].Record.ID)
	}
	if rows[0].Record.ReleaseYear != 2000 {
		t.Errorf("ReleaseYear = %d, want 2000", rows[0].Record.ReleaseYear)
	}
	if rows[0].Record.DLCCount != 3 {
		t.Errorf("DLCCount = %d, want 3", rows[0].Record.DLCCount)
	}
	if rows[1].Record.ReleaseYear != 0 || rows[1].Record.Price != 0 {
		t.Errorf("missing optional values should be zero: %+v", rows[1].Record)
	}
}

func TestReadCSV_MissingColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"no genres", "AppID,Name,Positive,Negative\n1,A,1,1\n"},
		{"no reviews", "AppID,Name,Genres\n1,A,Action\n"},
		{"empty input", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ReadCSV(strings.NewReader(tt.input))
			if !errors.Is(err, ErrMissingColumn) {
				t.Errorf("ReadCSV() error = %v, want ErrMissingColumn", err)
			}
		})
	}
}

func TestYearFromDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"2019-10-21", 2019},
		{"Oct 21, 2008", 2008},
		{"21 Oct, 2015", 2015},
		{"Mar 2017", 2017},
		{"2024", 2024},
		{"released in 2016 (remaster)", 2016},
		{"Coming soon", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := YearFromDate(tt.in); got != tt.want {
				t.Errorf("YearFromDate(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHelpers(t *testing.T) {
	t.Parallel()

	if parseInt("abc") != 0 || parseInt("42") != 42 || parseInt("42.9") != 42 || parseInt("NaN") != 0 {
		t.Error("parseInt mismatch")
	}
	if got := parseInt("1e20"); got != math.MaxInt64 {
		t.Errorf("parseInt(1e20) = %d, want MaxInt64", got)
	}
	if got := parseInt("9223372036854775808.0"); got != math.MaxInt64 {
		t.Errorf("parseInt(2^63) = %d, want MaxInt64", got)
	}
	if got := parseInt("-1e20"); got != math.MinInt64 {
		t.Errorf("parseInt(-1e20) = %d, want MinInt64", got)
	}
	if parseFloat("1.5") != 1.5 || parseFloat("x") != 0 || parseFloat("Inf") != 0 {
		t.Error("parseFloat mismatch")
	}
	if !parseBool("TRUE") || parseBool("False") || !parseBool("1") || parseBool("") {
		t.Error("parseBool mismatch")
	}
}
