// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package games

import (
	"math"
	"strings"
	"time"
)

// UnknownName replaces a missing game name.
const UnknownName = "Unknown"

// GameRecord is one cleaned and annotated row of the games dataset.
type GameRecord struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date,omitempty"`
	ReleaseYear int    `json:"release_year"`
	Developer   string `json:"developer,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
	Tags        string `json:"tags,omitempty"`

	// RawGenres is the genre field as read. Genres is its parsed form.
	RawGenres string   `json:"-"`
	Genres    []string `json:"genres"`

	Positive      int64   `json:"positive"`
	Negative      int64   `json:"negative"`
	TotalReviews  int64   `json:"total_reviews"`
	PositiveRatio float64 `json:"positive_ratio"`
	LogReviews    float64 `json:"-"`

	Price    float64 `json:"price"`
	Discount float64 `json:"discount"`
	DLCCount int     `json:"dlc_count"`
	Windows  bool    `json:"windows"`
	Mac      bool    `json:"mac"`
	Linux    bool    `json:"linux"`

	Category Category `json:"category"`
}

// Derive recomputes the review-derived fields from Positive and Negative.
// Totals are never trusted from input. Negative counts are treated as 0.
func (r *GameRecord) Derive() {
	if strings.TrimSpace(r.Name) == "" {
		r.Name = UnknownName
	}
	if r.Positive < 0 {
		r.Positive = 0
	}
	if r.Negative < 0 {
		r.Negative = 0
	}
	if r.Price < 0 {
		r.Price = 0
	}

	if r.Positive > math.MaxInt64-r.Negative {
		r.TotalReviews = math.MaxInt64
	} else {
		r.TotalReviews = r.Positive + r.Negative
	}
	r.PositiveRatio = float64(r.Positive) / float64(max(r.TotalReviews, 1))
	r.LogReviews = math.Log1p(float64(r.TotalReviews))
}

// HasGenre reports whether the record carries genre g (exact match).
func (r *GameRecord) HasGenre(g string) bool {
	for _, have := range r.Genres {
		if have == g {
			return true
		}
	}
	return false
}

// IsFree reports whether the game is free to play (price 0).
func (r *GameRecord) IsFree() bool {
	return r.Price == 0
}

// Window is an inclusive range of release years.
type Window struct {
	FirstYear int `json:"first_year"`
	FinalYear int `json:"final_year"`
}

// DefaultWindow is the 2014-2024 analysis window.
func DefaultWindow() Window {
	return Window{FirstYear: 2014, FinalYear: 2024}
}

// Contains reports whether year falls inside the window.
func (w Window) Contains(year int) bool {
	return year >= w.FirstYear && year <= w.FinalYear
}

// Years returns every year of the window in ascending order.
func (w Window) Years() []int {
	if w.FinalYear < w.FirstYear {
		return nil
	}
	years := make([]int, 0, w.FinalYear-w.FirstYear+1)
	for y := w.FirstYear; y <= w.FinalYear; y++ {
		years = append(years, y)
	}
	return years
}

// Stats describes what cleaning removed from the raw dataset.
type Stats struct {
	RawRows       int            `json:"raw_rows"`
	OutsideWindow int            `json:"outside_window"`
	Excluded      map[Reason]int `json:"excluded"`
	Kept          int            `json:"kept"`
}

// TotalExcluded sums the filter exclusions.
func (s Stats) TotalExcluded() int {
	n := 0
	for _, c := range s.Excluded {
		n += c
	}
	return n
}

// Catalog is the read-only set of records produced by one dataset load.
// It must not be mutated after construction.
type Catalog struct {
	Records  []GameRecord
	Source   string
	LoadedAt time.Time
	Window   Window
	Stats    Stats

	byID map[int64]int
}

// NewCatalog wraps records and indexes them by ID. When IDs repeat the
// first record wins.
func NewCatalog(records []GameRecord, source string, loadedAt time.Time, window Window, stats Stats) *Catalog {
	c := &Catalog{
		Records:  records,
		Source:   source,
		LoadedAt: loadedAt,
		Window:   window,
		Stats:    stats,
		byID:     make(map[int64]int, len(records)),
	}
	for i := range records {
		if _, dup := c.byID[records[i].ID]; !dup {
			c.byID[records[i].ID] = i
		}
	}
	return c
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Records)
}

// Version identifies this load. Two loads of the same source differ.
func (c *Catalog) Version() string {
	return c.Source + "@" + c.LoadedAt.UTC().Format(time.RFC3339Nano)
}

// ByID returns the record with the given ID.
func (c *Catalog) ByID(id int64) (*GameRecord, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.Records[i], true
}

// IndexOfName returns the index of the first record whose name equals name
// exactly, or -1.
func (c *Catalog) IndexOfName(name string) int {
	for i := range c.Records {
		if c.Records[i].Name == name {
			return i
		}
	}
	return -1
}

// Search returns up to limit records whose name contains query,
// case-insensitively, in catalog order. An empty query matches everything.
func (c *Catalog) Search(query string, limit int) []GameRecord {
	if limit <= 0 {
		return nil
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]GameRecord, 0, min(limit, len(c.Records)))
	for i := range c.Records {
		if len(out) >= limit {
			break
		}
		if q == "" || strings.Contains(strings.ToLower(c.Records[i].Name), q) {
			out = append(out, c.Records[i])
		}
	}
	return out
}
