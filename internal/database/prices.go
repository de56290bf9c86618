// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"
)

// PriceDistribution summarizes prices over every game.
type PriceDistribution struct {
	Count     int64   `json:"count"`
	FreeGames int64   `json:"free_games"`
	Mean      float64 `json:"mean"`
	Std       float64 `json:"std"` // sample standard deviation, 0 below two games
	Min       float64 `json:"min"`
	Q1        float64 `json:"q1"`
	Median    float64 `json:"median"`
	Q3        float64 `json:"q3"`
	Max       float64 `json:"max"`
}

// PriceDistribution computes count, mean, standard deviation, min,
// quartiles and max of the price column.
func (db *DB) PriceDistribution(ctx context.Context) (*PriceDistribution, error) {
	if err := db.checkLoaded(); err != nil {
		return nil, err
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
	SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE price = 0),
		AVG(price),
		STDDEV_SAMP(price),
		MIN(price),
		QUANTILE_CONT(price, 0.25),
		QUANTILE_CONT(price, 0.5),
		QUANTILE_CONT(price, 0.75),
		MAX(price)
	FROM games`

	var dist PriceDistribution
	var mean, std, lo, q1, med, q3, hi sql.NullFloat64
	err := timed("price_distribution", func() error {
		return db.conn.QueryRowContext(ctx, query).Scan(
			&dist.Count, &dist.FreeGames, &mean, &std, &lo, &q1, &med, &q3, &hi,
		)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query price distribution: %w", err)
	}

	dist.Mean = mean.Float64
	dist.Std = std.Float64
	dist.Min = lo.Float64
	dist.Q1 = q1.Float64
	dist.Median = med.Float64
	dist.Q3 = q3.Float64
	dist.Max = hi.Float64

	return &dist, nil
}

// YearPrice is the median price of the games released in one year.
type YearPrice struct {
	Year        int     `json:"year"`
	Games       int64   `json:"games"`
	MedianPrice float64 `json:"median_price"`
}

// YearlyPrices is the result of MedianPriceByYear.
type YearlyPrices struct {
	Years []YearPrice `json:"years"`

	// MeanOfMedians averages the yearly medians, each year weighted equally.
	MeanOfMedians float64 `json:"mean_of_medians"`
}

// MedianPriceByYear returns the game count and median price per release
// year, oldest first.
func (db *DB) MedianPriceByYear(ctx context.Context) (*YearlyPrices, error) {
	if err := db.checkLoaded(); err != nil {
		return nil, err
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
	SELECT release_year, COUNT(*), MEDIAN(price)
	FROM games
	GROUP BY release_year
	ORDER BY release_year`

	scanYear := func(rows *sql.Rows) (YearPrice, error) {
		var y YearPrice
		err := rows.Scan(&y.Year, &y.Games, &y.MedianPrice)
		return y, err
	}

	var years []YearPrice
	err := timed("median_price_by_year", func() error {
		var err error
		years, err = queryAndScan(ctx, db.conn, query, nil, scanYear)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query median price by year: %w", err)
	}

	result := &YearlyPrices{Years: years}
	if result.Years == nil {
		result.Years = []YearPrice{}
	}
	if len(years) > 0 {
		var sum float64
		for _, y := range years {
			sum += y.MedianPrice
		}
		result.MeanOfMedians = sum / float64(len(years))
	}

	return result, nil
}

// PriceBucket counts the games with Lower <= price < Upper.
type PriceBucket struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Games int64   `json:"games"`
}

// PriceHistogram is the result of DB.PriceHistogram.
type PriceHistogram struct {
	BucketWidth float64       `json:"bucket_width"`
	MaxPrice    float64       `json:"max_price"`
	Buckets     []PriceBucket `json:"buckets"`

	// Overflow counts the games priced at MaxPrice or above.
	Overflow int64 `json:"overflow"`
}

// PriceHistogram counts games in buckets of bucketWidth from 0 up to
// maxPrice. Every bucket is present, empty ones included.
func (db *DB) PriceHistogram(ctx context.Context, bucketWidth, maxPrice float64) (*PriceHistogram, error) {
	if bucketWidth <= 0 || maxPrice <= 0 {
		return nil, fmt.Errorf("%w: width %v, max %v", ErrInvalidBuckets, bucketWidth, maxPrice)
	}
	if err := db.checkLoaded(); err != nil {
		return nil, err
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	n := int(math.Ceil(maxPrice / bucketWidth))
	hist := &PriceHistogram{
		BucketWidth: bucketWidth,
		MaxPrice:    maxPrice,
		Buckets:     make([]PriceBucket, n),
	}
	for i := range hist.Buckets {
		hist.Buckets[i] = PriceBucket{
			Lower: float64(i) * bucketWidth,
			Upper: math.Min(float64(i+1)*bucketWidth, maxPrice),
		}
	}

	query := `
	SELECT CAST(FLOOR(price / ?) AS BIGINT) AS bucket, COUNT(*)
	FROM games
	WHERE price < ?
	GROUP BY bucket
	ORDER BY bucket`

	type bucketCount struct {
		index int64
		games int64
	}
	scanBucket := func(rows *sql.Rows) (bucketCount, error) {
		var b bucketCount
		err := rows.Scan(&b.index, &b.games)
		return b, err
	}

	err := timed("price_histogram", func() error {
		counts, err := queryAndScan(ctx, db.conn, query, []any{bucketWidth, maxPrice}, scanBucket)
		if err != nil {
			return err
		}
		for _, c := range counts {
			if c.index >= 0 && c.index < int64(n) {
				hist.Buckets[c.index].Games += c.games
			}
		}
		return db.conn.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM games WHERE price >= ?", maxPrice,
		).Scan(&hist.Overflow)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query price histogram: %w", err)
	}

	return hist, nil
}
