package dataset

import (
	"math/rand"
	"strconv"
	"time"
)

// Regions are the region labels used by generated data
var Regions = []string{"North", "South", "East", "West"}

// GeneratedColumns is the header of generated sample data
var GeneratedColumns = []string{"date", "sales", "customers", "region"}

// Generate builds days rows of synthetic daily sales ending at now.
// Sales fall in [1000, 5000) and customers in [10, 100).
func Generate(days int, now time.Time, rng *rand.Rand) *Table {
	if days < 0 {
		days = 0
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	rows := make([][]string, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, i-days+1)
		rows[i] = []string{
			date.Format("2006-01-02 15:04:05.000000"),
			strconv.Itoa(1000 + rng.Intn(4000)),
			strconv.Itoa(10 + rng.Intn(90)),
			Regions[rng.Intn(len(Regions))],
		}
	}
	return &Table{Columns: append([]string(nil), GeneratedColumns...), Rows: rows}
}
