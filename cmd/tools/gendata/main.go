package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/soltixdb/salescast/internal/dataset"
)

func main() {
	output := flag.String("output", "data/sales_data.csv", "Output CSV path")
	days := flag.Int("days", 365, "Number of days to generate")
	seed := flag.Int64("seed", 0, "Random seed (0 uses the current time)")
	flag.Parse()

	if *days <= 0 {
		log.Fatalf("Error: -days must be positive, got %d", *days)
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))

	// Last row is yesterday
	yesterday := time.Now().AddDate(0, 0, -1)
	table := dataset.Generate(*days, yesterday, rng)
	if err := table.WriteCSV(*output); err != nil {
		log.Fatalf("Error: %v", err)
	}

	log.Printf("Generated %d rows to %s", *days, *output)
}
