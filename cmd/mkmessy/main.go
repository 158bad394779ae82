// mkmessy writes a deliberately corrupted copy of a patient table for
// exercising the cleaner.
// Usage: go run ./cmd/mkmessy --in data/healthcare_dataset.csv --out data/sample_data_messy.csv --seed 7 --rate 0.1
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gyeh/healthdata/internal/inject"
	"github.com/gyeh/healthdata/internal/tableio"
)

func main() {
	in := flag.String("in", "data/healthcare_dataset.csv", "clean input table")
	out := flag.String("out", "data/sample_data_messy.csv", "messy output table")
	seed := flag.Int64("seed", 7, "random seed")
	rate := flag.Float64("rate", 0.1, "per-cell corruption probability")
	flag.Parse()

	if *rate < 0 || *rate > 1 {
		fmt.Fprintf(os.Stderr, "--rate must be between 0 and 1 (got %g)\n", *rate)
		os.Exit(1)
	}

	t, err := tableio.Read(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}

	messy, st := inject.Inject(t, *seed, *rate)

	if err := tableio.Write(*out, messy); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d rows to %s\n", messy.Len(), *out)
	fmt.Println("Injected:")
	fmt.Printf("  %-12s %d\n", "blanks", st.Blanked)
	fmt.Printf("  %-12s %d\n", "bad types", st.BadTypes)
	fmt.Printf("  %-12s %d\n", "outliers", st.Outliers)
	fmt.Printf("  %-12s %d\n", "variants", st.Variants)
	fmt.Printf("  %-12s %d\n", "dates", st.DatesMangled)
	fmt.Printf("  %-12s %d\n", "bp", st.BPMangled)
	fmt.Printf("  %-12s %d\n", "duplicates", st.Duplicates)
}
