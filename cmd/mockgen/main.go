package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"prelev-mcp/cmd/mockgen/engine"
)

func main() {
	scenario := flag.String("scenario", "mild", "Scenario to generate: mild, chaos, drift")
	distribution := flag.String("distribution", "uniform", "Distribution to use: uniform, weibull")
	outDir := flag.String("out", "./.cache", "Output directory for mock files")
	days := flag.Int("days", 200, "Number of days to generate")
	params := flag.String("params", "volume,debit", "Comma-separated parameter labels")
	freq := flag.String("frequency", "1 day", "Sampling frequency, e.g. '1 hour' for sub-daily readings")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario:     *scenario,
		Distribution: *distribution,
		Params:       strings.Split(*params, ","),
		Days:         *days,
		Frequency:    *freq,
		Now:          time.Now(),
		Seed:         *seed,
	}

	fmt.Printf("Generating scenario '%s' (Distribution: %s, Days: %d, Frequency: %s) to %s...\n", cfg.Scenario, cfg.Distribution, cfg.Days, cfg.Frequency, *outDir)

	ds, err := engine.Generate(cfg)
	if err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	sourceID := "PRELEVTEST_0"
	if err := engine.Save(*outDir, sourceID, ds); err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
