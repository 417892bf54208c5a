package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/asterion-dev/asterion/internal/chart"
	"github.com/asterion-dev/asterion/internal/ephemeris"
	"github.com/asterion-dev/asterion/internal/model"
)

var (
	birthDate  string
	birthTime  string
	birthLat   float64
	birthLon   float64
	birthName  string
	targetDate string
	outJSON    string
)

// chartCmd represents the chart command
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Compute full chart data for a birth moment",
	Long: `Chart computes the deterministic layer only: planetary positions,
lots, almuten figuris, zodiacal releasing timeline, profections,
firdaria, antiscia, fixed-star and midpoint contacts.

Example:
  asterion chart --date 1990-01-01 --time 12:30 --lat 40.71 --lon -74.00
  asterion chart --date 1990-01-01 --lat 40.71 --lon -74.00 --target 2026-08-31 --json chart.json`,
	RunE: runChart,
}

func init() {
	rootCmd.AddCommand(chartCmd)

	addBirthFlags(chartCmd)
	chartCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: stdout)")
}

// addBirthFlags registers the shared birth input flags.
func addBirthFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&birthDate, "date", "", "birth date (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&birthTime, "time", "", "birth time (HH:MM, defaults to 12:00)")
	cmd.Flags().Float64Var(&birthLat, "lat", 0, "birth latitude in degrees")
	cmd.Flags().Float64Var(&birthLon, "lon", 0, "birth longitude in degrees")
	cmd.Flags().StringVar(&birthName, "name", "", "optional chart label")
	cmd.Flags().StringVar(&targetDate, "target", "", "target date for time-lords (YYYY-MM-DD, defaults to today)")
	_ = cmd.MarkFlagRequired("date")
}

// birthFromFlags assembles and validates the birth input.
func birthFromFlags() (model.BirthInput, time.Time, error) {
	birth := model.BirthInput{
		Name: birthName,
		Date: birthDate,
		Time: birthTime,
		Lat:  birthLat,
		Lon:  birthLon,
	}
	if err := birth.Validate(); err != nil {
		return birth, time.Time{}, err
	}

	target := time.Now().UTC()
	if targetDate != "" {
		parsed, err := time.Parse("2006-01-02", targetDate)
		if err != nil {
			return birth, time.Time{}, fmt.Errorf("%w: target date: %v", model.ErrInvalidInput, err)
		}
		target = parsed.UTC()
	}
	return birth, target, nil
}

func runChart(cmd *cobra.Command, args []string) error {
	birth, target, err := birthFromFlags()
	if err != nil {
		return err
	}

	cfg := loadConfig()
	log := buildLogger(verbose)
	defer func() { _ = log.Sync() }()

	builder := chart.NewBuilder(ephemeris.NewMeanMotionProvider(), cfg.Chart, log)
	data, err := builder.Build(context.Background(), birth, target)
	if err != nil {
		return fmt.Errorf("chart failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Almuten: %s\n", data.Almuten.Winner)
		fmt.Fprintf(os.Stderr, "✓ Year lord: %s (house %d)\n", data.Profection.YearLord, data.Profection.ProfectedHouse)
		fmt.Fprintf(os.Stderr, "✓ ZR periods: %d\n", len(data.ZR.Periods))
	}

	return writeJSON(data, outJSON)
}

// writeJSON renders v to a file or stdout.
func writeJSON(v interface{}, path string) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	if path == "" {
		fmt.Println(string(raw))
		return nil
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", path)
	return nil
}
