package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/engine"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/logger"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/market"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/storage/buyer"
)

var analyzeBuyersFile string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [property.json]",
	Short: "Analyze a single property",
	Long: `Analyze reads a property description from a JSON file, runs the full
underwriting pipeline, and prints the analysis report to stdout. A buyer
list may be supplied to include buyer matches in the report.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeBuyersFile, "buyers", "", "buyer list JSON file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if err := cfg.Engine.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading property file: %w", err)
	}
	var in core.PropertyInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return fmt.Errorf("parsing property file: %w", err)
	}

	var buyers []core.Buyer
	if analyzeBuyersFile != "" {
		buyers, err = buyer.LoadSeedFile(analyzeBuyersFile)
		if err != nil {
			return fmt.Errorf("loading buyer list: %w", err)
		}
	}

	analyzer := engine.New(cfg.Engine, market.NewDefaultStatic(), engine.WithLogger(log))

	rep, err := analyzer.Analyze(in, buyers)
	if err != nil {
		var valErr *core.ValidationError
		if errors.As(err, &valErr) {
			fmt.Fprintln(os.Stderr, "property input rejected:")
			for _, f := range valErr.Fields {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", f.Field, f.Message)
			}
		}
		return err
	}

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
