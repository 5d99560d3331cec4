package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "dealengine",
	Short: "Deal underwriting and buyer matching engine",
	Long: `dealengine underwrites wholesale real estate deals. It evaluates a
property under wholesale, fix & flip, and buy & hold strategies, grades
each outcome, and ranks the buyer pool against the recommended exit.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
