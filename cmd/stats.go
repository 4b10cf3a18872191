package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChenMel27/adaptive-recall-engine/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show attempt statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer log.Sync()

		st, err := store.Open(cfg.Database, log)
		if err != nil {
			return err
		}
		stats, err := st.Stats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Total attempts: %d\n", stats.TotalAttempts)
		fmt.Printf("Mastery:        %d\n", stats.MasteryCount)
		for status, n := range stats.ByStatus {
			fmt.Printf("  %-16s %d\n", status, n)
		}
		for mode, n := range stats.ByMode {
			fmt.Printf("  mode %-11s %d\n", mode, n)
		}
		return nil
	},
}
