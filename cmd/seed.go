package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChenMel27/adaptive-recall-engine/internal/store"
	"github.com/ChenMel27/adaptive-recall-engine/internal/topic"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the built-in Georgia Standards topics",
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
		if err := st.SeedTopics(cmd.Context(), topic.Catalog); err != nil {
			return err
		}

		fmt.Printf("Seeded %d topics\n", len(topic.Catalog))
		return nil
	},
}
