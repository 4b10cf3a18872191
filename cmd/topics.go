package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChenMel27/adaptive-recall-engine/internal/store"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the seeded topics",
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
		topics, err := st.ListTopics(cmd.Context())
		if err != nil {
			return err
		}

		for _, t := range topics {
			fmt.Printf("%-22s %-6s %s (%d concepts)\n", t.ID, t.Standard, t.Name, len(t.ExpectedConcepts))
		}
		return nil
	},
}
