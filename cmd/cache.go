package cmd

import (
	"fmt"

	"trackbase/config"
	"trackbase/db"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Check the Redis connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := db.ConnectRedis(cfg); err != nil {
			return err
		}
		defer db.CloseRedis()

		if err := db.TestRedis(); err != nil {
			return err
		}
		fmt.Println("Redis connection OK")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
}
