package cmd

import (
	"fmt"

	"trackbase/config"
	"trackbase/logger"
	"trackbase/storage"

	"github.com/spf13/cobra"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check the object storage connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		logger.InitLogger(logger.Config{Level: logger.LogLevel(cfg.LogLevel)})

		if err := storage.InitMinio(cfg); err != nil {
			return err
		}
		fmt.Println("Object storage connection OK")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storageCmd)
}
