package cmd

import (
	"trackbase/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the trackbase HTTP server",
	Long:  `Start the trackbase HTTP server, serving the track registry API and the diagnostics console.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
