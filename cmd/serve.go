package cmd

import (
	"github.com/spf13/cobra"

	"github.com/scriptura/studyref/internal/config"
	"github.com/scriptura/studyref/internal/server"
)

func init() {
	rootCmd.AddCommand(serveCmd())
}

func serveCmd() *cobra.Command {
	var httpPort string

	command := &cobra.Command{
		Use:   "serve",
		Short: "start the studyref server",
		Run: func(cmd *cobra.Command, args []string) {
			server.NewServer(httpPort).Start()
		},
	}

	// HTTP_PORT (or .env) provides the default; the flag overrides it
	command.Flags().StringVarP(&httpPort, "port", "p", config.LoadConfig().HTTPPort, "http port")

	return command
}
