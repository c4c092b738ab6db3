package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	studyref "github.com/scriptura/studyref"
)

const (
	configFileName = "studyref"
)

var contextCommand = &cobra.Command{
	Use:   "context",
	Short: "context commands",
}

func init() {
	rootCmd.AddCommand(contextCommand)
	contextCommand.AddCommand(setContextCommand())
	contextCommand.AddCommand(currentContextCommand())
}

// Context holds the server address and session token used by the CLI.
type Context struct {
	Addr  string `json:"addr"`
	Token string `json:"token"`
}

// saves the context info to the config file in ./.tmp
func setContextCommand() *cobra.Command {
	var addr string
	var token string

	command := &cobra.Command{
		Use:   "set",
		Short: "set context",
		Run: func(cmd *cobra.Command, args []string) {
			if addr == "" || token == "" {
				color.Red(`missing: --addr and --token`)
				return
			}

			writeContext(Context{Addr: addr, Token: token})
		},
	}

	command.Flags().StringVarP(&addr, "addr", "a", "", "server address, e.g. http://localhost:4030")
	command.Flags().StringVarP(&token, "token", "t", "", "session token")

	return command
}

func currentContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "current",
		Short: "current context",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := readContext()
			fmt.Println("addr:  ", ctx.Addr)
			fmt.Println("token: ", ctx.Token)
		},
	}

	return command
}

func writeContext(context Context) {
	if err := os.MkdirAll("./.tmp", os.ModePerm); err != nil {
		fmt.Println("error creating config dir: ", err)
		return
	}

	viper.SetConfigName(configFileName)
	viper.AddConfigPath("./.tmp")
	viper.SetConfigType("yml")
	viper.Set("context", context)

	if err := viper.WriteConfigAs("./.tmp/" + configFileName + ".yml"); err != nil {
		fmt.Println("error writing config file: ", err)
	} else {
		fmt.Println("context saved")
	}
}

func readContext() Context {
	var ctx Context

	viper.SetConfigName(configFileName)
	viper.AddConfigPath("./.tmp")
	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("error reading config file: ", err)
	}

	if err := viper.UnmarshalKey("context", &ctx); err != nil {
		fmt.Println("error unmarshalling config file: ", err)
	}

	return ctx
}

// apiClient builds a client from the saved context. Exits loudly when the
// context is incomplete.
func apiClient() *studyref.Client {
	ctx := readContext()
	if ctx.Addr == "" || ctx.Token == "" {
		color.Red("missing context, run: studyref context set -a <addr> -t <token>")
		os.Exit(1)
	}

	return studyref.NewClient(ctx.Addr, ctx.Token)
}
