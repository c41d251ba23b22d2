/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	console bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ttd-attach",
	Short: "Attach TradeDesk API stats to the weekly Data License tickets",
	Long: `ttd-attach finds the weekly child tickets of the Data License parent
tickets, mails the "TradeDesk API stats:" comment to finance, attaches a copy
of the mail to the ticket, sets its due date and moves it to Complete.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&console, "console", false, "also write the run log to stderr")
}

func consoleWriter() io.Writer {
	if console {
		return os.Stderr
	}
	return nil
}
