/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/du0ngtrunghieu/ttd-attach/cmd/internal/configure"
	"github.com/du0ngtrunghieu/ttd-attach/cmd/internal/runlog"
	"github.com/du0ngtrunghieu/ttd-attach/cmd/internal/schedule"
	"github.com/du0ngtrunghieu/ttd-attach/pkg/types"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the attach job on the configured cron schedule",
	Long: `Keeps running and triggers "run" on the cron expression from the
schedule setting (default Wednesday to Friday at 14:00). Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return executeSchedule(ctx)
	},
}

func executeSchedule(ctx context.Context) error {
	config := &types.Config{}
	if err := configure.ReadConfig(cfgFile, config); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: runlog.ParseLevel(config.LogLevel)}))

	sched := schedule.New(logger)
	if err := sched.Add(ctx, "attach", config.Schedule, func(ctx context.Context) error {
		return execute(ctx, time.Now())
	}); err != nil {
		return err
	}

	if err := sched.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}
