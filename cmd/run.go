/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/du0ngtrunghieu/ttd-attach/cmd/internal/attach"
	"github.com/du0ngtrunghieu/ttd-attach/cmd/internal/configure"
	"github.com/du0ngtrunghieu/ttd-attach/cmd/internal/mailer"
	"github.com/du0ngtrunghieu/ttd-attach/cmd/internal/retention"
	"github.com/du0ngtrunghieu/ttd-attach/cmd/internal/runlog"
	"github.com/du0ngtrunghieu/ttd-attach/pkg/types"
)

const stampLayout = "20060102-150405"

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process this week's tickets once, then purge old logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd.Context(), time.Now())
	},
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove run logs older than log_retention_days",
	RunE: func(cmd *cobra.Command, args []string) error {
		return executePurge(time.Now())
	},
}

func execute(ctx context.Context, now time.Time) error {
	config := &types.Config{}
	if err := configure.ReadConfig(cfgFile, config); err != nil {
		return err
	}

	logger, closer, err := runlog.Open(config.LogPath, config.AppName, now, runlog.ParseLevel(config.LogLevel), consoleWriter())
	if errors.Is(err, runlog.ErrAlreadyRan) {
		fmt.Fprintln(os.Stderr, "Skipping:", err)
		return nil
	}
	if err != nil {
		return err
	}
	defer closer.Close()

	logger.Info("process start", "run", now.Format(stampLayout))

	tracker, err := attach.NewJira(config.JiraURL, config.JiraUsername, config.JiraToken, config.JiraMaxResults, config.RequestTimeout)
	if err != nil {
		logger.Error("cannot create jira client", "error", err)
		return err
	}

	smtp, err := mailer.NewSMTP(config.SMTPHost, config.SMTPPort, config.SMTPTLS)
	if err != nil {
		logger.Error("cannot create smtp client", "error", err)
		return err
	}

	_, runErr := runAttach(ctx, config, tracker, smtp, attach.JSONFileSink{}, logger, now)

	retention.Purge(config.LogRetentionDays, config.LogPath, now, logger)

	return runErr
}

func runAttach(ctx context.Context, config *types.Config, tracker attach.Tracker, m attach.Mailer, sink attach.Sink, logger *slog.Logger, now time.Time) (types.Summary, error) {
	resolver := attach.NewResolver(tracker, m, attach.ResolverOptions{
		From:             config.EmailFrom,
		To:               config.EmailTo,
		TransitionID:     config.JiraTransitionID,
		DueDateField:     config.JiraDueDateField,
		NoResultsComment: config.NoResultsComment,
		Extensions:       config.AttachmentExtensions,
	}, logger)

	resultsFile := attach.ResultsFileName(config.ResultsPath, config.ResultsName, now.Format(stampLayout))
	results := attach.NewResults(sink, resultsFile, logger)

	flow := attach.NewWorkflow(tracker, resolver, results, config.ChildStatus, logger)

	summary, err := flow.Run(ctx, config.ParentQuery(), now)
	if err != nil {
		logger.Error("run finished with errors", "failed_parents", summary.FailedParents, "error", err)
	}

	logger.Info("process end",
		"parents", summary.Parents,
		"failed_parents", summary.FailedParents,
		"children", summary.Children,
		"results", summary.Results,
		"outcomes", summary.Outcomes,
	)
	return summary, err
}

func executePurge(now time.Time) error {
	config := &types.Config{}
	if err := configure.ReadConfig(cfgFile, config); err != nil {
		return err
	}

	level := runlog.ParseLevel(config.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	removed := retention.Purge(config.LogRetentionDays, config.LogPath, now, logger)
	logger.Info("purge finished", "removed", len(removed))
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(purgeCmd)
}
