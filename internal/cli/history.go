package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rosync/internal/app"
)

type historyOptions struct {
	Limit int
}

func newHistoryCommand() *cobra.Command {
	opts := historyOptions{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent sync runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "Number of runs to show")
	_ = viper.BindPFlag("history_limit", cmd.Flags().Lookup("limit"))
	return cmd
}

func runHistory(ctx context.Context, cmd *cobra.Command, opts historyOptions) error {
	historyDB := viper.GetString("history_db")
	if historyDB == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("history database is required (--history-db)")
	}
	service, closeHistory, err := withHistory(newAppService(), historyDB)
	if err != nil {
		return err
	}
	defer closeHistory()

	result, err := service.RecentRuns(ctx, app.HistoryRequest{
		Limit: resolveInt(cmd, opts.Limit, "history_limit", "limit"),
	})
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}
	for _, record := range result.Records {
		status := "unchanged"
		switch {
		case record.Error != "":
			status = "failed: " + record.Error
		case record.Changed && record.DryRun:
			status = "would change"
		case record.Changed:
			status = "changed"
		}
		fmt.Printf("%s  %-24s %-8s %s\n",
			record.StartedAt.Format("2006-01-02 15:04:05"),
			record.Path,
			record.Duration().Round(time.Millisecond),
			status)
	}
	return nil
}
