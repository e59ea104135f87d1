package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rosync/internal/adapters"
	"rosync/internal/app"
	"rosync/internal/ports"
)

type syncOptions struct {
	Desired     string
	Backend     string
	Host        string
	Username    string
	Password    string
	TLS         bool
	Insecure    bool
	TimeoutSec  int
	StateFile   string
	DryRun      bool
	Paths       []string
	Report      string
	MetricsFile string
	Watch       bool
	DebounceMs  int
}

func newSyncCommand() *cobra.Command {
	opts := syncOptions{}
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile a device with a desired-state file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Desired, "desired", "f", "", "Desired-state file")
	cmd.Flags().StringVar(&opts.Backend, "backend", adapters.DeviceBackendREST, "Device backend (rest, file)")
	cmd.Flags().StringVar(&opts.Host, "host", "", "Device address, optionally with port")
	cmd.Flags().StringVar(&opts.Username, "username", "", "Device user")
	cmd.Flags().StringVar(&opts.Password, "password", "", "Device password")
	cmd.Flags().BoolVar(&opts.TLS, "tls", true, "Use HTTPS for the REST API")
	cmd.Flags().BoolVar(&opts.Insecure, "insecure", false, "Skip TLS certificate verification")
	cmd.Flags().IntVar(&opts.TimeoutSec, "timeout", 30, "Request timeout in seconds")
	cmd.Flags().StringVar(&opts.StateFile, "state-file", "", "Device state file for the file backend")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Compute changes without applying them")
	cmd.Flags().StringSliceVar(&opts.Paths, "path", nil, "Only sync tasks for these paths")
	cmd.Flags().StringVar(&opts.Report, "report", "", "Write a YAML report of the run")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus textfile metrics")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Rerun whenever the desired-state file changes")
	cmd.Flags().IntVar(&opts.DebounceMs, "debounce-ms", 500, "Delay before a watch rerun")

	_ = viper.BindPFlag("desired", cmd.Flags().Lookup("desired"))
	_ = viper.BindPFlag("device.backend", cmd.Flags().Lookup("backend"))
	_ = viper.BindPFlag("device.host", cmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("device.username", cmd.Flags().Lookup("username"))
	_ = viper.BindPFlag("device.password", cmd.Flags().Lookup("password"))
	_ = viper.BindPFlag("device.tls", cmd.Flags().Lookup("tls"))
	_ = viper.BindPFlag("device.insecure", cmd.Flags().Lookup("insecure"))
	_ = viper.BindPFlag("device.timeout_sec", cmd.Flags().Lookup("timeout"))
	_ = viper.BindPFlag("device.state_file", cmd.Flags().Lookup("state-file"))
	_ = viper.BindPFlag("dry_run", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("paths", cmd.Flags().Lookup("path"))
	_ = viper.BindPFlag("report", cmd.Flags().Lookup("report"))
	_ = viper.BindPFlag("metrics_file", cmd.Flags().Lookup("metrics-file"))
	_ = viper.BindPFlag("watch", cmd.Flags().Lookup("watch"))
	_ = viper.BindPFlag("watch_debounce_ms", cmd.Flags().Lookup("debounce-ms"))

	return cmd
}

func runSync(ctx context.Context, cmd *cobra.Command, opts syncOptions) error {
	service, closeHistory, err := withHistory(newAppService(), viper.GetString("history_db"))
	if err != nil {
		return err
	}
	defer closeHistory()
	if metricsFile := resolveString(cmd, opts.MetricsFile, "metrics_file", "metrics-file"); metricsFile != "" {
		service.Metrics = adapters.NewMetricsTextfileAdapter(metricsFile)
	}

	req := app.SyncRequest{
		DesiredPath: resolveString(cmd, opts.Desired, "desired", "desired"),
		Target: ports.DeviceTarget{
			Backend:            resolveString(cmd, opts.Backend, "device.backend", "backend"),
			Host:               resolveString(cmd, opts.Host, "device.host", "host"),
			Username:           resolveString(cmd, opts.Username, "device.username", "username"),
			Password:           resolveString(cmd, opts.Password, "device.password", "password"),
			TLS:                resolveBool(cmd, opts.TLS, "device.tls", "tls"),
			InsecureSkipVerify: resolveBool(cmd, opts.Insecure, "device.insecure", "insecure"),
			TimeoutSec:         resolveInt(cmd, opts.TimeoutSec, "device.timeout_sec", "timeout"),
			StateFile:          resolveString(cmd, opts.StateFile, "device.state_file", "state-file"),
		},
		DryRun:     resolveBool(cmd, opts.DryRun, "dry_run", "dry-run"),
		Paths:      resolveStrings(cmd, opts.Paths, "paths", "path"),
		ReportPath: resolveString(cmd, opts.Report, "report", "report"),
	}

	if resolveBool(cmd, opts.Watch, "watch", "watch") {
		debounce := time.Duration(resolveInt(cmd, opts.DebounceMs, "watch_debounce_ms", "debounce-ms")) * time.Millisecond
		return service.Watch(ctx, app.WatchRequest{
			Sync:     req,
			Debounce: debounce,
			OnRun: func(result app.SyncResult, err error) {
				if err == nil {
					printSyncResult(result, req.DryRun)
				}
			},
		})
	}

	result, err := service.Sync(ctx, req)
	if err != nil {
		return err
	}
	printSyncResult(result, req.DryRun)
	return nil
}

func printSyncResult(result app.SyncResult, dryRun bool) {
	for _, task := range result.Tasks {
		state := "unchanged"
		if task.Changed {
			state = "changed"
			if dryRun {
				state = "would change"
			}
		}
		fmt.Printf("%s: %s (removals=%d updates=%d creations=%d moves=%d)\n",
			task.Path.String(), state,
			task.Summary.Removals, task.Summary.Updates, task.Summary.Creations, task.Summary.Moves)
	}
	switch {
	case !result.Changed:
		fmt.Println("device is up to date")
	case dryRun:
		fmt.Println("dry run: no changes applied")
	default:
		fmt.Println("device synchronized")
	}
}
