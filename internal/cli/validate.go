package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rosync/internal/app"
)

type validateOptions struct {
	Desired    string
	ROSVersion string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a desired-state file without contacting a device",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Desired, "desired", "f", "", "Desired-state file")
	cmd.Flags().StringVar(&opts.ROSVersion, "ros-version", "", "Device software version to validate against")
	_ = viper.BindPFlag("desired", cmd.Flags().Lookup("desired"))
	_ = viper.BindPFlag("ros_version", cmd.Flags().Lookup("ros-version"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		DesiredPath: resolveString(cmd, opts.Desired, "desired", "desired"),
		Version:     resolveString(cmd, opts.ROSVersion, "ros_version", "ros-version"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("validated: %d tasks, %d entries\n", result.Tasks, result.Entries)
	for _, path := range result.Paths {
		fmt.Printf("- %s\n", path)
	}
	return nil
}
