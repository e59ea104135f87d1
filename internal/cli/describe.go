package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rosync/internal/app"
)

func newPathsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "List the configuration paths rosync understands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result := newAppService().Paths()
			for _, summary := range result.Paths {
				var notes []string
				if summary.NeedsVersion {
					notes = append(notes, "version dependent")
				}
				if !summary.FullyUnderstood {
					notes = append(notes, "read only")
				}
				if len(notes) > 0 {
					fmt.Printf("%s (%s)\n", summary.Path, strings.Join(notes, ", "))
					continue
				}
				fmt.Println(summary.Path)
			}
			return nil
		},
	}
}

type describeOptions struct {
	ROSVersion string
}

func newDescribeCommand() *cobra.Command {
	opts := describeOptions{}
	cmd := &cobra.Command{
		Use:   "describe <path>",
		Short: "Show the schema of a configuration path",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(cmd, strings.Join(args, " "), opts)
		},
	}
	cmd.Flags().StringVar(&opts.ROSVersion, "ros-version", "", "Device software version")
	_ = viper.BindPFlag("ros_version", cmd.Flags().Lookup("ros-version"))
	return cmd
}

func runDescribe(cmd *cobra.Command, path string, opts describeOptions) error {
	result, err := newAppService().Describe(app.DescribeRequest{
		Path:    path,
		Version: resolveString(cmd, opts.ROSVersion, "ros_version", "ros-version"),
	})
	if err != nil {
		return err
	}
	if !result.Supported {
		fmt.Printf("%s: not available on %s", result.Path, result.Version)
		if result.Message != "" {
			fmt.Printf(" (%s)", result.Message)
		}
		fmt.Println()
		return nil
	}
	fmt.Printf("path: %s\n", result.Path)
	fmt.Printf("mode: %s\n", result.Mode)
	if len(result.Keys) > 0 {
		fmt.Printf("keys: %s\n", strings.Join(result.Keys, ", "))
	}
	if result.FixedEntries {
		fmt.Println("fixed entries: yes")
	}
	fmt.Println("fields:")
	for _, field := range result.Fields {
		fmt.Printf("- %s%s\n", field.Name, fieldNotes(field))
	}
	return nil
}

func fieldNotes(field app.FieldSummary) string {
	var notes []string
	if field.Required {
		notes = append(notes, "required")
	}
	if field.Default != "" {
		notes = append(notes, "default "+field.Default)
	}
	if field.CanDisable {
		notes = append(notes, "can disable")
	}
	if field.RemoveValue != "" {
		notes = append(notes, "remove value "+field.RemoveValue)
	}
	if field.ReadOnly {
		notes = append(notes, "read only")
	}
	if field.WriteOnly {
		notes = append(notes, "write only")
	}
	if len(notes) == 0 {
		return ""
	}
	return " (" + strings.Join(notes, ", ") + ")"
}
