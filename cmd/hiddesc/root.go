package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/gpineda-dev/hiddesc/internal/config"
)

// NewRootCmd builds the hiddesc command tree. Dependencies shared across
// subcommands (the logger, the live Settings) are wired through a dig
// container rather than constructed ad hoc in each subcommand.
func NewRootCmd() (*cobra.Command, error) {
	container := dig.New()
	if err := container.Provide(zap.NewDevelopment); err != nil {
		return nil, fmt.Errorf("provide logger: %w", err)
	}
	if err := container.Provide(func() *settingsHolder { return newSettingsHolder(config.Default()) }); err != nil {
		return nil, fmt.Errorf("provide settings holder: %w", err)
	}

	var configPath string
	root := &cobra.Command{
		Use:   "hiddesc",
		Short: "Compile, analyze, and exercise USB HID report descriptors",
		Long: `hiddesc compiles declarative report-descriptor schemas to bytes,
analyzes compiled (or captured) descriptors into a structured field
layout, and encodes/decodes HID reports against that layout.`,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "hiddesc.yaml", "path to the persisted settings file, watched for edits while running")

	if err := container.Invoke(func(log *zap.Logger, holder *settingsHolder) error {
		root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
			return watchSettings(cmd.Context(), log, holder, configPath)
		}
		root.AddCommand(newAnalyzeCmd(log, holder))
		root.AddCommand(newReportCmd(log, holder))
		root.AddCommand(newCompileCmd(log, holder))
		return nil
	}); err != nil {
		return nil, fmt.Errorf("wire commands: %w", err)
	}
	return root, nil
}
