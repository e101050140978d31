package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gpineda-dev/hiddesc/pkg/compiler"
	"github.com/gpineda-dev/hiddesc/pkg/hidusage"
	"github.com/gpineda-dev/hiddesc/pkg/items"
	"github.com/gpineda-dev/hiddesc/pkg/schema"
)

// presets maps a friendly name to a schema builder, so `compile` can
// stand up a complete descriptor without requiring a schema file format
// of its own.
var presets = map[string]func(buttons, padBits int) schema.Node{
	"mouse": func(buttons, padBits int) schema.Node {
		col := &schema.Collection{UsagePage: hidusage.GenericDesktopPageID, Usage: hidusage.Mouse, TypeID: 0x02}
		col.Add(schema.NewButtonArray(buttons, 1))
		if padBits > 0 {
			col.Add(schema.NewPadding(padBits))
		}
		col.Add(schema.NewAxis(hidusage.X, 8, -127, 127, true)).
			Add(schema.NewAxis(hidusage.Y, 8, -127, 127, true)).
			Add(schema.NewAxis(hidusage.Wheel, 8, -127, 127, true))
		return col
	},
	"keyboard": func(buttons, padBits int) schema.Node {
		col := &schema.Collection{UsagePage: hidusage.GenericDesktopPageID, Usage: hidusage.Keyboard, TypeID: 0x01}
		col.Add(schema.NewLedArray()).
			Add(schema.NewKeyboardKeys(6))
		return col
	},
}

func newCompileCmd(log *zap.Logger, holder *settingsHolder) *cobra.Command {
	var buttons, padBits int
	var autoPadOutput, autoPadFeature bool
	cmd := &cobra.Command{
		Use:   "compile <preset>",
		Short: "Compile a built-in schema preset to a report descriptor's raw hex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			build, ok := presets[args[0]]
			if !ok {
				names := make([]string, 0, len(presets))
				for name := range presets {
					names = append(names, name)
				}
				return fmt.Errorf("unknown preset %q, want one of %v", args[0], names)
			}

			settings := holder.Get()
			cfg := compiler.NewConfig()
			cfg.AutoPadInput = settings.AutoPadInput
			cfg.AutoPadOutput = settings.AutoPadOutput
			cfg.AutoPadFeature = settings.AutoPadFeature
			if cmd.Flags().Changed("auto-pad-output") {
				cfg.AutoPadOutput = autoPadOutput
			}
			if cmd.Flags().Changed("auto-pad-feature") {
				cfg.AutoPadFeature = autoPadFeature
			}

			root := build(buttons, padBits)
			log.Debug("compiling preset", zap.String("preset", args[0]), zap.Int("buttons", buttons))
			compiled, err := compiler.Compile(root, cfg)
			if err != nil {
				return fmt.Errorf("compile %s: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.ToUpper(hex.EncodeToString(items.Bytes(compiled))))
			return nil
		},
	}
	cmd.Flags().IntVar(&buttons, "buttons", 3, "number of buttons for the mouse preset")
	cmd.Flags().IntVar(&padBits, "pad-bits", 5, "padding bits after the mouse preset's button array")
	cmd.Flags().BoolVar(&autoPadOutput, "auto-pad-output", false, "byte-align the Output report stream (overrides settings)")
	cmd.Flags().BoolVar(&autoPadFeature, "auto-pad-feature", false, "byte-align the Feature report stream (overrides settings)")
	return cmd
}
