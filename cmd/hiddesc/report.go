package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	strcase "github.com/stoewer/go-strcase"
	"go.uber.org/zap"

	"github.com/gpineda-dev/hiddesc/pkg/analyzer"
	"github.com/gpineda-dev/hiddesc/pkg/codec"
	"github.com/gpineda-dev/hiddesc/pkg/hidlayout"
)

func newReportCmd(log *zap.Logger, holder *settingsHolder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Encode or decode HID reports against an analyzed descriptor",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// cobra only runs the nearest PersistentPreRunE in the chain, so
			// this must explicitly defer to root's before doing its own
			// work, or the settings watch root wires up never starts.
			if parent := cmd.Root().PersistentPreRunE; parent != nil {
				if err := parent(cmd, args); err != nil {
					return err
				}
			}
			log.Debug("report command invoked", zap.Strings("args", args))
			return nil
		},
	}
	cmd.AddCommand(newReportEncodeCmd(holder))
	cmd.AddCommand(newReportDecodeCmd())
	return cmd
}

func newReportEncodeCmd(holder *settingsHolder) *cobra.Command {
	var reportType string
	var clamp bool
	var fields []string
	cmd := &cobra.Command{
		Use:   "encode <descriptor-file>",
		Short: "Encode named field values into a HID report's raw bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := loadLayout(args[0])
			if err != nil {
				return err
			}
			values, err := parseFieldValues(layout, reportType, fields)
			if err != nil {
				return err
			}
			opts := codec.Clamp()
			if holder.Get().StrictEncode {
				opts = codec.Strict()
			}
			if cmd.Flags().Changed("clamp") {
				if clamp {
					opts = codec.Clamp()
				} else {
					opts = codec.Strict()
				}
			}
			wire, err := codec.Encode(layout, nil, reportType, values, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.ToUpper(hex.EncodeToString(wire)))
			return nil
		},
	}
	cmd.Flags().StringVar(&reportType, "report-type", "input", "input, output, or feature")
	cmd.Flags().BoolVar(&clamp, "clamp", false, "clamp out-of-range values instead of rejecting them")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "field=value pair, e.g. --field x=-10 (repeatable)")
	return cmd
}

func newReportDecodeCmd() *cobra.Command {
	var reportType string
	cmd := &cobra.Command{
		Use:   "decode <descriptor-file> <report-hex>",
		Short: "Decode a raw HID report's bytes into named field values",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := loadLayout(args[0])
			if err != nil {
				return err
			}
			wire, err := hex.DecodeString(args[1])
			if err != nil {
				return fmt.Errorf("decode report hex: %w", err)
			}
			decoded, err := codec.Decode(layout, wire, reportType)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "report_id=%d\n", decoded.ReportID)
			for name, value := range decoded.Values {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%v\n", name, value)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&reportType, "report-type", "input", "input, output, or feature")
	return cmd
}

func loadLayout(path string) (*hidlayout.DescriptorLayout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return analyzer.New().Analyze(data)
}

// parseFieldValues parses --field name=value pairs, matching the given
// name against each section field's canonical name case- and
// separator-insensitively (kebab-case compared to kebab-case), so a
// user can type --field button-1=1 against a field the analyzer named
// "Button_1".
func parseFieldValues(layout *hidlayout.DescriptorLayout, reportType string, fields []string) (map[string]int64, error) {
	canonical := make(map[string]string)
	for _, id := range layout.ListReportIDs() {
		rl, _ := layout.LookupReportLayout(id)
		section := rl.Section(reportType)
		if section == nil {
			continue
		}
		for _, f := range section.Fields {
			canonical[strcase.KebabCase(f.Name)] = f.Name
		}
	}

	values := make(map[string]int64, len(fields))
	for _, raw := range fields {
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid --field %q, expected name=value", raw)
		}
		name, ok := canonical[strcase.KebabCase(parts[0])]
		if !ok {
			name = parts[0]
		}
		value, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for field %q: %w", parts[0], err)
		}
		values[name] = value
	}
	return values, nil
}
