package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gpineda-dev/hiddesc/pkg/analyzer"
	"github.com/gpineda-dev/hiddesc/pkg/docrender"
	"github.com/gpineda-dev/hiddesc/pkg/hidlayout"
	"github.com/gpineda-dev/hiddesc/pkg/layoutcache"
)

func newAnalyzeCmd(log *zap.Logger, holder *settingsHolder) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "analyze <descriptor-file>...",
		Short: "Analyze one or more compiled HID report descriptors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := holder.Get()
			log.Debug("analyzing descriptors", zap.Int("count", len(args)), zap.String("format", format),
				zap.String("cache_dir", settings.CacheDir))

			var cache *layoutcache.Cache
			if settings.CacheDir != "" {
				c, err := layoutcache.Open(settings.CacheDir)
				if err != nil {
					return fmt.Errorf("open layout cache: %w", err)
				}
				defer c.Close()
				cache = c
			}

			results := make([]string, len(args))
			group, _ := errgroup.WithContext(cmd.Context())
			for i, path := range args {
				i, path := i, path
				group.Go(func() error {
					rendered, err := analyzeFile(log, cache, path, format)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					results[i] = rendered
					return nil
				})
			}
			if err := group.Wait(); err != nil {
				return err
			}
			for i, path := range args {
				if len(args) > 1 {
					fmt.Fprintf(cmd.OutOrStdout(), "==> %s <==\n", path)
				}
				fmt.Fprintln(cmd.OutOrStdout(), results[i])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json, markdown, html")
	return cmd
}

// analyzeFile loads and analyzes the descriptor at path, consulting
// cache first (and populating it on a miss) when the caller has one
// open.
func analyzeFile(log *zap.Logger, cache *layoutcache.Cache, path, format string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var layout *hidlayout.DescriptorLayout
	var key string
	if cache != nil {
		key = layoutcache.Key(data)
		if cached, ok := cache.Get(key); ok {
			log.Debug("layout cache hit", zap.String("path", path), zap.String("key", key))
			layout = cached
		}
	}
	if layout == nil {
		layout, err = analyzer.New().Analyze(data)
		if err != nil {
			return "", err
		}
		if cache != nil {
			if err := cache.Put(key, layout); err != nil {
				log.Warn("layout cache store failed", zap.String("path", path), zap.Error(err))
			}
		}
	}

	switch format {
	case "markdown":
		return docrender.New().RenderMarkdown(layout), nil
	case "html":
		return docrender.New().RenderHTML(layout)
	default:
		return renderJSON(layout)
	}
}

func renderJSON(layout *hidlayout.DescriptorLayout) (string, error) {
	fields := layout.Fields()
	docs := make([]map[string]any, len(fields))
	for i, f := range fields {
		docs[i] = f.ToMap()
	}
	out, err := json.MarshalIndent(map[string]any{
		"report_ids":  layout.ListReportIDs(),
		"multiplexed": layout.HasMultipleReportIDs(),
		"fields":      docs,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal layout: %w", err)
	}
	return string(out), nil
}
