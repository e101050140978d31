// Package docrender renders a hidlayout.DescriptorLayout as Markdown
// (with YAML front matter) and, from that Markdown, as HTML — a
// presentation-only view of a descriptor that carries no information
// beyond what hidlayout.DescriptorLayout already holds.
package docrender

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	meta "github.com/yuin/goldmark-meta"

	"github.com/gpineda-dev/hiddesc/pkg/hidlayout"
)

// Renderer converts a descriptor layout to Markdown and HTML.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer configured with table support and YAML front
// matter parsing.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				meta.Meta,
			),
		),
	}
}

// RenderMarkdown renders layout as a Markdown document: a YAML front
// matter block summarizing report IDs, followed by one table per
// report section.
func (r *Renderer) RenderMarkdown(layout *hidlayout.DescriptorLayout) string {
	var b strings.Builder

	ids := layout.ListReportIDs()
	fmt.Fprintf(&b, "---\nreport_ids: %v\nmultiplexed: %v\n---\n\n", ids, layout.HasMultipleReportIDs())

	for _, id := range ids {
		rl, _ := layout.LookupReportLayout(id)
		fmt.Fprintf(&b, "# Report %d\n\n", id)
		renderSection(&b, "Input", &rl.Input)
		renderSection(&b, "Output", &rl.Output)
		renderSection(&b, "Feature", &rl.Feature)
	}
	return b.String()
}

func renderSection(b *strings.Builder, title string, section *hidlayout.ReportSection) {
	if !section.HasFields() {
		return
	}
	fmt.Fprintf(b, "## %s (%d bytes)\n\n", title, section.SizeBytes())
	b.WriteString("| Bit Offset | Bits | Name | Usage Page | Logical Range | Physical Range |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, f := range section.Fields {
		physical := "-"
		if f.PhysicalMin != 0 || f.PhysicalMax != 0 {
			physical = fmt.Sprintf("[%d, %d]", f.PhysicalMin, f.PhysicalMax)
		}
		fmt.Fprintf(b, "| %d | %d | %s | %s | [%d, %d] | %s |\n",
			f.BitOffset, f.BitSize, f.Name, f.UsagePageName, f.LogicalMin, f.LogicalMax, physical)
	}
	b.WriteString("\n")
}

// RenderHTML converts layout's Markdown rendering to HTML.
func (r *Renderer) RenderHTML(layout *hidlayout.DescriptorLayout) (string, error) {
	markdown := r.RenderMarkdown(layout)
	var out bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &out); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return out.String(), nil
}

// RenderRawBits returns a human-readable, byte-boundary bit dump of a
// raw report buffer, e.g. "10110010 00001111". It is a purely cosmetic
// view: unlike pkg/codec, it says nothing about field boundaries that
// don't fall on byte edges, and must not be used to derive field
// values.
func RenderRawBits(data []byte) string {
	parts := make([]string, len(data))
	for i, v := range data {
		parts[i] = byteBits(v)
	}
	return strings.Join(parts, " ")
}

// byteBits renders a single byte as 8 MSB-first '0'/'1' characters.
func byteBits(v byte) string {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		if v&(1<<uint(7-i)) != 0 {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf[:])
}

// FieldNames returns every non-padding field name across layout, sorted
// for stable display in generated documentation.
func FieldNames(layout *hidlayout.DescriptorLayout) []string {
	seen := make(map[string]bool)
	for _, f := range layout.Fields() {
		if !f.IsPadding() {
			seen[f.Name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
