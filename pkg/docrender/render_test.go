package docrender

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/gpineda-dev/hiddesc/pkg/analyzer"
)

const mouseHex = "05010902A10005091500250175019503190129038102050025007505950181030501158125" +
	"7F7508093081020931810209388102C0"

func TestRenderMarkdownContainsFieldNames(t *testing.T) {
	data, err := hex.DecodeString(mouseHex)
	if err != nil {
		t.Fatalf("bad test hex: %v", err)
	}
	layout, err := analyzer.New().Analyze(data)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	md := New().RenderMarkdown(layout)
	for _, want := range []string{"Button_1", "X", "Y", "Wheel", "# Report 0"} {
		if !strings.Contains(md, want) {
			t.Errorf("rendered markdown missing %q:\n%s", want, md)
		}
	}
}

func TestRenderHTMLProducesTable(t *testing.T) {
	data, err := hex.DecodeString(mouseHex)
	if err != nil {
		t.Fatalf("bad test hex: %v", err)
	}
	layout, err := analyzer.New().Analyze(data)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	html, err := New().RenderHTML(layout)
	if err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Errorf("expected an HTML table, got:\n%s", html)
	}
}

func TestRenderRawBits(t *testing.T) {
	got := RenderRawBits([]byte{0b10110010, 0x0F})
	if got != "10110010 00001111" {
		t.Fatalf("got %q", got)
	}
}
