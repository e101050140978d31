package layoutcache

import (
	"os"
	"testing"

	"github.com/gpineda-dev/hiddesc/pkg/hidlayout"
)

func TestPutGetRoundTrip(t *testing.T) {
	dir, err := os.MkdirTemp("", "layoutcache")
	if err != nil {
		t.Fatalf("MkdirTemp failed: %v", err)
	}
	defer os.RemoveAll(dir)

	cache, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer cache.Close()

	layout := hidlayout.NewDescriptorLayout()
	_ = layout.AddField(&hidlayout.Field{Name: "X", BitOffset: 0, BitSize: 8, ReportType: "input"})

	key := Key([]byte{0x05, 0x01})
	if err := cache.Put(key, layout); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok := cache.Get(key)
	if !ok {
		t.Fatal("expected cache hit after Put")
	}
	if len(got.Fields()) != 1 || got.Fields()[0].Name != "X" {
		t.Fatalf("unexpected roundtrip result: %+v", got.Fields())
	}
}

func TestGetMissReturnsFalse(t *testing.T) {
	dir, err := os.MkdirTemp("", "layoutcache")
	if err != nil {
		t.Fatalf("MkdirTemp failed: %v", err)
	}
	defer os.RemoveAll(dir)

	cache, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer cache.Close()

	if _, ok := cache.Get("nonexistent"); ok {
		t.Fatal("expected cache miss")
	}
}
