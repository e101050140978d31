package hidusage

import "testing"

func TestUsageNamePadding(t *testing.T) {
	if got := UsageName(GenericDesktopPageID, 0); got != "Padding / Reserved" {
		t.Fatalf("got %q", got)
	}
	if got := UsageName(ButtonPageID, 0); got != "Padding / Reserved" {
		t.Fatalf("button page padding: got %q", got)
	}
}

func TestUsageNameButton(t *testing.T) {
	if got := UsageName(ButtonPageID, 1); got != "Button_1" {
		t.Fatalf("got %q", got)
	}
	if got := UsageName(ButtonPageID, 32); got != "Button_32" {
		t.Fatalf("got %q", got)
	}
}

func TestUsageNameKnown(t *testing.T) {
	if got := UsageName(GenericDesktopPageID, X); got != "X" {
		t.Fatalf("got %q", got)
	}
	if got := UsageName(GenericDesktopPageID, HatSwitch); got != "Hat_Switch" {
		t.Fatalf("got %q", got)
	}
}

func TestUsageNameFallback(t *testing.T) {
	if got := UsageName(GenericDesktopPageID, 0x7E); got != "Usage 0x7E" {
		t.Fatalf("got %q", got)
	}
}

func TestPageNameVendorDefined(t *testing.T) {
	if got := PageName(0xFF01); got != "Vendor Defined (0xFF01)" {
		t.Fatalf("got %q", got)
	}
}
