package storage

import (
	"regexp"
	"testing"
)

func TestPublicID(t *testing.T) {
	tests := []struct {
		name string
		base string
	}{
		{name: "lawn.jpg", base: "lawn"},
		{name: "uploads/front gate.png", base: "front_gate"},
		{name: "../../etc/passwd", base: "passwd"},
		{name: "naïve-photo_1.jpeg", base: "na_ve-photo_1"},
		{name: ".jpg", base: "image"},
		{name: "", base: "image"},
	}
	for _, tt := range tests {
		got := publicID(tt.name)
		if !regexp.MustCompile("^" + regexp.QuoteMeta(tt.base) + "_[0-9a-f-]{8}$").MatchString(got) {
			t.Errorf("publicID(%q) = %q, want %s_<8 hex>", tt.name, got, tt.base)
		}
	}
	if publicID("a.jpg") == publicID("a.jpg") {
		t.Fatal("public ids must not collide for the same file name")
	}
}
