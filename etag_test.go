package main

import "testing"

func TestComputeETag(t *testing.T) {
	etag := computeETag([]byte("abc"))
	if etag != "a9993e364706816aba3e25717850c26c9cd0d89d" {
		t.Errorf("Unexpected digest %s", etag)
	}
	if computeETag([]byte("abc")) != etag {
		t.Error("Digest is not stable")
	}
	if computeETag([]byte("abd")) == etag {
		t.Error("Digest did not change with content")
	}
}

func TestIsUnmodified(t *testing.T) {
	etag := computeETag([]byte("png"))

	tests := []struct {
		client string
		want   bool
	}{
		{etag, true},
		{"", false},
		{`"` + etag + `"`, false},
		{computeETag([]byte("other")), false},
	}
	for _, tt := range tests {
		if got := isUnmodified(etag, tt.client); got != tt.want {
			t.Errorf("isUnmodified(%q): expected %v, got %v", tt.client, tt.want, got)
		}
	}
}
