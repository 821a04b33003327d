package utils

import "testing"

func TestParseSize(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"512", 512},
		{"4K", 4 * 1024},
		{"64KB", 64 * 1024},
		{"10M", 10 * 1024 * 1024},
		{"2MB", 2 * 1024 * 1024},
		{"4G", 4 * 1024 * 1024 * 1024},
		{"1gb", 1024 * 1024 * 1024},
	}
	for _, c := range cases {
		got, err := ParseSize(c.in)
		if err != nil {
			t.Errorf("ParseSize(%q) returned error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseSize(%q) = %d, want %d", c.in, got, c.want)
		}
	}

	if _, err := ParseSize("abc"); err == nil {
		t.Errorf("ParseSize(\"abc\") should return error")
	}
}

func TestFormatSize(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{512, "512B"},
		{4 * 1024, "4.00KB"},
		{10 * 1024 * 1024, "10.00MB"},
		{2 * 1024 * 1024 * 1024, "2.00GB"},
	}
	for _, c := range cases {
		if got := FormatSize(c.in); got != c.want {
			t.Errorf("FormatSize(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	cases := []struct {
		in   uint64
		want string
	}{
		{512, "512"},
		{4096, "4.10K"},
		{1_073_741_824, "1.07G"},
	}
	for _, c := range cases {
		if got := FormatCount(c.in); got != c.want {
			t.Errorf("FormatCount(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseCacheSize(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"32K", 32 * 1024},
		{"4M", 4 * 1024 * 1024},
		{"1G", 1024 * 1024 * 1024},
	}
	for _, c := range cases {
		got, err := ParseCacheSize(c.in)
		if err != nil {
			t.Errorf("ParseCacheSize(%q) returned error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseCacheSize(%q) = %d, want %d", c.in, got, c.want)
		}
	}

	for _, in := range []string{"", "32Q", "K"} {
		if _, err := ParseCacheSize(in); err == nil {
			t.Errorf("ParseCacheSize(%q) should return error", in)
		}
	}
}
