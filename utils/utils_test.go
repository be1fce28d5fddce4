package utils

import (
	"errors"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Jamdani Saree":          "jamdani-saree",
		"  Winter  Shawl! 2026 ": "winter-shawl-2026",
		"Café Crème":             "cafe-creme",
		"---":                    "",
		"নকশী কাঁথা":             "নকশী-কাঁথা",
		"Eid ২০২৬ অফার":          "eid-২০২৬-অফার",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUniqueSlug(t *testing.T) {
	used := map[string]bool{"eid-sale": true, "eid-sale-2": true}
	got, err := UniqueSlug("eid-sale", func(s string) (bool, error) { return used[s], nil })
	if err != nil {
		t.Fatal(err)
	}
	if got != "eid-sale-3" {
		t.Fatalf("got %q, want eid-sale-3", got)
	}

	boom := errors.New("db down")
	if _, err := UniqueSlug("x", func(string) (bool, error) { return false, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

func TestNormalizePage(t *testing.T) {
	page, limit, offset := NormalizePage(0, 0, 50)
	if page != 1 || limit != DefaultPageSize || offset != 0 {
		t.Fatalf("defaults: got %d %d %d", page, limit, offset)
	}
	page, limit, offset = NormalizePage(3, 500, 50)
	if page != 3 || limit != 50 || offset != 100 {
		t.Fatalf("clamped: got %d %d %d", page, limit, offset)
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	if tok, err := ExtractTokenFromHeader("Bearer abc.def"); err != nil || tok != "abc.def" {
		t.Fatalf("got %q, %v", tok, err)
	}
	for _, h := range []string{"", "Basic xyz", "Bearer ", "Bear"} {
		if _, err := ExtractTokenFromHeader(h); err == nil {
			t.Errorf("expected error for %q", h)
		}
	}
}

func TestUserAgentParsing(t *testing.T) {
	ua := "Mozilla/5.0 (Linux; Android 14; SM-A546E) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Mobile Safari/537.36"
	if got := ParseDeviceType(ua); got != "mobile" {
		t.Errorf("device = %q", got)
	}
	if got := ParseBrowser(ua); got != "Chrome" {
		t.Errorf("browser = %q", got)
	}
	if got := ParseOS(ua); got != "Android" {
		t.Errorf("os = %q", got)
	}
	if got := ParseOS("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"); got != "iOS" {
		t.Errorf("iphone os = %q", got)
	}
}
