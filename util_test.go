package main

import (
	"slices"
	"testing"
	"time"
)

func TestDirExists(t *testing.T) {
	dir := t.TempDir()
	if !dirExists(dir) {
		t.Errorf("Expected dirExists to return true for existing dir")
	}
	if dirExists(dir + "-notfound") {
		t.Errorf("Expected dirExists to return false for non-existent dir")
	}
}

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		dur      time.Duration
		expected string
	}{
		{time.Second * 5, "5 seconds"},
		{time.Second * 65, "1 minute, 5 seconds"},
		{time.Second * 3665, "1 hour, 1 minute, 5 seconds"},
		{time.Second * 1, "1 second"},
	}
	for _, c := range cases {
		if got := formatUptime(c.dur); got != c.expected {
			t.Errorf("formatUptime(%v) = %q, want %q", c.dur, got, c.expected)
		}
	}
}

func TestFormatMSAndSize(t *testing.T) {
	if got := formatMS(12350); got != "12.3s" && got != "12.4s" {
		t.Errorf("formatMS(12350) = %q", got)
	}
	if got := formatMS(600); got != "0.6s" {
		t.Errorf("formatMS(600) = %q", got)
	}
	if got := formatSize(2048); got != "2.0 KiB" {
		t.Errorf("formatSize(2048) = %q", got)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "7")
	t.Setenv("TEST_BAD_INT", "seven")
	t.Setenv("TEST_DUR", "90s")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_BAD_BOOL", "maybe")
	t.Setenv("TEST_STR", "  out  ")

	if got := getEnvInt("TEST_INT", 1); got != 7 {
		t.Errorf("getEnvInt = %d, want 7", got)
	}
	if got := getEnvInt("TEST_BAD_INT", 1); got != 1 {
		t.Errorf("getEnvInt with bad value = %d, want fallback 1", got)
	}
	if got := getEnvInt("TEST_UNSET_INT", 3); got != 3 {
		t.Errorf("getEnvInt unset = %d, want 3", got)
	}
	if got := getEnvDuration("TEST_DUR", time.Second); got != 90*time.Second {
		t.Errorf("getEnvDuration = %v, want 90s", got)
	}
	if !getEnvBool("TEST_BOOL", false) {
		t.Error("getEnvBool = false, want true")
	}
	if getEnvBool("TEST_BAD_BOOL", false) {
		t.Error("getEnvBool with bad value should fall back to false")
	}
	if got := getEnvString("TEST_STR", "docs"); got != "out" {
		t.Errorf("getEnvString = %q, want %q", got, "out")
	}
	if got := getEnvString("TEST_UNSET_STR", "docs"); got != "docs" {
		t.Errorf("getEnvString unset = %q, want docs", got)
	}
}

func TestSplitList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"a", []string{"a"}},
		{" a, b ,,a ", []string{"a", "b"}},
	}
	for _, c := range cases {
		if got := splitList(c.in); !slices.Equal(got, c.want) {
			t.Errorf("splitList(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestPlural(t *testing.T) {
	if plural(1) != "" {
		t.Errorf("plural(1) should be empty")
	}
	if plural(0) != "s" || plural(2) != "s" {
		t.Errorf("plural(0) and plural(2) should be 's'")
	}
}
