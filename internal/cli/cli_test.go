package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := testCLI().RootCommand()

	want := []string{
		"parse", "layout", "render", "view", "serve", "fetch",
		"login", "logout", "whoami", "cache", "archive", "completion",
	}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestRootCommand_SilencesUsage(t *testing.T) {
	root := testCLI().RootCommand()
	if !root.SilenceUsage {
		t.Error("usage spam on runtime errors should be suppressed")
	}
}

func TestParseFormats(t *testing.T) {
	c := testCLI()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty uses configured default", "", []string{c.Config.Render.Format}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "png,pdf", []string{"png", "pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestCacheDir(t *testing.T) {
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Unsetenv("XDG_CACHE_HOME")
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := "/tmp/custom-cache"
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Setenv("XDG_CACHE_HOME", customCache)
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CACHE_HOME")
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestRenderBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"derived from input", "", "family.json", "family"},
		{"no input falls back", "", "", "tree"},
		{"output without extension", "out/tree", "family.json", "out/tree"},
		{"output strips format extension", "out/tree.png", "family.json", "out/tree"},
		{"unknown extension kept", "out/tree.bak", "family.json", "out/tree.bak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderBasePath(tt.output, tt.input); got != tt.want {
				t.Errorf("renderBasePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Short", 10); got != "Short" {
		t.Errorf("truncate should leave short names alone, got %q", got)
	}
	got := truncate("A very long family member name", 10)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated name should end with ellipsis, got %q", got)
	}
	if len([]rune(got)) != 10 {
		t.Errorf("truncated name length = %d, want 10", len([]rune(got)))
	}
}
