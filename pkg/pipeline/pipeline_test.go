package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/sbhuiyan/kintree/pkg/cache"
	kterrors "github.com/sbhuiyan/kintree/pkg/errors"
)

const sampleDoc = `{
  "familyName": "Bhuiyan",
  "members": [
    {"id": "a", "name": "Abe", "gender": "male", "spouseIds": ["b"], "childrenIds": ["c"]},
    {"id": "b", "name": "Bea", "gender": "female", "spouseIds": ["a"], "childrenIds": ["c"]},
    {"id": "c", "name": "Cal", "gender": "male"}
  ]
}`

const invalidDoc = `{
  "members": [
    {"id": "a", "name": "", "gender": "unknown"}
  ]
}`

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "family.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietLogger() *log.Logger {
	logger := log.New(os.Stderr)
	logger.SetLevel(log.FatalLevel)
	return logger
}

func TestOptions_Validation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code kterrors.Code
	}{
		{"no input", Options{}, kterrors.ErrCodeInvalidInput},
		{"both inputs", Options{Input: "x.json", FromPortal: true}, kterrors.ErrCodeInvalidInput},
		{"bad device", Options{Input: "x.json", Device: "watch"}, kterrors.ErrCodeInvalidDevice},
		{"bad format", Options{Input: "x.json", Formats: []string{"gif"}}, kterrors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if kterrors.GetCode(err) != tt.code {
				t.Errorf("got %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptions_Defaults(t *testing.T) {
	opts := Options{Input: "x.json"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Device != DefaultDevice {
		t.Errorf("device = %q, want %q", opts.Device, DefaultDevice)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("formats = %v, want [%s]", opts.Formats, DefaultFormat)
	}
}

func TestRunner_Execute(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())

	result, err := runner.Execute(context.Background(), Options{
		Input:   writeDoc(t, sampleDoc),
		Formats: []string{FormatJSON, FormatDOT},
		Logger:  quietLogger(),
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.Stats.Members != 3 {
		t.Errorf("members = %d, want 3", result.Stats.Members)
	}
	if result.TreeHash == "" {
		t.Error("missing tree hash")
	}
	if len(result.Layout.Order) != 3 {
		t.Errorf("layout placed %d nodes", len(result.Layout.Order))
	}

	if !strings.Contains(string(result.Artifacts[FormatJSON]), `"familyName": "Bhuiyan"`) {
		t.Error("JSON artifact missing family name")
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatDOT]), "digraph G {") {
		t.Error("DOT artifact missing header")
	}
}

func TestRunner_StrictRejectsInvalid(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())

	_, err := runner.Execute(context.Background(), Options{
		Input:   writeDoc(t, invalidDoc),
		Strict:  true,
		Formats: []string{FormatJSON},
		Logger:  quietLogger(),
	})
	if kterrors.GetCode(err) != kterrors.ErrCodeInvalidMember {
		t.Errorf("expected INVALID_MEMBER, got %v", err)
	}
}

func TestRunner_LenientKeepsInvalid(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())

	result, err := runner.Execute(context.Background(), Options{
		Input:   writeDoc(t, invalidDoc),
		Formats: []string{FormatJSON},
		Logger:  quietLogger(),
	})
	if err != nil {
		t.Fatalf("lenient mode should keep going: %v", err)
	}
	if result.Stats.Members != 1 {
		t.Errorf("members = %d, want 1", result.Stats.Members)
	}
}

func TestRunner_ArtifactCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, quietLogger())
	opts := Options{
		Input:   writeDoc(t, sampleDoc),
		Formats: []string{FormatJSON},
		Logger:  quietLogger(),
	}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.ArtifactHits != 0 {
		t.Errorf("first run should not hit the cache")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if second.CacheInfo.ArtifactHits != 1 {
		t.Errorf("second run artifact hits = %d, want 1", second.CacheInfo.ArtifactHits)
	}
	if string(first.Artifacts[FormatJSON]) != string(second.Artifacts[FormatJSON]) {
		t.Error("cached artifact differs from fresh render")
	}
}
