package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/funvibe/funxy/internal/config"
)

func TestDefaultCheckerOptions(t *testing.T) {
	opts := config.DefaultCheckerOptions()
	if !opts.StrictLiteralWidening {
		t.Fatalf("expected StrictLiteralWidening true by default")
	}
	if opts.IncludeReasons {
		t.Fatalf("expected IncludeReasons false by default")
	}
	if len(opts.PureModules) != 0 {
		t.Fatalf("expected no pure modules by default, got %v", opts.PureModules)
	}
}

func TestLoadCheckerOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checker.yaml")
	doc := "includeReasons: true\npureModules:\n  - runtime/registration\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	opts, err := config.LoadCheckerOptions(path)
	if err != nil {
		t.Fatalf("LoadCheckerOptions: %v", err)
	}
	if !opts.IncludeReasons {
		t.Fatalf("expected IncludeReasons true, got false")
	}
	set := opts.PureModuleSet()
	if !set["runtime/registration"] {
		t.Fatalf("expected runtime/registration in pure module set, got %v", set)
	}
}

func TestTrimAndHasSourceExt(t *testing.T) {
	if !config.HasSourceExt("foo.src") {
		t.Fatalf("expected foo.src to have the source extension")
	}
	if config.HasSourceExt("foo.txt") {
		t.Fatalf("expected foo.txt to not have the source extension")
	}
	if got := config.TrimSourceExt("foo.src"); got != "foo" {
		t.Fatalf("expected trimmed name 'foo', got %q", got)
	}
}
