// Package config holds process-wide compiler switches and the on-disk
// CheckerOptions document, mirroring the teacher's internal/config package
// (package-level toggles such as IsTestMode) plus a YAML-backed options file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Version is the current compiler version. Set at build time via -ldflags,
// as in the teacher's config.Version.
var Version = "0.1.0"

const SourceFileExt = ".src"

// TrimSourceExt removes the recognized source extension from a filename,
// the way the teacher's config.TrimSourceExt does for its own extension
// list (funvibe-funxy internal/config/constants.go).
func TrimSourceExt(name string) string {
	if len(name) >= len(SourceFileExt) && name[len(name)-len(SourceFileExt):] == SourceFileExt {
		return name[:len(name)-len(SourceFileExt)]
	}
	return name
}

// HasSourceExt reports whether path ends with the recognized source extension.
func HasSourceExt(path string) bool {
	return len(path) >= len(SourceFileExt) && path[len(path)-len(SourceFileExt):] == SourceFileExt
}

// IsTestMode mirrors the teacher's config.IsTestMode: normalizes
// auto-generated names (here, synthetic type-parameter instantiation keys)
// for deterministic test output.
var IsTestMode = false

// Well-known standard-library class names recognized by the checker and
// usage analyzer (spec.md §4.3.2, "well-known type").
const (
	StringClassName              = "String"
	FixedArrayClassName          = "FixedArray"
	BoxClassName                 = "Box"
	TemplateStringsArrayClassName = "TemplateStringsArray"
	ErrorClassName                = "Error"
	BoundedRangeClassName         = "BoundedRange"
	FromRangeClassName            = "FromRange"
	ToRangeClassName               = "ToRange"
	FullRangeClassName             = "FullRange"
)

// Constructor and accessor names with semantic meaning to the checker/usage
// analyzer.
const (
	ConstructorName      = "#new"
	IndexGetMethodName   = "[]"
	IndexSetMethodName   = "[]="
	EqualsMethodName     = "=="
	NotEqualsMethodName  = "!="
	GetterPrefix         = "get#"
)

// CheckerOptions is the on-disk options document (spec.md §6.3's
// UsageAnalysisOptions plus the compiler-wide toggles this repo adds),
// loaded from YAML the way the teacher's ext/config.go loads its own
// extension manifest with gopkg.in/yaml.v3.
type CheckerOptions struct {
	// StrictLiteralWidening mirrors types.Interner.SetStrictLiteralWidening.
	StrictLiteralWidening bool `yaml:"strictLiteralWidening"`
	// IncludeReasons asks the usage analyzer to record a human-readable
	// reason string alongside every usage decision (spec.md §6.3).
	IncludeReasons bool `yaml:"includeReasons"`
	// PureModules lists module paths, besides stdlib modules, that the usage
	// analyzer may eliminate when none of their declarations is reachable
	// (spec.md §4.3.4). Every module that is neither listed here nor stdlib
	// is always kept, since it may have side effects.
	PureModules []string `yaml:"pureModules"`
	// Color is loaded from the options document but nothing reads it:
	// report.Print colors its headline only when writing to a terminal, as
	// detected by isatty, and this field cannot force color on or off.
	Color *bool `yaml:"color,omitempty"`
}

// DefaultCheckerOptions mirrors spec.md §9's defaults: strict literal
// widening on, reasons off (cheaper), no pure modules.
func DefaultCheckerOptions() CheckerOptions {
	return CheckerOptions{StrictLiteralWidening: true}
}

// LoadCheckerOptions reads and parses a YAML options document at path,
// falling back to DefaultCheckerOptions's zero-value fields for anything
// the document omits.
func LoadCheckerOptions(path string) (CheckerOptions, error) {
	opts := DefaultCheckerOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, err
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// PureModuleSet converts CheckerOptions.PureModules into the map shape
// usage.Options.PureModules expects.
func (o CheckerOptions) PureModuleSet() map[string]bool {
	set := make(map[string]bool, len(o.PureModules))
	for _, path := range o.PureModules {
		set[path] = true
	}
	return set
}
