// Package report renders the Usage Analyzer's dead-code-elimination summary
// for the CLI driver. Not part of spec.md's TS/SC/UA core — a supplemental
// component so cmd/semcheck has something to print, modeled on the teacher's
// evaluator/builtins_term.go use of go-isatty for colorized terminal output
// and its humanize-style count formatting.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/funvibe/funxy/internal/ast"
)

// Summary is the aggregate count a DCE report prints.
type Summary struct {
	TotalDeclarations int
	UsedDeclarations  int
	TotalModules      int
	UsedModules       int
}

func (s Summary) Eliminated() int { return s.TotalDeclarations - s.UsedDeclarations }

// UsageResult is the minimal surface Summarize needs from
// usage.UsageAnalysisResult, kept local to avoid this package depending on
// internal/usage for anything but a method set.
type UsageResult interface {
	UsedDeclarations() []ast.Node
	UsedModules() []string
}

// Summarize counts total vs. used declarations/modules given every known
// declaration and module path (the full index, not just the used set).
func Summarize(result UsageResult, allDeclarations []ast.Node, allModulePaths []string) Summary {
	return Summary{
		TotalDeclarations: len(allDeclarations),
		UsedDeclarations:  len(result.UsedDeclarations()),
		TotalModules:      len(allModulePaths),
		UsedModules:       len(result.UsedModules()),
	}
}

// Print writes a human-readable DCE summary to w, colorizing the headline
// when w is a terminal (mirroring the teacher's isatty-gated ANSI output).
func Print(w io.Writer, s Summary) {
	bold, reset := "", ""
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		bold, reset = "\x1b[1m", "\x1b[0m"
	}
	fmt.Fprintf(w, "%sdead code elimination summary%s\n", bold, reset)
	fmt.Fprintf(w, "  declarations: %s used / %s total (%s eliminated)\n",
		humanize.Comma(int64(s.UsedDeclarations)), humanize.Comma(int64(s.TotalDeclarations)), humanize.Comma(int64(s.Eliminated())))
	fmt.Fprintf(w, "  modules:      %s used / %s total\n",
		humanize.Comma(int64(s.UsedModules)), humanize.Comma(int64(s.TotalModules)))
}
