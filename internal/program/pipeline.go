package program

import (
	"github.com/funvibe/funxy/internal/checker"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/types"
	"github.com/funvibe/funxy/internal/usage"
)

// CheckedProgram is the output handed to a downstream code generator
// (spec.md §6.2): the shared type interner, the per-node semantic
// annotations, collected diagnostics, and the usage analysis result.
type CheckedProgram struct {
	Interner *types.Interner
	Checker  *checker.Checker
	Usage    *usage.UsageAnalysisResult
}

// Run sequences the three components leaf-first per spec.md §5: the Type
// System is built incrementally as each module's declarations are checked,
// the Semantic Checker processes modules in dependency order so an
// importer always sees its imports' exports, and the Usage Analyzer runs
// once over the fully checked program. Mirrors the teacher's
// modules.Compiler.Run loop (funvibe-funxy internal/modules), generalized
// from its single-pass HM inference to this checker's two-checker-phase,
// multi-module design.
func Run(prog *Program, opts usage.Options) (*CheckedProgram, *diagnostics.Bag) {
	interner := types.NewInterner()
	c := checker.New(interner)

	for _, path := range prog.TopoOrder() {
		mod, ok := prog.Modules[path]
		if !ok {
			continue
		}
		exports := c.CheckModule(path, mod.Body, mod.IsStdlib)
		c.SetImports(path, exports)
	}

	opts.Interner = interner
	opts.SemanticContext = c.SemCtx
	analyzer := usage.NewAnalyzer(opts)

	inputs := make([]usage.ModuleInput, 0, len(prog.Modules))
	for path, mod := range prog.Modules {
		inputs = append(inputs, usage.ModuleInput{Path: path, Body: mod.Body, IsStdlib: mod.IsStdlib})
	}
	result := analyzer.Analyze(inputs, prog.EntryPoint)

	return &CheckedProgram{Interner: interner, Checker: c, Usage: result}, c.Diags
}
