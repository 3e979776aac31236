// Command semcheck drives the type system, semantic checker, and usage
// analyzer over a set of source files and prints a dead-code-elimination
// summary, mirroring the shape of the teacher's cmd/funxy/main.go (flag
// parsing, file loading, single evaluateModule-style driver loop) but
// targeting program.Run instead of the teacher's lexer/parser/evaluator/vm
// execution pipeline, which is out of spec.md's TS/SC/UA scope.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/config"
	"github.com/funvibe/funxy/internal/parser"
	"github.com/funvibe/funxy/internal/program"
	"github.com/funvibe/funxy/internal/report"
	"github.com/funvibe/funxy/internal/usage"
)

func modulePath(file string) string {
	base := filepath.Base(file)
	return config.TrimSourceExt(base)
}

func loadModule(file string) (*program.Module, []error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, []error{err}
	}
	p := parser.New(file, string(data))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, errs
	}

	mod := &program.Module{Path: modulePath(file), Body: prog.Statements}
	for _, stmt := range prog.Statements {
		if imp, ok := stmt.(*ast.ImportStatement); ok {
			mod.Imports = append(mod.Imports, imp.Path)
		}
	}
	return mod, nil
}

func main() {
	optsPath := ""
	var files []string
	for _, arg := range os.Args[1:] {
		if strings.HasPrefix(arg, "-options=") {
			optsPath = strings.TrimPrefix(arg, "-options=")
			continue
		}
		files = append(files, arg)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: semcheck [-options=checker.yaml] file.src [file.src...]")
		os.Exit(2)
	}

	checkerOpts := config.DefaultCheckerOptions()
	if optsPath != "" {
		loaded, err := config.LoadCheckerOptions(optsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "semcheck: loading options: %v\n", err)
			os.Exit(1)
		}
		checkerOpts = loaded
	}

	prog := &program.Program{Modules: map[string]*program.Module{}}
	var allDecls []ast.Node
	for _, file := range files {
		mod, errs := loadModule(file)
		if len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "semcheck: %v\n", e)
			}
			os.Exit(1)
		}
		prog.Modules[mod.Path] = mod
		for _, stmt := range mod.Body {
			allDecls = append(allDecls, stmt)
		}
		if prog.EntryPoint == "" {
			prog.EntryPoint = mod.Path
		}
	}

	checked, diags := program.Run(prog, usage.Options{
		IncludeReasons: checkerOpts.IncludeReasons,
		PureModules:    checkerOpts.PureModuleSet(),
	})

	for _, d := range diags.Errors() {
		fmt.Fprintln(os.Stderr, d.Error())
	}

	var allModules []string
	for path := range prog.Modules {
		allModules = append(allModules, path)
	}
	summary := report.Summarize(checked.Usage, allDecls, allModules)
	report.Print(os.Stdout, summary)

	if diags.HasErrors() {
		os.Exit(1)
	}
}
