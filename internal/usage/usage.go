// Package usage is the Usage Analyzer (UA) of spec.md §4.3: a worklist-based
// reachability sweep over a checked program that starts at the entry-point
// module's exports and marks every transitively-referenced declaration,
// method, and field used, with polymorphic method calls propagated down a
// class's subclass tree. It is read-only with respect to internal/types and
// internal/checker — this package never mutates a Type or re-infers
// anything the checker already recorded onto the AST (spec.md §3.3
// lifecycle). Modeled on the teacher's internal/analyzer reachability pass
// (funvibe-funxy), generalized from HM-inferred call sites to spec.md's
// resolved-binding-driven dispatch.
package usage

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/config"
	"github.com/funvibe/funxy/internal/symbols"
	"github.com/funvibe/funxy/internal/types"
)

// ModuleInput is the slice of internal/program.Module the analyzer actually
// needs. Defined locally (rather than importing internal/program) so that
// internal/program's pipeline driver can import this package without a
// cycle; internal/program converts its own Module values to this shape.
type ModuleInput struct {
	Path     string
	Body     []ast.Statement
	IsStdlib bool
}

// UsageInfo is what the analyzer records for one declaration.
type UsageInfo struct {
	IsUsed bool
	Reason string
}

// FieldUsageInfo tracks whether a field was ever read and/or written.
type FieldUsageInfo struct {
	IsRead    bool
	IsWritten bool
}

// Options configures one analysis run (spec.md §6.3).
type Options struct {
	Interner        *types.Interner
	SemanticContext *symbols.SemanticContext
	IncludeReasons  bool
	PureModules     map[string]bool
}

// Analyzer holds the mutable state of one run (spec.md §4.3.1).
type Analyzer struct {
	interner *types.Interner
	semCtx   *symbols.SemanticContext
	includeReasons bool
	pureModules    map[string]bool

	usageMap         map[ast.Node]*UsageInfo
	usedDeclarations []ast.Node
	usedSet          map[ast.Node]bool
	usedModules      map[string]bool
	usedModuleOrder  []string

	worklist   []ast.Node
	inWorklist map[ast.Node]bool

	declarationsByName map[string][]ast.Node
	declToModule       map[ast.Node]string
	funcToVarDecl      map[*ast.FunctionExpression]*ast.VariableDeclaration

	usedMethods        map[types.Type]map[string]bool
	polymorphicMethods map[types.Type]map[string]bool
	subclasses         map[*types.ClassType][]*types.ClassType
	fieldUsage         map[types.Type]map[string]*FieldUsageInfo
}

func NewAnalyzer(opts Options) *Analyzer {
	return &Analyzer{
		interner:       opts.Interner,
		semCtx:         opts.SemanticContext,
		includeReasons: opts.IncludeReasons,
		pureModules:    opts.PureModules,

		usageMap:    map[ast.Node]*UsageInfo{},
		usedSet:     map[ast.Node]bool{},
		usedModules: map[string]bool{},

		inWorklist: map[ast.Node]bool{},

		declarationsByName: map[string][]ast.Node{},
		declToModule:       map[ast.Node]string{},
		funcToVarDecl:      map[*ast.FunctionExpression]*ast.VariableDeclaration{},

		usedMethods:        map[types.Type]map[string]bool{},
		polymorphicMethods: map[types.Type]map[string]bool{},
		subclasses:         map[*types.ClassType][]*types.ClassType{},
		fieldUsage:         map[types.Type]map[string]*FieldUsageInfo{},
	}
}

// Analyze runs all four phases of spec.md §4.3.2 and returns a queryable
// result. modules is every module known to the program; entryPoint is the
// path whose exported top-level declarations seed the root set.
func (a *Analyzer) Analyze(modules []ModuleInput, entryPoint string) *UsageAnalysisResult {
	if a.pureModules == nil {
		a.pureModules = map[string]bool{}
	}
	var entry *ModuleInput
	for i := range modules {
		if modules[i].IsStdlib {
			a.pureModules[modules[i].Path] = true
		}
		a.index(modules[i].Path, modules[i].Body)
		if modules[i].Path == entryPoint {
			entry = &modules[i]
		}
	}
	if entry != nil {
		a.roots(entry.Body)
	}
	a.drainWorklist()
	return &UsageAnalysisResult{a: a}
}

// --- Phase 1: Index ---

func (a *Analyzer) index(path string, body []ast.Statement) {
	for _, stmt := range body {
		var name string
		switch d := stmt.(type) {
		case *ast.ClassDeclaration:
			name = d.Name
			if ct, ok := a.interner.LookupClass(name); ok && ct.SuperType != nil {
				a.subclasses[ct.SuperType] = append(a.subclasses[ct.SuperType], ct)
			}
		case *ast.InterfaceDeclaration:
			name = d.Name
		case *ast.MixinDeclaration:
			name = d.Name
		case *ast.TypeAliasDeclaration:
			name = d.Name
		case *ast.VariableDeclaration:
			name = d.Name
			if fn, ok := d.Value.(*ast.FunctionExpression); ok {
				a.funcToVarDecl[fn] = d
			}
		default:
			continue
		}
		a.declarationsByName[name] = append(a.declarationsByName[name], stmt)
		a.declToModule[stmt] = path
	}
}

// --- Phase 2: Roots ---

func (a *Analyzer) roots(entryBody []ast.Statement) {
	for _, stmt := range entryBody {
		if exported(stmt) {
			a.markDeclUsed(stmt, "entry point export")
		}
	}
}

func exported(stmt ast.Statement) bool {
	switch d := stmt.(type) {
	case *ast.ClassDeclaration:
		return d.IsExported
	case *ast.InterfaceDeclaration:
		return d.IsExported
	case *ast.MixinDeclaration:
		return d.IsExported
	case *ast.TypeAliasDeclaration:
		return d.IsExported
	case *ast.VariableDeclaration:
		return d.IsExported
	default:
		return false
	}
}

// --- marking ---

func (a *Analyzer) markDeclUsed(decl ast.Node, reason string) {
	if decl == nil || a.usedSet[decl] {
		return
	}
	info := &UsageInfo{IsUsed: true}
	if a.includeReasons {
		info.Reason = reason
	}
	a.usageMap[decl] = info
	a.usedSet[decl] = true
	a.usedDeclarations = append(a.usedDeclarations, decl)
	if mod, ok := a.declToModule[decl]; ok && !a.usedModules[mod] {
		a.usedModules[mod] = true
		a.usedModuleOrder = append(a.usedModuleOrder, mod)
	}
	if vd, ok := decl.(*ast.VariableDeclaration); ok {
		if fn, ok := vd.Value.(*ast.FunctionExpression); ok {
			_ = fn // bidirectional link is satisfied by keying usage on the VariableDeclaration itself
		}
	}
	a.worklist = append(a.worklist, decl)
	a.inWorklist[decl] = true
}

// markByName is the conservative fallback of spec.md §4.3.5: with no
// semantic context (or no resolved binding), mark every declaration
// sharing the name.
func (a *Analyzer) markByName(name, reason string) {
	for _, decl := range a.declarationsByName[name] {
		a.markDeclUsed(decl, reason)
	}
}

func (a *Analyzer) declFor(t types.Type) ast.Node {
	switch v := t.(type) {
	case *types.ClassType:
		root := v
		for root.GenericSource != nil {
			root = root.GenericSource
		}
		return a.firstDeclOfKind(root.Name, func(s ast.Statement) bool { _, ok := s.(*ast.ClassDeclaration); return ok })
	case *types.InterfaceType:
		root := v
		for root.GenericSource != nil {
			root = root.GenericSource
		}
		return a.firstDeclOfKind(root.Name, func(s ast.Statement) bool { _, ok := s.(*ast.InterfaceDeclaration); return ok })
	case *types.MixinType:
		root := v
		for root.GenericSource != nil {
			root = root.GenericSource
		}
		return a.firstDeclOfKind(root.Name, func(s ast.Statement) bool { _, ok := s.(*ast.MixinDeclaration); return ok })
	case *types.TypeAlias:
		return a.firstDeclOfKind(v.Name, func(s ast.Statement) bool { _, ok := s.(*ast.TypeAliasDeclaration); return ok })
	default:
		return nil
	}
}

func (a *Analyzer) firstDeclOfKind(name string, match func(ast.Statement) bool) ast.Node {
	for _, decl := range a.declarationsByName[name] {
		if stmt, ok := decl.(ast.Statement); ok && match(stmt) {
			return decl
		}
	}
	return nil
}

func (a *Analyzer) markTypeUsed(t types.Type, reason string) {
	if t == nil {
		return
	}
	switch v := t.(type) {
	case *types.ClassType:
		if decl := a.declFor(v); decl != nil {
			a.markDeclUsed(decl, reason)
		}
		if v.GenericSource != nil {
			a.markTypeUsed(v.GenericSource, reason)
		}
		if v.SuperType != nil {
			a.markTypeUsed(v.SuperType, reason)
		}
		for _, iface := range v.Implements {
			a.markTypeUsed(iface, reason)
		}
	case *types.InterfaceType:
		if decl := a.declFor(v); decl != nil {
			a.markDeclUsed(decl, reason)
		}
		for _, ext := range v.Extends {
			a.markTypeUsed(ext, reason)
		}
	case *types.MixinType, *types.TypeAlias:
		if decl := a.declFor(v); decl != nil {
			a.markDeclUsed(decl, reason)
		}
	case *types.UnionType:
		for _, m := range v.Types {
			a.markTypeUsed(m, reason)
		}
	case *types.ArrayType:
		a.markTypeUsed(v.ElementType, reason)
	case *types.FixedArrayType:
		a.markTypeUsed(v.ElementType, reason)
	}
}

func (a *Analyzer) markWellKnown(name, reason string) {
	a.markTypeUsed(a.lookupClassByName(name), reason)
}

func (a *Analyzer) lookupClassByName(name string) types.Type {
	if a.interner == nil {
		return nil
	}
	if ct, ok := a.interner.LookupClass(name); ok {
		return ct
	}
	return nil
}

// markMethodUsed implements spec.md §4.3.3.
func (a *Analyzer) markMethodUsed(receiver types.Type, name string, isPolymorphic bool) {
	if receiver == nil {
		return
	}
	if a.usedMethods[receiver] == nil {
		a.usedMethods[receiver] = map[string]bool{}
	}
	a.usedMethods[receiver][name] = true
	if !isPolymorphic {
		return
	}
	if a.polymorphicMethods[receiver] == nil {
		a.polymorphicMethods[receiver] = map[string]bool{}
	}
	a.polymorphicMethods[receiver][name] = true

	if ct, ok := receiver.(*types.ClassType); ok {
		a.propagateToSubclasses(ct, name)
	}
}

func (a *Analyzer) propagateToSubclasses(ct *types.ClassType, name string) {
	for _, sub := range a.subclasses[ct] {
		if a.usedMethods[sub] == nil {
			a.usedMethods[sub] = map[string]bool{}
		}
		if a.usedMethods[sub][name] {
			continue // already propagated; avoid infinite loop on cyclic bookkeeping
		}
		a.usedMethods[sub][name] = true
		a.propagateToSubclasses(sub, name)
	}
}

func (a *Analyzer) markFieldRead(receiver types.Type, field string) {
	a.fieldSlot(receiver, field).IsRead = true
	a.markMethodUsed(receiver, config.GetterPrefix+field, true)
}

func (a *Analyzer) markFieldWritten(receiver types.Type, field string) {
	a.fieldSlot(receiver, field).IsWritten = true
}

func (a *Analyzer) fieldSlot(receiver types.Type, field string) *FieldUsageInfo {
	if a.fieldUsage[receiver] == nil {
		a.fieldUsage[receiver] = map[string]*FieldUsageInfo{}
	}
	if a.fieldUsage[receiver][field] == nil {
		a.fieldUsage[receiver][field] = &FieldUsageInfo{}
	}
	return a.fieldUsage[receiver][field]
}

// --- Phase 3: Worklist ---

func (a *Analyzer) drainWorklist() {
	for len(a.worklist) > 0 {
		decl := a.worklist[len(a.worklist)-1]
		a.worklist = a.worklist[:len(a.worklist)-1]
		delete(a.inWorklist, decl)
		a.visitDecl(decl)
	}
}

func (a *Analyzer) visitDecl(decl ast.Node) {
	switch d := decl.(type) {
	case *ast.VariableDeclaration:
		a.visitExpr(d.Value)

	case *ast.ClassDeclaration:
		ct, _ := a.interner.LookupClass(d.Name)
		if ct != nil {
			if ct.SuperType != nil {
				a.markDeclUsed(a.declFor(ct.SuperType), "superclass of used class")
			}
			for _, iface := range ct.Implements {
				a.markDeclUsed(a.declFor(iface), "implemented by used class")
			}
		}
		if d.Constructor != nil {
			a.visitMethodDecl(d.Constructor)
		}
		for _, m := range d.Methods {
			a.visitMethodDecl(m)
		}

	case *ast.MixinDeclaration:
		for _, m := range d.Methods {
			a.visitMethodDecl(m)
		}

	case *ast.InterfaceDeclaration:
		it, _ := a.interner.LookupInterface(d.Name)
		if it != nil {
			for _, ext := range it.Extends {
				a.markDeclUsed(a.declFor(ext), "extended by used interface")
			}
		}

	case *ast.TypeAliasDeclaration:
		alias, _ := a.interner.LookupAlias(d.Name)
		if alias != nil {
			a.markTypeUsed(alias.Target, "aliased by used type")
		}
	}
}

func (a *Analyzer) visitMethodDecl(m *ast.MethodDecl) {
	if m.IsExpressionBody {
		a.visitExpr(m.ExpressionBody)
		return
	}
	for _, st := range m.Body {
		a.visitStmt(st)
	}
}

func (a *Analyzer) visitStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		a.visitExpr(s.Expression)
	case *ast.VariableDeclaration:
		a.visitExpr(s.Value)
	case *ast.ReturnStatement:
		if s.Value != nil {
			a.visitExpr(s.Value)
		}
	case *ast.IfStatement:
		a.visitExpr(s.Condition)
		for _, st := range s.Then {
			a.visitStmt(st)
		}
		for _, st := range s.Else {
			a.visitStmt(st)
		}
	}
}

// visitExpr dispatches on node kind per spec.md §4.3.2 step 3, marking
// whatever the expression references before recursing into its
// sub-expressions.
func (a *Analyzer) visitExpr(expr ast.Expression) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		a.resolveAndMark(e, e.Name)

	case *ast.StringLiteral:
		a.markWellKnown(config.StringClassName, "string literal")

	case *ast.TemplateLiteral:
		a.markWellKnown(config.TemplateStringsArrayClassName, "template literal")
		for _, sub := range e.Expressions {
			a.visitExpr(sub)
		}

	case *ast.ThrowExpression:
		a.markWellKnown(config.ErrorClassName, "throw expression")
		a.visitExpr(e.Operand)

	case *ast.RangeExpression:
		switch {
		case e.From != nil && e.To != nil:
			a.markWellKnown(config.BoundedRangeClassName, "range expression")
		case e.From != nil:
			a.markWellKnown(config.FromRangeClassName, "range expression")
		case e.To != nil:
			a.markWellKnown(config.ToRangeClassName, "range expression")
		default:
			a.markWellKnown(config.FullRangeClassName, "range expression")
		}
		if e.From != nil {
			a.visitExpr(e.From)
		}
		if e.To != nil {
			a.visitExpr(e.To)
		}

	case *ast.ArrayLiteral:
		if _, ok := e.Annotations().InferredType.(*types.ArrayType); ok {
			a.markWellKnown(config.FixedArrayClassName, "array literal")
		}
		for _, el := range e.Elements {
			a.visitExpr(el)
		}

	case *ast.NewExpression:
		a.markByName(e.ClassName, "instantiated")
		a.markTypeUsed(e.Annotations().InferredType, "instantiated")
		for _, arg := range e.Arguments {
			a.visitExpr(arg)
		}
		if ct, ok := e.Annotations().InferredType.(*types.ClassType); ok {
			a.markMethodUsed(ct, config.ConstructorName, false)
		}

	case *ast.CallExpression:
		if _, ok := e.Callee.(*ast.SuperExpression); ok {
			a.markSuperCallUsed(e)
		} else {
			a.visitExpr(e.Callee)
		}
		for _, arg := range e.Arguments {
			a.visitExpr(arg)
		}

	case *ast.MemberExpression:
		a.visitExpr(e.Object)
		a.markMemberRead(e)

	case *ast.IndexExpression:
		a.visitExpr(e.Object)
		a.visitExpr(e.Index)
		if e.Annotations().ResolvedOperatorMethod != nil {
			if ct, ok := e.Object.Annotations().InferredType.(*types.ClassType); ok {
				a.markMethodUsed(ct, config.IndexGetMethodName, true)
			}
		}

	case *ast.AssignmentExpression:
		a.visitExpr(e.Value)
		a.visitAssignmentTarget(e.Target)

	case *ast.BinaryExpression:
		a.visitExpr(e.Left)
		a.visitExpr(e.Right)
		if e.Operator == "==" || e.Operator == "!=" {
			if ft := e.Annotations().ResolvedOperatorMethod; ft != nil {
				if ct, ok := e.Left.Annotations().InferredType.(*types.ClassType); ok {
					a.markMethodUsed(ct, e.Operator, true)
				}
			}
		}

	case *ast.UnaryExpression:
		a.visitExpr(e.Operand)

	case *ast.FunctionExpression:
		if e.IsExpressionBody {
			a.visitExpr(e.ExpressionBody)
		} else {
			for _, st := range e.Body {
				a.visitStmt(st)
			}
		}
	}
}

func (a *Analyzer) resolveAndMark(node ast.Node, name string) {
	if a.semCtx != nil {
		if binding, ok := a.semCtx.Lookup(node); ok {
			target := binding.Unwrap()
			if target != nil && target.Decl != nil {
				a.markDeclUsed(target.Decl, "referenced")
				return
			}
		}
	}
	a.markByName(name, "referenced (no binding)")
}

// markSuperCallUsed handles super(...) calls: checkSuperCall returns Void,
// so the superclass can't be recovered from the call's own InferredType.
// The checker binds the call node directly to the superclass constructor
// instead (checker.checkSuperCall), mirroring how method-call member
// expressions are resolved.
func (a *Analyzer) markSuperCallUsed(call *ast.CallExpression) {
	if a.semCtx == nil {
		return
	}
	binding, ok := a.semCtx.Lookup(call)
	if !ok || binding.ReceiverClass == nil {
		return
	}
	a.markMethodUsed(binding.ReceiverClass, binding.Name, false)
}

func (a *Analyzer) markMemberRead(m *ast.MemberExpression) {
	if a.semCtx == nil {
		return
	}
	binding, ok := a.semCtx.Lookup(m)
	if !ok {
		return
	}
	switch binding.Kind {
	case symbols.BindMethod, symbols.BindGetter, symbols.BindSetter:
		receiver := receiverOf(binding)
		a.markMethodUsed(receiver, m.Property, !binding.IsStaticDispatch)
	case symbols.BindField:
		receiver := receiverOf(binding)
		a.markFieldRead(receiver, m.Property)
	}
}

func (a *Analyzer) visitAssignmentTarget(target ast.Expression) {
	switch t := target.(type) {
	case *ast.Identifier:
		a.resolveAndMark(t, t.Name)
	case *ast.MemberExpression:
		a.visitExpr(t.Object)
		if a.semCtx != nil {
			if binding, ok := a.semCtx.Lookup(t); ok && binding.Kind == symbols.BindField {
				a.markFieldWritten(receiverOf(binding), t.Property)
			}
		}
	case *ast.IndexExpression:
		a.visitExpr(t.Object)
		a.visitExpr(t.Index)
		if ct, ok := t.Object.Annotations().InferredType.(*types.ClassType); ok {
			if _, has := classMethodUsage(ct, config.IndexSetMethodName); has {
				a.markMethodUsed(ct, config.IndexSetMethodName, true)
			}
		}
	}
}

func classMethodUsage(ct *types.ClassType, name string) (*types.FunctionType, bool) {
	for cur := ct; cur != nil; cur = cur.SuperType {
		if ft, ok := cur.Methods[name]; ok {
			return ft, true
		}
	}
	return nil, false
}

func receiverOf(b *symbols.ResolvedBinding) types.Type {
	if b.ReceiverClass != nil {
		return b.ReceiverClass
	}
	if b.ReceiverInterface != nil {
		return b.ReceiverInterface
	}
	return nil
}
