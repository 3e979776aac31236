package checker

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/symbols"
	"github.com/funvibe/funxy/internal/types"
)

// CheckModule runs the four-phase declaration analysis over one module's
// top-level statements and returns what it exported, mirroring the
// teacher's AnalyzeHeaders/AnalyzeBodies split (funvibe-funxy
// internal/modules) generalized to spec.md §4.2.1's forward-reference
// requirement: classes/interfaces/mixins/aliases are fully visible to every
// other declaration in the module before any body is checked, and
// `let`-bound functions are signature-visible before any body is checked so
// mutually recursive functions resolve each other.
func (c *Checker) CheckModule(path string, body []ast.Statement, isStdlib bool) ModuleExports {
	exported := map[string]bool{}

	c.declareHeaders(body, exported)
	c.fillBodies(body)
	funcSigs := c.predeclareFunctions(body, exported)
	c.checkBodies(body, funcSigs)

	return c.Exports(exported)
}

// --- Phase 1: headers ---

func (c *Checker) declareHeaders(body []ast.Statement, exported map[string]bool) {
	for _, stmt := range body {
		switch d := stmt.(type) {
		case *ast.ClassDeclaration:
			if _, exists := c.Interner.LookupClass(d.Name); exists {
				c.errorf(diagnostics.ErrDuplicateDeclaration, d, "duplicate declaration of %q", d.Name)
				continue
			}
			ct := &types.ClassType{
				Name:           d.Name,
				TypeParameters: newTypeParams(d.TypeParameters),
				Fields:         map[string]types.Type{},
				Methods:        map[string]*types.FunctionType{},
				IsAbstract:     d.IsAbstract,
				IsFinal:        d.IsFinal,
				IsExtension:    d.IsExtension,
			}
			c.Interner.DeclareClass(ct)
			c.scopes.DeclareType(d.Name, &symbols.SymbolInfo{Type: ct, Kind: symbols.DeclType, Decl: d})
			if d.IsExported {
				exported[d.Name] = true
			}

		case *ast.InterfaceDeclaration:
			if _, exists := c.Interner.LookupInterface(d.Name); exists {
				c.errorf(diagnostics.ErrDuplicateDeclaration, d, "duplicate declaration of %q", d.Name)
				continue
			}
			it := &types.InterfaceType{
				Name:           d.Name,
				TypeParameters: newTypeParams(d.TypeParameters),
				Fields:         map[string]types.Type{},
				Methods:        map[string]*types.FunctionType{},
			}
			c.Interner.DeclareInterface(it)
			c.scopes.DeclareType(d.Name, &symbols.SymbolInfo{Type: it, Kind: symbols.DeclType, Decl: d})
			if d.IsExported {
				exported[d.Name] = true
			}

		case *ast.MixinDeclaration:
			if _, exists := c.Interner.LookupMixin(d.Name); exists {
				c.errorf(diagnostics.ErrDuplicateDeclaration, d, "duplicate declaration of %q", d.Name)
				continue
			}
			mt := &types.MixinType{
				Name:           d.Name,
				TypeParameters: newTypeParams(d.TypeParameters),
				Fields:         map[string]types.Type{},
				Methods:        map[string]*types.FunctionType{},
			}
			c.Interner.DeclareMixin(mt)
			c.scopes.DeclareType(d.Name, &symbols.SymbolInfo{Type: mt, Kind: symbols.DeclType, Decl: d})
			if d.IsExported {
				exported[d.Name] = true
			}

		case *ast.TypeAliasDeclaration:
			if _, exists := c.Interner.LookupAlias(d.Name); exists {
				c.errorf(diagnostics.ErrDuplicateDeclaration, d, "duplicate declaration of %q", d.Name)
				continue
			}
			alias := &types.TypeAlias{
				Name:           d.Name,
				TypeParameters: newTypeParams(d.TypeParameters),
				IsDistinct:     d.IsDistinct,
			}
			c.Interner.DeclareAlias(alias)
			c.scopes.DeclareType(d.Name, &symbols.SymbolInfo{Type: alias, Kind: symbols.DeclType, Decl: d})
			if d.IsExported {
				exported[d.Name] = true
			}
		}
	}
}

func newTypeParams(decls []*ast.TypeParamDecl) []*types.TypeParameter {
	out := make([]*types.TypeParameter, len(decls))
	for i, d := range decls {
		out[i] = &types.TypeParameter{Name: d.Name}
	}
	return out
}

// pushTypeParamScope declares each parameter into a fresh innermost type
// scope. It returns nothing; the caller pops the scope when done.
func (c *Checker) pushTypeParamScope(params []*types.TypeParameter) {
	c.scopes.Push()
	for _, p := range params {
		c.scopes.DeclareType(p.Name, &symbols.SymbolInfo{Type: p, Kind: symbols.DeclType})
	}
}

// --- Phase 2: bodies (structural members, not executable code) ---

func (c *Checker) fillBodies(body []ast.Statement) {
	for _, stmt := range body {
		switch d := stmt.(type) {
		case *ast.ClassDeclaration:
			ct, _ := c.Interner.LookupClass(d.Name)
			c.pushTypeParamScope(ct.TypeParameters)
			c.fillTypeParamDefaults(ct.TypeParameters, d.TypeParameters)

			if d.SuperClass != nil {
				if super, ok := c.resolveTypeExpr(d.SuperClass).(*types.ClassType); ok {
					ct.SuperType = super
				} else {
					c.errorf(diagnostics.ErrTypeMismatch, d.SuperClass, "%q does not name a class", d.SuperClass.Name)
				}
			}
			for _, im := range d.Implements {
				if iface, ok := c.resolveTypeExpr(im).(*types.InterfaceType); ok {
					ct.Implements = append(ct.Implements, iface)
				} else {
					c.errorf(diagnostics.ErrTypeMismatch, im, "%q does not name an interface", im.Name)
				}
			}
			for _, mx := range d.Mixins {
				if mixin, ok := c.resolveTypeExpr(mx).(*types.MixinType); ok {
					c.applyMixin(ct, mixin)
				} else {
					c.errorf(diagnostics.ErrTypeMismatch, mx, "%q does not name a mixin", mx.Name)
				}
			}
			for _, f := range d.Fields {
				ct.Fields[f.Name] = c.resolveTypeExpr(f.TypeAnnotation)
				ct.FieldOrder = append(ct.FieldOrder, f.Name)
			}
			if d.Constructor != nil {
				ct.ConstructorType = c.buildMethodSignature(d.Constructor)
			} else {
				ct.ConstructorType = &types.FunctionType{ReturnType: types.Void}
			}
			for _, m := range d.Methods {
				c.appendMethod(ct.Methods, &ct.MethodOrder, m.Name, c.buildMethodSignature(m))
			}

			c.scopes.Pop()

		case *ast.InterfaceDeclaration:
			it, _ := c.Interner.LookupInterface(d.Name)
			c.pushTypeParamScope(it.TypeParameters)
			c.fillTypeParamDefaults(it.TypeParameters, d.TypeParameters)

			for _, ex := range d.Extends {
				if ext, ok := c.resolveTypeExpr(ex).(*types.InterfaceType); ok {
					it.Extends = append(it.Extends, ext)
				} else {
					c.errorf(diagnostics.ErrTypeMismatch, ex, "%q does not name an interface", ex.Name)
				}
			}
			for _, f := range d.Fields {
				it.Fields[f.Name] = c.resolveTypeExpr(f.TypeAnnotation)
				it.FieldOrder = append(it.FieldOrder, f.Name)
			}
			for _, m := range d.Methods {
				ft := &types.FunctionType{
					TypeParameters: newTypeParams(m.TypeParameters),
					Parameters:     c.paramTypes(m.Parameters),
					ReturnType:     c.resolveTypeExpr(m.ReturnType),
				}
				c.appendMethod(it.Methods, &it.MethodOrder, m.Name, ft)
			}

			c.scopes.Pop()

		case *ast.MixinDeclaration:
			mt, _ := c.Interner.LookupMixin(d.Name)
			c.pushTypeParamScope(mt.TypeParameters)
			c.fillTypeParamDefaults(mt.TypeParameters, d.TypeParameters)

			if d.OnType != nil {
				mt.OnType = c.resolveTypeExpr(d.OnType)
			}
			for _, f := range d.Fields {
				mt.Fields[f.Name] = c.resolveTypeExpr(f.TypeAnnotation)
				mt.FieldOrder = append(mt.FieldOrder, f.Name)
			}
			for _, m := range d.Methods {
				c.appendMethod(mt.Methods, &mt.MethodOrder, m.Name, c.buildMethodSignature(m))
			}

			c.scopes.Pop()

		case *ast.TypeAliasDeclaration:
			alias, _ := c.Interner.LookupAlias(d.Name)
			c.pushTypeParamScope(alias.TypeParameters)
			c.fillTypeParamDefaults(alias.TypeParameters, d.TypeParameters)
			alias.Target = c.resolveTypeExpr(d.Target)
			c.scopes.Pop()
		}
	}
}

func (c *Checker) fillTypeParamDefaults(params []*types.TypeParameter, decls []*ast.TypeParamDecl) {
	for i, decl := range decls {
		if decl.Default != nil {
			params[i].DefaultType = c.resolveTypeExpr(decl.Default)
		}
	}
}

// applyMixin flattens a mixin's fields/methods into the including class
// (spec.md §3.1's mixin application semantics: members behave as if
// declared directly on the class).
func (c *Checker) applyMixin(ct *types.ClassType, mixin *types.MixinType) {
	for _, name := range mixin.FieldOrder {
		if _, exists := ct.Fields[name]; !exists {
			ct.Fields[name] = mixin.Fields[name]
			ct.FieldOrder = append(ct.FieldOrder, name)
		}
	}
	for _, name := range mixin.MethodOrder {
		if _, exists := ct.Methods[name]; !exists {
			ct.Methods[name] = mixin.Methods[name]
			ct.MethodOrder = append(ct.MethodOrder, name)
		}
	}
}

// appendMethod implements spec.md §4.2.1's overload rule at member scope:
// a repeated method name appends to the first declaration's Overloads
// rather than replacing it or erroring.
func (c *Checker) appendMethod(methods map[string]*types.FunctionType, order *[]string, name string, ft *types.FunctionType) {
	if existing, ok := methods[name]; ok {
		existing.Overloads = append(existing.Overloads, ft)
		return
	}
	methods[name] = ft
	*order = append(*order, name)
}

func (c *Checker) buildMethodSignature(m *ast.MethodDecl) *types.FunctionType {
	tps := newTypeParams(m.TypeParameters)
	if len(tps) > 0 {
		c.pushTypeParamScope(tps)
		defer c.scopes.Pop()
		c.fillTypeParamDefaults(tps, m.TypeParameters)
	}
	return &types.FunctionType{
		TypeParameters: tps,
		Parameters:     c.paramTypes(m.Parameters),
		ReturnType:     c.resolveTypeExpr(m.ReturnType),
	}
}

func (c *Checker) paramTypes(params []*ast.Param) []types.Type {
	out := make([]types.Type, len(params))
	for i, p := range params {
		out[i] = c.resolveTypeExpr(p.TypeAnnotation)
	}
	return out
}

// --- Phase 3: pre-declare top-level function signatures ---

func (c *Checker) predeclareFunctions(body []ast.Statement, exported map[string]bool) map[*ast.VariableDeclaration]*types.FunctionType {
	sigs := map[*ast.VariableDeclaration]*types.FunctionType{}
	for _, stmt := range body {
		vd, ok := stmt.(*ast.VariableDeclaration)
		if !ok {
			continue
		}
		fn, ok := vd.Value.(*ast.FunctionExpression)
		if !ok {
			continue
		}
		tps := newTypeParams(fn.TypeParameters)
		if len(tps) > 0 {
			c.pushTypeParamScope(tps)
			c.fillTypeParamDefaults(tps, fn.TypeParameters)
		}
		ft := &types.FunctionType{
			TypeParameters: tps,
			Parameters:     c.paramTypes(fn.Parameters),
			ReturnType:     c.resolveTypeExpr(fn.ReturnType),
		}
		if len(tps) > 0 {
			c.scopes.Pop()
		}
		if fn.ReturnType == nil {
			ft.ReturnType = types.Unknown
		}
		sigs[vd] = ft

		if existing, dup := c.scopes.LookupValueLocal(vd.Name); dup {
			if existingFn, ok := existing.Type.(*types.FunctionType); ok {
				existingFn.Overloads = append(existingFn.Overloads, ft)
			} else {
				c.errorf(diagnostics.ErrDuplicateDeclaration, vd, "duplicate declaration of %q", vd.Name)
			}
		} else {
			c.scopes.DeclareValue(vd.Name, &symbols.SymbolInfo{Type: ft, Kind: symbols.DeclLet, Decl: vd})
		}
		if vd.IsExported {
			exported[vd.Name] = true
		}
	}
	return sigs
}

// --- Phase 4: bodies of executable code ---

func (c *Checker) checkBodies(body []ast.Statement, funcSigs map[*ast.VariableDeclaration]*types.FunctionType) {
	for _, stmt := range body {
		switch d := stmt.(type) {
		case *ast.ClassDeclaration:
			c.checkClassBody(d)
		case *ast.MixinDeclaration:
			c.checkMixinBody(d)
		case *ast.VariableDeclaration:
			c.checkTopLevelVariable(d, funcSigs)
		case *ast.ExpressionStatement:
			c.checkExpression(d.Expression)
		case *ast.ImportStatement:
			c.checkImport(d)
		case *ast.InterfaceDeclaration, *ast.TypeAliasDeclaration:
			// No executable content.
		}
	}
}

func (c *Checker) checkClassBody(d *ast.ClassDeclaration) {
	ct, _ := c.Interner.LookupClass(d.Name)
	prevClass, prevSelf := c.currentClass, c.selfType
	c.currentClass, c.selfType = ct, ct
	defer func() { c.currentClass, c.selfType = prevClass, prevSelf }()

	if d.Constructor != nil {
		c.checkMethodBody(ct.ConstructorType, d.Constructor, true)
	}
	for _, m := range d.Methods {
		ft := ct.Methods[m.Name]
		if ft != nil && len(ft.Overloads) > 0 {
			// Re-resolve the exact signature for this declaration (matching
			// by parameter count keeps the common case simple: spec.md's
			// overload examples do not repeat arities).
			ft = pickOverloadByArity(ft, len(m.Parameters))
		}
		c.checkMethodBody(ft, m, false)
	}
}

func (c *Checker) checkMixinBody(d *ast.MixinDeclaration) {
	mt, _ := c.Interner.LookupMixin(d.Name)
	prevClass, prevSelf := c.currentClass, c.selfType
	c.currentClass, c.selfType = nil, mt
	defer func() { c.currentClass, c.selfType = prevClass, prevSelf }()

	for _, m := range d.Methods {
		ft := mt.Methods[m.Name]
		if ft != nil && len(ft.Overloads) > 0 {
			ft = pickOverloadByArity(ft, len(m.Parameters))
		}
		c.checkMethodBody(ft, m, false)
	}
}

func pickOverloadByArity(ft *types.FunctionType, arity int) *types.FunctionType {
	if len(ft.Parameters) == arity {
		return ft
	}
	for _, o := range ft.Overloads {
		if len(o.Parameters) == arity {
			return o
		}
	}
	return ft
}

func (c *Checker) checkMethodBody(sig *types.FunctionType, m *ast.MethodDecl, isConstructor bool) {
	if sig == nil {
		sig = &types.FunctionType{ReturnType: types.Void}
	}
	c.scopes.Push()
	defer c.scopes.Pop()
	for _, tp := range sig.TypeParameters {
		c.scopes.DeclareType(tp.Name, &symbols.SymbolInfo{Type: tp, Kind: symbols.DeclType})
	}
	for i, p := range m.Parameters {
		var pt types.Type = types.Unknown
		if i < len(sig.Parameters) {
			pt = sig.Parameters[i]
		}
		c.scopes.DeclareValue(p.Name, &symbols.SymbolInfo{Type: pt, Kind: symbols.DeclLet})
	}

	prevMethod := c.currentMethod
	prevReturn := c.currentFunctionReturnType
	prevThis := c.isThisInitialized
	prevInCtor := c.insideConstructor
	prevFields := c.initializedFields
	prevChecking := c.isCheckingFieldInitializer
	c.currentMethod = m.Name
	c.currentFunctionReturnType = sig.ReturnType
	c.insideConstructor = isConstructor
	c.isThisInitialized = !isConstructor
	c.isCheckingFieldInitializer = isConstructor
	if isConstructor && c.currentClass != nil && c.currentClass.SuperType == nil {
		c.isThisInitialized = true
	}
	c.initializedFields = map[string]bool{}
	defer func() {
		c.currentMethod = prevMethod
		c.currentFunctionReturnType = prevReturn
		c.isThisInitialized = prevThis
		c.insideConstructor = prevInCtor
		c.initializedFields = prevFields
		c.isCheckingFieldInitializer = prevChecking
	}()

	if m.IsExpressionBody {
		t := c.checkExpression(m.ExpressionBody)
		if sig.ReturnType != nil && sig.ReturnType != types.Unknown {
			if !c.Interner.IsAssignableTo(t, sig.ReturnType) {
				c.errorf(diagnostics.ErrTypeMismatch, m.ExpressionBody, "cannot return %s as %s", t.String(), sig.ReturnType.String())
			}
		}
		return
	}
	for _, st := range m.Body {
		c.checkStatement(st)
	}
}

func (c *Checker) checkTopLevelVariable(d *ast.VariableDeclaration, funcSigs map[*ast.VariableDeclaration]*types.FunctionType) {
	if ft, ok := funcSigs[d]; ok {
		fn := d.Value.(*ast.FunctionExpression)
		c.checkFunctionBody(ft, fn)
		fn.Annotations().InferredType = ft
		return
	}

	valueType := c.checkExpression(d.Value)
	declType := valueType
	if d.TypeAnnotation != nil {
		declType = c.resolveTypeExpr(d.TypeAnnotation)
		if !c.Interner.IsAssignableTo(valueType, declType) {
			c.errorf(diagnostics.ErrTypeMismatch, d.Value, "cannot assign %s to %s", valueType.String(), declType.String())
		}
	}
	if _, dup := c.scopes.LookupValueLocal(d.Name); dup {
		c.errorf(diagnostics.ErrDuplicateDeclaration, d, "duplicate declaration of %q", d.Name)
		return
	}
	kind := symbols.DeclLet
	if d.Kind == "var" {
		kind = symbols.DeclVar
	}
	c.scopes.DeclareValue(d.Name, &symbols.SymbolInfo{Type: declType, Kind: kind, Decl: d})
}

func (c *Checker) checkImport(d *ast.ImportStatement) {
	exports, ok := c.imports[d.Path]
	if !ok {
		c.errorf(diagnostics.ErrSymbolNotFound, d, "unknown module %q", d.Path)
		return
	}
	names := d.Names
	if len(names) == 0 {
		names = allExportedNames(exports)
	}
	for _, name := range names {
		if info, ok := exports.Values[name]; ok {
			wrapped := &symbols.ResolvedBinding{
				Kind: symbols.BindImport, Name: name, Type: info.Type, Decl: d,
				Target: &symbols.ResolvedBinding{Kind: bindingKindForDecl(info), Name: name, Type: info.Type, Decl: info.Decl},
			}
			c.scopes.DeclareValue(name, &symbols.SymbolInfo{Type: info.Type, Kind: info.Kind, Decl: d, ImportWrap: wrapped})
		}
		if info, ok := exports.Types[name]; ok {
			c.scopes.DeclareType(name, &symbols.SymbolInfo{Type: info.Type, Kind: symbols.DeclType, Decl: d})
		}
		if _, vok := exports.Values[name]; !vok {
			if _, tok := exports.Types[name]; !tok {
				c.errorf(diagnostics.ErrSymbolNotFound, d, "module %q does not export %q", d.Path, name)
			}
		}
	}
}

func allExportedNames(exports ModuleExports) []string {
	seen := map[string]bool{}
	var names []string
	for name := range exports.Values {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for name := range exports.Types {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func bindingKindForDecl(info *symbols.SymbolInfo) symbols.BindingKind {
	switch info.Decl.(type) {
	case *ast.ClassDeclaration:
		return symbols.BindClass
	case *ast.InterfaceDeclaration:
		return symbols.BindInterface
	case *ast.MixinDeclaration:
		return symbols.BindMixin
	case *ast.TypeAliasDeclaration:
		return symbols.BindTypeAlias
	default:
		if _, ok := info.Type.(*types.FunctionType); ok {
			return symbols.BindFunction
		}
		return symbols.BindGlobal
	}
}
