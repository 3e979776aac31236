package types

import "fmt"

// Interner owns every named type declared in a program and every
// specialization created by instantiating a generic template. Spec.md §3.1:
// "two instantiations with identical template and identical type-argument
// list compare by object identity" — the cache below is what makes that
// true, and every other pass's identity-keyed maps rely on it.
type Interner struct {
	classes    map[string]*ClassType
	interfaces map[string]*InterfaceType
	mixins     map[string]*MixinType

	// Global (non-instance) registries, keyed by declared name.
	classTemplates     map[string]*ClassType
	interfaceTemplates map[string]*InterfaceType
	mixinTemplates     map[string]*MixinType
	aliases            map[string]*TypeAlias

	// extensions lists every declared extension class, for assignability
	// rule 18 (spec.md §4.1.3): a source type may satisfy a target
	// interface via an extension class attached to it.
	extensions []*ClassType

	arrays      map[string]*ArrayType
	fixedArrays map[string]*FixedArrayType

	// inFlight guards recursive instantiation of self-referential generics
	// (spec.md §9's "typeInstantiationVisited").
	inFlight map[string]bool

	// strictLiteralWidening: see assignability.go's SetStrictLiteralWidening.
	strictLiteralWidening bool
}

func NewInterner() *Interner {
	return &Interner{
		classes:            map[string]*ClassType{},
		interfaces:         map[string]*InterfaceType{},
		mixins:             map[string]*MixinType{},
		classTemplates:     map[string]*ClassType{},
		interfaceTemplates: map[string]*InterfaceType{},
		mixinTemplates:     map[string]*MixinType{},
		aliases:            map[string]*TypeAlias{},
		arrays:             map[string]*ArrayType{},
		fixedArrays:        map[string]*FixedArrayType{},
		inFlight:              map[string]bool{},
		strictLiteralWidening: true,
	}
}

// DeclareClass registers a class template (or concrete, non-generic class)
// under its name. Callers build the ClassType's structural members before
// calling this (or mutate the returned pointer in place while building it,
// which is what the checker does to support forward/self-referential
// fields — see internal/checker/declarations.go).
func (in *Interner) DeclareClass(c *ClassType) *ClassType {
	in.classTemplates[c.Name] = c
	if c.IsExtension {
		in.extensions = append(in.extensions, c)
	}
	return c
}

func (in *Interner) DeclareInterface(i *InterfaceType) *InterfaceType {
	in.interfaceTemplates[i.Name] = i
	return i
}

func (in *Interner) DeclareMixin(m *MixinType) *MixinType {
	in.mixinTemplates[m.Name] = m
	return m
}

func (in *Interner) DeclareAlias(a *TypeAlias) *TypeAlias {
	in.aliases[a.Name] = a
	return a
}

func (in *Interner) LookupClass(name string) (*ClassType, bool) {
	c, ok := in.classTemplates[name]
	return c, ok
}

func (in *Interner) LookupInterface(name string) (*InterfaceType, bool) {
	i, ok := in.interfaceTemplates[name]
	return i, ok
}

func (in *Interner) LookupMixin(name string) (*MixinType, bool) {
	m, ok := in.mixinTemplates[name]
	return m, ok
}

func (in *Interner) LookupAlias(name string) (*TypeAlias, bool) {
	a, ok := in.aliases[name]
	return a, ok
}

func (in *Interner) Extensions() []*ClassType { return in.extensions }

// AllClasses/AllInterfaces/AllMixins/AllAliases expose every declared
// template, keyed by name, for passes that need to walk the whole program's
// declared surface (e.g. the usage analyzer resolving a Type back to the
// declaration that introduced it).
func (in *Interner) AllClasses() map[string]*ClassType         { return in.classTemplates }
func (in *Interner) AllInterfaces() map[string]*InterfaceType  { return in.interfaceTemplates }
func (in *Interner) AllMixins() map[string]*MixinType          { return in.mixinTemplates }
func (in *Interner) AllAliases() map[string]*TypeAlias         { return in.aliases }

// identityKey builds a map key from a pointer identity. Every Type
// implementation in this package is a pointer type, so fmt's %p verb on the
// interface value yields the address of the concrete value — stable for the
// lifetime of the interner and exactly what "identical type-argument list"
// needs to mean by identity rather than by structural equality.
func identityKey(t Type) string {
	return fmt.Sprintf("%p", t)
}

func argsKey(templateName string, args []Type) string {
	key := templateName
	for _, a := range args {
		key += "|" + identityKey(a)
	}
	return key
}

// Instantiate specializes a generic class template with concrete type
// arguments, interning the result (spec.md §4.1.2).
func (in *Interner) Instantiate(template *ClassType, args []Type) (*ClassType, error) {
	if len(template.TypeParameters) != len(args) {
		return nil, fmt.Errorf("%w: %s expects %d type argument(s), got %d",
			ErrArityMismatch, template.Name, len(template.TypeParameters), len(args))
	}
	key := argsKey(template.Name, args)
	if existing, ok := in.classes[key]; ok {
		return existing, nil
	}
	if in.inFlight[key] {
		// Self-referential generic (e.g. class Node<T> { next: Node<T> })
		// being instantiated from within its own instantiation. Register and
		// return a placeholder that carries no fields or methods; when the
		// outer call completes it stores its own result under the same key,
		// replacing the placeholder in the cache.
		placeholder := &ClassType{Name: template.Name, TypeArguments: args, GenericSource: template}
		in.classes[key] = placeholder
		return placeholder, nil
	}
	in.inFlight[key] = true
	defer delete(in.inFlight, key)

	subst := buildSubst(template.TypeParameters, args)
	result := substituteClass(template, subst, map[string]bool{})
	result.TypeArguments = args
	result.GenericSource = template
	in.classes[key] = result
	return result, nil
}

func (in *Interner) InstantiateInterface(template *InterfaceType, args []Type) (*InterfaceType, error) {
	if len(template.TypeParameters) != len(args) {
		return nil, fmt.Errorf("%w: %s expects %d type argument(s), got %d",
			ErrArityMismatch, template.Name, len(template.TypeParameters), len(args))
	}
	key := argsKey(template.Name, args)
	if existing, ok := in.interfaces[key]; ok {
		return existing, nil
	}
	subst := buildSubst(template.TypeParameters, args)
	result := substituteInterface(template, subst, map[string]bool{})
	result.TypeArguments = args
	result.GenericSource = template
	in.interfaces[key] = result
	return result, nil
}

func (in *Interner) InstantiateMixin(template *MixinType, args []Type) (*MixinType, error) {
	if len(template.TypeParameters) != len(args) {
		return nil, fmt.Errorf("%w: %s expects %d type argument(s), got %d",
			ErrArityMismatch, template.Name, len(template.TypeParameters), len(args))
	}
	key := argsKey(template.Name, args)
	if existing, ok := in.mixins[key]; ok {
		return existing, nil
	}
	subst := buildSubst(template.TypeParameters, args)
	result := substituteMixin(template, subst, map[string]bool{})
	result.TypeArguments = args
	result.GenericSource = template
	in.mixins[key] = result
	return result, nil
}

func buildSubst(params []*TypeParameter, args []Type) Subst {
	subst := make(Subst, len(params))
	for i, p := range params {
		subst[p.Name] = args[i]
	}
	return subst
}

// NewArray returns the (interned) Array<element> type.
func (in *Interner) NewArray(element Type) *ArrayType {
	key := identityKey(element)
	if existing, ok := in.arrays[key]; ok {
		return existing
	}
	a := &ArrayType{ElementType: element}
	in.arrays[key] = a
	return a
}

// NewFixedArray returns the (interned) FixedArray<element> type.
func (in *Interner) NewFixedArray(element Type) *FixedArrayType {
	key := identityKey(element)
	if existing, ok := in.fixedArrays[key]; ok {
		return existing
	}
	a := &FixedArrayType{ElementType: element}
	in.fixedArrays[key] = a
	return a
}
