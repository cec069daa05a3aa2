package graph

// Kind classifies entities in the documentation graph.
type Kind string

const (
	KindRoot     Kind = "root"
	KindModule   Kind = "module"
	KindClass    Kind = "class"
	KindMethod   Kind = "method"
	KindConstant Kind = "constant"
)

// NamespaceLike reports whether entities of this kind can own children.
func (k Kind) NamespaceLike() bool {
	return k == KindRoot || k == KindModule || k == KindClass
}

// MethodLike reports whether entities of this kind carry source text and can
// be duplicated as module functions.
func (k Kind) MethodLike() bool {
	return k == KindMethod
}

// Visibility is an entity's access level.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
)

// Scope distinguishes instance-level from namespace-level members.
type Scope string

const (
	ScopeInstance Scope = "instance"
	ScopeClass    Scope = "class"
)
