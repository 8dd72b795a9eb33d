package lox

// functionKind tracks what kind of function body the resolver is
// currently inside, to validate `return` placement.
type functionKind int

const (
	funcNone functionKind = iota
	funcFunction
	funcInitializer
	funcMethod
	funcLambda
)

// classKind tracks whether (and how) the resolver is inside a class
// body, to validate `this`/`super` placement.
type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// Resolver walks the program once before evaluation and records, for
// every Variable/Assign/This/Super node, how many enclosing scopes lie
// between the use site and the scope that owns the name. Nodes left out
// of Locals resolve in the global frame at evaluation time.
type Resolver struct {
	reporter Reporter
	scopes   []map[string]bool // true once the name is fully defined
	Locals   map[Expr]int
	fn       functionKind
	class    classKind
	hadError bool
}

func NewResolver(reporter Reporter) *Resolver {
	return &Resolver{reporter: reporter, Locals: make(map[Expr]int)}
}

// HadError reports whether this resolve pass reported any diagnostic,
// independent of the shared Reporter's own (possibly cumulative) state.
func (r *Resolver) HadError() bool { return r.hadError }

func (r *Resolver) report(err error) {
	r.hadError = true
	r.reporter.Report(err)
}

// Resolve walks every statement in the program.
func (r *Resolver) Resolve(stmts []Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, make(map[string]bool)) }

func (r *Resolver) endScope() { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) declare(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.report(&ResolveError{Token: name, Message: "Redefinition of " + name.Lexeme + "."})
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

func (r *Resolver) defineSynthetic(name string) {
	r.beginScope()
	r.scopes[len(r.scopes)-1][name] = true
}

// resolveLocal finds the innermost scope defining name and records the
// distance; a name absent from every scope is left unresolved (global).
func (r *Resolver) resolveLocal(expr Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.Locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) resolveStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *BlockStmt:
		r.beginScope()
		r.Resolve(s.Statements)
		r.endScope()
	case *VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name.Lexeme)
	case *FunStmt:
		r.declare(s.Name)
		r.define(s.Name.Lexeme)
		r.resolveFunction(s.Params, s.Body, funcFunction)
	case *ClassStmt:
		r.resolveClass(s)
	case *ExprStmt:
		r.resolveExpr(s.Expression)
	case *PrintStmt:
		r.resolveExpr(s.Expression)
	case *IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *ReturnStmt:
		if r.fn == funcNone {
			r.report(&ResolveError{Token: s.Keyword, Message: "Can't return from top-level code."})
		}
		if s.Value != nil {
			if r.fn == funcInitializer {
				r.report(&ResolveError{Token: s.Keyword, Message: "Can't return a value from an initializer."})
			}
			r.resolveExpr(s.Value)
		}
	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveClass(s *ClassStmt) {
	enclosingClass := r.class
	r.class = classClass

	r.declare(s.Name)
	r.define(s.Name.Lexeme)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.report(&ResolveError{Token: s.Superclass.Name, Message: "A class can't inherit from itself."})
		}
		r.class = classSubclass
		r.resolveExpr(s.Superclass)
		r.defineSynthetic("super")
	}

	r.defineSynthetic("this")

	for _, method := range s.Methods {
		kind := funcMethod
		if method.Name.Lexeme == "init" {
			kind = funcInitializer
		}
		r.resolveFunction(method.Params, method.Body, kind)
	}

	r.endScope() // "this"
	if s.Superclass != nil {
		r.endScope() // "super"
	}

	r.class = enclosingClass
}

func (r *Resolver) resolveFunction(params []Token, body []Stmt, kind functionKind) {
	enclosingFn := r.fn
	r.fn = kind

	r.beginScope()
	for _, p := range params {
		r.declare(p)
		r.define(p.Lexeme)
	}
	r.Resolve(body)
	r.endScope()

	r.fn = enclosingFn
}

func (r *Resolver) resolveExpr(expr Expr) {
	switch e := expr.(type) {
	case *VariableExpr:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; declared && !defined {
				r.report(&ResolveError{Token: e.Name, Message: "Cannot bind reference to " + e.Name.Lexeme + " during definition."})
			}
		}
		r.resolveLocal(e, e.Name.Lexeme)
	case *AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name.Lexeme)
	case *BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *UnaryExpr:
		r.resolveExpr(e.Right)
	case *GroupingExpr:
		r.resolveExpr(e.Expression)
	case *LiteralExpr:
		// nothing to resolve
	case *CallExpr:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *LambdaExpr:
		r.resolveFunction(e.Params, e.Body, funcLambda)
	case *GetExpr:
		r.resolveExpr(e.Object)
	case *SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ThisExpr:
		if r.class == classNone {
			r.report(&ResolveError{Token: e.Keyword, Message: "Can't use 'this' outside of a class."})
			return
		}
		r.resolveLocal(e, "this")
	case *SuperExpr:
		if r.class == classNone {
			r.report(&ResolveError{Token: e.Keyword, Message: "Can't use 'super' outside of a class."})
		} else if r.class != classSubclass {
			r.report(&ResolveError{Token: e.Keyword, Message: "Can't use 'super' in a class with no superclass."})
		}
		r.resolveLocal(e, "super")
	default:
		panic("resolver: unhandled expression type")
	}
}
