package lox

import "time"

// Callable is anything `(...)` can invoke: a user function, a lambda, a
// class (construction), or a native builtin.
type Callable interface {
	Arity() int
	Call(interp *Interpreter, args []Value) (Value, error)
}

// LoxFunction is a named function or method: its parameters/body plus
// the environment chain it closed over when declared.
type LoxFunction struct {
	decl          *FunStmt
	closure       *Environment
	isInitializer bool
}

func (f *LoxFunction) Name() string { return f.decl.Name.Lexeme }
func (f *LoxFunction) Arity() int   { return len(f.decl.Params) }

func (f *LoxFunction) Call(interp *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}
	ret, err := interp.executeBlock(f.decl.Body, env)
	if err != nil {
		return nil, err
	}
	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	if ret == nil {
		return Nil, nil
	}
	return ret, nil
}

// bind returns a copy of f whose closure is a fresh frame defining
// `this` as instance — the frame is always the immediate parent of the
// bound call's own frame.
func (f *LoxFunction) bind(instance *Instance) *LoxFunction {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return &LoxFunction{decl: f.decl, closure: env, isInitializer: f.isInitializer}
}

// LambdaFunction is an anonymous `fun(...) {...}` expression value.
type LambdaFunction struct {
	decl    *LambdaExpr
	closure *Environment
}

func (f *LambdaFunction) Name() string { return "" }
func (f *LambdaFunction) Arity() int   { return len(f.decl.Params) }

func (f *LambdaFunction) Call(interp *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}
	ret, err := interp.executeBlock(f.decl.Body, env)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return Nil, nil
	}
	return ret, nil
}

// NativeFunction wraps a built-in implemented in Go. clock() is the
// only one this interpreter defines; arity 0.
type NativeFunction struct {
	name  string
	arity int
	fn    func(interp *Interpreter, args []Value) (Value, error)
}

func (f *NativeFunction) Name() string { return f.name }
func (f *NativeFunction) Arity() int   { return f.arity }
func (f *NativeFunction) Call(interp *Interpreter, args []Value) (Value, error) {
	return f.fn(interp, args)
}

// newClock builds the global clock() builtin. now defaults to
// time.Now but is overridable (see Session.SetClock) so the CLI's
// -clock-seed flag and interpreter tests can get a deterministic value
// without the core ever importing test-only concerns.
func newClock(now func() time.Time) *NativeFunction {
	return &NativeFunction{
		name:  "clock",
		arity: 0,
		fn: func(interp *Interpreter, args []Value) (Value, error) {
			return float64(now().UnixNano()) / float64(time.Second), nil
		},
	}
}

// LoxClass is a class value: its name, optional superclass, and method
// table. Calling it constructs an Instance.
type LoxClass struct {
	Name       string
	Superclass *LoxClass
	Methods    map[string]*LoxFunction
}

func (c *LoxClass) String() string { return c.Name }

// FindMethod looks up name on c, then recursively on its superclass
// chain.
func (c *LoxClass) FindMethod(name string) *LoxFunction {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

func (c *LoxClass) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

func (c *LoxClass) Call(interp *Interpreter, args []Value) (Value, error) {
	instance := &Instance{Class: c, Fields: make(map[string]Value)}
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.bind(instance).Call(interp, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a class instance: its class plus its own field map.
// Method lookups that miss the field map fall through to the class
// (and its superclass chain), bound to this instance.
type Instance struct {
	Class  *LoxClass
	Fields map[string]Value
}

func (i *Instance) Get(name Token) (Value, error) {
	if v, ok := i.Fields[name.Lexeme]; ok {
		return v, nil
	}
	if m := i.Class.FindMethod(name.Lexeme); m != nil {
		return m.bind(i), nil
	}
	return nil, &RuntimeError{Token: name, Message: "Undefined property '" + name.Lexeme + "'."}
}

func (i *Instance) Set(name Token, value Value) {
	i.Fields[name.Lexeme] = value
}
