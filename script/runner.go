// Package script runs tengo macros against a Designer.
//
// A macro sees these globals:
//
//	add(x, y)                     place the active brush, returns cells affected
//	remove(x, y)                  erase at a point, returns cells affected
//	select_brush(id, group, name) change the active brush
//	flag(name)                    read a mode flag
//	set_flag(name, on)            write a mode flag
//	cell, width, height           surface geometry, read only
//
// A macro may leave an int in a global named count; Run returns it.
package script

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"image"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/tiledesigner/design"
	"github.com/milk9111/tiledesigner/logging"
	"github.com/milk9111/tiledesigner/observable"
)

//go:embed macros/*.tengo
var macrosFS embed.FS

// ErrUnknownMacro is returned by Run for a name that was never loaded.
var ErrUnknownMacro = errors.New("script: unknown macro")

var brushArgs = [3]string{"id", "group", "name"}

// Editor is the part of design.Designer a macro drives.
type Editor interface {
	Add(x, y int) []image.Point
	Remove(x, y int) []image.Point
	SelectBrush(id, group, name string)
	State(f design.Flag) (*observable.Value[bool], error)
}

// Geometry is the surface size macros see.
type Geometry struct {
	Width, Height, Cell int
}

type Runner struct {
	editor Editor
	geo    Geometry
	log    logrus.FieldLogger
	macros map[string]*tengo.Compiled
}

func NewRunner(ed Editor, geo Geometry, log logrus.FieldLogger) *Runner {
	return &Runner{
		editor: ed,
		geo:    geo,
		log:    logging.Component(log, "script"),
		macros: make(map[string]*tengo.Compiled),
	}
}

// Builtin lists the names of the macros that ship with the editor.
func Builtin() []string {
	entries, err := macrosFS.ReadDir("macros")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".tengo"))
	}
	return names
}

// Source returns a macro's code: file when given, otherwise the built-in
// macro of that name.
func Source(name, file string) ([]byte, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("script: load %s: %w", file, err)
		}
		return data, nil
	}
	data, err := macrosFS.ReadFile(path.Join("macros", name+".tengo"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMacro, name)
	}
	return data, nil
}

// Load compiles the named macro from file or the built-in set.
func (r *Runner) Load(name, file string) error {
	src, err := Source(name, file)
	if err != nil {
		return err
	}
	return r.Compile(name, src)
}

// Compile registers src under name, replacing any earlier macro.
func (r *Runner) Compile(name string, src []byte) error {
	s := tengo.NewScript(src)
	for k, v := range map[string]any{
		"cell":   r.geo.Cell,
		"width":  r.geo.Width,
		"height": r.geo.Height,
	} {
		if err := s.Add(k, v); err != nil {
			return err
		}
	}
	for _, fn := range r.api() {
		if err := s.Add(fn.Name, fn); err != nil {
			return err
		}
	}
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return fmt.Errorf("script: compile %s: %w", name, err)
	}
	r.macros[name] = compiled
	return nil
}

// Names lists loaded macros in sorted order.
func (r *Runner) Names() []string {
	names := make([]string, 0, len(r.macros))
	for n := range r.macros {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Run executes a loaded macro and returns its count global, or 0 when it
// has none.
func (r *Runner) Run(ctx context.Context, name string) (int, error) {
	compiled, ok := r.macros[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMacro, name)
	}
	if err := compiled.RunContext(ctx); err != nil {
		return 0, fmt.Errorf("script: run %s: %w", name, err)
	}
	count := 0
	if compiled.IsDefined("count") {
		count = compiled.Get("count").Int()
	}
	r.log.WithFields(logrus.Fields{"macro": name, "count": count}).Info("macro finished")
	return count, nil
}

func (r *Runner) api() []*tengo.UserFunction {
	return []*tengo.UserFunction{
		{Name: "add", Value: r.pointFunc(r.editor.Add)},
		{Name: "remove", Value: r.pointFunc(r.editor.Remove)},
		{Name: "select_brush", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 3 {
				return nil, tengo.ErrWrongNumArguments
			}
			vals := make([]string, 3)
			for i, a := range args {
				s, ok := a.(*tengo.String)
				if !ok {
					return nil, tengo.ErrInvalidArgumentType{Name: brushArgs[i], Expected: "string", Found: a.TypeName()}
				}
				vals[i] = s.Value
			}
			r.editor.SelectBrush(vals[0], vals[1], vals[2])
			return tengo.UndefinedValue, nil
		}},
		{Name: "flag", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			v, err := r.state(args[0])
			if err != nil {
				return nil, err
			}
			return boolObject(v.Get()), nil
		}},
		{Name: "set_flag", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 2 {
				return nil, tengo.ErrWrongNumArguments
			}
			v, err := r.state(args[0])
			if err != nil {
				return nil, err
			}
			v.Set(!args[1].IsFalsy())
			return tengo.UndefinedValue, nil
		}},
	}
}

func (r *Runner) pointFunc(op func(x, y int) []image.Point) tengo.CallableFunc {
	return func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, ok := tengo.ToInt(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "x", Expected: "int", Found: args[0].TypeName()}
		}
		y, ok := tengo.ToInt(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "y", Expected: "int", Found: args[1].TypeName()}
		}
		return &tengo.Int{Value: int64(len(op(x, y)))}, nil
	}
}

func (r *Runner) state(obj tengo.Object) (*observable.Value[bool], error) {
	s, ok := obj.(*tengo.String)
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{Name: "name", Expected: "string", Found: obj.TypeName()}
	}
	return r.editor.State(design.Flag(s.Value))
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
