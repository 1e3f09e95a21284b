package input

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/tiledesigner/logging"
)

// KeySeparator joins input codes into a Binding Key.
const KeySeparator = ","

// BindingKey builds the key a binding is stored under. The event type is
// appended only when a registration covers several types.
func BindingKey(codes []string, typ EventType, multi bool) string {
	key := strings.Join(codes, KeySeparator)
	if multi {
		key += "+" + string(typ)
	}
	return key
}

// Record is the inspectable part of an installed binding.
type Record struct {
	Handler Handler
	Codes   []string
	Scope   Scope
	Type    EventType
	Once    bool
}

type binding struct {
	Record
	key      string
	listener ListenerID
	ctx      *Context
	// scoped is true when ctx belongs to this binding alone.
	scoped bool
	live   atomic.Bool
}

type bindOptions struct {
	once  bool
	scope Scope
}

// BindOption configures AddBinding.
type BindOption func(*bindOptions)

// Repeat keeps the binding installed after it fires. Without it a binding
// fires once and removes itself.
func Repeat() BindOption {
	return func(o *bindOptions) { o.once = false }
}

// Once sets the fire-once behaviour explicitly.
func Once(once bool) BindOption {
	return func(o *bindOptions) { o.once = once }
}

// InScope attaches the binding to scope instead of the whole document.
func InScope(scope Scope) BindOption {
	return func(o *bindOptions) { o.scope = scope }
}

// Bindings maps logical actions onto listeners of a Target, keeping at most
// one live listener per Binding Key.
type Bindings struct {
	mu       sync.Mutex
	target   Target
	global   *Context
	bindings map[string]*binding
	log      logrus.FieldLogger
}

// NewBindings creates a manager on target with its own document-wide context.
func NewBindings(target Target, log logrus.FieldLogger) *Bindings {
	return &Bindings{
		target:   target,
		global:   NewContext(target, Global()),
		bindings: make(map[string]*binding),
		log:      logging.Component(log, "input"),
	}
}

// AddBinding installs h for codes on each of types and returns the keys it
// used. A binding already stored under one of those keys is torn down first.
func (b *Bindings) AddBinding(h Handler, codes []string, types []EventType, opts ...BindOption) []string {
	o := bindOptions{once: true}
	for _, opt := range opts {
		opt(&o)
	}
	if h == nil || len(types) == 0 {
		return nil
	}
	codes = append([]string(nil), codes...)
	multi := len(types) > 1

	b.mu.Lock()
	defer b.mu.Unlock()

	keys := make([]string, 0, len(types))
	for _, typ := range types {
		key := BindingKey(codes, typ, multi)
		if old, ok := b.bindings[key]; ok {
			b.teardownLocked(old)
		}

		ctx := b.global
		scoped := false
		if !o.scope.IsGlobal() {
			ctx = NewContext(b.target, o.scope)
			scoped = true
		}
		bd := &binding{
			Record: Record{Handler: h, Codes: codes, Scope: o.scope, Type: typ, Once: o.once},
			key:    key,
			ctx:    ctx,
			scoped: scoped,
		}
		bd.live.Store(true)
		bd.listener = b.target.Attach(o.scope, typ, b.listen(bd))
		b.bindings[key] = bd
		keys = append(keys, key)
		b.log.WithFields(logrus.Fields{"key": key, "scope": o.scope.String(), "once": o.once}).Debug("binding added")
	}
	return keys
}

func (b *Bindings) listen(bd *binding) func(Event) {
	return func(ev Event) {
		if !bd.live.Load() || !bd.ctx.Matches(bd.Codes, ev) {
			return
		}
		if bd.Once {
			b.mu.Lock()
			if !bd.live.Load() {
				b.mu.Unlock()
				return
			}
			if cur, ok := b.bindings[bd.key]; ok && cur == bd {
				delete(b.bindings, bd.key)
			}
			b.teardownLocked(bd)
			b.mu.Unlock()
		}
		bd.Handler(ev)
	}
}

// RemoveBinding detaches and forgets the binding stored under key. Unknown
// keys are ignored.
func (b *Bindings) RemoveBinding(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	bd, ok := b.bindings[key]
	if !ok {
		return
	}
	b.teardownLocked(bd)
	delete(b.bindings, key)
}

// RemoveAllBindings detaches every listener and empties the mapping.
func (b *Bindings) RemoveAllBindings() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, bd := range b.bindings {
		b.teardownLocked(bd)
	}
	b.bindings = make(map[string]*binding)
}

// Close removes all bindings and detaches the manager's own context.
func (b *Bindings) Close() {
	b.RemoveAllBindings()
	b.global.Close()
}

// Bindings returns a snapshot of the installed records keyed by Binding Key.
func (b *Bindings) Bindings() map[string]Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]Record, len(b.bindings))
	for k, bd := range b.bindings {
		out[k] = bd.Record
	}
	return out
}

// Has reports whether key is installed.
func (b *Bindings) Has(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.bindings[key]
	return ok
}

// Held reports whether code is held document-wide.
func (b *Bindings) Held(code string) bool {
	return b.global.Held(code)
}

func (b *Bindings) teardownLocked(bd *binding) {
	if !bd.live.CompareAndSwap(true, false) {
		return
	}
	b.target.Detach(bd.Scope, bd.Type, bd.listener)
	if bd.scoped {
		bd.ctx.Close()
	}
	b.log.WithField("key", bd.key).Debug("binding removed")
}
