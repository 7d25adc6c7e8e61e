package scope

import "github.com/opal-lang/semact/core/invariant"

// Value is a runtime value held by a binding or an activation slot.
type Value any

type nilValue struct{}

func (nilValue) String() string { return "nil" }

// Nil is the value of a slot or binding that has not been assigned yet.
var Nil Value = nilValue{}

// DynamicChain holds the block-local bindings visible at the current point.
// A marker separates the bindings of one block from those of its enclosing block.
type DynamicChain interface {
	// PushMarker starts the bindings of a new block.
	PushMarker()
	// Bind introduces name in the innermost block.
	Bind(name string, v Value)
	// Defined reports whether name is bound in any enclosing block.
	Defined(name string) bool
	// Current reports whether name is bound in the innermost block.
	Current(name string) bool
	// Save returns a mark that Restore rewinds to.
	Save() int
	Restore(mark int)
	// Active reports whether any binding or marker exists.
	Active() bool
}

type binding struct {
	name   string
	value  Value
	marker bool
}

// DynaVars is the in-memory DynamicChain.
type DynaVars struct {
	chain []binding
}

func NewDynaVars() *DynaVars {
	return &DynaVars{}
}

func (d *DynaVars) PushMarker() {
	d.chain = append(d.chain, binding{marker: true})
}

func (d *DynaVars) Bind(name string, v Value) {
	invariant.Precondition(name != "", "dynamic binding needs a name")
	d.chain = append(d.chain, binding{name: name, value: v})
}

func (d *DynaVars) Defined(name string) bool {
	for i := len(d.chain) - 1; i >= 0; i-- {
		if !d.chain[i].marker && d.chain[i].name == name {
			return true
		}
	}
	return false
}

func (d *DynaVars) Current(name string) bool {
	for i := len(d.chain) - 1; i >= 0; i-- {
		if d.chain[i].marker {
			return false
		}
		if d.chain[i].name == name {
			return true
		}
	}
	return false
}

// Lookup returns the innermost value bound to name.
func (d *DynaVars) Lookup(name string) (Value, bool) {
	for i := len(d.chain) - 1; i >= 0; i-- {
		if !d.chain[i].marker && d.chain[i].name == name {
			return d.chain[i].value, true
		}
	}
	return nil, false
}

func (d *DynaVars) Save() int {
	return len(d.chain)
}

func (d *DynaVars) Restore(mark int) {
	invariant.Precondition(mark >= 0 && mark <= len(d.chain),
		"restore mark %d outside chain of length %d", mark, len(d.chain))
	d.chain = d.chain[:mark]
}

func (d *DynaVars) Active() bool {
	return len(d.chain) > 0
}

// Names lists the bound names from innermost to outermost, skipping markers.
func (d *DynaVars) Names() []string {
	var names []string
	for i := len(d.chain) - 1; i >= 0; i-- {
		if !d.chain[i].marker {
			names = append(names, d.chain[i].name)
		}
	}
	return names
}
