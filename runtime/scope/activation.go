package scope

// Storage is the runtime side of a local table: the slot values of the activation
// the code is being compiled into.
type Storage interface {
	// LocalNames returns the names the activation already has slots for.
	LocalNames() []string
	// Reconcile adopts a longer local table, growing the value slots to match.
	Reconcile(names []string)
}

// Activation is the in-memory Storage.
type Activation struct {
	Names  []string
	Values []Value
}

// NewActivation returns an activation with one nil slot per name.
func NewActivation(names ...string) *Activation {
	a := &Activation{}
	if len(names) > 0 {
		a.Reconcile(names)
	}
	return a
}

func (a *Activation) LocalNames() []string {
	return a.Names
}

// Reconcile keeps existing values and pads new slots with Nil.
func (a *Activation) Reconcile(names []string) {
	values := make([]Value, len(names))
	n := copy(values, a.Values)
	for i := n; i < len(values); i++ {
		values[i] = Nil
	}
	a.Names = append([]string(nil), names...)
	a.Values = values
}

// Get returns the value of a named slot.
func (a *Activation) Get(name string) (Value, bool) {
	for i, n := range a.Names {
		if n == name && name != "" {
			return a.Values[i], true
		}
	}
	return nil, false
}

// Set assigns a named slot; it reports false when the slot does not exist.
func (a *Activation) Set(name string, v Value) bool {
	for i, n := range a.Names {
		if n == name && name != "" {
			a.Values[i] = v
			return true
		}
	}
	return false
}
