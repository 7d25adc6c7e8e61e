// Package scope tracks the local-variable tables seen while building a tree.
//
// A Stack holds one Frame per method, class or top-level body. Frames are
// independent: a lookup never falls through to the enclosing frame. Variables
// introduced inside blocks live on a DynamicChain instead, and a frame only records
// how deeply blocks are nested (its dynamic level).
package scope

// Reserved slots present in every materialized frame.
const (
	LastLine  = "_" // $_, slot 0
	MatchData = "~" // $~, slot 1
)

// Frame is one local table. Slot order equals registration order.
type Frame struct {
	names     []string
	index     map[string]int
	dynaLevel int
	prev      *Frame
}

func newFrame(prev *Frame) *Frame {
	return &Frame{prev: prev}
}

// materialize installs the reserved slots on first registration.
func (f *Frame) materialize() {
	f.names = append(f.names, LastLine, MatchData)
	f.index = map[string]int{LastLine: 0, MatchData: 1}
}

// Register appends name and returns its slot. An empty name always appends an
// anonymous hidden slot; a name already in the frame keeps its slot.
func (f *Frame) Register(name string) int {
	if len(f.names) == 0 {
		f.materialize()
	}
	if idx, ok := f.index[name]; ok && name != "" {
		return idx
	}
	f.names = append(f.names, name)
	idx := len(f.names) - 1
	if name != "" {
		f.index[name] = idx
	}
	return idx
}

// LookupOrRegister returns the slot of name, registering it if needed. An empty
// name registers nothing and returns the current size.
func (f *Frame) LookupOrRegister(name string) int {
	if name == "" {
		return len(f.names)
	}
	if idx, ok := f.index[name]; ok {
		return idx
	}
	return f.Register(name)
}

// IsRegistered reports whether name has a slot in this frame.
func (f *Frame) IsRegistered(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Size returns the number of slots, hidden ones included.
func (f *Frame) Size() int {
	return len(f.names)
}

// Names returns a copy of the local table. Hidden slots appear as "".
func (f *Frame) Names() []string {
	if len(f.names) == 0 {
		return nil
	}
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// DynaLevel returns the block nesting depth recorded for this frame.
func (f *Frame) DynaLevel() int {
	return f.dynaLevel
}

// seed replaces the table with names known from a runtime activation.
func (f *Frame) seed(names []string) {
	f.names = nil
	f.index = nil
	if len(names) == 0 {
		return
	}
	f.names = make([]string, len(names))
	copy(f.names, names)
	f.index = make(map[string]int, len(names))
	for i, name := range names {
		if name != "" {
			f.index[name] = i
		}
	}
}
