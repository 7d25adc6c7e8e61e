package scope

import "github.com/opal-lang/semact/core/invariant"

// Stack is the LIFO stack of frames for one parse.
type Stack struct {
	top   *Frame
	depth int
}

// NewStack returns an empty stack. Push before registering anything.
func NewStack() *Stack {
	return &Stack{}
}

// Push opens a new frame on top of the current one.
func (s *Stack) Push() {
	s.top = newFrame(s.top)
	s.depth++
}

// Pop discards the top frame. Popping an empty stack is a contract violation.
func (s *Stack) Pop() {
	invariant.Precondition(s.top != nil, "pop on empty scope stack")
	s.top = s.top.prev
	s.depth--
}

// Top returns the current frame.
func (s *Stack) Top() *Frame {
	invariant.Precondition(s.top != nil, "no active scope frame")
	return s.top
}

// Depth returns the number of open frames.
func (s *Stack) Depth() int {
	return s.depth
}

func (s *Stack) Register(name string) int         { return s.Top().Register(name) }
func (s *Stack) LookupOrRegister(name string) int { return s.Top().LookupOrRegister(name) }
func (s *Stack) IsRegistered(name string) bool    { return s.Top().IsRegistered(name) }

// InBlock reports whether the current frame is inside at least one block.
func (s *Stack) InBlock() bool {
	return s.Top().dynaLevel > 0
}

// EnterBlock and LeaveBlock bracket a block body within the current frame.
func (s *Stack) EnterBlock() {
	s.Top().dynaLevel++
}

func (s *Stack) LeaveBlock() {
	f := s.Top()
	invariant.Precondition(f.dynaLevel > 0, "leaving a block that was never entered")
	f.dynaLevel--
}

// InitTop pushes the frame for a top-level compilation unit, seeded with the local
// names the runtime activation already knows. The frame starts inside a block when
// the dynamic chain is already active, as happens for code compiled from within a
// block (eval).
func (s *Stack) InitTop(storage Storage, chain DynamicChain) {
	s.Push()
	if storage != nil {
		s.top.seed(storage.LocalNames())
	}
	if chain != nil && chain.Active() {
		s.top.dynaLevel = 1
	} else {
		s.top.dynaLevel = 0
	}
}

// SetupTop hands the final local table back to the activation and pops the frame.
func (s *Stack) SetupTop(storage Storage) {
	f := s.Top()
	if storage != nil && f.Size() > 0 && len(storage.LocalNames()) < f.Size() {
		storage.Reconcile(f.Names())
	}
	s.Pop()
}
