package trace

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/semact/core/diag"
	"github.com/opal-lang/semact/core/invariant"
	"github.com/opal-lang/semact/runtime/parser"
)

func loadFixture(t *testing.T, name string) *Trace {
	t.Helper()
	tr, err := LoadFile("testdata/" + name)
	require.NoError(t, err)
	return tr
}

func diagLines(ds []diag.Diagnostic) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.String())
	}
	return out
}

func TestRunUnreachable(t *testing.T) {
	var live diag.Collector
	r := &Runner{Sink: &live}

	res, err := r.Run(loadFixture(t, "unreachable.yaml"))
	require.NoError(t, err)

	wantTree := `(block (lasgn x 2 (lit 5)) (call + (lvar x 2) (list (lit 1))) (return) (ivar @done))`
	if diff := cmp.Diff(wantTree, res.Tree.String()); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}

	wantDiags := []string{
		"unreachable.rb:4 [WARNING] statement not reached",
		"unreachable.rb:2 [WARNING] useless use of + in void context",
		"unreachable.rb:4 [WARNING] useless use of a variable in void context",
	}
	if diff := cmp.Diff(wantDiags, diagLines(res.Diagnostics)); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, res.Diagnostics, live.Diagnostics, "the live sink sees the same diagnostics")

	assert.Equal(t, []string{"_", "~", "x"}, res.Locals)
	assert.False(t, res.Failed())
	assert.Equal(t, 3, res.Telemetry.Warnings)
}

func TestRunLineLoop(t *testing.T) {
	res, err := (&Runner{}).Run(loadFixture(t, "lineloop.yaml"))
	require.NoError(t, err)

	want := `(opt_n (block (call chop! (gvar $_)) (if (flip2 2 (call == (lit 2) (list (gvar $.))) (call == (lit 4) (list (gvar $.)))) (fcall work))))`
	if diff := cmp.Diff(want, res.Tree.String()); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, []string{"_", "~", ""}, res.Locals)
	assert.Equal(t, 1, res.Telemetry.FlipFlops)
}

func TestRunLineLoopNotInline(t *testing.T) {
	inline := false
	res, err := (&Runner{Inline: &inline}).Run(loadFixture(t, "lineloop.yaml"))
	require.NoError(t, err)

	assert.Contains(t, res.Tree.String(), "(flip2 2 (lit 2) (lit 4))")
	assert.Equal(t, []string{"-e:1 [WARNING] range literal in condition"}, diagLines(res.Diagnostics))
}

func TestRunBlocks(t *testing.T) {
	res, err := (&Runner{}).Run(loadFixture(t, "blocks.json"))
	require.NoError(t, err)

	want := `(lasgn count 3 (iter (call each (vcall items)) (block (dasgn_curr n (lit 1)) (lasgn total 2 (call + (lvar total 2) (list (dvar n)))))))`
	if diff := cmp.Diff(want, res.Tree.String()); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"_", "~", "total", "count"}, res.Locals)
	assert.Equal(t, 1, res.Telemetry.DynamicBindings)
}

func TestRunVerbosityOverride(t *testing.T) {
	quiet := parser.VerbosityQuiet
	res, err := (&Runner{Verbosity: &quiet}).Run(loadFixture(t, "unreachable.yaml"))
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)
}

func TestRunWithoutResultStep(t *testing.T) {
	tr := &Trace{Version: "v1.0.0", Steps: []Step{
		{Op: "node", Kind: "lit", Value: "1", As: "one"},
		{Op: "write", ID: "a", Args: []string{"one"}},
	}}
	res, err := (&Runner{}).Run(tr)
	require.NoError(t, err)
	assert.Nil(t, res.Tree)
	assert.Equal(t, []string{"_", "~", "a"}, res.Locals)
}

func TestRunErrorsAreReported(t *testing.T) {
	tr := &Trace{Version: "v1.0.0", File: "err.rb", Steps: []Step{
		{Op: "node", Kind: "self", As: "s"},
		{Op: "write", ID: "%self", Args: []string{"s"}, As: "w"},
		{Op: "result", Args: []string{"w"}},
	}}
	res, err := (&Runner{}).Run(tr)
	require.NoError(t, err)
	assert.True(t, res.Failed())
	assert.Nil(t, res.Tree)
	assert.Equal(t, []string{"err.rb:1 Can't change the value of self"}, diagLines(res.Diagnostics))
}

func TestRunStepErrors(t *testing.T) {
	tests := []struct {
		name  string
		steps []Step
		index int
		want  string
	}{
		{
			name:  "unknown operation",
			steps: []Step{{Op: "raed", ID: "x"}},
			want:  `step 0 (raed): unknown operation "raed" (did you mean "read"?)`,
		},
		{
			name:  "unknown register",
			steps: []Step{{Op: "read", ID: "x", As: "xr"}, {Op: "cond", Args: []string{"rx"}}},
			index: 1,
			want:  `step 1 (cond): unknown register "rx" (did you mean "xr"?)`,
		},
		{
			name:  "unknown node kind",
			steps: []Step{{Op: "node", Kind: "lits", Value: "1"}},
			want:  `step 0 (node): unknown node kind "lits" (did you mean "lit"?)`,
		},
		{
			name:  "unknown operator",
			steps: []Step{{Op: "callop", Tok: "<==>"}},
			want:  `step 0 (callop): unknown operator "<==>" (did you mean "<=>"?)`,
		},
		{
			name:  "missing operand",
			steps: []Step{{Op: "read"}},
			want:  `step 0 (read): missing operand: read needs "id"`,
		},
		{
			name:  "assignment kinds come from write",
			steps: []Step{{Op: "node", Kind: "lasgn"}},
			want:  `step 0 (node): lasgn nodes are built by their own operation`,
		},
		{
			name:  "unbalanced block",
			steps: []Step{{Op: "dyna_pop"}},
			want:  `step 0 (dyna_pop): dyna_pop without a matching dyna_push`,
		},
		{
			name:  "double result",
			steps: []Step{{Op: "result"}, {Op: "result"}},
			index: 1,
			want:  `step 1 (result): compilation unit already finished`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&Runner{}).Run(&Trace{Version: "v1.0.0", Steps: tt.steps})
			require.Error(t, err)

			var se *StepError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.index, se.Index)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestRunContractViolation(t *testing.T) {
	var live diag.Collector
	tr := &Trace{Version: "v1.0.0", File: "bug.rb", Steps: []Step{
		{Op: "read", ID: "a", As: "a"},
		{Op: "logop", Kind: "not", Args: []string{"a", "a"}, Line: 7, SourceLine: 12},
	}}

	_, err := (&Runner{Sink: &live}).Run(tr)
	require.Error(t, err)

	var se *StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 12, se.SourceLine)

	var v *invariant.Violation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "UNREACHABLE", v.Kind)

	require.Len(t, live.Diagnostics, 1)
	assert.Equal(t, "bug.rb:7 [BUG] logical operator kind not", live.Diagnostics[0].String())
}

func TestRunUnbalancedScopes(t *testing.T) {
	_, err := (&Runner{}).Run(&Trace{Version: "v1.0.0", Steps: []Step{{Op: "push"}}})
	require.Error(t, err)
	assert.Equal(t, "trace leaves 1 scopes open", err.Error())

	_, err = (&Runner{}).Run(&Trace{Version: "v1.0.0", Steps: []Step{{Op: "dyna_push"}}})
	require.Error(t, err)
	assert.Equal(t, "trace leaves 1 blocks open", err.Error())
	assert.False(t, errors.Is(err, errNeedsOperand))
}
