package trace

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// LoadError reports a trace document that could not be read or validated.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// StepError reports a step that could not be replayed.
type StepError struct {
	Index      int    // position of the step in the trace, from 0
	Op         string // the step's operation
	SourceLine int    // line of the step in the trace document, 0 if unknown
	Err        error
}

func (e *StepError) Error() string {
	if e.SourceLine > 0 {
		return fmt.Sprintf("step %d (%s, line %d): %v", e.Index, e.Op, e.SourceLine, e.Err)
	}
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// NameError reports an unknown operation, node kind, operator or register.
type NameError struct {
	What       string // "operation", "node kind", "operator" or "register"
	Name       string
	Suggestion string
}

func (e *NameError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown %s %q (did you mean %q?)", e.What, e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown %s %q", e.What, e.Name)
}

func unknown(what, name string, candidates []string) *NameError {
	return &NameError{What: what, Name: name, Suggestion: closestMatch(name, candidates)}
}

// maxTypoDistance bounds the edit distance of a suggestion that is not a fuzzy
// subsequence match.
const maxTypoDistance = 2

// closestMatch returns the best candidate for a mistyped name, or "".
func closestMatch(target string, candidates []string) string {
	if target == "" || len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDist := "", maxTypoDistance+1
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(target, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
