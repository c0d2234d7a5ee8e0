package conflict

import (
	"fmt"
	"strings"

	"github.com/project-labs/project/internal/errdefs"
)

// Verb is what to do with a conflicting destination file.
type Verb string

const (
	VerbSkip      Verb = "skip"
	VerbMerge     Verb = "merge"
	VerbOverwrite Verb = "overwrite"
)

// Verbs returns the verbs in menu order.
func Verbs() []Verb {
	return []Verb{VerbSkip, VerbMerge, VerbOverwrite}
}

// Valid reports whether v is a known verb.
func (v Verb) Valid() bool {
	switch v {
	case VerbSkip, VerbMerge, VerbOverwrite:
		return true
	}
	return false
}

// Title returns the menu label for v, e.g. "Overwrite".
func (v Verb) Title() string {
	if v == "" {
		return ""
	}
	return strings.ToUpper(string(v[:1])) + string(v[1:])
}

// ParseVerb validates a verb name (case-insensitive).
func ParseVerb(s string) (Verb, error) {
	v := Verb(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", errdefs.InvalidInput("unknown conflict action %q (want skip, merge, or overwrite)", s)
	}
	return v, nil
}

// Action is a resolved decision. All marks it as the answer for every
// remaining conflict in the run.
type Action struct {
	Verb Verb
	All  bool
}

func (a Action) String() string {
	if a.All {
		return a.Verb.Title() + " All"
	}
	return a.Verb.Title()
}

// Choice is one labeled option of a conflict question.
type Choice struct {
	Title  string
	Action Action
}

// Choices returns the six options offered for every conflict: each verb on
// its own, then each verb for all remaining conflicts.
func Choices() []Choice {
	verbs := Verbs()
	choices := make([]Choice, 0, 2*len(verbs))
	for _, all := range []bool{false, true} {
		for _, v := range verbs {
			a := Action{Verb: v, All: all}
			choices = append(choices, Choice{Title: a.String(), Action: a})
		}
	}
	return choices
}

// RunContext carries the state of one scaffolding run. Create one per run
// with NewRunContext; it must not be shared between runs.
type RunContext struct {
	memo *Action
}

// NewRunContext returns a context with no remembered decision.
func NewRunContext() *RunContext {
	return &RunContext{}
}

// Memoized returns the remembered "... All" decision, if any.
func (rc *RunContext) Memoized() (Action, bool) {
	if rc.memo == nil {
		return Action{}, false
	}
	return *rc.memo, true
}

func (rc *RunContext) remember(a Action) {
	rc.memo = &a
}

// errAnswer is returned when a Chooser produces an action outside the menu.
func errAnswer(a Action) error {
	return fmt.Errorf("%w: chooser returned unknown action %q", errdefs.ErrInvalidInput, a.Verb)
}
