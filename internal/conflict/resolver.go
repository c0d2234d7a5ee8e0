package conflict

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/project-labs/project/internal/errdefs"
	"github.com/spf13/afero"
)

// Question is what a Chooser is asked when a destination already exists.
type Question struct {
	Message string
	Source  string
	Target  string
	Choices []Choice
}

// Chooser picks one of a question's choices.
type Chooser interface {
	Choose(ctx context.Context, q Question) (Action, error)
}

// Resolver turns a destination path into an Action.
type Resolver struct {
	fs      afero.Fs
	chooser Chooser
	logger  *log.Logger
}

// NewResolver creates a Resolver. A nil logger discards output.
func NewResolver(fsys afero.Fs, chooser Chooser, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{fs: fsys, chooser: chooser, logger: logger}
}

// Resolve returns overwrite for an absent target, the remembered decision if
// rc holds one, and otherwise asks the Chooser. An "... All" answer is stored
// in rc.
func (r *Resolver) Resolve(ctx context.Context, rc *RunContext, target, source string) (Action, error) {
	exists, err := afero.Exists(r.fs, target)
	if err != nil {
		return Action{}, errdefs.IO("checking", target, err)
	}
	return r.Decide(ctx, rc, target, source, exists)
}

// Decide is Resolve for a caller that has already checked whether target
// exists.
func (r *Resolver) Decide(ctx context.Context, rc *RunContext, target, source string, exists bool) (Action, error) {
	if !exists {
		return Action{Verb: VerbOverwrite}, nil
	}

	if a, ok := rc.Memoized(); ok {
		r.logger.Debug("applying remembered decision", "action", a.String(), "target", target)
		return a, nil
	}

	a, err := r.chooser.Choose(ctx, Question{
		Message: "What should I do?",
		Source:  source,
		Target:  target,
		Choices: Choices(),
	})
	if err != nil {
		return Action{}, fmt.Errorf("resolving conflict at %s: %w", target, err)
	}
	if !a.Verb.Valid() {
		return Action{}, errAnswer(a)
	}

	if a.All {
		rc.remember(a)
		r.logger.Debug("remembering decision for remaining conflicts", "action", a.String())
	}
	return a, nil
}

// FixedChooser answers every question with the same verb for all conflicts.
type FixedChooser struct {
	Verb Verb
}

// Choose implements Chooser.
func (f FixedChooser) Choose(context.Context, Question) (Action, error) {
	return Action{Verb: f.Verb, All: true}, nil
}
