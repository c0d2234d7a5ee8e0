package conflict

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/project-labs/project/internal/errdefs"
	"github.com/spf13/afero"
)

// scriptedChooser answers questions from a fixed list and records each one.
type scriptedChooser struct {
	answers []Action
	asked   []Question
}

func (s *scriptedChooser) Choose(_ context.Context, q Question) (Action, error) {
	s.asked = append(s.asked, q)
	if len(s.answers) == 0 {
		return Action{}, errors.New("no scripted answer left")
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func newTestFS(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for _, f := range files {
		if err := afero.WriteFile(fsys, f, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return fsys
}

func TestResolveAbsentTargetOverwritesWithoutAsking(t *testing.T) {
	chooser := &scriptedChooser{}
	r := NewResolver(newTestFS(t), chooser, nil)

	a, err := r.Resolve(context.Background(), NewRunContext(), "/dst/new.txt", "/tpl/new.txt")
	if err != nil {
		t.Fatal(err)
	}
	if a != (Action{Verb: VerbOverwrite}) {
		t.Errorf("action = %+v, want overwrite", a)
	}
	if len(chooser.asked) != 0 {
		t.Errorf("chooser asked %d times, want 0", len(chooser.asked))
	}
}

func TestDecideTrustsCallerExistence(t *testing.T) {
	// The filesystem is empty: Decide must not look at it.
	chooser := &scriptedChooser{answers: []Action{{Verb: VerbSkip}}}
	r := NewResolver(newTestFS(t), chooser, nil)

	a, err := r.Decide(context.Background(), NewRunContext(), "/dst/a.txt", "/tpl/a.txt", true)
	if err != nil {
		t.Fatal(err)
	}
	if a.Verb != VerbSkip || len(chooser.asked) != 1 {
		t.Errorf("action = %+v after %d questions, want skip after 1", a, len(chooser.asked))
	}

	a, err = r.Decide(context.Background(), NewRunContext(), "/dst/a.txt", "/tpl/a.txt", false)
	if err != nil {
		t.Fatal(err)
	}
	if a != (Action{Verb: VerbOverwrite}) || len(chooser.asked) != 1 {
		t.Errorf("action = %+v after %d questions, want overwrite without asking", a, len(chooser.asked))
	}
}

func TestResolveAsksWithSixChoices(t *testing.T) {
	chooser := &scriptedChooser{answers: []Action{{Verb: VerbMerge}}}
	r := NewResolver(newTestFS(t, "/dst/a.txt"), chooser, nil)

	a, err := r.Resolve(context.Background(), NewRunContext(), "/dst/a.txt", "/tpl/a.txt")
	if err != nil {
		t.Fatal(err)
	}
	if a.Verb != VerbMerge || a.All {
		t.Errorf("action = %+v, want merge", a)
	}

	q := chooser.asked[0]
	if q.Target != "/dst/a.txt" || q.Source != "/tpl/a.txt" {
		t.Errorf("question paths = %q, %q", q.Source, q.Target)
	}
	var titles []string
	for _, c := range q.Choices {
		titles = append(titles, c.Title)
	}
	want := "Skip,Merge,Overwrite,Skip All,Merge All,Overwrite All"
	if got := strings.Join(titles, ","); got != want {
		t.Errorf("choices = %s, want %s", got, want)
	}
}

func TestResolveSingleAnswerIsNotRemembered(t *testing.T) {
	chooser := &scriptedChooser{answers: []Action{{Verb: VerbSkip}, {Verb: VerbOverwrite}}}
	r := NewResolver(newTestFS(t, "/dst/a", "/dst/b"), chooser, nil)
	rc := NewRunContext()

	if _, err := r.Resolve(context.Background(), rc, "/dst/a", "/tpl/a"); err != nil {
		t.Fatal(err)
	}
	if _, ok := rc.Memoized(); ok {
		t.Fatal("single answer must not be remembered")
	}
	a, err := r.Resolve(context.Background(), rc, "/dst/b", "/tpl/b")
	if err != nil {
		t.Fatal(err)
	}
	if a.Verb != VerbOverwrite {
		t.Errorf("second action = %+v, want overwrite", a)
	}
	if len(chooser.asked) != 2 {
		t.Errorf("chooser asked %d times, want 2", len(chooser.asked))
	}
}

func TestResolveAllAnswerIsRemembered(t *testing.T) {
	chooser := &scriptedChooser{answers: []Action{{Verb: VerbSkip, All: true}}}
	r := NewResolver(newTestFS(t, "/dst/a", "/dst/b", "/dst/c"), chooser, nil)
	rc := NewRunContext()

	for _, target := range []string{"/dst/a", "/dst/b", "/dst/c"} {
		a, err := r.Resolve(context.Background(), rc, target, "/tpl/x")
		if err != nil {
			t.Fatal(err)
		}
		if a.Verb != VerbSkip {
			t.Errorf("%s: action = %+v, want skip", target, a)
		}
	}
	if len(chooser.asked) != 1 {
		t.Errorf("chooser asked %d times, want 1", len(chooser.asked))
	}

	// An absent target is still never a conflict.
	a, err := r.Resolve(context.Background(), rc, "/dst/missing", "/tpl/x")
	if err != nil {
		t.Fatal(err)
	}
	if a.Verb != VerbOverwrite {
		t.Errorf("absent target action = %+v, want overwrite", a)
	}
}

func TestResolveRunContextsAreIndependent(t *testing.T) {
	chooser := &scriptedChooser{answers: []Action{{Verb: VerbSkip, All: true}, {Verb: VerbMerge}}}
	r := NewResolver(newTestFS(t, "/dst/a"), chooser, nil)

	if _, err := r.Resolve(context.Background(), NewRunContext(), "/dst/a", "/tpl/a"); err != nil {
		t.Fatal(err)
	}
	a, err := r.Resolve(context.Background(), NewRunContext(), "/dst/a", "/tpl/a")
	if err != nil {
		t.Fatal(err)
	}
	if a.Verb != VerbMerge {
		t.Errorf("fresh run action = %+v, want merge", a)
	}
}

func TestResolveRejectsUnknownAnswer(t *testing.T) {
	chooser := &scriptedChooser{answers: []Action{{Verb: "delete"}}}
	r := NewResolver(newTestFS(t, "/dst/a"), chooser, nil)

	_, err := r.Resolve(context.Background(), NewRunContext(), "/dst/a", "/tpl/a")
	if !errors.Is(err, errdefs.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFixedChooser(t *testing.T) {
	r := NewResolver(newTestFS(t, "/dst/a"), FixedChooser{Verb: VerbMerge}, nil)
	rc := NewRunContext()

	a, err := r.Resolve(context.Background(), rc, "/dst/a", "/tpl/a")
	if err != nil {
		t.Fatal(err)
	}
	if a != (Action{Verb: VerbMerge, All: true}) {
		t.Errorf("action = %+v, want merge all", a)
	}
	if m, ok := rc.Memoized(); !ok || m.Verb != VerbMerge {
		t.Errorf("memoized = %+v, %v", m, ok)
	}
}

func TestMenuChooser(t *testing.T) {
	q := Question{Message: "What should I do?", Source: "/tpl/a", Target: "/dst/a", Choices: Choices()}

	tests := []struct {
		name  string
		input string
		want  Action
	}{
		{"number", "2\n", Action{Verb: VerbMerge}},
		{"all by number", "4\n", Action{Verb: VerbSkip, All: true}},
		{"title", "overwrite all\n", Action{Verb: VerbOverwrite, All: true}},
		{"retry after invalid", "9\nfoo\n3\n", Action{Verb: VerbOverwrite}},
		{"no trailing newline", "1", Action{Verb: VerbSkip}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			m := NewMenuChooser(strings.NewReader(tt.input), &out)

			a, err := m.Choose(context.Background(), q)
			if err != nil {
				t.Fatalf("Choose: %v", err)
			}
			if a != tt.want {
				t.Errorf("Choose() = %+v, want %+v", a, tt.want)
			}
			if !strings.Contains(out.String(), "already exists") {
				t.Errorf("banner missing from output:\n%s", out.String())
			}
		})
	}
}

func TestMenuChooserEOF(t *testing.T) {
	m := NewMenuChooser(strings.NewReader("7\n"), io.Discard)
	_, err := m.Choose(context.Background(), Question{Choices: Choices()})
	if !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestParseVerb(t *testing.T) {
	tests := []struct {
		in      string
		want    Verb
		wantErr bool
	}{
		{"skip", VerbSkip, false},
		{"MERGE", VerbMerge, false},
		{" overwrite ", VerbOverwrite, false},
		{"delete", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVerb(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVerb(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseVerb(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
