package conflict

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MenuChooser asks the user on a terminal. Each question is printed as a
// numbered menu; the answer is a number or a choice title. Invalid answers
// are re-asked, end of input is an error.
type MenuChooser struct {
	reader *bufio.Reader
	w      io.Writer

	sourceStyle lipgloss.Style
	targetStyle lipgloss.Style
}

// NewMenuChooser reads answers from r and writes menus to w.
func NewMenuChooser(r io.Reader, w io.Writer) *MenuChooser {
	renderer := lipgloss.NewRenderer(w)
	return &MenuChooser{
		reader:      bufio.NewReader(r),
		w:           w,
		sourceStyle: renderer.NewStyle().Foreground(lipgloss.Color("3")),
		targetStyle: renderer.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Choose implements Chooser.
func (m *MenuChooser) Choose(ctx context.Context, q Question) (Action, error) {
	if err := ctx.Err(); err != nil {
		return Action{}, err
	}

	source := m.sourceStyle.Render(strconv.Quote(q.Source))
	target := m.targetStyle.Render(strconv.Quote(q.Target))
	fmt.Fprintf(m.w, "Copying file %s -> to %s\nTarget file %s already exists:\n", source, target, target)

	for {
		fmt.Fprintf(m.w, "%s\n", q.Message)
		for i, c := range q.Choices {
			fmt.Fprintf(m.w, "  %d) %s\n", i+1, c.Title)
		}
		fmt.Fprintf(m.w, "Enter number [1-%d]: ", len(q.Choices))

		line, err := m.reader.ReadString('\n')
		answer := strings.TrimSpace(line)
		if answer != "" {
			if c, ok := pick(q.Choices, answer); ok {
				return c.Action, nil
			}
			fmt.Fprintf(m.w, "invalid selection %q: choose 1-%d\n", answer, len(q.Choices))
		}
		if err != nil {
			return Action{}, fmt.Errorf("reading selection: %w", err)
		}
	}
}

// pick matches an answer by 1-based index or by title.
func pick(choices []Choice, answer string) (Choice, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(choices) {
			return Choice{}, false
		}
		return choices[n-1], true
	}
	for _, c := range choices {
		if strings.EqualFold(c.Title, answer) {
			return c, true
		}
	}
	return Choice{}, false
}
