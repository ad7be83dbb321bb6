// Package prompt implements the interactive yes/no and line prompts used by
// the migration wizard and the superuser bootstrap. Reader and writer are
// injected so tests can script an entire session.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter reads answers from r and writes questions to w.
type Prompter struct {
	r *bufio.Reader
	w io.Writer
}

// New creates a Prompter on the given reader and writer. Commands pass
// os.Stdin and os.Stdout.
func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{r: bufio.NewReader(r), w: w}
}

// Confirm asks a yes/no question and returns the answer. An empty response
// selects def; anything starting with "y" (case-insensitive) is yes, anything
// else is no. The rendered options make the default explicit, e.g. "[Y/n]".
func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	options := "[y/N]"
	if def {
		options = "[Y/n]"
	}

	fmt.Fprintf(p.w, "%s %s: ", label, options)

	line, err := p.r.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			// closed input keeps the default, matching non-interactive use
			return def, nil
		}

		return false, fmt.Errorf("could not read answer: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "" {
		return def, nil
	}

	return answer == "y" || answer == "yes", nil
}

// Line asks for a free-form value and returns the trimmed answer.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprintf(p.w, "%s: ", label)

	line, err := p.r.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("could not read answer: %w", err)
	}

	return strings.TrimSpace(line), nil
}
