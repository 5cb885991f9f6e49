package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// Option is one selectable menu entry.
type Option struct {
	Key   string
	Label string
}

// Prompter reads user choices. Implementations return io.EOF when the user
// closes input or aborts.
type Prompter interface {
	Choose(title string, options []Option) (string, error)
	Input(title string) (string, error)
}

// LinePrompter reads one answer per line. It is used for scripted input and
// terminals without form support.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter reading from r and echoing prompts to w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(r), out: w}
}

// Choose prints a numbered menu and reads the selected key.
func (p *LinePrompter) Choose(title string, options []Option) (string, error) {
	rule := strings.Repeat("=", 29)
	fmt.Fprintf(p.out, "\n%s\n%s\n%s\n", rule, center(title, len(rule)), rule)
	for _, o := range options {
		fmt.Fprintf(p.out, "[%s] %s\n", o.Key, o.Label)
	}
	return p.Input("\nChoose")
}

// Input prints title and reads one trimmed line.
func (p *LinePrompter) Input(title string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", title)
	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", (width-len(s))/2) + s
}

// FormPrompter renders prompts as interactive huh forms.
type FormPrompter struct{}

// Choose shows a select list.
func (FormPrompter) Choose(title string, options []Option) (string, error) {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o.Label, o.Key)
	}
	var choice string
	err := huh.NewSelect[string]().
		Title(title).
		Options(opts...).
		Value(&choice).
		Run()
	return choice, formError(err)
}

// Input shows a single-line text field.
func (FormPrompter) Input(title string) (string, error) {
	var value string
	err := huh.NewInput().
		Title(title).
		Value(&value).
		Run()
	return strings.TrimSpace(value), formError(err)
}

func formError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return io.EOF
	}
	return err
}
