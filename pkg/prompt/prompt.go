package prompt

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
)

// Prompter asks the user for input. ok is false when the user dismissed the
// prompt; that is an abort, not an error.
type Prompter interface {
	Input(label string, validate func(string) error) (value string, ok bool, err error)
	Select(label string, items []string) (index int, ok bool, err error)
}

// Terminal prompts on the controlling terminal.
type Terminal struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

// NewTerminal returns a prompter on os.Stdin/os.Stdout.
func NewTerminal() *Terminal {
	return &Terminal{}
}

func (t *Terminal) Input(label string, validate func(string) error) (string, bool, error) {
	p := promptui.Prompt{
		Label:    label,
		Validate: validate,
		Stdin:    t.Stdin,
		Stdout:   t.Stdout,
	}
	v, err := p.Run()
	if cancelled(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("prompt %q: %w", label, err)
	}
	return v, true, nil
}

func (t *Terminal) Select(label string, items []string) (int, bool, error) {
	s := promptui.Select{
		Label:  label,
		Items:  items,
		Stdin:  t.Stdin,
		Stdout: t.Stdout,
	}
	idx, _, err := s.Run()
	if cancelled(err) {
		return -1, false, nil
	}
	if err != nil {
		return -1, false, fmt.Errorf("select %q: %w", label, err)
	}
	return idx, true, nil
}

func cancelled(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) ||
		errors.Is(err, promptui.ErrAbort) ||
		errors.Is(err, promptui.ErrEOF)
}
