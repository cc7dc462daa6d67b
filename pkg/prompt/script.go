package prompt

import "fmt"

// Answer is one scripted response. Cancel simulates a dismissed prompt.
type Answer struct {
	Value  string
	Index  int
	Cancel bool
}

// Script replays canned answers in order. It is meant for tests and for
// non-interactive runs where every answer is known up front.
type Script struct {
	Answers []Answer
	Asked   []string
}

// NewScript returns a Script answering with values in order.
func NewScript(answers ...Answer) *Script {
	return &Script{Answers: answers}
}

func (s *Script) next(label string) (Answer, error) {
	s.Asked = append(s.Asked, label)
	if len(s.Answers) == 0 {
		return Answer{}, fmt.Errorf("no scripted answer for %q", label)
	}
	a := s.Answers[0]
	s.Answers = s.Answers[1:]
	return a, nil
}

func (s *Script) Input(label string, validate func(string) error) (string, bool, error) {
	a, err := s.next(label)
	if err != nil {
		return "", false, err
	}
	if a.Cancel {
		return "", false, nil
	}
	if validate != nil {
		if err := validate(a.Value); err != nil {
			return "", false, fmt.Errorf("scripted answer %q for %q rejected: %w", a.Value, label, err)
		}
	}
	return a.Value, true, nil
}

func (s *Script) Select(label string, items []string) (int, bool, error) {
	a, err := s.next(label)
	if err != nil {
		return -1, false, err
	}
	if a.Cancel {
		return -1, false, nil
	}
	if a.Index < 0 || a.Index >= len(items) {
		return -1, false, fmt.Errorf("scripted index %d out of range for %q", a.Index, label)
	}
	return a.Index, true, nil
}
