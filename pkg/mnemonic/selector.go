package mnemonic

import (
	"context"
	"fmt"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/prompt"
)

const (
	optionGenerate = "Generate mnemonic"
	optionPaste    = "Paste mnemonic"
)

// Selection is the mnemonic chosen for a network and the file it lives in.
type Selection struct {
	Mnemonic string
	Path     string
}

// Selector asks the user to generate, paste or reuse a mnemonic.
type Selector struct {
	Repo     *Repository
	Prompter prompt.Prompter
}

// Select returns nil when the user dismisses any of the prompts.
func (s *Selector) Select(ctx context.Context) (*Selection, error) {
	paths, err := s.Repo.ExistingPaths(ctx)
	if err != nil {
		return nil, err
	}

	items := []string{optionGenerate, optionPaste}
	history := make([]string, 0, len(paths))
	for _, p := range paths {
		m, err := s.Repo.Load(p)
		if err != nil {
			continue
		}
		items = append(items, Mask(m))
		history = append(history, p)
	}

	idx, ok, err := s.Prompter.Select("Select mnemonic", items)
	if err != nil || !ok {
		return nil, err
	}

	var m string
	switch idx {
	case 0:
		if m, err = Generate(); err != nil {
			return nil, fmt.Errorf("generate mnemonic: %w", err)
		}
	case 1:
		m, ok, err = s.Prompter.Input("Enter mnemonic", Validate)
		if err != nil || !ok {
			return nil, err
		}
	default:
		path := history[idx-2]
		m, err := s.Repo.Load(path)
		if err != nil {
			return nil, err
		}
		return &Selection{Mnemonic: m, Path: path}, nil
	}

	path, err := s.Repo.Save(ctx, m)
	if err != nil {
		return nil, err
	}
	return &Selection{Mnemonic: normalize(m), Path: path}, nil
}
