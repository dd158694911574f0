// Package source resolves the key and message bytes handed to the steg engine
// from inline strings, files or an interactive prompt.
package source

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
	"golang.org/x/text/unicode/norm"
)

// ErrNoMessage is returned when neither an inline message nor a message file
// was given.
var ErrNoMessage = errors.New("input data / message not specified")

// Prompter reads a secret from the user without echoing it.
type Prompter func(prompt string) ([]byte, error)

// KeyOptions describes where the key comes from. The first non-empty source
// wins: Inline, File, then Prompt. With none set the key is empty.
type KeyOptions struct {
	Inline    string
	File      string
	Prompt    bool
	Normalize bool // NFC-normalise Inline and prompted keys
	Prompter  Prompter
}

// Key returns the key bytes. File contents are used verbatim.
func Key(opts KeyOptions) ([]byte, error) {
	switch {
	case opts.Inline != "":
		return normalize([]byte(opts.Inline), opts.Normalize), nil
	case opts.File != "":
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return nil, fmt.Errorf("read key file: %w", err)
		}
		return data, nil
	case opts.Prompt:
		p := opts.Prompter
		if p == nil {
			p = TerminalPrompt
		}
		key, err := p("Key: ")
		if err != nil {
			return nil, fmt.Errorf("read key: %w", err)
		}
		return normalize(key, opts.Normalize), nil
	default:
		return []byte{}, nil
	}
}

// Message returns the payload from an inline string or a file. A non-nil
// inline message wins even when empty.
func Message(inline *string, file string) ([]byte, error) {
	if inline != nil {
		return []byte(*inline), nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read message file: %w", err)
		}
		return data, nil
	}
	return nil, ErrNoMessage
}

// TerminalPrompt asks for a secret on stderr and reads it from the terminal
// on stdin with echo disabled.
func TerminalPrompt(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	key, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	return key, err
}

func normalize(b []byte, enabled bool) []byte {
	if !enabled {
		return b
	}
	return norm.NFC.Bytes(b)
}
