package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	errEmptyInput         = errors.New("no input given")
	errPassphraseMismatch = errors.New("passphrases do not match")
)

// terminalFd returns the descriptor of stdin when it is a terminal.
func terminalFd(cmd *cobra.Command) (int, bool) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return int(f.Fd()), true
	}
	return 0, false
}

// readSecret prompts for a secret on stderr. Input is hidden when stdin is
// a terminal; otherwise one line is read, so secrets can be piped in.
func (a *app) readSecret(cmd *cobra.Command, prompt string) (string, error) {
	if fd, ok := terminalFd(cmd); ok {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return nonEmpty(string(b))
	}

	// Piped input is shared by every prompt of one command.
	if a.stdin == nil {
		a.stdin = bufio.NewReader(cmd.InOrStdin())
	}
	line, err := a.stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", errEmptyInput
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return nonEmpty(line)
}

// readNewPassphrase asks for a passphrase, twice on a terminal.
func (a *app) readNewPassphrase(cmd *cobra.Command) ([]byte, error) {
	pass, err := a.readSecret(cmd, "Enter passphrase: ")
	if err != nil {
		return nil, err
	}
	if _, ok := terminalFd(cmd); ok {
		again, err := a.readSecret(cmd, "Repeat passphrase: ")
		if err != nil {
			return nil, err
		}
		if again != pass {
			return nil, errPassphraseMismatch
		}
	}
	return []byte(pass), nil
}

func nonEmpty(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errEmptyInput
	}
	return s, nil
}

// secretArg returns the flag value, or prompts when the flag was not given.
func (a *app) secretArg(cmd *cobra.Command, value, prompt string) (string, error) {
	if value != "" {
		return nonEmpty(value)
	}
	return a.readSecret(cmd, prompt)
}
