package utils

import (
	"crypto/subtle"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/term"

	verrors "github.com/PolarWolf314/vellum/internal/errors"
)

// Swapped out in tests.
var (
	readPassword           = term.ReadPassword
	isTerminal             = term.IsTerminal
	promptOut    io.Writer = os.Stderr
)

// ReadPassphrase prompts the user for a passphrase without echoing input.
// Returns an error if stdin is not a terminal.
func ReadPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !isTerminal(fd) {
		return nil, fmt.Errorf("cannot read passphrase: stdin is not a terminal")
	}

	return readHidden(fd, prompt)
}

// ReadPassphraseFromTTY prompts the user for a passphrase from /dev/tty (or CON on Windows).
// This is useful when stdin is being used for other input, such as the
// commands of an interactive session.
func ReadPassphraseFromTTY(prompt string) ([]byte, error) {
	ttyPath := "/dev/tty"
	if runtime.GOOS == "windows" {
		ttyPath = "CON"
	}

	tty, err := os.Open(ttyPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s for passphrase input: %w", ttyPath, err)
	}
	defer tty.Close()

	fd := int(tty.Fd())
	if !isTerminal(fd) {
		return nil, fmt.Errorf("%s is not a terminal", ttyPath)
	}

	return readHidden(fd, prompt)
}

// ReadConfirmedPassphrase prompts twice and returns the passphrase only if
// both entries match and are non-empty. Both buffers are wiped on failure.
func ReadConfirmedPassphrase(prompt, confirmPrompt string) ([]byte, error) {
	return confirmWith(ReadPassphrase, prompt, confirmPrompt)
}

// ReadConfirmedPassphraseFromTTY is ReadConfirmedPassphrase on the TTY.
func ReadConfirmedPassphraseFromTTY(prompt, confirmPrompt string) ([]byte, error) {
	return confirmWith(ReadPassphraseFromTTY, prompt, confirmPrompt)
}

func confirmWith(read func(string) ([]byte, error), prompt, confirmPrompt string) ([]byte, error) {
	first, err := read(prompt)
	if err != nil {
		return nil, err
	}
	if len(first) == 0 {
		return nil, verrors.ErrEmptyPassword
	}

	second, err := read(confirmPrompt)
	if err != nil {
		Wipe(first)
		return nil, err
	}
	defer Wipe(second)

	if subtle.ConstantTimeCompare(first, second) != 1 {
		Wipe(first)
		return nil, verrors.ErrPasswordMismatch
	}
	return first, nil
}

func readHidden(fd int, prompt string) ([]byte, error) {
	fmt.Fprint(promptOut, prompt)
	passphrase, err := readPassword(fd)
	fmt.Fprintln(promptOut) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	return passphrase, nil
}

// Wipe zeroes a passphrase buffer.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return isTerminal(int(os.Stdin.Fd()))
}
