package cli

import (
	"errors"  // EOF detection
	"fmt"     // Prompts
	"io"      // Readers and writers
	"os"      // Terminal file handle
	"strings" // Line trimming

	"golang.org/x/term" // No-echo password input
)

// Terminal seams, replaced in tests.
var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

// readLine prints prompt and returns the next trimmed line. A final line
// without a newline is returned as is.
func (a *App) readLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(a.out, prompt)
	}
	line, err := a.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readDefault is readLine with a pre-filled value kept on empty input.
func (a *App) readDefault(prompt, value string) (string, error) {
	if value == "" {
		return a.readLine(prompt + ": ")
	}
	line, err := a.readLine(fmt.Sprintf("%s [%s]: ", prompt, value))
	if err != nil || line != "" {
		return line, err
	}
	return value, nil
}

// readHidden reads a password from the terminal without echo
func readHidden(f *os.File, prompt string, w io.Writer) (string, error) {
	fmt.Fprint(w, prompt)
	pw, err := readPassword(int(f.Fd()))
	fmt.Fprintln(w) // ReadPassword swallows the newline
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
