package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// promptKey reads a key from the terminal with echo disabled. It returns
// an empty key, leaving validation to report it, when in is not a
// terminal.
func promptKey(in io.Reader, prompt io.Writer) (string, error) {
	file, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return "", nil
	}

	fmt.Fprint(prompt, "Key: ")
	key, err := term.ReadPassword(int(file.Fd()))
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("reading key: %w", err)
	}
	return string(key), nil
}
