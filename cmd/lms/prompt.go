package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	isTerminalFunc   = term.IsTerminal

	stdin = bufio.NewReader(os.Stdin)
)

// promptPassword reads a password without echo; piped stdin is read as a line
func promptPassword(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	fd := int(os.Stdin.Fd())
	if !isTerminalFunc(fd) {
		line, err := stdin.ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	pwd, err := readPasswordFunc(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
