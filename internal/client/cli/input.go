package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/gophsocial/internal/common"
	"golang.org/x/term"
)

// Terminal seams, replaced in tests.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

var (
	errEmptyInput       = errors.New("empty input")
	errPasswordMismatch = errors.New("passwords do not match")
)

// promptLine prints "label: " and returns the next line without surrounding
// whitespace. A blank answer is errEmptyInput.
func promptLine(r *bufio.Reader, w io.Writer, label string) (string, error) {
	fmt.Fprintf(w, "%s: ", label)

	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return "", errEmptyInput
	}
	return line, nil
}

// promptEmail reads an address in the form the server stores it.
func promptEmail(r *bufio.Reader, w io.Writer) (string, error) {
	email, err := promptLine(r, w, "Email")
	if err != nil {
		return "", err
	}
	return common.NormalizeEmail(email), nil
}

// promptPassword reads a password without echo. When stdin is not a
// terminal (piped input) it reads a plain line from r instead.
//
// The caller owns the returned slice and should wipe it.
func promptPassword(r *bufio.Reader, w io.Writer, label string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		line, err := promptLine(r, w, label)
		if err != nil {
			return nil, err
		}
		return []byte(line), nil
	}

	fmt.Fprintf(w, "%s: ", label)
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	if len(pw) == 0 {
		return nil, errEmptyInput
	}
	return pw, nil
}

// promptNewPassword asks twice and returns errPasswordMismatch when the
// answers differ.
func promptNewPassword(r *bufio.Reader, w io.Writer) ([]byte, error) {
	pw, err := promptPassword(r, w, "Password")
	if err != nil {
		return nil, err
	}

	again, err := promptPassword(r, w, "Repeat password")
	if err != nil {
		wipe(pw)
		return nil, err
	}
	defer wipe(again)

	if !bytes.Equal(pw, again) {
		wipe(pw)
		return nil, errPasswordMismatch
	}
	return pw, nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
