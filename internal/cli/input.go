package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/workshops/internal/common"
	"golang.org/x/term"
)

// test seams
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// GetSimpleText prints a prompt to w and reads a single line from reader.
// If EOF occurs after some input was read, the partial line is returned.
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// NoTerminal is the descriptor value GetPassword takes for input that is
// not an interactive terminal.
const NoTerminal = -1

// terminalFD returns the descriptor of in when it is a terminal and
// NoTerminal otherwise.
func terminalFD(in io.Reader) int {
	f, ok := in.(*os.File)
	if !ok || !isTerminal(int(f.Fd())) {
		return NoTerminal
	}
	return int(f.Fd())
}

// GetPassword prints prompt to w and reads a password. On a terminal (fd is
// not NoTerminal) it reads without echo; otherwise it reads the next line
// from reader, so piped input stays in order with the other prompts.
func GetPassword(reader *bufio.Reader, fd int, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}

	if fd == NoTerminal {
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			return "", err
		}
		fmt.Fprintln(w)
		return strings.TrimRight(line, "\r\n"), nil
	}

	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}
