package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// errNoInput is returned when stdin is closed or not a terminal
var errNoInput = errors.New("no interactive input available")

// console reads answers and form input from the terminal
type console struct {
	in          *bufio.Reader
	out         io.Writer
	assumeYes   bool
	interactive bool
}

func newConsole(in *os.File, out io.Writer, assumeYes bool) *console {
	fd := in.Fd()
	return &console{
		in:          bufio.NewReader(in),
		out:         out,
		assumeYes:   assumeYes,
		interactive: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

// Confirm prompts with a [y/N] question. Without a terminal it declines
// unless --yes was given.
func (c *console) Confirm(prompt string) bool {
	if c.assumeYes {
		return true
	}
	if !c.interactive {
		return false
	}

	fmt.Fprintf(c.out, "%s [y/N]: ", prompt)

	response, err := c.in.ReadString('\n')
	if err != nil && response == "" {
		return false
	}

	return strings.ToLower(strings.TrimSpace(response)) == "y"
}

// ReadLine prompts and returns one trimmed-right line of input
func (c *console) ReadLine(prompt string) (string, error) {
	if !c.interactive {
		return "", errNoInput
	}

	fmt.Fprintf(c.out, "%s: ", prompt)

	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", errNoInput
		}
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}
