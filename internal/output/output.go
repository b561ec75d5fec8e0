// Package output delivers the final markdown to a file or to stdout.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// StdoutName selects stdout when configured explicitly.
const StdoutName = "-"

const promptText = "Output filename (press Enter for stdout): "

// Destination is where the document goes. An empty Path means stdout.
type Destination struct {
	Path string
}

func (d Destination) IsStdout() bool {
	return d.Path == ""
}

func (d Destination) String() string {
	if d.IsStdout() {
		return "stdout"
	}
	return d.Path
}

// Resolver picks the destination once generation is done.
type Resolver struct {
	Configured  string    // RELEASENOTES_OUTPUT
	In          io.Reader // Answers to the prompt
	Prompt      io.Writer // Where the prompt is shown
	Interactive bool      // Whether In is a terminal
}

// NewResolver prompts on stdin/stderr when stdin is a terminal.
func NewResolver(configured string) *Resolver {
	return &Resolver{
		Configured:  configured,
		In:          os.Stdin,
		Prompt:      os.Stderr,
		Interactive: IsTerminal(os.Stdin),
	}
}

// Resolve returns the configured destination, else asks the operator, else stdout.
func (r *Resolver) Resolve() (Destination, error) {
	if configured := strings.TrimSpace(r.Configured); configured != "" {
		if configured == StdoutName {
			return Destination{}, nil
		}
		return Destination{Path: configured}, nil
	}

	if !r.Interactive || r.In == nil {
		return Destination{}, nil
	}

	if r.Prompt != nil {
		fmt.Fprint(r.Prompt, promptText)
	}

	line, err := bufio.NewReader(r.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return Destination{}, fmt.Errorf("reading output filename: %w", err)
	}
	return Destination{Path: strings.TrimSpace(line)}, nil
}

// Write stores markdown at dest, or writes it to stdout when dest is stdout.
func Write(dest Destination, markdown string, stdout io.Writer) error {
	if dest.IsStdout() {
		_, err := io.WriteString(stdout, markdown)
		if err == nil && !strings.HasSuffix(markdown, "\n") {
			_, err = io.WriteString(stdout, "\n")
		}
		return err
	}
	return os.WriteFile(dest.Path, []byte(markdown), 0o644)
}

func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
