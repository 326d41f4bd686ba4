package console

import (
	"io"
	"os"
)

type stdio struct {
	io.Reader
	io.Writer
}

// Stdio returns a ReadWriter over the process's stdin and stdout, for the
// root console session.
func Stdio() io.ReadWriter {
	return &stdio{Reader: os.Stdin, Writer: os.Stdout}
}

// OSProcess is the Process capability for the root session: exit really
// terminates the process.
type OSProcess struct{}

func (OSProcess) Exit(code int) {
	os.Exit(code)
}
