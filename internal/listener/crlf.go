package listener

import (
	"bytes"
	"io"
)

// crlfReadWriter adapts a network transport to the console's \n-only world:
// reads normalize \r\n and bare \r to \n, writes expand \n to \r\n. Telnet
// requires CRLF line endings; SSH without a PTY sends bare \r.
type crlfReadWriter struct {
	rw io.ReadWriter
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &crlfReadWriter{rw: rw}
}

func (c *crlfReadWriter) Read(p []byte) (int, error) {
	n, err := c.rw.Read(p)
	if n > 0 {
		data := bytes.ReplaceAll(p[:n], []byte("\r\n"), []byte("\n"))
		data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
		n = copy(p, data)
	}
	return n, err
}

func (c *crlfReadWriter) Write(p []byte) (int, error) {
	converted := bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
	_, err := c.rw.Write(converted)
	// Report the original length so callers aren't confused by the expansion.
	return len(p), err
}
