package io

import (
	"bytes"
	"io"
)

// Console writes text to a serial terminal, expanding each newline into a
// carriage return and line feed.
type Console struct {
	Output io.Writer
}

var _ io.Writer = (*Console)(nil)

// Write translates and writes p. The count returned is of bytes of p
// consumed, not of bytes written to Output.
func (con *Console) Write(p []byte) (n int, err error) {
	for len(p) > 0 {
		line, rest, found := bytes.Cut(p, []byte{'\n'})

		_, err = con.Output.Write(line)
		if err != nil {
			return
		}
		n += len(line)

		if found {
			_, err = con.Output.Write([]byte{'\r', '\n'})
			if err != nil {
				return
			}
			n++
		}

		p = rest
	}

	return
}
