package transport

import (
	"bufio"
	"io"
	"strings"
)

// LineReader reads one newline-terminated line at a time. ReadLine returns
// the line without its delimiter; io.EOF (or any other error) means the
// stream is unusable and the caller must tear the session down.
type LineReader interface {
	ReadLine() (string, error)
}

// LineWriter writes one display line at a time, delimiter included
type LineWriter interface {
	WriteLine(line string) error
}

type bufioLineReader struct {
	r *bufio.Reader
}

func (l *bufioLineReader) ReadLine() (string, error) {
	line, err := l.r.ReadString('\n')
	if err != nil {
		// A partial line before EOF is not a command; treat it as stream end
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type bufioLineWriter struct {
	w *bufio.Writer
}

func (l *bufioLineWriter) WriteLine(line string) error {
	if _, err := l.w.WriteString(line); err != nil {
		return err
	}
	if _, err := l.w.WriteString("\r\n"); err != nil {
		return err
	}
	return l.w.Flush()
}

// NewLineReader wraps a byte stream in a LineReader
func NewLineReader(r io.Reader) LineReader {
	return &bufioLineReader{r: bufio.NewReader(r)}
}

// NewLineWriter wraps a byte stream in a LineWriter
func NewLineWriter(w io.Writer) LineWriter {
	return &bufioLineWriter{w: bufio.NewWriter(w)}
}
