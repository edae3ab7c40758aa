// Package prompt turns a stream of raw input lines into a validated answer.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// ErrNoInput is returned when the input ends before an acceptable answer.
var ErrNoInput = errors.New("prompt: input closed before a valid answer")

// Decide reports the parsed answer for raw, or false to ask again.
type Decide[T any] func(raw string) (T, bool)

// First returns the first line of lines that decide accepts. reject, when
// non-nil, is called with every refused line before the next one is pulled.
func First[T any](lines iter.Seq[string], decide Decide[T], reject func(raw string)) (T, error) {
	for raw := range lines {
		if v, ok := decide(raw); ok {
			return v, nil
		}
		if reject != nil {
			reject(raw)
		}
	}
	var zero T
	return zero, ErrNoInput
}

// Terminal reads answers line by line from a reader and writes questions to
// out.
type Terminal struct {
	sc  *bufio.Scanner
	out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{sc: bufio.NewScanner(in), out: out}
}

// Lines prints question, one line per element, before each read. The
// sequence ends when the reader is exhausted and can be ranged over again
// to continue reading from the same reader.
func (t *Terminal) Lines(question ...string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			for _, q := range question {
				fmt.Fprintln(t.out, q)
			}
			if !t.sc.Scan() {
				return
			}
			if !yield(strings.TrimRight(t.sc.Text(), "\r")) {
				return
			}
		}
	}
}
