package repl

import (
	"bufio"
	"errors"
	"io"

	"github.com/chzyer/readline"
)

// LineReader yields command lines until io.EOF.
type LineReader interface {
	ReadLine() (string, error)
	Close() error
}

const maxLineBytes = 1 << 20

type scannerReader struct {
	scanner *bufio.Scanner
}

// NewScannerReader reads newline separated commands from r without a prompt.
func NewScannerReader(r io.Reader) LineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	return &scannerReader{scanner: scanner}
}

func (r *scannerReader) ReadLine() (string, error) {
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (r *scannerReader) Close() error {
	return nil
}

type terminalReader struct {
	rl *readline.Instance
}

// NewTerminalReader reads commands with line editing and history.
func NewTerminalReader(prompt, historyFile string) (LineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "END",
	})
	if err != nil {
		return nil, err
	}
	return &terminalReader{rl: rl}, nil
}

func (r *terminalReader) ReadLine() (string, error) {
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}

func (r *terminalReader) Close() error {
	return r.rl.Close()
}
