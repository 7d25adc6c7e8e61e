package main

import (
	"fmt"
	"io"
	"os"

	"github.com/opal-lang/semact/runtime/trace"
)

// loadTrace reads a trace from path, or from stdin when path is "-".
func loadTrace(path string, stdin io.Reader) (*trace.Trace, error) {
	if path != "-" {
		return trace.LoadFile(path)
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	tr, err := trace.Load(data)
	if err != nil {
		return nil, &trace.LoadError{Path: "<stdin>", Err: err}
	}
	if tr.File == "" {
		tr.File = "-"
	}
	return tr, nil
}

func hasPipedInput() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
