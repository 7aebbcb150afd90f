package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

const (
	logDir      = ".sandsim"
	logFileName = "sandsim.log"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setupLogging routes live mode logs away from the terminal the UI owns:
// into logDir/logFileName with debug set, nowhere otherwise.
func setupLogging(debug bool, level string) (*log.Logger, io.Closer, error) {
	if !debug {
		return log.New(io.Discard), nopCloser{}, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(f, level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}
