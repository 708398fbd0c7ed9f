//go:build !profile

package profiler

import (
	"errors"
	"io"
)

// No-op versions when the "profile" build tag is not set.

const Enabled = false

var ErrNoEvents = errors.New("profiler: no events")

func Init(capacity int) {}

func Start(name string) func() { return func() {} }

func Dump(w io.Writer) error { return ErrNoEvents }

func WriteFile(dir string) (string, error) { return "", ErrNoEvents }

func OpenProfilerGraph() (string, error) { return "", ErrNoEvents }
