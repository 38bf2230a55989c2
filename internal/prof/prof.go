// Package prof wires Go's CPU, heap and execution-trace profilers behind the
// CLI flags. A Session owns the output files for one run.
package prof

import (
	"errors"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Session holds the profilers activated for a single run. The zero-ish
// session returned for empty paths is safe to Stop.
type Session struct {
	cpuFile   *os.File
	traceFile *os.File
	heapPath  string
}

// Start activates the profilers whose output path is non-empty. On any error
// the already-started profilers are shut down.
func Start(cpuPath, heapPath, tracePath string) (*Session, error) {
	s := &Session{heapPath: heapPath}

	if cpuPath != "" {
		f, err := os.Create(cpuPath) // #nosec G304 -- path comes from the CLI
		if err != nil {
			return nil, err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, err
		}
		s.cpuFile = f
	}

	if tracePath != "" {
		f, err := os.Create(tracePath) // #nosec G304 -- path comes from the CLI
		if err != nil {
			s.Stop()
			return nil, err
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			s.Stop()
			return nil, err
		}
		s.traceFile = f
	}

	return s, nil
}

// Stop shuts down the active profilers and writes the heap profile if one was
// requested. Safe to call on a nil session.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	var errs []error

	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		errs = append(errs, s.cpuFile.Close())
		s.cpuFile = nil
	}
	if s.traceFile != nil {
		trace.Stop()
		errs = append(errs, s.traceFile.Close())
		s.traceFile = nil
	}
	if s.heapPath != "" {
		errs = append(errs, writeHeap(s.heapPath))
		s.heapPath = ""
	}
	return errors.Join(errs...)
}

func writeHeap(path string) error {
	f, err := os.Create(path) // #nosec G304 -- path comes from the CLI
	if err != nil {
		return err
	}
	runtime.GC() // снимок после сборки, без мусора
	if err := pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
