package codec

import (
	"bytes"
	"context"
	"os/exec"
	"sync"

	"github.com/indigo-web/tinyhttp/http/coding"
	"github.com/rs/zerolog"
)

// LookupFunc locates the named programs. The output is expected to be in the format
// of whereis: one "name: [paths...]" line per program.
type LookupFunc func(ctx context.Context, names ...string) ([]byte, error)

// Whereis returns a LookupFunc running the whereis-compatible executable, restricted to
// binaries only.
func Whereis(executable string) LookupFunc {
	return func(ctx context.Context, names ...string) ([]byte, error) {
		args := append([]string{"-b"}, names...)
		return exec.CommandContext(ctx, executable, args...).Output()
	}
}

// Prober finds out which of the programs are installed. The lookup runs at most once,
// on the first call to Supported, and its result is never invalidated. Concurrent first
// callers wait for the same single lookup.
type Prober struct {
	programs Programs
	lookup   LookupFunc
	logger   zerolog.Logger
	probe    func() coding.Set
}

func NewProber(programs Programs, lookup LookupFunc, logger zerolog.Logger) *Prober {
	p := &Prober{
		programs: programs,
		lookup:   lookup,
		logger:   logger,
	}
	p.probe = sync.OnceValue(p.run)

	return p
}

// Supported returns the encodings whose program was located. A failed lookup results
// in an empty set.
func (p *Prober) Supported() coding.Set {
	return p.probe()
}

func (p *Prober) run() coding.Set {
	names := p.programs.Names()
	if len(names) == 0 {
		return 0
	}

	output, err := p.lookup(context.Background(), names...)
	if err != nil {
		p.logger.Warn().Err(err).Strs("programs", names).Msg("cannot locate codec programs, compression is disabled")
		return 0
	}

	supported := parseLookup(output, p.programs)
	p.logger.Info().Stringer("encodings", supported).Msg("located codec programs")

	return supported
}

var includePath = []byte("include")

// parseLookup marks a program as found if its line lists at least one path. Lines
// mentioning include directories are false positives of whereis, as it lists headers
// even with -b on some systems.
func parseLookup(output []byte, programs Programs) (supported coding.Set) {
	found := make(map[string]bool, len(programs))

	for _, line := range bytes.Split(output, []byte("\n")) {
		name, paths, ok := bytes.Cut(line, []byte(":"))
		if !ok {
			continue
		}

		paths = bytes.TrimSpace(paths)
		if len(paths) == 0 || bytes.Contains(paths, includePath) {
			continue
		}

		found[string(bytes.TrimSpace(name))] = true
	}

	for enc, program := range programs {
		if found[program.Name] {
			supported = supported.Add(enc)
		}
	}

	return supported
}
