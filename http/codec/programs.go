package codec

import (
	"slices"

	"github.com/indigo-web/tinyhttp/http/coding"
)

// Program is an executable which writes the compressed form of its input to stdout.
type Program struct {
	Name string
	// Args switch the program into the compress-to-stdout mode. The input, either "-"
	// for stdin or a file path, is appended after them.
	Args []string
}

// Programs maps encodings onto the executables implementing them. Encodings without
// a program can't be applied by the External backend.
type Programs map[coding.Encoding]Program

// DefaultPrograms returns the programs commonly found on Unix-like systems. Neither
// compress nor deflate have a standalone executable, so they're absent.
func DefaultPrograms() Programs {
	return Programs{
		coding.Gzip: {Name: "gzip", Args: []string{"-q", "-c"}},
		coding.Br:   {Name: "brotli", Args: []string{"-c"}},
		coding.Zstd: {Name: "zstd", Args: []string{"-q", "-c"}},
	}
}

// Names returns the sorted unique names of the programs.
func (p Programs) Names() []string {
	names := make([]string, 0, len(p))
	for _, program := range p {
		names = append(names, program.Name)
	}

	slices.Sort(names)

	return slices.Compact(names)
}
