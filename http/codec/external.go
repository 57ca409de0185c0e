package codec

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/indigo-web/tinyhttp/http"
	"github.com/indigo-web/tinyhttp/http/coding"
)

var _ Compressor = new(External)

// waitDelay bounds the wait for the output of a program after its context is done.
const waitDelay = time.Second

// External compresses bodies by piping them through executables. In-memory bodies are
// written into the program's stdin, while files are passed by path, so the program reads
// them by itself. The program's output is buffered entirely.
//
// The program is killed as soon as the passed context is done.
type External struct {
	programs Programs
	support  coding.Support
}

// NewExternal returns a compressor over the programs. Only the encodings reported by
// support are advertised, normally the ones a Prober located.
func NewExternal(programs Programs, support coding.Support) *External {
	return &External{
		programs: programs,
		support:  support,
	}
}

func (e *External) Supported() coding.Set {
	return e.support.Supported()
}

func (e *External) Compress(ctx context.Context, body http.Body, enc coding.Encoding) (http.Body, error) {
	program, found := e.programs[enc]
	if !found {
		if file, ok := body.(*http.File); ok {
			_ = file.Close()
		}

		return nil, unsupported(enc)
	}

	cmd := exec.CommandContext(ctx, program.Name, program.Args...)
	// children of a killed program may still hold the output pipes open
	cmd.WaitDelay = waitDelay

	switch b := body.(type) {
	case nil:
		cmd.Args = append(cmd.Args, "-")
		cmd.Stdin = bytes.NewReader(nil)
	case http.Bytes:
		cmd.Args = append(cmd.Args, "-")
		cmd.Stdin = bytes.NewReader(b)
	case *http.File:
		defer b.Close()
		// file names starting with a dash mustn't be taken for flags
		cmd.Args = append(cmd.Args, "--", b.Path())
	default:
		panic("BUG: unknown body variant")
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	if err := cmd.Run(); err != nil {
		return nil, &Error{
			Program: program.Name,
			Stderr:  stderr.Bytes(),
			Err:     err,
		}
	}

	return http.Bytes(stdout.Bytes()), nil
}
