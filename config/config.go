package config

import (
	"fmt"
	"math"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
)

type (
	HeadersSpace struct {
		Default, Maximal int
	}

	Backend string
)

const (
	// External pipes bodies through executables located at runtime.
	External Backend = "external"
	// Native compresses bodies in-process.
	Native Backend = "native"
)

type (
	NET struct {
		// Addr is the TCP address to listen on.
		Addr string
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket.
		ReadBufferSize int
		// WriteBufferSize is a size of buffer accumulating the response before it's
		// flushed into the socket.
		WriteBufferSize int
		// FileBufferSize bounds the chunks file bodies are streamed by, so serving a file
		// never takes memory proportional to its size.
		FileBufferSize int
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop. Defaults to 5 seconds.
		AcceptLoopInterruptPeriod time.Duration
	}

	Headers struct {
		// Space limits the amount of memory occupied by the request line and headers.
		// The maximal boundary is effectively disabled by default.
		Space HeadersSpace
		// Prealloc is the expected number of request headers.
		Prealloc int
	}

	Body struct {
		// MaxSize describes the maximal size of a request body that can be processed.
		// Requests declaring a longer body are rejected before any of it is read.
		MaxSize uint64
	}

	Files struct {
		// Dir is the directory the /files/ route serves from and uploads into.
		Dir string
	}

	Encoding struct {
		// Backend selects how response bodies are compressed.
		Backend Backend
		// Lookup is the whereis-compatible executable used to locate codec programs. Used
		// only by the External backend.
		Lookup string
	}

	Log struct {
		// Level is one of zerolog levels: trace, debug, info, warn, error, fatal, panic
		// or disabled.
		Level string
		// Pretty enables human-friendly console output instead of JSON lines.
		Pretty bool `test:"nullable"`
	}
)

// Config holds settings used across the server, mainly limitations and pre-allocations.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	NET      NET
	Headers  Headers
	Body     Body
	Files    Files
	Encoding Encoding
	Log      Log
}

// Default returns default config.
func Default() *Config {
	return &Config{
		NET: NET{
			Addr:                      "0.0.0.0:4221",
			ReadBufferSize:            4 * 1024, // 4kb is more than enough for ordinary requests.
			WriteBufferSize:           4 * 1024,
			FileBufferSize:            32 * 1024,
			AcceptLoopInterruptPeriod: 5 * time.Second,
		},
		Headers: Headers{
			Space: HeadersSpace{
				Default: 1 * 1024, // 1kb for headers must be fairly enough in most cases.
				Maximal: math.MaxInt32,
			},
			Prealloc: 10,
		},
		Body: Body{
			MaxSize: 512 * 1024 * 1024, // 512 megabytes
		},
		Files: Files{
			Dir: "/tmp",
		},
		Encoding: Encoding{
			Backend: External,
			Lookup:  "whereis",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load overlays the JSON file at path on top of the defaults. Fields missing in the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err = jsoniter.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch c.Encoding.Backend {
	case External, Native:
	default:
		return fmt.Errorf("unknown encoding backend: %q", c.Encoding.Backend)
	}

	if c.Headers.Space.Default > c.Headers.Space.Maximal {
		return fmt.Errorf("headers space: default (%d) exceeds maximal (%d)",
			c.Headers.Space.Default, c.Headers.Space.Maximal)
	}

	return nil
}
