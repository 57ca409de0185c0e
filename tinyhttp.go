package tinyhttp

import (
	"context"
	"net"
	"os"

	"github.com/indigo-web/tinyhttp/config"
	"github.com/indigo-web/tinyhttp/http/codec"
	"github.com/indigo-web/tinyhttp/internal/server/http"
	"github.com/indigo-web/tinyhttp/router"
	"github.com/indigo-web/tinyhttp/transport"
	"github.com/rs/zerolog"
)

// App binds the configured address and serves every accepted connection with a router.
type App struct {
	cfg        *config.Config
	logger     zerolog.Logger
	compressor codec.Compressor
	onStart    func(addr net.Addr)
}

// New returns a new App instance. The logger is built out of cfg.Log and writes into
// stderr.
func New(cfg *config.Config) *App {
	logger, err := NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		logger.Warn().Err(err).Str("level", cfg.Log.Level).Msg("bad log level, falling back to info")
	}

	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

// Logger replaces the default logger.
func (a *App) Logger(logger zerolog.Logger) *App {
	a.logger = logger
	return a
}

// Compressor replaces the compressor chosen by cfg.Encoding.Backend.
func (a *App) Compressor(c codec.Compressor) *App {
	a.compressor = c
	return a
}

// NotifyOnStart calls the callback with the bound address right before connections start
// being accepted.
func (a *App) NotifyOnStart(cb func(addr net.Addr)) *App {
	a.onStart = cb
	return a
}

// Serve runs the application until the context is done or the accept loop fails. On
// cancellation, no new connections are accepted and the in-flight ones are waited for.
// Codec programs still running at that moment are killed.
func (a *App) Serve(ctx context.Context, r router.Router) error {
	compressor := a.compressor
	if compressor == nil {
		compressor = newCompressor(a.cfg.Encoding, a.logger)
	}

	// the probe runs once per process, so better do it before the first request comes
	a.logger.Info().
		Str("backend", string(a.cfg.Encoding.Backend)).
		Stringer("encodings", compressor.Supported()).
		Msg("compression is ready")

	server := http.NewServer(a.cfg, r, compressor, a.logger)
	tcp, err := transport.Listen(a.cfg.NET, func(conn net.Conn) {
		server.HandleConn(ctx, conn)
	})
	if err != nil {
		return err
	}

	a.logger.Info().Stringer("addr", tcp.Addr()).Msg("listening")
	if a.onStart != nil {
		a.onStart(tcp.Addr())
	}

	stop := context.AfterFunc(ctx, tcp.Stop)
	defer stop()

	err = tcp.Serve()
	a.logger.Info().Err(err).Msg("stopped")

	return err
}

func newCompressor(cfg config.Encoding, logger zerolog.Logger) codec.Compressor {
	if cfg.Backend == config.Native {
		return codec.NewNative()
	}

	programs := codec.DefaultPrograms()
	prober := codec.NewProber(programs, codec.Whereis(cfg.Lookup), logger)

	return codec.NewExternal(programs, prober)
}
