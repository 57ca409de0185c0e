package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/indigo-web/tinyhttp"
	"github.com/indigo-web/tinyhttp/config"
	"github.com/indigo-web/tinyhttp/internal/routes"
)

type options struct {
	configPath string
	port       uint
	dir        string
	logLevel   string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("tinyhttp", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "path to a JSON config file")
	fs.UintVar(&opts.port, "port", 0, "port to listen on (overrides the config)")
	fs.UintVar(&opts.port, "p", 0, "shorthand for --port")
	fs.StringVar(&opts.dir, "directory", "", "directory served by /files/ (overrides the config)")
	fs.StringVar(&opts.dir, "dir", "", "shorthand for --directory")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level (overrides the config)")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.port > 65535 {
		return opts, fmt.Errorf("invalid port: %d", opts.port)
	}

	return opts, nil
}

func loadConfig(opts options) (*config.Config, error) {
	cfg := config.Default()
	if len(opts.configPath) > 0 {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return nil, err
		}
	}

	if opts.port != 0 {
		host, _, err := net.SplitHostPort(cfg.NET.Addr)
		if err != nil {
			return nil, fmt.Errorf("config: NET.Addr: %w", err)
		}

		cfg.NET.Addr = net.JoinHostPort(host, strconv.FormatUint(uint64(opts.port), 10))
	}

	if len(opts.dir) > 0 {
		cfg.Files.Dir = opts.dir
	}

	if len(opts.logLevel) > 0 {
		cfg.Log.Level = opts.logLevel
	}

	return cfg, nil
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tinyhttp.New(cfg).Serve(ctx, routes.New(cfg.Files.Dir))
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "tinyhttp:", err)
		os.Exit(1)
	}
}
