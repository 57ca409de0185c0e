package http

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/indigo-web/tinyhttp/config"
	"github.com/indigo-web/tinyhttp/http"
	"github.com/indigo-web/tinyhttp/http/codec"
	"github.com/indigo-web/tinyhttp/http/coding"
	"github.com/indigo-web/tinyhttp/http/headers"
	"github.com/indigo-web/tinyhttp/internal/transport"
	"github.com/indigo-web/tinyhttp/internal/transport/http1"
	"github.com/indigo-web/tinyhttp/router"
	"github.com/rs/zerolog"
)

// Server serves a single request per connection: read, route, compress, write, strictly
// in this order.
type Server struct {
	cfg        *config.Config
	router     router.Router
	negotiator coding.Negotiator
	compressor codec.Compressor
	logger     zerolog.Logger
}

func NewServer(
	cfg *config.Config, r router.Router, compressor codec.Compressor, logger zerolog.Logger,
) *Server {
	return &Server{
		cfg:        cfg,
		router:     r,
		negotiator: coding.NewNegotiator(compressor),
		compressor: compressor,
		logger:     logger,
	}
}

// HandleConn serves the connection. The context bounds the lifetime of codec programs
// spawned for the response. The connection isn't closed here.
func (s *Server) HandleConn(ctx context.Context, conn net.Conn) {
	logger := s.logger.With().Stringer("remote", conn.RemoteAddr()).Logger()
	trans := struct {
		*http1.Reader
		*http1.Writer
	}{http1.NewReader(conn, s.cfg), http1.NewWriter(conn, s.cfg)}

	err := s.Serve(logger.WithContext(ctx), trans)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		logger.Debug().Msg("connection closed before sending a request")
	default:
		logger.Warn().Err(err).Msg("connection failed")
	}
}

// Serve handles exactly one request of the transport. Malformed requests and write
// failures are returned as is, without attempting to respond.
func (s *Server) Serve(ctx context.Context, trans transport.Transport) error {
	logger := zerolog.Ctx(ctx)

	request, err := trans.Read()
	if err != nil {
		return err
	}

	logger.Debug().
		Stringer("method", request.Method).
		Bytes("target", request.Target).
		Msg("request")

	response := s.negotiate(request, notNil(request, s.router.OnRequest(request)))
	response, err = codec.Encode(ctx, s.compressor, response)
	if err != nil {
		logger.Error().Err(err).Msg("cannot compress the response body, responding with an error")
	}

	logger.Debug().
		Stringer("code", response.Code).
		Uint64("length", response.Body.Len()).
		Msg("response")

	if err = trans.Write(response); err != nil {
		if file, ok := response.Body.(*http.File); ok {
			_ = file.Close()
		}

		return err
	}

	return nil
}

// negotiate declares the content-coding of the response, unless it was already declared
// by the router.
func (s *Server) negotiate(request *http.Request, response *http.Response) *http.Response {
	if response.Headers.Has(headers.ContentEncoding) {
		return response
	}

	token := s.negotiator.Token(request.Headers)
	if len(token) == 0 {
		return response
	}

	negotiated := *response
	negotiated.Headers = response.Headers.Insert(headers.ContentEncoding, token)

	return &negotiated
}

func notNil(request *http.Request, response *http.Response) *http.Response {
	if response == nil {
		return http.Respond(request).Build()
	}

	if response.Body == nil {
		response.Body = http.Empty()
	}

	return response
}
