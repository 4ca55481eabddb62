package server

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/rgehrsitz/runway/internal/config"
)

// Server exposes the projection API over fasthttp
type Server struct {
	settings config.ServerSettings
	srv      *fasthttp.Server
}

// New builds a server for the given router and listener settings.
func New(settings config.ServerSettings, router http.Handler) *Server {
	return &Server{
		settings: settings,
		srv: &fasthttp.Server{
			Name:               "runway",
			Handler:            fasthttpadaptor.NewFastHTTPHandler(router),
			ReadTimeout:        settings.ReadTimeout,
			WriteTimeout:       settings.WriteTimeout,
			MaxRequestBodySize: maxBodyBytes,
		},
	}
}

// ListenAndServe serves until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("runway API listening on %s", s.settings.Addr)
		errCh <- s.srv.ListenAndServe(s.settings.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down runway API")
		if err := s.srv.Shutdown(); err != nil {
			return err
		}
		return nil
	}
}
