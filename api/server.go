package api

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	"github.com/mithran92/Agentic-AI-In-Supply-Chain/pkg/metrics"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Addr            string        `split_words:"true" default:":8000"`
	ShutdownTimeout time.Duration `split_words:"true" default:"5s"`
}

type Server struct {
	forecaster contractx.Forecaster
	recorder   *metrics.Recorder
	cfg        Config
}

func NewServer(forecaster contractx.Forecaster, recorder *metrics.Recorder, cfg Config) (*Server, error) {
	if forecaster == nil {
		return nil, errors.New("forecaster is required")
	}
	if recorder == nil {
		recorder = metrics.Default
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8000"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	return &Server{forecaster: forecaster, recorder: recorder, cfg: cfg}, nil
}

// Build registers the routes on a fresh hertz engine listening on addr.
func (s *Server) Build(addr string) *server.Hertz {
	h := server.Default(server.WithHostPorts(addr))
	h.GET("/health", s.Health)
	h.GET("/predict", s.Predict)
	h.GET("/metrics", s.Metrics)
	return h
}

// Run serves until ctx is cancelled, then shuts the engine down.
func (s *Server) Run(ctx context.Context) error {
	h := s.Build(s.cfg.Addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.Run()
	}()
	log.Info().Str("addr", s.cfg.Addr).Msg("http server listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return h.Shutdown(shutdownCtx)
}

func (s *Server) Health(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, utils.H{"status": "ok"})
}

func (s *Server) Predict(ctx context.Context, c *app.RequestContext) {
	demand, err := s.forecaster.PredictDemand(ctx)
	if err != nil {
		log.Error().Err(err).Msg("demand prediction failed")
		s.recorder.PredictServed("error")
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.recorder.PredictServed("ok")
	c.JSON(consts.StatusOK, map[string]int{"demand": demand})
}

func (s *Server) Metrics(ctx context.Context, c *app.RequestContext) {
	var buf bytes.Buffer
	if err := s.recorder.WritePrometheus(&buf); err != nil {
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	c.Data(consts.StatusOK, "text/plain; version=0.0.4; charset=utf-8", buf.Bytes())
}
