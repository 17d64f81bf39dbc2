package cmd

import (
	"fmt"
	"net/http"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rm-hull/edge-blur/internal"
	"github.com/rm-hull/edge-blur/internal/config"
	"github.com/sirupsen/logrus"
	healthcheck "github.com/tavsec/gin-healthcheck"
	"github.com/tavsec/gin-healthcheck/checks"
	hc_config "github.com/tavsec/gin-healthcheck/config"
)

func ApiServer(port int, debug bool, cfg config.Config, logger *logrus.Logger) error {
	internal.ShowVersion(logger)
	internal.EnvironmentVars(logger)

	processor, err := internal.NewProcessor(cfg, logger)
	if err != nil {
		return err
	}

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	prometheus := ginprom.New(
		ginprom.Engine(r),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/healthz"),
	)

	r.Use(
		gin.Recovery(),
		gin.LoggerWithWriter(logger.Writer(), "/healthz", "/metrics"),
		prometheus.Instrument(),
	)

	if debug {
		logger.Warn("pprof endpoints are enabled and exposed. Do not run with this flag in production.")
		pprof.Register(r)
	}

	err = healthcheck.New(r, hc_config.DefaultConfig(), []checks.Check{})
	if err != nil {
		return fmt.Errorf("failed to initialize healthcheck: %w", err)
	}

	internal.NewHandler(processor, logger).Register(r)

	addr := fmt.Sprintf(":%d", port)
	logger.WithField("port", port).Info("Starting HTTP API Server")
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP API Server failed to start on port %d: %w", port, err)
	}
	return nil
}
