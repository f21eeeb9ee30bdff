package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/warden-bot/warden/automod"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	slogecho "github.com/samber/slog-echo"
)

// HTTP boundary of the daemon: receives fully-parsed message events from the
// gateway collaborator and hands them to the engine. Wire-format validation
// lives here; malformed input never reaches the engine.
type Server struct {
	logger *slog.Logger
	engine *automod.Engine
	echo   *echo.Echo
}

func NewServer(logger *slog.Logger, engine *automod.Engine) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(slogecho.New(logger))
	e.Use(middleware.Recover())

	srv := &Server{
		logger: logger,
		engine: engine,
		echo:   e,
	}

	e.GET("/_health", srv.handleHealthCheck)
	e.POST("/events/message", srv.handleMessageEvent)
	return srv
}

func (srv *Server) handleHealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (srv *Server) handleMessageEvent(c echo.Context) error {
	var evt automod.MessageEvent
	if err := c.Bind(&evt); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed message event")
	}
	if evt.MessageID == "" || evt.ChannelID == "" || evt.GuildID == "" || evt.Author.ID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message event missing required identifiers")
	}

	report, err := srv.engine.ProcessMessage(c.Request().Context(), &evt)
	if err != nil {
		// enforcement state is still reported; the error only means the
		// moderation channel did not hear about it
		srv.logger.Error("processing message event", "message", evt.MessageID, "err", err)
	}
	if report == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "event processing failed")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"outcome": report.Outcome,
		"steps":   len(report.Steps),
	})
}

func (srv *Server) Run(ctx context.Context, bind string) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.echo.Shutdown(shutdownCtx); err != nil {
			srv.logger.Error("ingest server shutdown", "err", err)
		}
	}()
	srv.logger.Info("starting ingest server", "bind", bind)
	if err := srv.echo.Start(bind); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (srv *Server) RunMetrics(listen string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(listen, mux)
}
