package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kc3dnx/id5100d/pkg/backend/id5100"
	"github.com/kc3dnx/id5100d/pkg/civ"
	"github.com/kc3dnx/id5100d/pkg/config"
	"github.com/kc3dnx/id5100d/pkg/logging"
	"github.com/kc3dnx/id5100d/pkg/storage"
)

// Daemon wires the radio backend to the web API.
type Daemon struct {
	config *config.Config
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Core components
	radio     *id5100.Rig
	audit     *storage.AuditLog
	webServer *http.Server

	startedAt time.Time
}

// NewDaemon creates a new daemon instance
func NewDaemon(cfg *config.Config) (*Daemon, error) {
	ctx, cancel := context.WithCancel(context.Background())

	daemon := &Daemon{
		config: cfg,
		ctx:    ctx,
		cancel: cancel,
	}

	tr, err := newTransactor(cfg)
	if err != nil {
		cancel()
		return nil, err
	}
	daemon.radio = id5100.New(tr, civ.NewDispatcher(tr))

	if cfg.Storage.AuditPath != "" {
		audit, err := storage.NewAuditLog(cfg.Storage.AuditPath, cfg.Storage.MaxEntries)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to open audit log: %w", err)
		}
		daemon.audit = audit
	}

	if err := daemon.setupWebServer(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup web server: %w", err)
	}

	return daemon, nil
}

// newTransactor selects the CI-V transport. Only the built-in simulator
// is available; serial support needs a transport implementation for the
// radio's data jack.
func newTransactor(cfg *config.Config) (civ.Transactor, error) {
	if cfg.Radio.Mock {
		return civ.NewMockTransactor(), nil
	}
	return nil, fmt.Errorf("serial transport not implemented, set radio.mock: true")
}

// Start starts the daemon
func (d *Daemon) Start() error {
	logging.Info("daemon", "Starting id5100d daemon...")

	d.startedAt = time.Now()

	// Probe the radio before serving requests
	if _, err := d.radio.GetFrequency(); err != nil {
		return fmt.Errorf("radio not responding: %w", err)
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		addr := fmt.Sprintf("%s:%d", d.config.Web.BindAddress, d.config.Web.Port)
		logging.Info("daemon", fmt.Sprintf("Starting web server on %s", addr))
		if err := d.webServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("daemon", fmt.Sprintf("Web server error: %v", err))
		}
	}()

	return nil
}

// Stop stops the daemon gracefully
func (d *Daemon) Stop() error {
	logging.Info("daemon", "Stopping daemon...")

	d.cancel()

	if d.webServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.webServer.Shutdown(ctx); err != nil {
			logging.Error("daemon", fmt.Sprintf("Web server shutdown error: %v", err))
		}
	}

	if d.audit != nil {
		if err := d.audit.Close(); err != nil {
			logging.Error("daemon", fmt.Sprintf("Audit log close error: %v", err))
		}
	}

	d.wg.Wait()

	logging.Info("daemon", "Daemon stopped")
	return nil
}

// setupWebServer initializes the web server and routes
func (d *Daemon) setupWebServer() error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// API routes
	api := router.Group("/api/v1")
	{
		api.GET("/status", d.handleGetStatus)
		api.GET("/capabilities", d.handleGetCapabilities)
		api.GET("/frequency", d.handleGetFrequency)
		api.POST("/frequency", d.handleSetFrequency)
		api.GET("/mode", d.handleGetMode)
		api.POST("/mode", d.handleSetMode)
		api.POST("/vfo", d.handleSetVFO)
		api.POST("/split", d.handleSetSplit)
		api.GET("/ptt", d.handleGetPTT)
		api.POST("/ptt", d.handleSetPTT)
		api.GET("/func/:name", d.handleGetFunc)
		api.POST("/func/:name", d.handleSetFunc)
		api.GET("/level/:name", d.handleGetLevel)
		api.POST("/level/:name", d.handleSetLevel)
		api.GET("/audit", d.handleGetAudit)
	}

	// WebSocket state stream
	router.GET("/ws", d.handleStateWebSocket)

	addr := fmt.Sprintf("%s:%d", d.config.Web.BindAddress, d.config.Web.Port)
	d.webServer = &http.Server{
		Addr:    addr,
		Handler: router,
	}

	return nil
}

// record writes an operation to the audit log when one is configured.
func (d *Daemon) record(op, detail string, opErr error) {
	if d.audit == nil {
		return
	}
	if err := d.audit.Record(op, detail, opErr); err != nil {
		logging.Warn("daemon", fmt.Sprintf("Audit record failed: %v", err))
	}
}
