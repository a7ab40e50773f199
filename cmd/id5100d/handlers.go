package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/kc3dnx/id5100d/pkg/logging"
	"github.com/kc3dnx/id5100d/pkg/rig"
)

// rigError maps backend errors onto HTTP status codes.
func rigError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, rig.ErrInvalidArgument) || errors.Is(err, rig.ErrNotSupported) {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// handleGetStatus returns a snapshot of the radio state
func (d *Daemon) handleGetStatus(c *gin.Context) {
	freq, err := d.radio.GetFrequency()
	if err != nil {
		rigError(c, err)
		return
	}

	mode, bandwidth, err := d.radio.GetMode()
	if err != nil {
		rigError(c, err)
		return
	}

	ptt, err := d.radio.GetPTT()
	if err != nil {
		rigError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"frequency":      freq,
		"mode":           mode.String(),
		"bandwidth":      bandwidth,
		"vfo":            d.radio.CurrentVFO().String(),
		"dual_watch":     d.radio.DualWatch(),
		"ptt":            ptt,
		"mock":           d.config.Radio.Mock,
		"version":        Version,
		"uptime_seconds": int64(time.Since(d.startedAt).Seconds()),
	})
}

// handleGetCapabilities returns the static radio description
func (d *Daemon) handleGetCapabilities(c *gin.Context) {
	c.JSON(http.StatusOK, d.radio.Capabilities())
}

// handleGetFrequency reads the current dial frequency
func (d *Daemon) handleGetFrequency(c *gin.Context) {
	freq, err := d.radio.GetFrequency()
	if err != nil {
		rigError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"hz": freq})
}

// handleSetFrequency sets the dial frequency
func (d *Daemon) handleSetFrequency(c *gin.Context) {
	var req struct {
		Hz int64 `json:"hz" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := d.radio.SetFrequency(req.Hz)
	d.record("set_frequency", fmt.Sprintf("%d Hz", req.Hz), err)
	if err != nil {
		rigError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"hz":     req.Hz,
	})
}

// handleGetMode reads the current operating mode
func (d *Daemon) handleGetMode(c *gin.Context) {
	mode, bandwidth, err := d.radio.GetMode()
	if err != nil {
		rigError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mode":      mode.String(),
		"bandwidth": bandwidth,
	})
}

// handleSetMode selects an operating mode
func (d *Daemon) handleSetMode(c *gin.Context) {
	var req struct {
		Mode      string `json:"mode" binding:"required"`
		Bandwidth int    `json:"bandwidth"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode, err := rig.ParseMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = d.radio.SetMode(mode, req.Bandwidth)
	d.record("set_mode", mode.String(), err)
	if err != nil {
		rigError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"mode":   mode.String(),
	})
}

// handleSetVFO selects the receiver the radio listens on
func (d *Daemon) handleSetVFO(c *gin.Context) {
	var req struct {
		VFO string `json:"vfo" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vfo, err := rig.ParseVFO(req.VFO)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = d.radio.SetVFO(vfo)
	d.record("set_vfo", vfo.String(), err)
	if err != nil {
		rigError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"vfo":    vfo.String(),
	})
}

// handleSetSplit configures split operation
func (d *Daemon) handleSetSplit(c *gin.Context) {
	var req struct {
		Enabled bool   `json:"enabled"`
		TXVFO   string `json:"tx_vfo" binding:"required"`
		RXVFO   string `json:"rx_vfo"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txVFO, err := rig.ParseVFO(req.TXVFO)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rxVFO := rig.VFOCurrent
	if req.RXVFO != "" {
		rxVFO, err = rig.ParseVFO(req.RXVFO)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	err = d.radio.SetSplitVFO(rxVFO, req.Enabled, txVFO)
	d.record("set_split", fmt.Sprintf("enabled=%v tx=%s", req.Enabled, txVFO), err)
	if err != nil {
		rigError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"tx_vfo": txVFO.String(),
	})
}

// handleGetPTT reads the transmitter state
func (d *Daemon) handleGetPTT(c *gin.Context) {
	on, err := d.radio.GetPTT()
	if err != nil {
		rigError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"on": on})
}

// handleSetPTT keys or unkeys the transmitter
func (d *Daemon) handleSetPTT(c *gin.Context) {
	var req struct {
		On bool `json:"on"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := d.radio.SetPTT(req.On)
	d.record("set_ptt", fmt.Sprintf("on=%v", req.On), err)
	if err != nil {
		rigError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"on":     req.On,
	})
}

// handleGetFunc reads a function toggle
func (d *Daemon) handleGetFunc(c *gin.Context) {
	fn, err := rig.ParseFunction(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	enabled, err := d.radio.GetFunc(rig.VFOCurrent, fn)
	if err != nil {
		rigError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"func":    fn.String(),
		"enabled": enabled,
	})
}

// handleSetFunc sets a function toggle
func (d *Daemon) handleSetFunc(c *gin.Context) {
	fn, err := rig.ParseFunction(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Enabled bool `json:"enabled"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = d.radio.SetFunc(rig.VFOCurrent, fn, req.Enabled)
	d.record("set_func", fmt.Sprintf("%s=%v", fn, req.Enabled), err)
	if err != nil {
		rigError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"func":    fn.String(),
		"enabled": req.Enabled,
	})
}

// handleGetLevel reads a level control
func (d *Daemon) handleGetLevel(c *gin.Context) {
	level, err := rig.ParseLevel(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	value, err := d.radio.GetLevel(rig.VFOCurrent, level)
	if err != nil {
		rigError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"level": level.String(),
		"value": value,
	})
}

// handleSetLevel sets a level control
func (d *Daemon) handleSetLevel(c *gin.Context) {
	level, err := rig.ParseLevel(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Value int `json:"value"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = d.radio.SetLevel(rig.VFOCurrent, level, req.Value)
	d.record("set_level", fmt.Sprintf("%s=%d", level, req.Value), err)
	if err != nil {
		rigError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"level":  level.String(),
		"value":  req.Value,
	})
}

// handleGetAudit returns recent audit log entries
func (d *Daemon) handleGetAudit(c *gin.Context) {
	if d.audit == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "audit log not configured"})
		return
	}

	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		limit = 50
	}

	entries, err := d.audit.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// handleStateWebSocket streams radio state snapshots to connected clients
func (d *Daemon) handleStateWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Warn("daemon", fmt.Sprintf("WebSocket upgrade failed: %v", err))
		return
	}
	defer conn.Close()

	logging.Info("daemon", "State WebSocket client connected")

	interval := time.Duration(d.config.Radio.PollInterval) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Drain client messages so pings and close frames are handled
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ticker.C:
			snapshot, err := d.stateSnapshot()
			if err != nil {
				logging.Warn("daemon", fmt.Sprintf("WebSocket poll failed: %v", err))
				continue
			}

			if err := conn.WriteJSON(snapshot); err != nil {
				logging.Info("daemon", "State WebSocket client disconnected")
				return
			}

		case <-d.ctx.Done():
			return
		}
	}
}

// stateSnapshot polls the radio for the fields streamed over /ws.
func (d *Daemon) stateSnapshot() (map[string]interface{}, error) {
	freq, err := d.radio.GetFrequency()
	if err != nil {
		return nil, err
	}

	mode, bandwidth, err := d.radio.GetMode()
	if err != nil {
		return nil, err
	}

	ptt, err := d.radio.GetPTT()
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"type":      "state",
		"timestamp": time.Now().Unix(),
		"frequency": freq,
		"mode":      mode.String(),
		"bandwidth": bandwidth,
		"ptt":       ptt,
	}, nil
}
