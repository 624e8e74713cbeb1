// Package api exposes the scan over HTTP: a server-sent-events endpoint and a
// websocket mirror carrying the same typed event stream.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"RiskRadar/internal/domain/models"
	"RiskRadar/internal/service/ratelimit"
	"RiskRadar/internal/usecase"
	xhttp "RiskRadar/pkg/http"
	applogger "RiskRadar/pkg/logger"
)

// Scans are expensive upstream; allow a small burst per client and refill
// slowly.
const (
	scanBucketCapacity = 2
	scanRefillPerSec   = 1.0 / 30
)

// ScanHandler serves the scan endpoints.
type ScanHandler struct {
	pipeline *usecase.Pipeline
	limiter  *ratelimit.Limiter
	l        *applogger.Logger
	upgrader websocket.Upgrader
}

// NewScanHandler creates the handler.
func NewScanHandler(pipeline *usecase.Pipeline, limiter *ratelimit.Limiter, l *applogger.Logger) *ScanHandler {
	return &ScanHandler{
		pipeline: pipeline,
		limiter:  limiter,
		l:        l,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// RegisterRoutes registers the scan routes.
func (h *ScanHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/scan", h.Scan)
	e.GET("/api/scan/ws", h.ScanWS)
	e.GET("/healthz", h.Health)
}

// Health reports liveness.
func (h *ScanHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Scan runs a screening pass and streams its events as server-sent events.
// The connection stays open until the terminal result or error event.
func (h *ScanHandler) Scan(c echo.Context) error {
	req := new(models.ScanRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}
	if !h.limiter.Allow(c.RealIP()+":scan", scanBucketCapacity, scanRefillPerSec) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many scan requests")
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	flusher, _ := res.Writer.(http.Flusher)

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	for ev := range h.pipeline.Run(ctx, req.WithFilters()) {
		if err := writeSSE(res, ev); err != nil {
			if h.l != nil {
				h.l.Warn("scan stream client gone", applogger.Error(err))
			}
			return nil
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
	return nil
}

// ScanWS mirrors the scan stream over a websocket, one JSON frame per event.
func (h *ScanHandler) ScanWS(c echo.Context) error {
	req := new(models.ScanRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}
	if !h.limiter.Allow(c.RealIP()+":scan-ws", scanBucketCapacity, scanRefillPerSec) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many scan requests")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("websocket upgrade: %w", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	for ev := range h.pipeline.Run(ctx, req.WithFilters()) {
		frame := wsFrame{Type: ev.Type, Data: eventPayload(ev)}
		if err := conn.WriteJSON(frame); err != nil {
			if h.l != nil {
				h.l.Warn("scan websocket client gone", applogger.Error(err))
			}
			return nil
		}
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteMessage(websocket.CloseMessage, msg)
	return nil
}

type wsFrame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func eventPayload(ev models.StreamEvent) interface{} {
	switch ev.Type {
	case models.EventProgress:
		return ev.Progress
	case models.EventResult:
		return ev.Result
	default:
		return map[string]string{"error": ev.Err}
	}
}

func writeSSE(w io.Writer, ev models.StreamEvent) error {
	data, err := json.Marshal(eventPayload(ev))
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", ev.Type, err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
	return err
}
