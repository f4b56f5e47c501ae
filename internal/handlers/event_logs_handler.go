package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type EventLogReader interface {
	ListEventLogs(ctx context.Context, f models.EventLogFilter) ([]models.EventLog, int64, error)
}

type EventLogsHandler struct {
	store EventLogReader
	loc   *time.Location
}

func NewEventLogsHandler(store EventLogReader, loc *time.Location) *EventLogsHandler {
	return &EventLogsHandler{store: store, loc: loc}
}

func (h *EventLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	aggregateID, ok := optionalUintQuery(c, "aggregate_id", 0)
	if !ok {
		return
	}

	// --------------------------------------------------
	// Filtros (sempre restritos ao barbeiro)
	// --------------------------------------------------

	f := models.EventLogFilter{
		BarberID:    middleware.BarberID(c),
		Type:        c.Query("type"),
		Aggregate:   c.Query("aggregate"),
		AggregateID: aggregateID,
		Limit:       limit,
		Offset:      (page - 1) * limit,
	}

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := parseDateIn(h.loc, fromStr); err == nil {
			f.From = &from
		}
	}

	if toStr := c.Query("to"); toStr != "" {
		if to, err := parseDateIn(h.loc, toStr); err == nil {
			end := to.AddDate(0, 0, 1)
			f.To = &end
		}
	}

	logs, total, err := h.store.ListEventLogs(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "event_list_failed", "Erro ao listar eventos.")
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
