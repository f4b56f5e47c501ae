package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucCalendar "github.com/BruksfildServices01/barber-booking/internal/usecase/calendar"
)

// ======================================================
// HANDLER
// ======================================================

type BlockedTimeHandler struct {
	add    *ucCalendar.AddBlockedTime
	list   *ucCalendar.ListBlockedTimes
	delete *ucCalendar.DeleteBlockedTime
}

func NewBlockedTimeHandler(
	add *ucCalendar.AddBlockedTime,
	list *ucCalendar.ListBlockedTimes,
	del *ucCalendar.DeleteBlockedTime,
) *BlockedTimeHandler {
	return &BlockedTimeHandler{add: add, list: list, delete: del}
}

type BlockedTimeRequest struct {
	Date      string `json:"date" binding:"required"`
	AllDay    bool   `json:"all_day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

// GET /api/admin/blocked-times?from=YYYY-MM-DD[&to=YYYY-MM-DD]
func (h *BlockedTimeHandler) List(c *gin.Context) {
	from := c.Query("from")
	if from == "" {
		httperr.BadRequest(c, "invalid_date", "Informe a data inicial.")
		return
	}

	list, err := h.list.Execute(c.Request.Context(), middleware.BarberID(c), from, c.Query("to"))
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *BlockedTimeHandler) Create(c *gin.Context) {
	var req BlockedTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	bt, err := h.add.Execute(c.Request.Context(), ucCalendar.BlockedTimeInput{
		BarberID:  middleware.BarberID(c),
		Date:      req.Date,
		AllDay:    req.AllDay,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}
	httpresp.Created(c, bt)
}

func (h *BlockedTimeHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.BarberID(c), id); err != nil {
		httperr.FromDomain(c, err)
		return
	}
	httpresp.NoContent(c)
}
