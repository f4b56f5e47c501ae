package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucCalendar "github.com/BruksfildServices01/barber-booking/internal/usecase/calendar"
)

type WorkingHoursHandler struct {
	get *ucCalendar.GetWorkingHours
	set *ucCalendar.SetWorkingHours
}

func NewWorkingHoursHandler(get *ucCalendar.GetWorkingHours, set *ucCalendar.SetWorkingHours) *WorkingHoursHandler {
	return &WorkingHoursHandler{get: get, set: set}
}

type WorkingDayConfig struct {
	Weekday   *int   `json:"weekday" binding:"required,min=0,max=6"`
	Active    bool   `json:"active"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	hours, err := h.get.Execute(c.Request.Context(), middleware.BarberID(c))
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}
	httpresp.List(c, hours)
}

// PUT replaces the whole week.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	days := make([]ucCalendar.WorkingDay, 0, len(req.Days))
	for _, d := range req.Days {
		days = append(days, ucCalendar.WorkingDay{
			Weekday:   *d.Weekday,
			Active:    d.Active,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		})
	}

	hours, err := h.set.Execute(c.Request.Context(), middleware.BarberID(c), days)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}
	httpresp.List(c, hours)
}
