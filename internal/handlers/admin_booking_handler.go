package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

// AdminBookingHandler serves the barber's day sheet and status changes.
type AdminBookingHandler struct {
	listByDate  *ucBooking.ListBookingsByDate
	listByMonth *ucBooking.ListBookingsByMonth
	get         *ucBooking.GetBooking
	status      *ucBooking.ChangeStatus
	loc         *time.Location
}

func NewAdminBookingHandler(
	listByDate *ucBooking.ListBookingsByDate,
	listByMonth *ucBooking.ListBookingsByMonth,
	get *ucBooking.GetBooking,
	status *ucBooking.ChangeStatus,
	loc *time.Location,
) *AdminBookingHandler {
	return &AdminBookingHandler{
		listByDate:  listByDate,
		listByMonth: listByMonth,
		get:         get,
		status:      status,
		loc:         loc,
	}
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// GET /api/admin/bookings?date=YYYY-MM-DD
func (h *AdminBookingHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().In(h.loc).Format(domain.DateLayout)
	}

	list, err := h.listByDate.Execute(c.Request.Context(), middleware.BarberID(c), date)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}
	httpresp.List(c, dto.ToBookingList(list, h.loc))
}

func (h *AdminBookingHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	b, err := h.get.Execute(c.Request.Context(), ucBooking.GetBookingInput{
		BookingID: id,
		BarberID:  middleware.BarberID(c),
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}
	httpresp.OK(c, dto.ToBooking(b, h.loc))
}

// PATCH /api/admin/bookings/:id/status
func (h *AdminBookingHandler) ChangeStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.status.Execute(c.Request.Context(), ucBooking.ChangeStatusInput{
		BookingID: id,
		To:        domain.Status(req.Status),
		Reason:    req.Reason,
		BarberID:  middleware.BarberID(c),
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}
	httpresp.OK(c, dto.ToBooking(b, h.loc))
}

// GET /api/admin/bookings/month?year=YYYY&month=M
func (h *AdminBookingHandler) ListByMonth(c *gin.Context) {
	now := time.Now().In(h.loc)

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	list, err := h.listByMonth.Execute(c.Request.Context(), middleware.BarberID(c), year, month)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}
	httpresp.List(c, dto.ToBookingList(list, h.loc))
}
