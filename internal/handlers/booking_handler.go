package handlers

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

// BookingHandler serves the authenticated customer's own bookings.
type BookingHandler struct {
	create   *ucBooking.CreateBooking
	status   *ucBooking.ChangeStatus
	rating   *ucBooking.AttachRating
	get      *ucBooking.GetBooking
	listMine *ucBooking.ListCustomerBookings

	defaultBarberID uint
	loc             *time.Location
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	status *ucBooking.ChangeStatus,
	rating *ucBooking.AttachRating,
	get *ucBooking.GetBooking,
	listMine *ucBooking.ListCustomerBookings,
	defaultBarberID uint,
	loc *time.Location,
) *BookingHandler {
	return &BookingHandler{
		create:          create,
		status:          status,
		rating:          rating,
		get:             get,
		listMine:        listMine,
		defaultBarberID: defaultBarberID,
		loc:             loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	BarberID  uint   `json:"barber_id"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:mm
	Notes     string `json:"notes"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type RateBookingRequest struct {
	Stars   int    `json:"stars"`
	Comment string `json:"comment"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	barberID := req.BarberID
	if barberID == 0 {
		barberID = h.defaultBarberID
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		CustomerID: middleware.CustomerID(c),
		BarberID:   barberID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.Created(c, dto.ToBooking(b, h.loc))
}

// ======================================================
// READ
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	list, err := h.listMine.Execute(c.Request.Context(), middleware.CustomerID(c))
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}
	httpresp.List(c, dto.ToBookings(list, h.loc))
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	b, err := h.get.Execute(c.Request.Context(), ucBooking.GetBookingInput{
		BookingID:  id,
		CustomerID: middleware.CustomerID(c),
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}
	httpresp.OK(c, dto.ToBooking(b, h.loc))
}

// ======================================================
// LIFECYCLE
// ======================================================

// ConfirmPayment is the customer's "I paid" signal.
func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	b, err := h.status.Confirm(c.Request.Context(), id, middleware.CustomerID(c))
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}
	httpresp.OK(c, dto.ToBooking(b, h.loc))
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	// an empty body is a missing reason, not a malformed request
	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.status.Cancel(c.Request.Context(), id, middleware.CustomerID(c), req.Reason)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}
	httpresp.OK(c, dto.ToBooking(b, h.loc))
}

// ======================================================
// RATING
// ======================================================

func (h *BookingHandler) Rate(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req RateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	r, err := h.rating.Execute(c.Request.Context(), ucBooking.AttachRatingInput{
		BookingID:  id,
		CustomerID: middleware.CustomerID(c),
		Stars:      req.Stars,
		Comment:    req.Comment,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}
	httpresp.Created(c, r)
}
