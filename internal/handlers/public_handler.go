package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/catalog"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type PublicHandler struct {
	availability    *ucBooking.GetAvailability
	catalog         *catalog.Reader
	defaultBarberID uint
	loc             *time.Location
}

func NewPublicHandler(
	availability *ucBooking.GetAvailability,
	catalog *catalog.Reader,
	defaultBarberID uint,
	loc *time.Location,
) *PublicHandler {
	return &PublicHandler{
		availability:    availability,
		catalog:         catalog,
		defaultBarberID: defaultBarberID,
		loc:             loc,
	}
}

// ======================================================
// SERVICES
// ======================================================

func (h *PublicHandler) ListServices(c *gin.Context) {
	list, err := h.catalog.ListActive(c.Request.Context())
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}
	httpresp.List(c, dto.ToServices(list))
}

// ======================================================
// AVAILABILITY
// GET /api/public/availability?date=YYYY-MM-DD&service_id=N[&barber_id=N]
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	day, err := parseDateIn(h.loc, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	serviceID, ok := optionalUintQuery(c, "service_id", 0)
	if !ok {
		return
	}
	if serviceID == 0 {
		httperr.BadRequest(c, "invalid_service_id", "Informe o serviço.")
		return
	}

	barberID, ok := optionalUintQuery(c, "barber_id", h.defaultBarberID)
	if !ok {
		return
	}

	avail, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID:  barberID,
		ServiceID: serviceID,
		Date:      day,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.OK(c, avail)
}
