package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// --------------------------------------------------
// Request helpers
// --------------------------------------------------

// idParam reads a positive numeric path parameter, answering 400 otherwise.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return uint(id), true
}

// optionalUintQuery returns def when the query parameter is absent.
func optionalUintQuery(c *gin.Context, name string, def uint) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Parâmetro inválido: "+name+".")
		return 0, false
	}
	return uint(v), true
}

func parseDateIn(loc *time.Location, date string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", date, loc)
}
