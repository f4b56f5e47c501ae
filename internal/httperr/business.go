package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

var messages = map[string]string{
	"invalid_request":        "Dados inválidos.",
	"invalid_duration":       "Duração do serviço inválida.",
	"invalid_step":           "Intervalo de horários inválido.",
	"invalid_date_or_time":   "Data ou hora inválida.",
	"past_slot":              "Horário já passou.",
	"too_soon":               "Horário muito próximo, escolha outro.",
	"too_far_ahead":          "Data além do limite de agendamento.",
	"service_inactive":       "Serviço indisponível.",
	"reason_required":        "Informe o motivo.",
	"invalid_stars":          "A avaliação deve ser de 1 a 5 estrelas.",
	"invalid_working_hours":  "Horário de funcionamento inválido.",
	"invalid_blocked_time":   "Bloqueio de agenda inválido.",
	"slot_taken":             "Horário já reservado.",
	"slot_unavailable":       "Horário indisponível.",
	"transient_conflict":     "Tente novamente.",
	"illegal_transition":     "Mudança de status não permitida.",
	"not_completed":          "O atendimento ainda não foi concluído.",
	"already_rated":          "Este atendimento já foi avaliado.",
	"booking_not_found":      "Agendamento não encontrado.",
	"service_not_found":      "Serviço não encontrado.",
	"blocked_time_not_found": "Bloqueio não encontrado.",
}

// StatusFor maps a domain error to its HTTP status.
func StatusFor(err error) int {
	switch booking.KindOf(err) {
	case booking.KindInput:
		return http.StatusBadRequest
	case booking.KindConflict:
		return http.StatusConflict
	case booking.KindState:
		return http.StatusUnprocessableEntity
	case booking.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// FromDomain writes err as a JSON error. Internal errors never leak details.
func FromDomain(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		Internal(c, "internal_error", "Erro interno.")
		return
	}

	code := booking.CodeOf(err)
	msg, ok := messages[code]
	if !ok {
		msg = err.Error()
	}
	Write(c, status, code, msg)
}
