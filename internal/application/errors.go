package application

import (
	"context"
	"errors"
	"fmt"

	"pronostico/internal/ai"
	"pronostico/internal/models"
)

// ValidationError rejects a request before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

var ErrSheetsNotConfigured = errors.New("google sheets service is not configured")

// UserMessage turns any analysis error into the text shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var verr *ValidationError
	var apiErr *ai.APIError
	var perr *ai.ParseError
	var terr *TransitionError

	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fmt.Sprintf("La API de Gemini respondió con estado %d.", apiErr.Status)
	case errors.Is(err, ai.ErrEmptyResponse):
		return "El modelo no devolvió ninguna respuesta. Intenta nuevamente."
	case errors.As(err, &perr):
		return "El modelo generó una respuesta que no es JSON válido. Intenta nuevamente."
	case errors.As(err, &terr):
		if terr.From == models.StateLoading {
			return "Ya hay un análisis en curso. Espera a que termine."
		}
		return "Acción no disponible en este momento."
	case errors.Is(err, context.DeadlineExceeded):
		return "La solicitud tardó demasiado. Intenta nuevamente."
	case errors.Is(err, ErrSheetsNotConfigured):
		return "Google Sheets no está configurado."
	default:
		return "Error al procesar la solicitud con Gemini: " + err.Error()
	}
}
