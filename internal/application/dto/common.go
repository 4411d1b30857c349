package dto

import (
	"encoding/json"
	"strings"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// ErrorMessage extrae un mensaje legible de un cuerpo de error del backend.
// Acepta {"message": …}, {"error": …}, una cadena JSON o texto plano.
// Devuelve "" si el cuerpo no trae nada aprovechable.
func ErrorMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}
	var obj struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
		if obj.Message != "" {
			return obj.Message
		}
		return obj.Error
	}
	var s string
	if err := json.Unmarshal([]byte(trimmed), &s); err == nil {
		return s
	}
	if strings.HasPrefix(trimmed, "<") {
		// Página HTML de error del servidor: no sirve como mensaje
		return ""
	}
	const maxLen = 300
	if len(trimmed) > maxLen {
		trimmed = trimmed[:maxLen]
	}
	return trimmed
}
