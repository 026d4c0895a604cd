// Package apierror normalizes backend failure payloads into a single typed,
// renderable error value. Every structured API failure reaching feature code
// is a *StructuredError; transport failures are never wrapped here.
package apierror

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StructuredError is the normalized API failure. Message is always a single
// renderable string; callers may show it in the UI as-is. Use errors.As to
// distinguish it from other error values.
type StructuredError struct {
	StatusCode int
	Kind       string
	Message    string
	Path       string
}

func (e *StructuredError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("api error %d (%s) at %s: %s", e.StatusCode, e.Kind, e.Path, e.Message)
	}
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Kind, e.Message)
}

// Messages accepts either a JSON string or an array of strings. Validation
// errors arrive as arrays of per-field messages; everything else is a plain
// string.
type Messages []string

func (m *Messages) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*m = Messages{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("message is neither string nor array: %w", err)
	}
	*m = Messages(many)
	return nil
}

// Join flattens the messages into the single renderable string. Field-level
// structure is discarded, which is acceptable for display purposes.
func (m Messages) Join() string {
	return strings.Join(m, ", ")
}

// Payload mirrors the backend failure body.
type Payload struct {
	StatusCode int      `json:"statusCode"`
	Kind       string   `json:"error"`
	Message    Messages `json:"message"`
	Path       string   `json:"path"`
}

// New builds a StructuredError from its parts, joining array messages with
// ", " in order. The message is localized when it matches the fixed table,
// otherwise passed through verbatim.
func New(statusCode int, kind string, messages []string, path string) *StructuredError {
	msg := Messages(messages).Join()
	return &StructuredError{
		StatusCode: statusCode,
		Kind:       kind,
		Message:    Localize(statusCode, msg),
		Path:       path,
	}
}

// FromPayload normalizes a decoded backend failure body.
func FromPayload(p Payload) *StructuredError {
	return New(p.StatusCode, p.Kind, p.Message, p.Path)
}

// translation is one entry of the fixed localization table: a status code and
// a case-insensitive substring of the untranslated source message.
type translation struct {
	statusCode int
	needle     string
	localized  string
}

var translations = []translation{
	{401, "invalid credentials", "Credenciales inválidas"},
	{401, "token expired", "Tu sesión ha expirado, inicia sesión de nuevo"},
	{403, "forbidden", "No tienes permisos para realizar esta acción"},
	{409, "already exists", "El usuario ya está registrado"},
	{500, "internal server error", "Error del servidor. Por favor, intenta de nuevo más tarde"},
}

// Localize maps a raw backend message to its fixed localized phrase when the
// (statusCode, substring) pair is known. Unrecognized messages are returned
// unchanged; passthrough is the default, not a failure path.
func Localize(statusCode int, message string) string {
	lower := strings.ToLower(message)
	for _, t := range translations {
		if t.statusCode == statusCode && strings.Contains(lower, t.needle) {
			return t.localized
		}
	}
	return message
}
