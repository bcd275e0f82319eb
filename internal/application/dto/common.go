package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"` // campo -> regla de validación que falló
}

// DateLayout formato de fechas en requests (YYYY-MM-DD).
const DateLayout = "2006-01-02"
