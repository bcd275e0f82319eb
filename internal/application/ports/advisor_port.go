package ports

import "context"

// AdvisorService puerto de salida hacia el modelo de lenguaje que responde preguntas
// sobre el negocio. Cualquier adaptador (Gemini, Anthropic, mock) implementa esta interfaz.
type AdvisorService interface {
	// Provider nombre corto del proveedor ("gemini", "anthropic").
	Provider() string
	// Advise recibe el resumen del negocio en texto plano y la pregunta del usuario.
	// El contexto debe llevar un timeout.
	Advise(ctx context.Context, businessSummary, question string) (string, error)
}
