package ai

import (
	"fmt"

	"github.com/jhoicas/bizflow-api/internal/application/ports"
	"github.com/jhoicas/bizflow-api/pkg/config"
)

// NewAdvisor elige el adaptador según AI_PROVIDER. Vacío devuelve nil (asistente deshabilitado).
func NewAdvisor(cfg config.AIConfig) (ports.AdvisorService, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "gemini":
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	case "anthropic":
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	default:
		return nil, fmt.Errorf("AI_PROVIDER inválido: %q (gemini | anthropic)", cfg.Provider)
	}
}
