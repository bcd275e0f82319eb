package dto

// AssistantRequest body para POST /api/assistant.
type AssistantRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
}

// AssistantResponse respuesta libre del modelo.
type AssistantResponse struct {
	Provider string `json:"provider"`
	Answer   string `json:"answer"`
}
