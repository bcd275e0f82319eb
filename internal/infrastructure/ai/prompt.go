package ai

import (
	"fmt"
	"strings"
)

// advisorSystemPrompt define el rol del modelo. La respuesta es texto libre, sin markdown.
const advisorSystemPrompt = `Eres un asesor financiero de pequeños comercios minoristas.
Recibirás el resumen del negocio (ventas, cobros pendientes, stock bajo, gastos y proveedores) y una pregunta del dueño.
Reglas:
- Responde en el idioma de la pregunta, en texto plano y sin markdown.
- Usa solo las cifras del resumen; si falta un dato, dilo.
- Máximo 6 oraciones, con acciones concretas (a quién cobrar, qué reponer y con qué proveedor, qué gasto revisar).`

const maxResponseBytes = 64 * 1024

func userPrompt(businessSummary, question string) string {
	return fmt.Sprintf("Resumen del negocio:\n%s\nPregunta: %s", strings.TrimSpace(businessSummary), question)
}

// cleanAnswer quita bloques de código markdown (```texto```) si el modelo los añade.
func cleanAnswer(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		after := text[3:]
		// Quitar la etiqueta de lenguaje de la línea de apertura
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	return text
}
