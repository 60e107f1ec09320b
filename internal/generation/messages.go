package generation

import "github.com/dreamforge/assetgen/internal/domain"

// progressMessages holds the user-visible progress text per job state and
// locale. Backend-supplied failure messages take precedence over these.
var progressMessages = map[domain.JobStatus]map[string]string{
	domain.JobStatusPending: {
		"en": "Waiting for the renderer to pick up the job",
		"es": "Esperando a que el renderizador tome el trabajo",
	},
	domain.JobStatusGenerating: {
		"en": "Generating assets",
		"es": "Generando recursos",
	},
	domain.JobStatusCompleted: {
		"en": "Generation complete",
		"es": "Generación completada",
	},
	domain.JobStatusFailed: {
		"en": "Generation failed",
		"es": "La generación falló",
	},
	domain.JobStatusTimedOut: {
		"en": "Generation timed out",
		"es": "La generación superó el tiempo límite",
	},
	domain.JobStatusCancelled: {
		"en": "Generation cancelled",
		"es": "Generación cancelada",
	},
}

// MessageFor returns the localized progress message for a job state.
func MessageFor(status domain.JobStatus, locale string) string {
	byLocale, ok := progressMessages[status]
	if !ok {
		return ""
	}
	if msg, ok := byLocale[locale]; ok {
		return msg
	}
	return byLocale["en"]
}
