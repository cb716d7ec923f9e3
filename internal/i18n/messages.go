package i18n

// Message keys.
const (
	KeyContactSuccess         = "contact.success"
	KeyContactNameEmail       = "contact.error.name_email_required"
	KeyContactMessageRequired = "contact.error.message_required"
	KeyContactEmailFormat     = "contact.error.email_format"
	KeyContactNotConfigured   = "contact.error.not_configured"
	KeyContactSendFailed      = "contact.error.send_failed"
	KeyContactServerError     = "contact.error.server"
	KeyContactRateLimited     = "contact.error.rate_limited"

	KeySubjectQuote   = "email.subject.quote"
	KeySubjectMessage = "email.subject.message"
	KeyHeadingQuote   = "email.heading.quote"
	KeyHeadingMessage = "email.heading.message"
	KeyLabelName      = "email.label.name"
	KeyLabelEmail     = "email.label.email"
	KeyLabelMessage   = "email.label.message"
	KeyLabelQuote     = "email.label.quote"
	KeyLabelExtra     = "email.label.extra_message"

	KeySummaryTitle     = "summary.title"
	KeySummaryProject   = "summary.project_type"
	KeySummaryPackage   = "summary.package"
	KeySummaryDuration  = "summary.duration"
	KeySummaryIncluded  = "summary.included"
	KeySummaryAdditions = "summary.additional"
	KeySummaryEstimate  = "summary.estimate"
)

var messages = map[Locale]map[string]string{
	French: {
		KeyContactSuccess:         "Merci pour votre message ! Je vous réponds rapidement.",
		KeyContactNameEmail:       "Nom et email requis",
		KeyContactMessageRequired: "Message requis",
		KeyContactEmailFormat:     "Format d'email invalide",
		KeyContactNotConfigured:   "Service email non configuré",
		KeyContactSendFailed:      "Erreur lors de l'envoi",
		KeyContactServerError:     "Erreur serveur",
		KeyContactRateLimited:     "Trop de demandes, réessayez dans un instant",

		KeySubjectQuote:   "[Portfolio] Simulation de devis - %s",
		KeySubjectMessage: "[Portfolio] Nouveau message de %s",
		KeyHeadingQuote:   "Nouvelle simulation de devis",
		KeyHeadingMessage: "Nouveau message depuis le portfolio",
		KeyLabelName:      "Nom",
		KeyLabelEmail:     "Email",
		KeyLabelMessage:   "Message",
		KeyLabelQuote:     "Simulation",
		KeyLabelExtra:     "Message additionnel",

		KeySummaryTitle:     "=== SIMULATION DE DEVIS ===",
		KeySummaryProject:   "Type de projet",
		KeySummaryPackage:   "Formule",
		KeySummaryDuration:  "Durée estimée",
		KeySummaryIncluded:  "Inclus dans la formule",
		KeySummaryAdditions: "Options supplémentaires",
		KeySummaryEstimate:  "ESTIMATION: à partir de %s €",
	},
	English: {
		KeyContactSuccess:         "Thank you for your message! I'll get back to you soon.",
		KeyContactNameEmail:       "Name and email are required",
		KeyContactMessageRequired: "Message is required",
		KeyContactEmailFormat:     "Invalid email format",
		KeyContactNotConfigured:   "Email service is not configured",
		KeyContactSendFailed:      "Error while sending",
		KeyContactServerError:     "Server error",
		KeyContactRateLimited:     "Too many requests, please try again shortly",

		KeySubjectQuote:   "[Portfolio] Quote simulation - %s",
		KeySubjectMessage: "[Portfolio] New message from %s",
		KeyHeadingQuote:   "New quote simulation",
		KeyHeadingMessage: "New message from the portfolio",
		KeyLabelName:      "Name",
		KeyLabelEmail:     "Email",
		KeyLabelMessage:   "Message",
		KeyLabelQuote:     "Simulation",
		KeyLabelExtra:     "Additional message",

		KeySummaryTitle:     "=== QUOTE SIMULATION ===",
		KeySummaryProject:   "Project type",
		KeySummaryPackage:   "Package",
		KeySummaryDuration:  "Estimated duration",
		KeySummaryIncluded:  "Included in package",
		KeySummaryAdditions: "Additional options",
		KeySummaryEstimate:  "ESTIMATE: from %s €",
	},
}

// T looks up key for the locale, falling back to French and then to the key
// itself.
func T(l Locale, key string) string {
	if msg, ok := messages[l][key]; ok {
		return msg
	}
	if msg, ok := messages[Default][key]; ok {
		return msg
	}
	return key
}
