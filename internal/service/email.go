package service

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/domain"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/i18n"
)

var emailTemplate = template.Must(template.New("contact").Parse(`<h2>{{.Heading}}</h2>
<p><strong>{{.NameLabel}}:</strong> {{.Name}}</p>
<p><strong>{{.EmailLabel}}:</strong> {{.Email}}</p>
{{- if .Summary}}
<hr style="border: 1px solid #eee; margin: 20px 0;" />
<h3>{{.QuoteLabel}}</h3>
<pre style="background: #f5f5f5; padding: 15px; border-radius: 4px; font-family: monospace; white-space: pre-wrap;">{{.Summary}}</pre>
{{- if .MessageLines}}
<hr style="border: 1px solid #eee; margin: 20px 0;" />
<h3>{{.ExtraLabel}}</h3>
<p>{{range $i, $line := .MessageLines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
{{- end}}
{{- else}}
<p><strong>{{.MessageLabel}}:</strong></p>
<p>{{range $i, $line := .MessageLines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
{{- end}}
`))

type emailView struct {
	Heading      string
	NameLabel    string
	EmailLabel   string
	MessageLabel string
	QuoteLabel   string
	ExtraLabel   string
	Name         string
	Email        string
	Summary      string
	MessageLines []string
}

// renderEmail builds the HTML and text bodies of a submission. User
// input is escaped by html/template; message newlines become <br>.
func renderEmail(s *domain.ContactSubmission, l i18n.Locale) (html, text string, err error) {
	view := emailView{
		Heading:      i18n.T(l, i18n.KeyHeadingMessage),
		NameLabel:    i18n.T(l, i18n.KeyLabelName),
		EmailLabel:   i18n.T(l, i18n.KeyLabelEmail),
		MessageLabel: i18n.T(l, i18n.KeyLabelMessage),
		QuoteLabel:   i18n.T(l, i18n.KeyLabelQuote),
		ExtraLabel:   i18n.T(l, i18n.KeyLabelExtra),
		Name:         s.Name,
		Email:        s.Email,
		Summary:      s.QuoteSummary,
	}
	if s.IsQuoteRequest() {
		view.Heading = i18n.T(l, i18n.KeyHeadingQuote)
	}
	if s.Message != "" {
		view.MessageLines = strings.Split(strings.ReplaceAll(s.Message, "\r\n", "\n"), "\n")
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, view); err != nil {
		return "", "", fmt.Errorf("render contact email: %w", err)
	}
	return buf.String(), renderText(view), nil
}

func renderText(v emailView) string {
	var sb strings.Builder
	sb.WriteString(v.Heading + "\n\n")
	fmt.Fprintf(&sb, "%s: %s\n", v.NameLabel, v.Name)
	fmt.Fprintf(&sb, "%s: %s\n", v.EmailLabel, v.Email)

	message := strings.Join(v.MessageLines, "\n")
	if v.Summary != "" {
		fmt.Fprintf(&sb, "\n%s\n\n%s\n", v.QuoteLabel, v.Summary)
		if message != "" {
			fmt.Fprintf(&sb, "\n%s\n\n%s\n", v.ExtraLabel, message)
		}
		return sb.String()
	}
	fmt.Fprintf(&sb, "\n%s:\n%s\n", v.MessageLabel, message)
	return sb.String()
}

func subjectFor(s *domain.ContactSubmission, l i18n.Locale) string {
	key := i18n.KeySubjectMessage
	if s.IsQuoteRequest() {
		key = i18n.KeySubjectQuote
	}
	return headerSafe.Replace(fmt.Sprintf(i18n.T(l, key), s.Name))
}

// headerSafe keeps user input from starting a new mail header.
var headerSafe = strings.NewReplacer("\r", " ", "\n", " ")
