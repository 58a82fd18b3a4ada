// Package mailer sends transactional mail. Lifecycle code treats delivery as
// best-effort: failures are logged by the caller, never propagated to the
// user-facing operation that triggered the mail.
package mailer

import (
	"bytes"
	"html/template"
)

// CallToAction renders as a button under the message body.
type CallToAction struct {
	Text string
	Link string
}

// Notifier is the outbound-mail collaborator.
type Notifier interface {
	Send(to, subject, header, body string, cta *CallToAction) error
}

var bodyTemplate = template.Must(template.New("mail").Parse(`<html>
<body style="font-family: Helvetica, Arial, sans-serif; color: #333;">
  <div style="max-width: 560px; margin: 0 auto; padding: 24px;">
    <h2>{{.Header}}</h2>
    <p>{{.Body}}</p>
    {{if .CTA}}
    <p style="margin-top: 24px;">
      <a href="{{.CTA.Link}}" style="background: #2f6fed; color: #fff; padding: 12px 24px; border-radius: 4px; text-decoration: none;">{{.CTA.Text}}</a>
    </p>
    {{end}}
  </div>
</body>
</html>
`))

func renderBody(header, body string, cta *CallToAction) (string, error) {
	var buf bytes.Buffer
	err := bodyTemplate.Execute(&buf, struct {
		Header string
		Body   string
		CTA    *CallToAction
	}{header, body, cta})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
