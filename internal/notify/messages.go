package notify

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"estateportal/internal/models"

	"github.com/google/uuid"
)

const (
	KindApplicationReceived = "application_received"
	KindApplicationAlert    = "application_alert"
	KindAccountCredentials  = "account_credentials"
)

var templates = template.Must(template.New("mail").Parse(`
{{define "application_received"}}Hello {{.FullName}},

Thank you for your interest. We have received your {{.Type}} application and our team will review it shortly.
We will contact you at {{.Email}} once a decision has been made.
{{end}}
{{define "application_alert"}}A new {{.Type}} application was submitted.

Name:  {{.FullName}}
Email: {{.Email}}
Phone: {{.Phone}}
{{- if .InvestmentAmount}}
Investment amount: {{.InvestmentAmount}}{{end}}
{{- if .AccreditedInvestor}}
Accredited investor: {{.AccreditedInvestor}}{{end}}
{{- if .InterestedUnits}}
Interested units: {{.InterestedUnits}}{{end}}
{{- if .PreQualified}}
Pre-qualified: {{.PreQualified}}{{end}}
{{- if .Message}}

{{.Message}}{{end}}
{{end}}
{{define "account_credentials"}}Hello {{.Name}},

Your application has been approved and a portal account was created for you.

Email: {{.Email}}
Temporary password: {{.Password}}

Please sign in and keep this password safe.
{{end}}
`))

// applicationView flattens optional fields for templates
type applicationView struct {
	Type               models.ApplicationType
	FullName           string
	Email              string
	Phone              string
	InvestmentAmount   string
	AccreditedInvestor string
	InterestedUnits    string
	PreQualified       string
	Message            string
}

func viewOf(app *models.Application) applicationView {
	v := applicationView{Type: app.Type, FullName: app.FullName, Email: app.Email, Phone: app.Phone}
	if app.InvestmentAmount != nil {
		v.InvestmentAmount = *app.InvestmentAmount
	}
	if app.AccreditedInvestor != nil {
		v.AccreditedInvestor = yesNo(*app.AccreditedInvestor)
	}
	if app.InterestedUnits != nil {
		v.InterestedUnits = *app.InterestedUnits
	}
	if app.PreQualified != nil {
		v.PreQualified = yesNo(*app.PreQualified)
	}
	if app.Message != nil {
		v.Message = *app.Message
	}
	return v
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

// Mailer builds the portal's emails and sends them through a Dispatcher
type Mailer struct {
	dispatcher   Dispatcher
	from         string
	managerEmail string
	now          func() time.Time
}

func NewMailer(dispatcher Dispatcher, from, managerEmail string) *Mailer {
	return &Mailer{dispatcher: dispatcher, from: from, managerEmail: managerEmail, now: time.Now}
}

func (m *Mailer) send(ctx context.Context, kind, to, subject string, data interface{}) error {
	body, err := render(kind, data)
	if err != nil {
		return err
	}
	return m.dispatcher.Send(ctx, &Message{
		ID:       uuid.New(),
		Kind:     kind,
		From:     m.from,
		To:       to,
		Subject:  subject,
		Body:     body,
		QueuedAt: m.now().UTC(),
	})
}

// ApplicationReceived confirms receipt to the applicant
func (m *Mailer) ApplicationReceived(ctx context.Context, app *models.Application) error {
	return m.send(ctx, KindApplicationReceived, app.Email, "We received your application", viewOf(app))
}

// ApplicationAlert tells the manager a new application arrived. No-op without a manager address.
func (m *Mailer) ApplicationAlert(ctx context.Context, app *models.Application) error {
	if m.managerEmail == "" {
		return nil
	}
	subject := fmt.Sprintf("New %s application: %s", app.Type, app.FullName)
	return m.send(ctx, KindApplicationAlert, m.managerEmail, subject, viewOf(app))
}

// AccountCredentials sends a provisioned user their temporary password
func (m *Mailer) AccountCredentials(ctx context.Context, user *models.User, password string) error {
	data := struct {
		Name, Email, Password string
	}{user.Name, user.Email, password}
	return m.send(ctx, KindAccountCredentials, user.Email, "Your portal account", data)
}
