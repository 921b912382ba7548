package dispatch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/stemsi/educonnect-backend/internal/model"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendgridDispatcher e-mails the processed message straight to the guardian.
type SendgridDispatcher struct {
	key        string
	host       string
	client     *rest.Client
	from       *sgmail.Email
	subjPrefix string
}

func NewSendgridDispatcher(key, fromName, fromEmail, schoolName string, timeout time.Duration) *SendgridDispatcher {
	return &SendgridDispatcher{
		key:        key,
		host:       sendgridHost,
		client:     &rest.Client{HTTPClient: &http.Client{Timeout: timeout}},
		from:       sgmail.NewEmail(fromName, fromEmail),
		subjPrefix: "[" + schoolName + "] ",
	}
}

func (d *SendgridDispatcher) Channel() string {
	return ChannelSendgrid
}

// Dispatch sends one e-mail. Only a 2xx answer counts as delivered.
func (d *SendgridDispatcher) Dispatch(ctx context.Context, payload *model.DispatchPayload) (*Result, error) {
	if payload.Guardian.Email == "" {
		return nil, fmt.Errorf("guardian of student %s has no e-mail", payload.Student.ID)
	}

	req := sendgrid.GetRequest(d.key, sendgridEndpoint, d.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(d.prepare(payload))

	res, err := d.client.SendWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("send e-mail: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &RejectedError{StatusCode: res.StatusCode, Body: res.Body}
	}

	return &Result{StatusCode: res.StatusCode}, nil
}

func (d *SendgridDispatcher) prepare(payload *model.DispatchPayload) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = d.subjPrefix + "Comunicado sobre " + payload.Student.Name
	p.AddTos(sgmail.NewEmail(payload.Guardian.Name, payload.Guardian.Email))

	m := sgmail.NewV3Mail()
	m.SetFrom(d.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", payload.Message.Content))
	return m
}
