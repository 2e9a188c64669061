package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"edenstone/internal/lead"
	"edenstone/internal/logger"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

var (
	ErrEmptyAPIKey = errors.New("sendgrid api key is empty")
	ErrEmptyFrom   = errors.New("from address is empty")
	ErrEmptyTo     = errors.New("to address is empty")
)

const (
	senderName  = "Eden Stone"
	leadSubject = "Новая заявка на обратный звонок"
)

type sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// Mailer emails the sales inbox about accepted callback requests.
type Mailer struct {
	from   string
	to     string
	client sender
}

func NewMailer(apiKey, from, to string) (*Mailer, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}
	if from == "" {
		return nil, ErrEmptyFrom
	}
	if to == "" {
		return nil, ErrEmptyTo
	}
	return &Mailer{
		from:   from,
		to:     to,
		client: sendgrid.NewSendClient(apiKey),
	}, nil
}

func (m *Mailer) NotifyLead(ctx context.Context, req lead.CallbackRequest) error {
	log := logger.FromCtx(ctx).With(zap.String("layer", "notify"))

	body := leadText(req)
	message := mail.NewSingleEmail(
		mail.NewEmail(senderName, m.from),
		leadSubject,
		mail.NewEmail("", m.to),
		body,
		fmt.Sprintf("<pre>%s</pre>", html.EscapeString(body)),
	)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		log.Error("sendgrid send error", zap.Error(err))
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if resp.StatusCode >= 400 {
		log.Error("sendgrid returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", resp.Body),
		)
		return fmt.Errorf("sendgrid send failed: status=%d", resp.StatusCode)
	}

	log.Info("lead notification sent", zap.Int("status", resp.StatusCode))
	return nil
}

func leadText(req lead.CallbackRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Телефон: %s\n", req.Phone)
	if req.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", req.Email)
	}
	if req.PrefWhatsApp {
		b.WriteString("Связаться через WhatsApp\n")
	}

	var places []string
	if req.Kitchen {
		places = append(places, "кухня")
	}
	if req.Bath {
		places = append(places, "ванная")
	}
	if len(places) > 0 {
		fmt.Fprintf(&b, "Помещение: %s\n", strings.Join(places, ", "))
	}
	if req.Extra != "" {
		fmt.Fprintf(&b, "Комментарий: %s\n", req.Extra)
	}
	return b.String()
}
