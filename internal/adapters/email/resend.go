package email

import (
	"context"
	"fmt"
	"html"

	"github.com/resend/resend-go/v2"

	"github.com/atlaslogistics/shipment-tracking/internal/ports"
)

// ResendSender delivers shipment status emails through the Resend API.
type ResendSender struct {
	client        *resend.Client
	from          string
	trackingURLFn func(trackingNumber string) string
}

func NewResendSender(apiKey, from, publicBaseURL string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		trackingURLFn: func(trackingNumber string) string {
			return fmt.Sprintf("%s/track/%s", publicBaseURL, trackingNumber)
		},
	}
}

func (s *ResendSender) SendStatusUpdate(ctx context.Context, n ports.StatusNotification) error {
	subject := fmt.Sprintf("Shipment Update: %s is %s", n.TrackingNumber, n.Status)
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{n.To},
		Subject: subject,
		Html:    s.renderHTML(n),
	})
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}

func (s *ResendSender) renderHTML(n ports.StatusNotification) string {
	description := ""
	if n.Description != "" {
		description = fmt.Sprintf("<p>%s</p>", html.EscapeString(n.Description))
	}
	return fmt.Sprintf(
		`<h2>Shipment %s</h2>
<p>Your shipment is now <strong>%s</strong> at %s.</p>
%s
<p><a href="%s">Track your shipment</a></p>`,
		html.EscapeString(n.TrackingNumber),
		html.EscapeString(string(n.Status)),
		html.EscapeString(n.Location),
		description,
		s.trackingURLFn(n.TrackingNumber),
	)
}
