// Package mailer sends plain-text result emails over SMTP.
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/du0ngtrunghieu/ttd-attach/pkg/types"
)

var ErrNoRecipients = errors.New("no recipients")

// Deliverer hands a composed message to an SMTP server.
type Deliverer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTP implements the workflow mailer. The returned payload is the exact
// message that was delivered, in RFC 5322 form.
type SMTP struct {
	deliverer Deliverer
}

func NewSMTP(host string, port int, useTLS bool) (*SMTP, error) {
	policy := mail.NoTLS
	if useTLS {
		policy = mail.TLSMandatory
	}

	client, err := mail.NewClient(host, mail.WithPort(port), mail.WithTLSPolicy(policy))
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTP{deliverer: client}, nil
}

func NewWithDeliverer(d Deliverer) *SMTP {
	return &SMTP{deliverer: d}
}

func (s *SMTP) Send(ctx context.Context, m types.Message) ([]byte, error) {
	msg, err := Compose(m)
	if err != nil {
		return nil, err
	}

	if err := s.deliverer.DialAndSendWithContext(ctx, msg); err != nil {
		return nil, fmt.Errorf("send %q: %w", m.Subject, err)
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize %q: %w", m.Subject, err)
	}

	return buf.Bytes(), nil
}

// Compose builds a plain-text message.
func Compose(m types.Message) (*mail.Msg, error) {
	if len(m.To) == 0 {
		return nil, ErrNoRecipients
	}

	msg := mail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return nil, fmt.Errorf("from %q: %w", m.From, err)
	}
	if err := msg.To(m.To...); err != nil {
		return nil, fmt.Errorf("to %v: %w", m.To, err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.Body)

	return msg, nil
}
