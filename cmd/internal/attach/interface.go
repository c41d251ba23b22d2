package attach

import (
	"context"

	"github.com/du0ngtrunghieu/ttd-attach/pkg/types"
)

type Tracker interface {
	SearchTickets(ctx context.Context, query types.Query) ([]types.TicketRef, error)
	GetTicket(ctx context.Context, key string) (*types.TicketDetail, error)
	AddAttachment(ctx context.Context, key string, payload []byte, filename string) error
	AddComment(ctx context.Context, key string, body string) error
	UpdateField(ctx context.Context, key string, field string, value any) error
	Transition(ctx context.Context, key string, transitionID string) error
}

// Mailer sends a message and returns the sent message in wire form.
type Mailer interface {
	Send(ctx context.Context, msg types.Message) ([]byte, error)
}

type Sink interface {
	WriteStructured(path string, value any) error
}
