package attach

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/du0ngtrunghieu/ttd-attach/pkg/types"
)

var errBoom = errors.New("boom")

type call struct {
	Op    string
	Key   string
	Arg   string
	Value any
}

// fakeTracker records every call and serves canned search and ticket data.
type fakeTracker struct {
	parents    []types.TicketRef
	parentErr  error
	children   map[string][]types.TicketRef
	childErr   map[string]error
	details    map[string]*types.TicketDetail
	getErr     map[string]error
	panicOn    map[string]bool
	attachErr  error
	commentErr error
	updateErr  error
	transErr   error
	calls      []call
	searches   []types.Query
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{
		children: map[string][]types.TicketRef{},
		childErr: map[string]error{},
		details:  map[string]*types.TicketDetail{},
		getErr:   map[string]error{},
		panicOn:  map[string]bool{},
	}
}

func (f *fakeTracker) SearchTickets(_ context.Context, q types.Query) ([]types.TicketRef, error) {
	f.searches = append(f.searches, q)
	if q.ParentKey == "" {
		return f.parents, f.parentErr
	}
	return f.children[q.ParentKey], f.childErr[q.ParentKey]
}

func (f *fakeTracker) GetTicket(_ context.Context, key string) (*types.TicketDetail, error) {
	f.calls = append(f.calls, call{Op: "get", Key: key})
	if f.panicOn[key] {
		panic(fmt.Sprintf("tracker exploded on %s", key))
	}
	if err := f.getErr[key]; err != nil {
		return nil, err
	}
	d, ok := f.details[key]
	if !ok {
		return &types.TicketDetail{Key: key}, nil
	}
	return d, nil
}

func (f *fakeTracker) AddAttachment(_ context.Context, key string, payload []byte, filename string) error {
	f.calls = append(f.calls, call{Op: "attach", Key: key, Arg: filename, Value: string(payload)})
	return f.attachErr
}

func (f *fakeTracker) AddComment(_ context.Context, key string, body string) error {
	f.calls = append(f.calls, call{Op: "comment", Key: key, Arg: body})
	return f.commentErr
}

func (f *fakeTracker) UpdateField(_ context.Context, key string, field string, value any) error {
	f.calls = append(f.calls, call{Op: "update", Key: key, Arg: field, Value: value})
	return f.updateErr
}

func (f *fakeTracker) Transition(_ context.Context, key string, transitionID string) error {
	f.calls = append(f.calls, call{Op: "transition", Key: key, Arg: transitionID})
	return f.transErr
}

func (f *fakeTracker) ops(key string) []string {
	out := []string{}
	for _, c := range f.calls {
		if c.Key == key {
			out = append(out, c.Op)
		}
	}
	return out
}

type fakeMailer struct {
	sent []types.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg types.Message) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.sent = append(m.sent, msg)
	return []byte("Subject: " + msg.Subject + "\r\n\r\n" + msg.Body), nil
}

type fakeSink struct {
	writes []types.RunResult
	paths  []string
	err    error
}

func (s *fakeSink) WriteStructured(path string, value any) error {
	s.paths = append(s.paths, path)
	if rr, ok := value.(types.RunResult); ok {
		copied := types.RunResult{}
		for k, v := range rr {
			copied[k] = v
		}
		s.writes = append(s.writes, copied)
	}
	return s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
