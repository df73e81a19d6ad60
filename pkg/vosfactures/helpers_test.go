package vosfactures_test

import (
	"context"
	"errors"
	"sync"

	"github.com/briceparent/vosfactures/pkg/vosfactures"
)

const (
	verbFetch   = "fetch"
	verbCreate  = "create"
	verbReplace = "replace"
	verbRemove  = "remove"
)

var errTransportDown = errors.New("transport down")

type recordedCall struct {
	Verb string
	Call *vosfactures.Call
}

// fakeTransport records every call and answers with canned bodies per verb.
type fakeTransport struct {
	calls     []recordedCall
	responses map[string]vosfactures.Body
	err       error
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{responses: map[string]vosfactures.Body{}}
}

func (f *fakeTransport) respond(verb, body string) *fakeTransport {
	f.responses[verb] = vosfactures.Body(body)

	return f
}

func (f *fakeTransport) do(verb string, call *vosfactures.Call) (vosfactures.Body, error) {
	f.calls = append(f.calls, recordedCall{Verb: verb, Call: call})
	if f.err != nil {
		return nil, f.err
	}

	return f.responses[verb], nil
}

func (f *fakeTransport) Fetch(_ context.Context, call *vosfactures.Call) (vosfactures.Body, error) {
	return f.do(verbFetch, call)
}

func (f *fakeTransport) Create(_ context.Context, call *vosfactures.Call) (vosfactures.Body, error) {
	return f.do(verbCreate, call)
}

func (f *fakeTransport) Replace(_ context.Context, call *vosfactures.Call) (vosfactures.Body, error) {
	return f.do(verbReplace, call)
}

func (f *fakeTransport) Remove(_ context.Context, call *vosfactures.Call) (vosfactures.Body, error) {
	return f.do(verbRemove, call)
}

func (f *fakeTransport) last() recordedCall {
	return f.calls[len(f.calls)-1]
}

type fakePublisher struct {
	events []*vosfactures.Event
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event *vosfactures.Event) error {
	p.events = append(p.events, event)

	return p.err
}

type logEntry struct {
	Level  string
	Msg    string
	Fields map[string]interface{}
}

type memoryLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *memoryLogger) add(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, logEntry{Level: level, Msg: msg, Fields: fields})
}

func (l *memoryLogger) Debug(msg string, fields map[string]interface{}) { l.add("debug", msg, fields) }
func (l *memoryLogger) Info(msg string, fields map[string]interface{})  { l.add("info", msg, fields) }
func (l *memoryLogger) Warn(msg string, fields map[string]interface{})  { l.add("warn", msg, fields) }
func (l *memoryLogger) Error(msg string, fields map[string]interface{}) { l.add("error", msg, fields) }

func (l *memoryLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0

	for _, entry := range l.entries {
		if entry.Level == level {
			n++
		}
	}

	return n
}

const clientResponse = `{
	"id": 6346560,
	"name": "Acme",
	"company": true,
	"tax_no": "FR123",
	"shortcut": "ACME",
	"deleted": false,
	"created_at": "2026-01-05T10:00:00.000+01:00",
	"updated_at": "2026-01-05T10:00:00.000+01:00",
	"city": null,
	"post_code": null,
	"kind": "buyer"
}`
