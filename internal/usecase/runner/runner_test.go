package runner

import (
	"context"
	"errors"
	"testing"

	"gemini-agent/internal/application/port/input"
	"gemini-agent/internal/domain/entity"
	"gemini-agent/internal/infrastructure/logger"
	"gemini-agent/internal/usecase/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAgent struct {
	histories [][]entity.Event
	reply     string
	err       error
}

func (f *fakeAgent) Name() string { return "helpful_assistant" }

func (f *fakeAgent) Run(ctx context.Context, invocationID string, history []entity.Event, emit func(entity.Event) error) error {
	f.histories = append(f.histories, history)
	call := entity.ToolCall{ID: "c1", Name: "web_search", Arguments: `{"query":"q"}`}
	if err := emit(entity.Event{
		ID:           "call-" + invocationID,
		InvocationID: invocationID,
		Author:       f.Name(),
		Content:      &entity.Content{Parts: []entity.Part{{FunctionCall: &call}}},
	}); err != nil {
		return err
	}
	if f.err != nil {
		return f.err
	}
	return emit(entity.Event{
		ID:           "final-" + invocationID,
		InvocationID: invocationID,
		Author:       f.Name(),
		Content:      &entity.Content{Parts: []entity.Part{{Text: f.reply}}},
		Final:        true,
	})
}

type recordingPrinter struct {
	users   []string
	events  []entity.Event
	verbose []bool
}

func (p *recordingPrinter) PrintUser(message string) { p.users = append(p.users, message) }
func (p *recordingPrinter) PrintEvent(event entity.Event, verbose bool) {
	p.events = append(p.events, event)
	p.verbose = append(p.verbose, verbose)
}

func newTestRunner(t *testing.T, a *fakeAgent, opts ...Option) *InMemoryRunner {
	t.Helper()
	r, err := New(a, logger.NewNop(), opts...)
	require.NoError(t, err)
	return r
}

func TestInMemoryRunner_RunRequiresSession(t *testing.T) {
	r := newTestRunner(t, &fakeAgent{reply: "hi"})
	assert.Equal(t, "helpful_assistant", r.AppName())

	_, err := r.Run(context.Background(), "u", "s", "hello")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestInMemoryRunner_RunStoresEvents(t *testing.T) {
	a := &fakeAgent{reply: "Sunny"}
	r := newTestRunner(t, a, WithAppName("demo"))

	_, err := r.Sessions().Create("demo", "u", "s")
	require.NoError(t, err)

	events, err := r.Run(context.Background(), "u", "s", "weather?")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Sunny", ExtractText(events))

	require.Len(t, a.histories, 1)
	require.Len(t, a.histories[0], 1)
	assert.Equal(t, entity.AuthorUser, a.histories[0][0].Author)
	assert.Equal(t, "weather?", a.histories[0][0].Content.Text())

	sess, err := r.Sessions().Get("demo", "u", "s")
	require.NoError(t, err)
	assert.Len(t, sess.Events, 3)

	_, err = r.Run(context.Background(), "u", "s", "and tomorrow?")
	require.NoError(t, err)
	assert.Len(t, a.histories[1], 4)
}

func TestInMemoryRunner_RunKeepsPartialEventsOnFailure(t *testing.T) {
	a := &fakeAgent{err: errors.New("model down")}
	r := newTestRunner(t, a)

	_, err := r.Sessions().Create(r.AppName(), "u", "s")
	require.NoError(t, err)

	events, err := r.Run(context.Background(), "u", "s", "hello")
	assert.ErrorContains(t, err, "model down")
	assert.Len(t, events, 1)

	sess, err := r.Sessions().Get(r.AppName(), "u", "s")
	require.NoError(t, err)
	assert.Len(t, sess.Events, 2)
}

func TestInMemoryRunner_RunDebug(t *testing.T) {
	printer := &recordingPrinter{}
	a := &fakeAgent{reply: "Bengaluru is 24°C"}
	r := newTestRunner(t, a, WithPrinter(printer))

	events, err := r.RunDebug(context.Background(), "What's the weather in Bengaluru?")
	require.NoError(t, err)
	assert.Equal(t, "Bengaluru is 24°C", ExtractText(events))

	sess, err := r.Sessions().Get(r.AppName(), input.DebugUserID, input.DebugSessionID)
	require.NoError(t, err)
	assert.Len(t, sess.Events, 3)

	assert.Equal(t, []string{"What's the weather in Bengaluru?"}, printer.users)
	assert.Len(t, printer.events, 2)
	assert.Equal(t, []bool{false, false}, printer.verbose)

	_, err = r.RunDebug(context.Background(), "again", input.WithVerbose())
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, true, true}, printer.verbose)

	sess, err = r.Sessions().Get(r.AppName(), input.DebugUserID, input.DebugSessionID)
	require.NoError(t, err)
	assert.Len(t, sess.Events, 6)
}

func TestInMemoryRunner_RunDebugQuietAndCustomIDs(t *testing.T) {
	printer := &recordingPrinter{}
	r := newTestRunner(t, &fakeAgent{reply: "ok"}, WithPrinter(printer))

	_, err := r.RunDebug(context.Background(), "hi",
		input.WithQuiet(), input.WithUserID("alice"), input.WithSessionID("s-1"))
	require.NoError(t, err)

	assert.Empty(t, printer.users)
	assert.Empty(t, printer.events)

	_, err = r.Sessions().Get(r.AppName(), "alice", "s-1")
	assert.NoError(t, err)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, logger.NewNop())
	assert.Error(t, err)

	_, err = New(&fakeAgent{}, logger.NewNop(), WithAppName(""))
	assert.ErrorContains(t, err, "app name is required")
}
