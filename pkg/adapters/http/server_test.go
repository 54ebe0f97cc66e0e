package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/qso/internal/runtime"
	"github.com/aretw0/qso/pkg/domain"
	"github.com/aretw0/qso/pkg/ft8"
	"github.com/aretw0/qso/pkg/ports"
	"github.com/aretw0/qso/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_Contract(t *testing.T) {
	ports.RunMessageSourceContract(t, func(t *testing.T, msgs []string) ports.MessageSource {
		q := NewQueue(len(msgs) + 1)
		for _, m := range msgs {
			require.NoError(t, q.Submit(context.Background(), m))
		}
		q.Close()
		return q
	})
}

func TestQueue_SubmitAfterClose(t *testing.T) {
	q := NewQueue(1)
	q.Close()
	q.Close()

	assert.True(t, q.Closed())
	assert.ErrorIs(t, q.Submit(context.Background(), "CQ"), ErrQueueClosed)
}

func TestQueue_NextHonorsContext(t *testing.T) {
	q := NewQueue(1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := q.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueue_CloseReleasesBlockedSubmitter(t *testing.T) {
	q := NewQueue(1)
	require.NoError(t, q.Submit(context.Background(), "CQ BI4VNM PM01"))

	submitted := make(chan error, 1)
	go func() {
		submitted <- q.Submit(context.Background(), "BI4VNM DU3TW PK05")
	}()

	closed := make(chan struct{})
	go func() {
		q.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close blocked behind a submitter waiting on a full queue")
	}

	select {
	case err := <-submitted:
		assert.ErrorIs(t, err, ErrQueueClosed)
	case <-time.After(time.Second):
		t.Fatal("blocked submitter was not released by Close")
	}

	assert.True(t, q.Closed())

	// Messages buffered before Close are still delivered, then the queue runs dry.
	msg, err := q.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "CQ BI4VNM PM01", msg)

	_, err = q.Next(context.Background())
	assert.ErrorIs(t, err, domain.ErrEndOfData)
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer_Conversation(t *testing.T) {
	p := ft8.MustPounce()
	engine := runtime.NewEngine(p.Graph, p.Table)

	queue := NewQueue(16)
	tracker := NewTracker("qso-http", engine.CurrentPhase())
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "qso_test_total", Help: "test"}))

	h := NewHandler(&Server{
		Queue:    queue,
		Tracker:  tracker,
		Graph:    "graph TD\n",
		Gatherer: reg,
	})

	// Submit the whole exchange before the loop starts; the queue buffers it.
	w := post(t, h, "/messages", SubmitRequest{Messages: ft8.Messages(ft8.NoisyQSO)})
	require.Equal(t, http.StatusAccepted, w.Code)

	var sub SubmitResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sub))
	assert.Equal(t, 8, sub.Accepted)

	w = post(t, h, "/messages", SubmitRequest{Message: "  bi4vnm du3tw 73 "})
	require.Equal(t, http.StatusAccepted, w.Code)

	w = post(t, h, "/close", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	res, err := runner.New(runner.WithHandler(tracker), runner.WithConversationID("qso-http")).
		Run(context.Background(), engine, queue)
	require.NoError(t, err)
	assert.Equal(t, runner.OutcomeEndOfData, res.Outcome)

	w = get(h, "/status")
	require.Equal(t, http.StatusOK, w.Code)

	var status Status
	require.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	assert.Equal(t, "qso-http", status.ConversationID)
	assert.Equal(t, ft8.PhaseFinished, status.Phase)
	assert.Equal(t, 9, status.Messages)
	assert.Equal(t, 6, status.Advances)
	assert.Equal(t, 6, status.Failures, "the trailing 73 arrives in the terminal phase")
	assert.True(t, status.Finished)
	assert.Equal(t, runner.OutcomeEndOfData, status.Outcome)
	require.NotNil(t, status.Last)
	assert.True(t, status.Last.ThresholdExceeded)

	// Closed queues refuse new messages.
	w = post(t, h, "/messages", SubmitRequest{Message: "CQ"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = get(h, "/graph")
	assert.Equal(t, "graph TD\n", w.Body.String())

	w = get(h, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "qso_test_total")
}

func TestServer_BadRequests(t *testing.T) {
	h := NewHandler(&Server{Queue: NewQueue(1), Tracker: NewTracker("", domain.Phase("idle"))})

	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(t, h, "/messages", SubmitRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(h, "/metrics")
	assert.Equal(t, http.StatusNotFound, w.Code, "metrics are only mounted with a gatherer")
}
