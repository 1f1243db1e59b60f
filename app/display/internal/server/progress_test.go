package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/finance_report/app/display/internal/usecase"
)

func dialHub(t *testing.T, hub *ProgressHub) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(hub)
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestProgressHub_Broadcast(t *testing.T) {
	hub := NewProgressHub(log.DefaultLogger)
	a := dialHub(t, hub)
	b := dialHub(t, hub)
	require.Eventually(t, func() bool { return hub.Subscribers() == 2 }, time.Second, 10*time.Millisecond)

	want := usecase.ProgressEvent{ReportID: "r-1", Progress: 0.5, Status: "Generating Executive Summary section..."}
	hub.Publish(want)

	for _, conn := range []*websocket.Conn{a, b} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)

		var got usecase.ProgressEvent
		require.NoError(t, json.Unmarshal(msg, &got))
		assert.Equal(t, want, got)
	}
}

func TestProgressHub_UnsubscribeOnClose(t *testing.T) {
	hub := NewProgressHub(log.DefaultLogger)
	conn := dialHub(t, hub)
	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestProgressHub_PublishWithoutSubscribers(t *testing.T) {
	hub := NewProgressHub(log.DefaultLogger)
	assert.NotPanics(t, func() {
		hub.Publish(usecase.ProgressEvent{ReportID: "r", Progress: 1, Status: "Report completed!"})
	})
}
