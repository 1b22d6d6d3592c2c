package broadcast

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/coolforge/anneal"
)

func TestHubBroadcastsProgressToSubscriber(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeHTTP))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	hub.Broadcast(anneal.Progress{RunID: "r1", Iteration: 5, BestFitness: 1.5})

	var got anneal.Progress
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, conn.ReadJSON(&got))
	require.Equal(t, "r1", got.RunID)
	require.Equal(t, 5, got.Iteration)
	require.Equal(t, 1.5, got.BestFitness)
}

func TestHubDropsSubscriberOnDisconnect(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeHTTP))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Count() == 0 }, time.Second, 5*time.Millisecond)
}
