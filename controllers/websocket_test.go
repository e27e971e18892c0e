package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/celestecruzzg/IOT-FINAL/config"
	"github.com/celestecruzzg/IOT-FINAL/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialWS(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/sensors/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocketBroadcastsPersistedReadings(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	srv := httptest.NewServer(r)
	defer srv.Close()

	token, err := generateSessionToken(models.Usuario{ID: 7, Correo: "ana@x.com"})
	require.NoError(t, err)
	conn := dialWS(t, srv, token)

	batch := feedWith(parcelaJSON(10, "Parcela Diez", 60))
	w := doJSON(r, http.MethodPost, "/api/sensors/store-sensor-data", batch, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	var stored []models.Sensor
	require.NoError(t, config.DB.Order("id").Find(&stored).Error)
	require.Len(t, stored, 2)

	// One message per stored reading: the general one first, then the
	// parcela reading, each carrying its persisted id and timestamp.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got struct {
		Type string        `json:"type"`
		Data models.Sensor `json:"data"`
	}

	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "nueva_lectura", got.Type)
	assert.Equal(t, stored[0].ID, got.Data.ID)
	assert.False(t, got.Data.CreatedAt.IsZero())
	assert.Nil(t, got.Data.ParcelaID)

	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, stored[1].ID, got.Data.ID)
	assert.False(t, got.Data.CreatedAt.IsZero())
	require.NotNil(t, got.Data.ParcelaID)
	assert.Equal(t, 10, *got.Data.ParcelaID)
}

func TestWebSocketDeduplicatedReadingIsNotRebroadcast(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	srv := httptest.NewServer(r)
	defer srv.Close()

	token, err := generateSessionToken(models.Usuario{ID: 7, Correo: "ana@x.com"})
	require.NoError(t, err)

	batch := feedWith(parcelaJSON(10, "Parcela Diez", 60))
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/api/sensors/store-sensor-data", batch, "Bearer "+token).Code)

	// Connect after the first batch: resubmitting it inserts nothing, so
	// nothing may arrive on the socket.
	conn := dialWS(t, srv, token)
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/api/sensors/store-sensor-data", batch, "Bearer "+token).Code)

	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "timeout") || websocket.IsUnexpectedCloseError(err))
}

func TestWebSocketRequiresToken(t *testing.T) {
	setupTestDB(t)
	srv := httptest.NewServer(testRouter())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/sensors/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
