package controllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/celestecruzzg/IOT-FINAL/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	wsMu      sync.Mutex
	wsClients = make(map[*websocket.Conn]bool)
)

// HandleWebSocket upgrades an authenticated request and keeps the
// connection registered until the client goes away. Dashboards receive
// every newly stored reading without polling.
func HandleWebSocket(c *gin.Context) {
	if _, ok := userIDFromContext(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Autenticación fallida"})
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	wsMu.Lock()
	wsClients[conn] = true
	wsMu.Unlock()

	defer func() {
		wsMu.Lock()
		delete(wsClients, conn)
		wsMu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// BroadcastReading pushes a newly stored reading to all connected clients.
func BroadcastReading(reading models.Sensor) {
	msg, err := json.Marshal(gin.H{
		"type": "nueva_lectura",
		"data": reading,
	})
	if err != nil {
		return
	}

	wsMu.Lock()
	defer wsMu.Unlock()
	for conn := range wsClients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}
