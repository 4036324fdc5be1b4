package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/matchday/go/internal/engine"
)

// ConnectionManager manages WebSocket connections watching matches
type ConnectionManager struct {
	// Connection pools organized by match ID
	matchConnections map[string]map[*Connection]bool
	mu               sync.RWMutex

	upgrader websocket.Upgrader
	config   ConnectionConfig
}

// Connection represents a WebSocket connection to a client watching one match
type Connection struct {
	ID      string
	MatchID string
	Conn    *websocket.Conn
	Send    chan []byte
	Manager *ConnectionManager

	ConnectedAt time.Time
	lastPing    atomic.Int64

	session *engine.Session
	release func()
	once    sync.Once
}

// ConnectionConfig holds configuration for WebSocket connections
type ConnectionConfig struct {
	WriteTimeout     time.Duration
	ReadTimeout      time.Duration
	PingInterval     time.Duration
	MaxMessageSize   int64
	ReadBufferSize   int
	WriteBufferSize  int
	SendBufferSize   int
	SubscriberBuffer int
	CheckOrigin      func(r *http.Request) bool
}

// DefaultConnectionConfig returns default WebSocket configuration
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:     10 * time.Second,
		ReadTimeout:      60 * time.Second,
		PingInterval:     30 * time.Second,
		MaxMessageSize:   1024,
		ReadBufferSize:   1024,
		WriteBufferSize:  4096,
		SendBufferSize:   64,
		SubscriberBuffer: 4,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

// NewConnectionManager creates a new WebSocket connection manager
func NewConnectionManager(config ConnectionConfig) *ConnectionManager {
	return &ConnectionManager{
		matchConnections: make(map[string]map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config: config,
	}
}

// UpgradeConnection upgrades an HTTP connection to WebSocket and streams
// session's snapshots to it. release is called exactly once when the
// connection goes away. On error the caller still owns the session.
func (cm *ConnectionManager) UpgradeConnection(w http.ResponseWriter, r *http.Request, session *engine.Session, release func()) (*Connection, error) {
	conn, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade connection: %w", err)
	}

	updates, cancel := session.Subscribe(cm.config.SubscriberBuffer)
	connection := &Connection{
		ID:          uuid.New().String(),
		MatchID:     session.MatchID(),
		Conn:        conn,
		Send:        make(chan []byte, cm.config.SendBufferSize),
		Manager:     cm,
		ConnectedAt: time.Now(),
		session:     session,
		release: func() {
			cancel()
			release()
		},
	}
	connection.lastPing.Store(time.Now().UnixNano())

	cm.registerConnection(connection)
	cm.deliver(connection, EventTypeMatchState, session.Snapshot())

	go connection.writePump()
	go connection.readPump()
	go connection.forward(updates)

	log.Info().
		Str("connection_id", connection.ID).
		Str("match_id", connection.MatchID).
		Msg("WebSocket connection established")

	return connection, nil
}

func (cm *ConnectionManager) registerConnection(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.matchConnections[conn.MatchID] == nil {
		cm.matchConnections[conn.MatchID] = make(map[*Connection]bool)
	}
	cm.matchConnections[conn.MatchID][conn] = true

	log.Debug().
		Str("connection_id", conn.ID).
		Str("match_id", conn.MatchID).
		Int("total_connections", len(cm.matchConnections[conn.MatchID])).
		Msg("connection registered")
}

// unregisterConnection removes a connection and gives its view back. Safe to
// call more than once.
func (cm *ConnectionManager) unregisterConnection(conn *Connection) {
	cm.mu.Lock()
	removed := false
	if connections, exists := cm.matchConnections[conn.MatchID]; exists {
		if _, exists := connections[conn]; exists {
			delete(connections, conn)
			close(conn.Send)
			removed = true

			if len(connections) == 0 {
				delete(cm.matchConnections, conn.MatchID)
			}
		}
	}
	cm.mu.Unlock()

	if !removed {
		return
	}
	conn.once.Do(conn.release)

	log.Info().
		Str("connection_id", conn.ID).
		Str("match_id", conn.MatchID).
		Dur("connected_for", time.Since(conn.ConnectedAt)).
		Msg("connection unregistered")
}

// deliver queues one message for conn. A connection whose buffer is full is
// dropped rather than allowed to hold up the match clock.
func (cm *ConnectionManager) deliver(conn *Connection, eventType EventType, data interface{}) {
	if data == nil {
		return
	}
	payload, err := json.Marshal(Message{Type: eventType, Data: data})
	if err != nil {
		log.Error().Err(err).Str("match_id", conn.MatchID).Msg("failed to marshal message")
		return
	}

	slow := false
	cm.mu.RLock()
	if cm.matchConnections[conn.MatchID][conn] {
		select {
		case conn.Send <- payload:
		default:
			slow = true
		}
	}
	cm.mu.RUnlock()

	if slow {
		log.Warn().
			Str("connection_id", conn.ID).
			Str("match_id", conn.MatchID).
			Msg("connection send buffer full, closing connection")
		cm.unregisterConnection(conn)
		conn.Conn.Close()
	}
}

// CloseAll disconnects every client.
func (cm *ConnectionManager) CloseAll() {
	cm.mu.RLock()
	var all []*Connection
	for _, connections := range cm.matchConnections {
		for conn := range connections {
			all = append(all, conn)
		}
	}
	cm.mu.RUnlock()

	for _, conn := range all {
		cm.unregisterConnection(conn)
		conn.Conn.Close()
	}
}

// ConnectionCount returns the number of clients watching matchID.
func (cm *ConnectionManager) ConnectionCount(matchID string) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.matchConnections[matchID])
}

// GetConnectionStats returns statistics about active connections
func (cm *ConnectionManager) GetConnectionStats() map[string]interface{} {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	totalConnections := 0
	matchCounts := make(map[string]int)

	for matchID, connections := range cm.matchConnections {
		count := len(connections)
		totalConnections += count
		matchCounts[matchID] = count
	}

	return map[string]interface{}{
		"total_connections": totalConnections,
		"active_matches":    len(cm.matchConnections),
		"match_connections": matchCounts,
	}
}

// LastPing returns when the client last answered a ping.
func (c *Connection) LastPing() time.Time {
	return time.Unix(0, c.lastPing.Load())
}

// forward pushes every snapshot of the session until the subscription ends.
func (c *Connection) forward(updates <-chan *engine.Snapshot) {
	for snap := range updates {
		c.Manager.deliver(c, EventTypeMatchState, snap)
	}
	// The session ended underneath us, e.g. on shutdown.
	c.Manager.unregisterConnection(c)
}

// writePump handles sending messages to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.Manager.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.Manager.unregisterConnection(c)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to write message to WebSocket")
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump handles reading messages from the WebSocket connection
func (c *Connection) readPump() {
	defer func() {
		c.Manager.unregisterConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.Manager.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
		c.lastPing.Store(time.Now().UnixNano())
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("unexpected WebSocket close error")
			}
			break
		}

		c.handleClientMessage(message)
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	}
}

// handleClientMessage answers the few requests a client may make
func (c *Connection) handleClientMessage(message []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		c.Manager.deliver(c, EventTypeError, ErrorPayload{Error: "malformed message"})
		return
	}

	switch msg.Type {
	case ClientMessageGetState:
		c.Manager.deliver(c, EventTypeMatchState, c.session.Snapshot())
	case ClientMessagePing:
		c.lastPing.Store(time.Now().UnixNano())
	default:
		log.Debug().
			Str("connection_id", c.ID).
			Str("type", string(msg.Type)).
			Msg("ignoring client message")
	}
}
