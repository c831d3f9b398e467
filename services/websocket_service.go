package services

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"taskboard/broker"
	"taskboard/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
	sendBufferSize = 256
)

// WebSocketServiceInterface defines the operations provided by the WebSocket service
type WebSocketServiceInterface interface {
	EventBroadcaster
	Start()
	Stop()
	HandleConnection(c *gin.Context)
	BroadcastMessage(message []byte)
	ClientCount() int
}

// Client represents a connected WebSocket client
type Client struct {
	ID   string
	Hub  *WebSocketService
	Conn *websocket.Conn
	Send chan []byte

	// stop is the hub run the client was registered with.
	stop <-chan struct{}
}

// WebSocketService is the change-feed hub. Clients only receive; anything
// they send is read and discarded so control frames keep flowing.
type WebSocketService struct {
	clients      map[string]*Client
	register     chan *Client
	unregister   chan *Client
	broadcast    chan []byte
	clientsMutex sync.RWMutex

	upgrader websocket.Upgrader

	runMutex  sync.Mutex
	isRunning bool
	stopChan  chan struct{}
	done      chan struct{}
}

func NewWebSocketService(allowedOrigins string) *WebSocketService {
	return &WebSocketService{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, sendBufferSize),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowedOrigins string) func(r *http.Request) bool {
	allowed := make(map[string]bool)
	for _, origin := range strings.Split(allowedOrigins, ",") {
		allowed[strings.TrimSpace(origin)] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed["*"] || allowed[origin]
	}
}

// Start launches the hub goroutine. A stopped hub can be started again.
func (ws *WebSocketService) Start() {
	ws.runMutex.Lock()
	defer ws.runMutex.Unlock()
	if ws.isRunning {
		return
	}
	ws.isRunning = true
	ws.stopChan = make(chan struct{})
	ws.done = make(chan struct{})
	go ws.run(ws.stopChan, ws.done)
	zap.L().Info("websocket hub started")
}

// Stop gracefully shuts down the WebSocket service
func (ws *WebSocketService) Stop() {
	ws.runMutex.Lock()
	if !ws.isRunning {
		ws.runMutex.Unlock()
		return
	}
	ws.isRunning = false
	stop, done := ws.stopChan, ws.done
	ws.runMutex.Unlock()

	close(stop)
	<-done

	// The hub goroutine has exited, so nothing else touches the send channels.
	ws.clientsMutex.Lock()
	for id, client := range ws.clients {
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
		delete(ws.clients, id)
	}
	ws.clientsMutex.Unlock()

	zap.L().Info("websocket hub stopped")
}

func (ws *WebSocketService) running() bool {
	_, ok := ws.currentRun()
	return ok
}

// currentRun returns the stop channel of the active run, if any.
func (ws *WebSocketService) currentRun() (<-chan struct{}, bool) {
	ws.runMutex.Lock()
	defer ws.runMutex.Unlock()
	return ws.stopChan, ws.isRunning
}

// BroadcastMessage queues a message for every connected client. Messages
// are dropped when the hub is not running or its queue is full.
func (ws *WebSocketService) BroadcastMessage(message []byte) {
	if !ws.running() {
		return
	}
	select {
	case ws.broadcast <- message:
	default:
		zap.L().Warn("websocket broadcast queue is full, discarding message")
	}
}

func (ws *WebSocketService) BroadcastEvent(event *models.Event) {
	data, err := json.Marshal(models.EventToMessage(event))
	if err != nil {
		zap.L().Error("failed to encode websocket message", zap.Error(err))
		return
	}
	ws.BroadcastMessage(data)
}

// ConsumeFrom feeds broker events into the hub.
func (ws *WebSocketService) ConsumeFrom(sub broker.Subscriber, subjects []string) error {
	return broker.SubscribeAll(sub, subjects, func(msg broker.Message) {
		var event models.Event
		if err := event.FromJSON(msg.Data); err != nil {
			zap.L().Warn("discarding malformed broker event", zap.String("subject", msg.Subject), zap.Error(err))
			return
		}
		ws.BroadcastEvent(&event)
	})
}

func (ws *WebSocketService) ClientCount() int {
	ws.clientsMutex.RLock()
	defer ws.clientsMutex.RUnlock()
	return len(ws.clients)
}

func (ws *WebSocketService) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return

		case client := <-ws.register:
			ws.clientsMutex.Lock()
			ws.clients[client.ID] = client
			ws.clientsMutex.Unlock()
			zap.L().Debug("websocket client connected", zap.String("client_id", client.ID))

		case client := <-ws.unregister:
			ws.clientsMutex.Lock()
			if _, ok := ws.clients[client.ID]; ok {
				delete(ws.clients, client.ID)
				close(client.Send)
				zap.L().Debug("websocket client disconnected", zap.String("client_id", client.ID))
			}
			ws.clientsMutex.Unlock()

		case message := <-ws.broadcast:
			ws.clientsMutex.Lock()
			for id, client := range ws.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(ws.clients, id)
				}
			}
			ws.clientsMutex.Unlock()
		}
	}
}

// HandleConnection upgrades the request and attaches the connection to the hub.
func (ws *WebSocketService) HandleConnection(c *gin.Context) {
	stop, ok := ws.currentRun()
	if !ok {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}

	conn, err := ws.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		ID:   uuid.New().String(),
		Hub:  ws,
		Conn: conn,
		Send: make(chan []byte, sendBufferSize),
		stop: stop,
	}

	select {
	case ws.register <- client:
	case <-stop:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.stop:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("websocket read error", zap.String("client_id", c.ID), zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
