package notification

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const userEventsChannel = "notify:user_events"

type userEventMessage struct {
	UserID           string          `json:"user_id"`
	Payload          json.RawMessage `json:"payload"`
	SenderInstanceID string          `json:"sender_instance_id"`
}

// Connection represents one websocket connection of a user
type Connection struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte
}

// Hub fans user-directed events out to local websocket connections, with
// Redis Pub/Sub carrying events between server instances. Without Redis the
// hub still delivers to connections on this instance.
type Hub struct {
	connections map[uuid.UUID]map[*Connection]bool

	redis  *redis.Client
	pubsub *redis.PubSub

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection

	ctx    context.Context
	cancel context.CancelFunc

	instanceID string
}

// NewHub creates a websocket hub
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		connections: make(map[uuid.UUID]map[*Connection]bool),
		redis:       redisClient,
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		ctx:         ctx,
		cancel:      cancel,
		instanceID:  uuid.NewString(),
	}

	if redisClient != nil {
		h.pubsub = redisClient.Subscribe(ctx, userEventsChannel)
	}

	return h
}

// Run starts the hub (call in goroutine)
func (h *Hub) Run() {
	if h.pubsub != nil {
		go h.runRedisSubscriber()
	}

	for {
		select {
		case <-h.ctx.Done():
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.connections[conn.UserID] == nil {
				h.connections[conn.UserID] = make(map[*Connection]bool)
			}
			h.connections[conn.UserID][conn] = true
			h.mu.Unlock()
			log.Debug().Str("user_id", conn.UserID.String()).Msg("User connected to notification socket")

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.connections[conn.UserID]; ok {
				if _, exists := conns[conn]; exists {
					delete(conns, conn)
					close(conn.Send)
				}
				if len(conns) == 0 {
					delete(h.connections, conn.UserID)
				}
			}
			h.mu.Unlock()
			log.Debug().Str("user_id", conn.UserID.String()).Msg("User disconnected from notification socket")
		}
	}
}

// Close shuts the hub down
func (h *Hub) Close() {
	h.cancel()
	if h.pubsub != nil {
		h.pubsub.Close()
	}
}

// Register adds a connection to the hub
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection from the hub
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// SendToUserJSON delivers a payload to every connection of a user, local and
// on other instances via Redis.
func (h *Hub) SendToUserJSON(userID uuid.UUID, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	h.deliverLocal(userID, data)

	if h.redis != nil {
		msg, err := json.Marshal(userEventMessage{
			UserID:           userID.String(),
			Payload:          data,
			SenderInstanceID: h.instanceID,
		})
		if err != nil {
			return err
		}
		if err := h.redis.Publish(h.ctx, userEventsChannel, msg).Err(); err != nil {
			log.Warn().Err(err).Msg("Failed to publish user event to Redis")
		}
	}

	return nil
}

func (h *Hub) deliverLocal(userID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.connections[userID] {
		select {
		case conn.Send <- data:
		default:
			// Slow consumer, drop the event rather than block the hub.
			log.Warn().Str("user_id", userID.String()).Msg("Dropping notification event for slow websocket consumer")
		}
	}
}

func (h *Hub) runRedisSubscriber() {
	ch := h.pubsub.Channel()
	for {
		select {
		case <-h.ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var event userEventMessage
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Warn().Err(err).Msg("Malformed user event on Redis channel")
				continue
			}
			// Local delivery already happened on the publishing instance.
			if event.SenderInstanceID == h.instanceID {
				continue
			}

			userID, err := uuid.Parse(event.UserID)
			if err != nil {
				continue
			}
			h.deliverLocal(userID, event.Payload)
		}
	}
}
