// handlers/live.go - websocket feed of moderation events
package handlers

import (
	"encoding/json"
	"sync"

	"cipherboard/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ForumFeed broadcasts published-post events to connected clients so open
// forum pages can show new entries without polling. It implements
// services.Notifier.
type ForumFeed struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func NewForumFeed() *ForumFeed {
	return &ForumFeed{conns: make(map[*websocket.Conn]bool)}
}

func (f *ForumFeed) add(c *websocket.Conn) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conns[c] = true
}

func (f *ForumFeed) remove(c *websocket.Conn) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.conns, c)
}

// PostPublished pushes a just-published post to every connected client.
// Clients that fail to receive are dropped.
func (f *ForumFeed) PostPublished(post models.PublishedPost) {
	payload, err := json.Marshal(fiber.Map{
		"type": "post_published",
		"post": post,
	})
	if err != nil {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for conn := range f.conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(f.conns, conn)
		}
	}
}

// WebSocketUpgrade gates the feed route to real upgrade requests.
func WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// ForumFeedHandler holds a client connection open on the feed until it
// disconnects. The feed is broadcast-only; inbound messages are discarded.
func ForumFeedHandler(feed *ForumFeed) func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		feed.add(conn)
		defer func() {
			feed.remove(conn)
			conn.Close()
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
