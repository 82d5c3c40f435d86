package realtime

import (
	"log"
	"sync"
)

// Gateway owns the live connection registry. All other components interact
// with connected clients only through its emit/broadcast methods; nothing else
// touches the maps. Delivery is best-effort: no retries, no queues, and an
// offline recipient is a silent no-op. The Notification row written by the
// fan-out is the durable record.
type Gateway struct {
	mu     sync.Mutex
	users  map[uint]string              // userID -> live connection id (at most one; last connect wins)
	owners map[string]uint              // connection id -> userID, set by Register
	conns  map[string]*Client           // connection id -> client
	rooms  map[string]map[string]struct{} // room id -> member connection ids
}

// NewGateway creates an empty gateway.
func NewGateway() *Gateway {
	return &Gateway{
		users:  make(map[uint]string),
		owners: make(map[string]uint),
		conns:  make(map[string]*Client),
		rooms:  make(map[string]map[string]struct{}),
	}
}

// Connect adds a transport connection in the anonymous state. Events cannot be
// addressed to it until Register ties it to a user.
func (g *Gateway) Connect(client *Client) {
	g.mu.Lock()
	g.conns[client.ID] = client
	g.mu.Unlock()
	log.Printf("realtime: connection %s opened (%d total)", client.ID, g.ConnectionCount())
}

// Register records connID as userID's live connection, overwriting any
// previous entry (last connect wins; the earlier socket stays open but is no
// longer addressable). Broadcasts the online presence change.
func (g *Gateway) Register(userID uint, connID string) {
	g.mu.Lock()
	g.users[userID] = connID
	g.owners[connID] = userID
	g.mu.Unlock()

	g.Broadcast(EventUserStatusChange, StatusPayload{UserID: userID, Status: "online"})
}

// Unregister removes a transport connection on disconnect. If the connection
// had registered and still owns its user's registry entry, the mapping is
// cleared and an offline presence change is broadcast. A connection that never
// registered, or that was superseded by a newer one, tears down silently.
func (g *Gateway) Unregister(connID string) {
	g.mu.Lock()
	delete(g.conns, connID)
	for roomID := range g.rooms {
		delete(g.rooms[roomID], connID)
		if len(g.rooms[roomID]) == 0 {
			delete(g.rooms, roomID)
		}
	}

	userID, registered := g.owners[connID]
	if registered {
		delete(g.owners, connID)
		if g.users[userID] != connID {
			// A newer connection replaced this one; nothing to announce.
			registered = false
		} else {
			delete(g.users, userID)
		}
	}
	g.mu.Unlock()

	if registered {
		g.Broadcast(EventUserStatusChange, StatusPayload{UserID: userID, Status: "offline"})
	}
}

// JoinGroup adds the connection to an ad-hoc delivery group. Membership is not
// validated here; the REST layer authorizes the join before requesting it.
func (g *Gateway) JoinGroup(connID, groupID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.conns[connID]; !ok {
		return
	}
	if g.rooms[groupID] == nil {
		g.rooms[groupID] = make(map[string]struct{})
	}
	g.rooms[groupID][connID] = struct{}{}
}

// LeaveGroup removes the connection from a delivery group.
func (g *Gateway) LeaveGroup(connID, groupID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.rooms[groupID], connID)
	if len(g.rooms[groupID]) == 0 {
		delete(g.rooms, groupID)
	}
}

// EmitToUser delivers an event to the user's current live connection, if any.
// An unregistered or disconnected user is a silent no-op.
func (g *Gateway) EmitToUser(userID uint, event string, payload interface{}) {
	g.mu.Lock()
	var client *Client
	if connID, ok := g.users[userID]; ok {
		client = g.conns[connID]
	}
	g.mu.Unlock()

	if client != nil {
		client.deliver(outbound{Event: event, Payload: payload})
	}
}

// EmitToGroup delivers an event to every connection currently joined to the
// group. excludeConnID skips the originating connection for relay-style
// events (typing indicators, read receipts); pass "" to deliver to everyone.
func (g *Gateway) EmitToGroup(groupID, event string, payload interface{}, excludeConnID string) {
	g.mu.Lock()
	clients := make([]*Client, 0, len(g.rooms[groupID]))
	for connID := range g.rooms[groupID] {
		if connID == excludeConnID {
			continue
		}
		if c, ok := g.conns[connID]; ok {
			clients = append(clients, c)
		}
	}
	g.mu.Unlock()

	for _, c := range clients {
		c.deliver(outbound{Event: event, Payload: payload})
	}
}

// Broadcast delivers an event to every currently connected session, including
// anonymous ones.
func (g *Gateway) Broadcast(event string, payload interface{}) {
	g.mu.Lock()
	clients := make([]*Client, 0, len(g.conns))
	for _, c := range g.conns {
		clients = append(clients, c)
	}
	g.mu.Unlock()

	for _, c := range clients {
		c.deliver(outbound{Event: event, Payload: payload})
	}
}

// ConnectionCount returns the number of open transport connections.
func (g *Gateway) ConnectionCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.conns)
}

// UserConnection returns the live connection id for a user, if registered.
func (g *Gateway) UserConnection(userID uint) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	connID, ok := g.users[userID]
	return connID, ok
}
