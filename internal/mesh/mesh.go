// Package mesh holds the boundary data model for linking grid nodes:
// the peer registry parsed from MESH_PEERS and the bookkeeping of
// established stream connections. The HTTP wiring between nodes lives
// outside this module.
package mesh

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/PMeeske/hypergrid/internal/domain"
)

// Peer is one known mesh node.
type Peer struct {
	ID  string
	URI string
}

// ParsePeers parses the MESH_PEERS form: comma-separated entries of
// either "name=URI" or a bare URI, whose host becomes the peer id.
// Empty entries are skipped.
func ParsePeers(raw string) ([]Peer, error) {
	var peers []Peer
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		var peer Peer
		if name, uri, found := strings.Cut(entry, "="); found {
			peer = Peer{ID: strings.TrimSpace(name), URI: strings.TrimSpace(uri)}
		} else {
			u, err := url.Parse(entry)
			if err != nil || u.Host == "" {
				return nil, domain.NewDomainError(
					domain.ErrCodeInvalidInput,
					fmt.Sprintf("mesh peer entry %q is not a valid URI", entry),
					err,
				)
			}
			peer = Peer{ID: u.Hostname(), URI: entry}
		}
		if peer.ID == "" || peer.URI == "" {
			return nil, domain.NewDomainError(
				domain.ErrCodeInvalidInput,
				fmt.Sprintf("mesh peer entry %q is incomplete", entry),
				nil,
			)
		}
		peers = append(peers, peer)
	}
	return peers, nil
}

// Registry tracks known peers and the stream connections established
// to them.
type Registry struct {
	mu          sync.RWMutex
	peers       map[string]Peer
	order       []string
	connections map[string]domain.StreamConnection
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		peers:       make(map[string]Peer),
		connections: make(map[string]domain.StreamConnection),
	}
}

// NewRegistryFromEnv creates a registry pre-populated from a
// MESH_PEERS value.
func NewRegistryFromEnv(raw string) (*Registry, error) {
	peers, err := ParsePeers(raw)
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	for _, p := range peers {
		r.Add(p)
	}
	return r, nil
}

// Add registers a peer, replacing any previous entry with the same id.
func (r *Registry) Add(p Peer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.peers[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.peers[p.ID] = p
}

// Get resolves a peer by id.
func (r *Registry) Get(id string) (Peer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.peers[id]
	return p, ok
}

// Peers returns all peers in registration order.
func (r *Registry) Peers() []Peer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Peer, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.peers[id])
	}
	return out
}

// Connect mints an active stream connection from sourceNode to a
// registered peer over the given edge.
func (r *Registry) Connect(sourceNode, targetNode string, edge domain.Edge) (domain.StreamConnection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.peers[targetNode]; !ok {
		return domain.StreamConnection{}, domain.NewDomainError(
			domain.ErrCodeNotFound,
			fmt.Sprintf("unknown mesh peer %q", targetNode),
			nil,
		)
	}

	conn := domain.StreamConnection{
		ConnectionID:  uuid.NewString(),
		SourceNode:    sourceNode,
		TargetNode:    targetNode,
		Edge:          edge,
		EstablishedAt: time.Now().UTC(),
		IsActive:      true,
	}
	r.connections[conn.ConnectionID] = conn

	log.Debug().
		Str("connection_id", conn.ConnectionID).
		Str("source", sourceNode).
		Str("target", targetNode).
		Msg("stream connection established")
	return conn, nil
}

// Connection resolves a connection by id.
func (r *Registry) Connection(id string) (domain.StreamConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.connections[id]
	return c, ok
}

// Deactivate marks a connection inactive.
func (r *Registry) Deactivate(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.connections[id]
	if !ok {
		return domain.NewDomainError(
			domain.ErrCodeNotFound,
			fmt.Sprintf("unknown connection %q", id),
			nil,
		)
	}
	c.IsActive = false
	r.connections[id] = c
	return nil
}

// ActiveConnections returns all currently active connections.
func (r *Registry) ActiveConnections() []domain.StreamConnection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.StreamConnection
	for _, c := range r.connections {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}
