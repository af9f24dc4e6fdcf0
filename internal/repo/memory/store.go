package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/midcare/pflegedoc/internal/domain/client"
	"github.com/midcare/pflegedoc/internal/domain/entry"
)

// Store keeps clients and their care entries in one structure so the
// cascade on client delete stays atomic under the same lock, the way
// the postgres repos keep it atomic under one transaction.
type Store struct {
	mu      sync.RWMutex
	clients map[string]client.Client
	entries map[string]entry.CareEntry
}

func NewStore() *Store {
	return &Store{
		clients: make(map[string]client.Client),
		entries: make(map[string]entry.CareEntry),
	}
}

func (s *Store) CreateClient(ctx context.Context, req client.CreateClientRequest) (client.Client, error) {
	c, err := client.NewFromCreateRequest(req)

	if err != nil {
		return client.Client{}, err
	}

	s.mu.Lock()
	s.clients[c.ID] = c
	s.mu.Unlock()

	return c, nil
}

func (s *Store) GetClient(ctx context.Context, id string) (client.Client, error) {
	s.mu.RLock()
	c, ok := s.clients[id]
	s.mu.RUnlock()

	if !ok {
		return client.Client{}, client.ErrNotFound
	}

	return c, nil
}

func (s *Store) UpdateClient(ctx context.Context, id string, req client.UpdateClientRequest) (client.Client, error) {
	birthDate, err := client.ParseBirthDate(req.BirthDate)

	if err != nil {
		return client.Client{}, err
	}

	careLevel, err := client.ParseCareLevel(req.CareLevel)

	if err != nil {
		return client.Client{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]

	if !ok {
		return client.Client{}, client.ErrNotFound
	}

	c.Name = req.Name
	c.BirthDate = birthDate
	c.Address = req.Address
	c.CareLevel = careLevel
	c.Notes = req.Notes
	c.UpdatedAt = time.Now().UTC()

	s.clients[id] = c

	return c, nil
}

// DeleteClient removes the client and every entry it owns; no
// orphaned entry survives the call.
func (s *Store) DeleteClient(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[id]; !ok {
		return client.ErrNotFound
	}

	delete(s.clients, id)

	for entryID, e := range s.entries {
		if e.ClientID == id {
			delete(s.entries, entryID)
		}
	}

	return nil
}

func (s *Store) ListClients(ctx context.Context, search string) ([]client.Client, error) {
	s.mu.RLock()

	out := make([]client.Client, 0, len(s.clients))
	needle := strings.ToLower(search)

	for _, c := range s.clients {
		if needle == "" || strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, c)
		}
	}

	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (s *Store) CountClients(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.clients), nil
}

func (s *Store) CreateEntry(ctx context.Context, clientID string, req entry.CreateEntryRequest) (entry.CareEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[clientID]; !ok {
		return entry.CareEntry{}, client.ErrNotFound
	}

	e := entry.NewFromCreateRequest(clientID, req)
	s.entries[e.ID] = e

	return e, nil
}

func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return entry.ErrNotFound
	}

	delete(s.entries, id)

	return nil
}

func (s *Store) ListEntriesForClient(ctx context.Context, clientID string, limit int) ([]entry.CareEntry, error) {
	s.mu.RLock()

	out := make([]entry.CareEntry, 0)

	for _, e := range s.entries {
		if e.ClientID == clientID {
			out = append(out, e)
		}
	}

	s.mu.RUnlock()

	sortNewestFirst(out)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (s *Store) RecentEntries(ctx context.Context, limit int) ([]entry.CareEntry, error) {
	s.mu.RLock()

	out := make([]entry.CareEntry, 0, len(s.entries))

	for _, e := range s.entries {
		out = append(out, e)
	}

	s.mu.RUnlock()

	sortNewestFirst(out)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (s *Store) CountEntriesSince(ctx context.Context, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0

	for _, e := range s.entries {
		if !e.RecordedAt.Before(since) {
			n++
		}
	}

	return n, nil
}

func sortNewestFirst(entries []entry.CareEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].RecordedAt.Equal(entries[j].RecordedAt) {
			return entries[i].RecordedAt.After(entries[j].RecordedAt)
		}
		return entries[i].ID < entries[j].ID
	})
}
