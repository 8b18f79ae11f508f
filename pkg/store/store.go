// Package store owns the in-memory lead collection for one session and
// mediates every change through the remote API. Consumers treat the
// collection as read-only input; all mutations go through the methods
// here.
package store

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/Keerthan22-sys/Instigar/pkg/models"
)

// ErrSuperseded is returned when a fetch completed after a newer fetch
// had already started; its stale response is discarded instead of
// overwriting fresher state.
var ErrSuperseded = errors.New("fetch superseded by a newer request")

// API is the slice of the upstream client the store depends on.
type API interface {
	FetchLeads(ctx context.Context, token, kind string) ([]models.SpringLead, error)
	CreateLead(ctx context.Context, token string, draft models.SpringLead) (*models.SpringLead, error)
	UpdateLead(ctx context.Context, token string, id int, patch map[string]any) (*models.SpringLead, error)
	DeleteLead(ctx context.Context, token string, id int) error
	UploadCSV(ctx context.Context, token, filename string, file io.Reader) error
}

// Store holds the authoritative in-memory lead collection. Instances are
// dependency-injected, one per session, never a process-wide singleton.
//
// Concurrent fetches are serialized by generation: only the newest
// started fetch may publish its result. Mutations are last-response-wins
// per id with no conflict detection, which is acceptable for a
// single-user-editing view.
type Store struct {
	api   API
	token string

	mu       sync.RWMutex
	leads    []models.Lead
	lastErr  string
	inflight int
	fetchGen uint64
}

// New creates an empty store bound to the given upstream API and bearer
// token.
func New(api API, token string) *Store {
	return &Store{api: api, token: token}
}

// FetchAll replaces the entire collection with the upstream result for
// the given kind. On failure the collection becomes empty and the error
// is recorded; stale data is never retained.
func (s *Store) FetchAll(ctx context.Context, kind string) error {
	s.mu.Lock()
	s.fetchGen++
	gen := s.fetchGen
	s.inflight++
	s.mu.Unlock()

	records, err := s.api.FetchLeads(ctx, s.token, kind)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--

	if gen != s.fetchGen {
		return ErrSuperseded
	}

	if err != nil {
		s.leads = nil
		s.lastErr = err.Error()
		return err
	}

	leads := make([]models.Lead, 0, len(records))
	for _, r := range records {
		leads = append(leads, r.ToLead())
	}
	s.leads = leads
	s.lastErr = ""
	return nil
}

// Create sends the draft upstream and, on success, prepends the
// server-returned lead so the newest record shows first before any
// explicit sort. On failure the collection is untouched and the error
// propagates so the initiating form can keep its input.
func (s *Store) Create(ctx context.Context, draft models.SpringLead) (models.Lead, error) {
	s.begin()
	created, err := s.api.CreateLead(ctx, s.token, draft)
	s.end()
	if err != nil {
		return models.Lead{}, err
	}

	lead := created.ToLead()
	s.mu.Lock()
	s.leads = append([]models.Lead{lead}, s.leads...)
	s.mu.Unlock()
	return lead, nil
}

// Update sends the partial patch and replaces the matching entry with
// the server's full representation. The server is the source of truth
// post-update, so this is a replacement, not a merge.
func (s *Store) Update(ctx context.Context, id int, patch map[string]any) (models.Lead, error) {
	s.begin()
	updated, err := s.api.UpdateLead(ctx, s.token, id, patch)
	s.end()
	if err != nil {
		return models.Lead{}, err
	}

	lead := updated.ToLead()
	if lead.ID == 0 {
		lead.ID = id
	}
	s.mu.Lock()
	for i := range s.leads {
		if s.leads[i].ID == id {
			s.leads[i] = lead
			break
		}
	}
	s.mu.Unlock()
	return lead, nil
}

// Delete removes the entry only after the remote delete succeeds.
func (s *Store) Delete(ctx context.Context, id int) error {
	s.begin()
	err := s.api.DeleteLead(ctx, s.token, id)
	s.end()
	if err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.leads[:0]
	for _, l := range s.leads {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	s.leads = kept
	s.mu.Unlock()
	return nil
}

// UploadCSV forwards a CSV file upstream. The collection is not touched;
// callers refetch to see imported rows.
func (s *Store) UploadCSV(ctx context.Context, filename string, file io.Reader) error {
	s.begin()
	defer s.end()
	return s.api.UploadCSV(ctx, s.token, filename, file)
}

// Leads returns a snapshot copy of the current collection.
func (s *Store) Leads() []models.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Lead, len(s.leads))
	copy(out, s.leads)
	return out
}

// Err returns the recorded fetch error, empty when the last fetch
// succeeded.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Loading reports whether any operation is in flight. Implemented as a
// counter so overlapping operations cannot clear the flag early.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

func (s *Store) begin() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}

func (s *Store) end() {
	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
}
