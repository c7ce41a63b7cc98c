package api

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samcharles93/naca456/internal/engine"
)

type airfoilRecord struct {
	ID        string
	CreatedAt time.Time
	Result    *engine.Result
	seq       uint64
}

// AirfoilStore keeps generated airfoils in memory for the lifetime of the
// server. Files on disk are not removed by Delete.
type AirfoilStore struct {
	mu       sync.Mutex
	airfoils map[string]*airfoilRecord
	seq      uint64
}

func NewAirfoilStore() *AirfoilStore {
	return &AirfoilStore{
		airfoils: make(map[string]*airfoilRecord),
	}
}

func (s *AirfoilStore) Save(res *engine.Result, now time.Time) *airfoilRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	rec := &airfoilRecord{
		ID:        newAirfoilID(),
		CreatedAt: now,
		Result:    res,
		seq:       s.seq,
	}
	s.airfoils[rec.ID] = rec
	return rec
}

func (s *AirfoilStore) Get(id string) (*airfoilRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.airfoils[id]
	return rec, ok
}

func (s *AirfoilStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.airfoils[id]; !ok {
		return false
	}
	delete(s.airfoils, id)
	return true
}

// List returns up to limit records in creation order, starting after the
// record with ID after. The bool reports whether more records follow.
func (s *AirfoilStore) List(after string, limit int) ([]*airfoilRecord, bool) {
	s.mu.Lock()
	all := make([]*airfoilRecord, 0, len(s.airfoils))
	for _, rec := range s.airfoils {
		all = append(all, rec)
	}
	s.mu.Unlock()
	sort.Slice(all, func(i, j int) bool { return all[i].seq < all[j].seq })

	start := 0
	if after != "" {
		for i, rec := range all {
			if rec.ID == after {
				start = i + 1
				break
			}
		}
	}
	all = all[start:]
	if limit > 0 && len(all) > limit {
		return all[:limit], true
	}
	return all, false
}

func (s *AirfoilStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.airfoils)
}

func newAirfoilID() string {
	return "foil_" + uuid.NewString()
}
