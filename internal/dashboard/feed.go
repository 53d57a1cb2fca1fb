package dashboard

import (
	"sync"

	requestDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/request"
)

// RequestFeed tracks the request list a live session is watching. Refresh
// folds each re-fetched list in through MergeRequests, so a request that
// already reached a terminal state never reverts to pending when the hub
// delivers stale rows.
type RequestFeed struct {
	mu       sync.Mutex
	requests []requestDatamodel.Request
}

// Refresh merges incoming rows into the tracked list and returns a snapshot
// of the result.
func (f *RequestFeed) Refresh(incoming []requestDatamodel.Request) []requestDatamodel.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = MergeRequests(f.requests, incoming)
	return f.snapshotLocked()
}

// Snapshot returns a copy of the tracked list.
func (f *RequestFeed) Snapshot() []requestDatamodel.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Pending reports how many tracked requests still await review.
func (f *RequestFeed) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, req := range f.requests {
		if req.Status == requestDatamodel.StatusPending {
			n++
		}
	}
	return n
}

func (f *RequestFeed) snapshotLocked() []requestDatamodel.Request {
	out := make([]requestDatamodel.Request, len(f.requests))
	copy(out, f.requests)
	return out
}
