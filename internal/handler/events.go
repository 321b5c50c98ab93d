package handler

import (
	"fmt"
	"net/http"
)

// Events handles GET /api/events: a Server-Sent Events stream carrying one
// "change" event per engine mutation. The event has no payload — observers
// re-pull whatever views they need, exactly like in-process subscribers.
//
// Signals arriving while a write is in flight are coalesced through a small
// buffered channel; a slow consumer misses intermediate signals, never the
// latest one.
func (s *Server) Events(w http.ResponseWriter, r *http.Request) {
	fl, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	changes := make(chan struct{}, 1)
	sub := s.state.Subscribe(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	defer sub.Unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fl.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-changes:
			if _, err := fmt.Fprint(w, "event: change\ndata: {}\n\n"); err != nil {
				return
			}
			fl.Flush()
		}
	}
}
