package postgres

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"

	"github.com/igwlord/nebula/internal/domain"
)

const notifyChannel = "records_changed"

// Watch opens a LISTEN/NOTIFY subscription scoped to the owner and kind
// and delivers a full refreshed snapshot on every change to the underlying
// collection, including writes from concurrent sessions under the same
// identity. The subscription is torn down when ctx is canceled.
func (r *recordRepository) Watch(ctx context.Context, owner string, kind domain.Kind, window *domain.MonthWindow) (<-chan []*domain.Record, error) {
	listener := pq.NewListener(r.db.connStr, 10*time.Second, time.Minute, nil)
	if err := listener.Listen(notifyChannel); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", notifyChannel, err)
	}

	scope := r.project + "/" + owner + "/" + string(kind)
	out := make(chan []*domain.Record, 1)

	go func() {
		defer close(out)
		defer listener.Close()

		if !r.deliver(ctx, out, owner, kind, window) {
			return
		}

		ping := time.NewTicker(90 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ping.C:
				if err := listener.Ping(); err != nil {
					log.Printf("records watch: ping failed: %v", err)
				}
			case n := <-listener.Notify:
				// A nil notification means the connection was re-established;
				// changes may have been missed, so refresh unconditionally.
				if n != nil && n.Extra != scope {
					continue
				}
				if !r.deliver(ctx, out, owner, kind, window) {
					return
				}
			}
		}
	}()

	return out, nil
}

// deliver sends a fresh snapshot, reporting false once ctx is done. Query
// failures degrade to an empty snapshot so a transient outage never kills
// the subscription.
func (r *recordRepository) deliver(ctx context.Context, out chan<- []*domain.Record, owner string, kind domain.Kind, window *domain.MonthWindow) bool {
	records, err := r.List(ctx, owner, kind, window)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		log.Printf("records watch: refresh failed: %v", err)
		records = nil
	}
	select {
	case out <- records:
		return true
	case <-ctx.Done():
		return false
	}
}
