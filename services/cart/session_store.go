package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/MarcGrol/onlineshop/lib/mystore"
	"github.com/MarcGrol/onlineshop/lib/mytime"
)

// DocumentSessionStore keeps sessions in a mystore backend. Expiry is
// checked when a session is loaded, and a live session is touched on load.
type DocumentSessionStore struct {
	store mystore.Store[sessionRecord]
	nower mytime.Nower
	ttl   time.Duration
}

func NewDocumentSessionStore(c context.Context, nower mytime.Nower, ttl time.Duration) (*DocumentSessionStore, func(), error) {
	store, cleanup, err := mystore.New[sessionRecord](c)
	if err != nil {
		return nil, func() {}, fmt.Errorf("error creating session store: %w", err)
	}
	return newDocumentSessionStore(store, nower, ttl), cleanup, nil
}

func newDocumentSessionStore(store mystore.Store[sessionRecord], nower mytime.Nower, ttl time.Duration) *DocumentSessionStore {
	return &DocumentSessionStore{
		store: store,
		nower: nower,
		ttl:   ttl,
	}
}

func (d *DocumentSessionStore) Load(c context.Context, sessionUID string) (Session, error) {
	record, found, err := d.store.Get(c, sessionUID)
	if err != nil {
		return Session{}, fmt.Errorf("error loading session: %w", err)
	}
	if !found {
		return NewSession(sessionUID), nil
	}

	now := d.nower.Now()
	if now.Sub(record.LastModified) > d.ttl {
		err = d.store.Delete(c, sessionUID)
		if err != nil {
			return Session{}, fmt.Errorf("error deleting expired session: %w", err)
		}
		return NewSession(sessionUID), nil
	}

	record.LastModified = now
	err = d.store.Put(c, sessionUID, record)
	if err != nil {
		return Session{}, fmt.Errorf("error touching session: %w", err)
	}

	return fromRecord(record)
}

func (d *DocumentSessionStore) Save(c context.Context, session Session) error {
	err := d.store.Put(c, session.UID, toRecord(session))
	if err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}
	return nil
}
