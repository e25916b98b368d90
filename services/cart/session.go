package cart

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Session is the per-visitor state: the cart and the set of favorite products.
type Session struct {
	UID          string
	Cart         *Cart
	Favorites    map[int64]bool
	LastModified time.Time
}

func NewSession(sessionUID string) Session {
	return Session{
		UID:       sessionUID,
		Cart:      NewCart(),
		Favorites: map[int64]bool{},
	}
}

func (s Session) FavoriteIDs() []int64 {
	return slices.Sorted(maps.Keys(s.Favorites))
}

// SessionStore returns an empty session when none is stored, or when it has expired.
type SessionStore interface {
	Load(c context.Context, sessionUID string) (Session, error)
	Save(c context.Context, session Session) error
}

// sessionRecord is the storage form of a Session. Datastore cannot hold
// decimals or maps.
type sessionRecord struct {
	UID          string
	Lines        []lineRecord
	Favorites    []int64
	LastModified time.Time
}

type lineRecord struct {
	ProductID   int64
	Quantity    int
	UnitPrice   string
	DisplayName string
}

func toRecord(session Session) sessionRecord {
	record := sessionRecord{
		UID:          session.UID,
		Lines:        []lineRecord{},
		Favorites:    session.FavoriteIDs(),
		LastModified: session.LastModified,
	}
	if session.Cart != nil {
		for line := range session.Cart.All() {
			record.Lines = append(record.Lines, lineRecord{
				ProductID:   line.ProductID,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice.String(),
				DisplayName: line.DisplayName,
			})
		}
	}
	return record
}

func fromRecord(record sessionRecord) (Session, error) {
	lines := []CartLine{}
	for _, l := range record.Lines {
		price, err := decimal.NewFromString(l.UnitPrice)
		if err != nil {
			return Session{}, fmt.Errorf("session %s has invalid price for product %d: %w", record.UID, l.ProductID, err)
		}
		line, err := NewCartLine(l.ProductID, l.Quantity, price, l.DisplayName)
		if err != nil {
			return Session{}, fmt.Errorf("session %s: %w", record.UID, err)
		}
		lines = append(lines, line)
	}

	favorites := map[int64]bool{}
	for _, id := range record.Favorites {
		favorites[id] = true
	}

	return Session{
		UID:          record.UID,
		Cart:         NewCart(lines...),
		Favorites:    favorites,
		LastModified: record.LastModified,
	}, nil
}
