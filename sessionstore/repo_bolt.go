package sessionstore

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/swiftship/courier-web/session"
	"go.etcd.io/bbolt"
)

var sessionsBucket = []byte("sessions")

const sweepInterval = 5 * time.Minute

// Bolt persists session records in a bbolt database so logins survive a
// server restart. Records older than maxAge are treated as gone on read and
// removed by a background sweep.
type Bolt struct {
	db       *bbolt.DB
	maxAge   time.Duration
	stopOnce sync.Once
	stopCh   chan struct{}
}

var _ session.Repo = (*Bolt)(nil)

func NewBolt(path string, maxAge time.Duration) (*Bolt, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "[NewBolt] open")
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "[NewBolt] create bucket")
	}

	b := &Bolt{
		db:     db,
		maxAge: maxAge,
		stopCh: make(chan struct{}),
	}
	go b.sweepLoop()
	return b, nil
}

// Close stops the sweep goroutine and closes the database.
func (b *Bolt) Close() error {
	b.stopOnce.Do(func() { close(b.stopCh) })
	return b.db.Close()
}

func (b *Bolt) Upsert(sessionID string, s session.Session) error {
	if sessionID == "" {
		return session.NotFoundErr
	}
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "[Bolt.Upsert] marshal")
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionsBucket).Put([]byte(sessionID), data)
	})
}

func (b *Bolt) Get(sessionID string) (session.Session, error) {
	var s session.Session
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(sessionsBucket).Get([]byte(sessionID))
		if data == nil {
			return session.NotFoundErr
		}
		return json.Unmarshal(data, &s)
	})
	if err != nil {
		if errors.Is(err, session.NotFoundErr) {
			return session.Session{}, session.NotFoundErr
		}
		return session.Session{}, errors.Wrap(err, "[Bolt.Get]")
	}

	if b.expired(s) {
		_ = b.Delete(sessionID)
		return session.Session{}, session.NotFoundErr
	}
	return s, nil
}

func (b *Bolt) Delete(sessionID string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionsBucket).Delete([]byte(sessionID))
	})
}

func (b *Bolt) expired(s session.Session) bool {
	return b.maxAge > 0 && !s.CreatedAt.IsZero() && time.Since(s.CreatedAt) > b.maxAge
}

func (b *Bolt) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-b.stopCh:
			return
		case <-ticker.C:
			b.sweepExpired()
		}
	}
}

func (b *Bolt) sweepExpired() {
	var stale [][]byte
	_ = b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionsBucket).ForEach(func(k, v []byte) error {
			var s session.Session
			if err := json.Unmarshal(v, &s); err != nil || b.expired(s) {
				key := make([]byte, len(k))
				copy(key, k)
				stale = append(stale, key)
			}
			return nil
		})
	})
	if len(stale) == 0 {
		return
	}
	_ = b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(sessionsBucket)
		for _, key := range stale {
			if err := bucket.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}
