package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"
	"path"
	"time"

	bolt "go.etcd.io/bbolt"
)

const historyBucket = "history"

var ErrClosed = errors.New("db not opened")

// Recorder is an append-only history with a newest-first recency window.
// *Store implements it locally and remote.Client over HTTP.
type Recorder interface {
	SaveHistory(expression, result string) error
	ListHistory(limit int) ([]HistoryEntry, error)
}

type Store struct {
	db *bolt.DB
}

// HistoryEntry is one successful evaluation: the expression as typed and the
// result as displayed.
type HistoryEntry struct {
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	Date       time.Time `json:"date"`
}

func NewStore(pathStr string) (*Store, error) {
	//ensure directory exists
	dir := path.Dir(pathStr)
	if dir != "" && dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}

	db, err := bolt.Open(pathStr, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists([]byte(historyBucket))
		return e
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// key is the bucket sequence, big endian so cursor order is insertion order
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// SaveHistory appends an entry after every entry saved before it.
func (s *Store) SaveHistory(expression, result string) error {
	if s.db == nil {
		return ErrClosed
	}
	entry := HistoryEntry{Expression: expression, Result: result, Date: time.Now().UTC()}
	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket([]byte(historyBucket))
		if bk == nil {
			return errors.New("history bucket missing")
		}
		seq, err := bk.NextSequence()
		if err != nil {
			return err
		}
		return bk.Put(itob(seq), b)
	})
}

// ListHistory returns up to limit entries, newest first.
func (s *Store) ListHistory(limit int) ([]HistoryEntry, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	out := []HistoryEntry{}
	err := s.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket([]byte(historyBucket))
		if bk == nil {
			return nil
		}
		c := bk.Cursor()
		for k, v := c.Last(); k != nil && len(out) < limit; k, v = c.Prev() {
			var en HistoryEntry
			if err := json.Unmarshal(v, &en); err == nil {
				out = append(out, en)
			}
		}
		return nil
	})
	return out, err
}

// Count returns the number of stored entries.
func (s *Store) Count() (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		if bk := tx.Bucket([]byte(historyBucket)); bk != nil {
			n = bk.Stats().KeyN
		}
		return nil
	})
	return n, err
}

// ClearHistory drops every entry. Sequence numbers restart.
func (s *Store) ClearHistory() error {
	if s.db == nil {
		return ErrClosed
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(historyBucket)); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket([]byte(historyBucket))
		return err
	})
}
