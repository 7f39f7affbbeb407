package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var fetchesBucket = []byte("fetches")

// Store keeps per-source fetch history in a bbolt database.
type Store struct {
	db *bolt.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(fetchesBucket)
		return createErr
	})
	if err != nil {
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SaveRecord(rec *FetchRecord) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(fetchesBucket)
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return b.Put([]byte(rec.Source), data)
	})
}

func (s *Store) GetRecord(source string) (*FetchRecord, error) {
	var rec FetchRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(fetchesBucket)
		data := b.Get([]byte(source))
		if data == nil {
			return fmt.Errorf("no record for source")
		}
		return json.Unmarshal(data, &rec)
	})
	return &rec, err
}

// GetAllRecords returns every source's last fetch outcome, sorted by feed
// title (sources that never decoded fall back to the URL).
func (s *Store) GetAllRecords() ([]*FetchRecord, error) {
	var records []*FetchRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(fetchesBucket)
		return b.ForEach(func(_ []byte, v []byte) error {
			var rec FetchRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			records = append(records, &rec)
			return nil
		})
	})
	sort.Slice(records, func(i, j int) bool {
		ti := records[i].FeedTitle
		tj := records[j].FeedTitle
		if ti == "" {
			ti = records[i].Source
		}
		if tj == "" {
			tj = records[j].Source
		}
		return strings.ToLower(ti) < strings.ToLower(tj)
	})
	return records, err
}
