package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"spotui/internal/domain"
	"spotui/internal/logger"

	"go.etcd.io/bbolt"
)

var tracksBucket = []byte("tracks")

// BboltCatalog keeps the track catalog in a bbolt bucket. Keys are zero-padded
// positions so cursor order is catalog order.
type BboltCatalog struct {
	db *bbolt.DB
}

func NewBboltCatalog(dbPath string) (*BboltCatalog, error) {
	options := &bbolt.Options{Timeout: 1 * time.Second}
	db, err := bbolt.Open(dbPath, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("could not open bbolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(tracksBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create tracks bucket: %w", err)
	}

	return &BboltCatalog{db: db}, nil
}

func (s *BboltCatalog) createTrackKey(position int) []byte {
	return []byte(fmt.Sprintf("%08d", position))
}

// Seed replaces the stored catalog with tracks.
func (s *BboltCatalog) Seed(tracks []domain.Track) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(tracksBucket); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
			return err
		}
		b, err := tx.CreateBucket(tracksBucket)
		if err != nil {
			return err
		}

		for i, track := range tracks {
			value, err := json.Marshal(track)
			if err != nil {
				return fmt.Errorf("error serializing track %s: %w", track.ID, err)
			}
			if err := b.Put(s.createTrackKey(i), value); err != nil {
				return err
			}
		}
		logger.Log.Info().Int("tracks", len(tracks)).Msg("Catalog seeded")
		return nil
	})
}

func (s *BboltCatalog) Tracks() ([]domain.Track, error) {
	var tracks []domain.Track

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(tracksBucket)
		c := b.Cursor()

		for k, v := c.First(); k != nil; k, v = c.Next() {
			var track domain.Track
			if err := json.Unmarshal(v, &track); err != nil {
				return fmt.Errorf("error deserializing track %s: %w", k, err)
			}
			tracks = append(tracks, track)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return tracks, nil
}

func (s *BboltCatalog) Count() (int, error) {
	n := 0
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(tracksBucket).Stats().KeyN
		return nil
	})
	return n, err
}

func (s *BboltCatalog) Close() error {
	return s.db.Close()
}
