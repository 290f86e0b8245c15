// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/MKhiriev/go-key-keeper/internal/logger"
	"github.com/MKhiriev/go-key-keeper/models"
)

// Bucket names
var (
	secretKeysBucket = []byte("secret_keys")
	legacyBucket     = []byte("legacy")
	legacySecretName = []byte("secret_key")
)

const boltOpenTimeout = 5 * time.Second

type boltSecretKeyRepository struct {
	db     *bbolt.DB
	logger *logger.Logger
	now    func() time.Time
}

// NewBoltSecretKeyRepository opens (creating if needed) the bbolt file at
// path and returns a [SecretKeyRepository] over it.
func NewBoltSecretKeyRepository(path string, log *logger.Logger) (SecretKeyRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create bolt directory: %w", err)
		}
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		log.Err(err).Str("func", "NewBoltSecretKeyRepository").Msg("error opening bolt database")
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{secretKeysBucket, legacyBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	log.Debug().Str("func", "NewBoltSecretKeyRepository").Msg("opened bolt database successfully")

	return &boltSecretKeyRepository{
		db:     db,
		logger: log,
		now:    time.Now,
	}, nil
}

func (r *boltSecretKeyRepository) Get(_ context.Context, identity string) (models.SecretKeyRecord, error) {
	var record models.SecretKeyRecord

	err := r.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(secretKeysBucket).Get([]byte(identity))
		if raw == nil {
			return ErrSecretKeyNotFound
		}
		if err := json.Unmarshal(raw, &record); err != nil {
			return fmt.Errorf("%w: %w", ErrCorruptedRecord, err)
		}
		return nil
	})
	if err != nil {
		return models.SecretKeyRecord{}, err
	}

	return record, nil
}

func (r *boltSecretKeyRepository) Put(_ context.Context, identity string, secret models.SecretKey) error {
	err := r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(secretKeysBucket)
		now := r.now().UTC()

		record := models.SecretKeyRecord{Identity: identity, CreatedAt: now}
		if raw := bucket.Get([]byte(identity)); raw != nil {
			if err := json.Unmarshal(raw, &record); err != nil {
				return fmt.Errorf("%w: %w", ErrCorruptedRecord, err)
			}
		}
		record.Secret = secret
		record.UpdatedAt = now

		raw, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal secret key record: %w", err)
		}
		return bucket.Put([]byte(identity), raw)
	})
	if err != nil {
		r.logger.Err(err).
			Str("func", "boltSecretKeyRepository.Put").
			Str("identity", identity).
			Msg("failed to store secret key")
		return err
	}

	return nil
}

func (r *boltSecretKeyRepository) Delete(_ context.Context, identity string) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(secretKeysBucket).Delete([]byte(identity))
	})
}

func (r *boltSecretKeyRepository) ListIdentities(_ context.Context) ([]string, error) {
	identities := make([]string, 0)

	// bbolt iterates keys in byte order
	err := r.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(secretKeysBucket).ForEach(func(k, _ []byte) error {
			identities = append(identities, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return identities, nil
}

func (r *boltSecretKeyRepository) PurgeExcept(_ context.Context, identity string) (int, error) {
	removed := 0

	err := r.db.Update(func(tx *bbolt.Tx) error {
		legacy := tx.Bucket(legacyBucket)
		if legacy.Get(legacySecretName) != nil {
			if err := legacy.Delete(legacySecretName); err != nil {
				return err
			}
			removed++
		}

		bucket := tx.Bucket(secretKeysBucket)
		var stale [][]byte
		if err := bucket.ForEach(func(k, _ []byte) error {
			if string(k) != identity {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		}); err != nil {
			return err
		}
		for _, k := range stale {
			if err := bucket.Delete(k); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		r.logger.Err(err).
			Str("func", "boltSecretKeyRepository.PurgeExcept").
			Msg("failed to purge secret keys")
		return 0, err
	}

	return removed, nil
}

// PutLegacy writes the unscoped legacy key. Only pre-identity clients wrote
// this slot; it exists here to reproduce such databases.
func (r *boltSecretKeyRepository) PutLegacy(_ context.Context, secret models.SecretKey) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(legacyBucket).Put(legacySecretName, []byte(secret))
	})
}

func (r *boltSecretKeyRepository) Close() error {
	return r.db.Close()
}
