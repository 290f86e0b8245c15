// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-key-keeper/internal/logger"
	"github.com/MKhiriev/go-key-keeper/models"
)

type sqliteSecretKeyRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSQLiteSecretKeyRepository returns a [SecretKeyRepository] over an
// already migrated SQLite database.
func NewSQLiteSecretKeyRepository(db *DB, logger *logger.Logger) SecretKeyRepository {
	return &sqliteSecretKeyRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (r *sqliteSecretKeyRepository) Get(ctx context.Context, identity string) (models.SecretKeyRecord, error) {
	query, args, err := buildGetSecretKeyQuery(identity)
	if err != nil {
		return models.SecretKeyRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var record models.SecretKeyRecord
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&record.Identity,
		&record.Secret,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SecretKeyRecord{}, ErrSecretKeyNotFound
	}
	if err != nil {
		r.logger.Err(err).
			Str("func", "sqliteSecretKeyRepository.Get").
			Str("identity", identity).
			Msg("failed to query secret key")
		return models.SecretKeyRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

func (r *sqliteSecretKeyRepository) Put(ctx context.Context, identity string, secret models.SecretKey) error {
	query, args, err := buildPutSecretKeyQuery(identity, secret, r.now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "sqliteSecretKeyRepository.Put").
			Str("identity", identity).
			Msg("failed to upsert secret key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sqliteSecretKeyRepository) Delete(ctx context.Context, identity string) error {
	query, args, err := buildDeleteSecretKeyQuery(identity)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "sqliteSecretKeyRepository.Delete").
			Str("identity", identity).
			Msg("failed to delete secret key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sqliteSecretKeyRepository) ListIdentities(ctx context.Context) ([]string, error) {
	query, args, err := buildListIdentitiesQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).
			Str("func", "sqliteSecretKeyRepository.ListIdentities").
			Msg("failed to query identities")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	identities := make([]string, 0)
	for rows.Next() {
		var identity string
		if err = rows.Scan(&identity); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		identities = append(identities, identity)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return identities, nil
}

func (r *sqliteSecretKeyRepository) PurgeExcept(ctx context.Context, identity string) (int, error) {
	log := r.logger.With().Str("func", "sqliteSecretKeyRepository.PurgeExcept").Logger()

	legacyQuery, legacyArgs, err := buildDeleteLegacySecretKeyQuery()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	othersQuery, othersArgs, err := buildDeleteOtherSecretKeysQuery(identity)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("failed to begin transaction")
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	removed := 0
	for _, stmt := range []struct {
		query string
		args  []any
	}{
		{legacyQuery, legacyArgs},
		{othersQuery, othersArgs},
	} {
		res, execErr := tx.ExecContext(ctx, stmt.query, stmt.args...)
		if execErr != nil {
			log.Err(execErr).Msg("failed to purge secret keys")
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
		affected, execErr := res.RowsAffected()
		if execErr != nil {
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
		removed += int(affected)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Msg("failed to commit transaction")
		return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return removed, nil
}

// PutLegacy writes the unscoped legacy key. Only pre-identity clients wrote
// this slot; it exists here to reproduce such databases.
func (r *sqliteSecretKeyRepository) PutLegacy(ctx context.Context, secret models.SecretKey) error {
	query, args, err := buildPutLegacySecretKeyQuery(secret)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *sqliteSecretKeyRepository) Close() error {
	return r.db.Close()
}
