// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-key-keeper/models"
)

const (
	secretKeysTable = "secret_keys"
	legacyKeyTable  = "legacy_secret_key"
)

// sqlBuilder is the statement builder for SQLite ("?" placeholders).
var sqlBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildGetSecretKeyQuery(identity string) (string, []any, error) {
	return sqlBuilder.
		Select("identity", "secret", "created_at", "updated_at").
		From(secretKeysTable).
		Where(sq.Eq{"identity": identity}).
		ToSql()
}

func buildPutSecretKeyQuery(identity string, secret models.SecretKey, now time.Time) (string, []any, error) {
	return sqlBuilder.
		Insert(secretKeysTable).
		Columns("identity", "secret", "created_at", "updated_at").
		Values(identity, string(secret), now, now).
		Suffix("ON CONFLICT(identity) DO UPDATE SET secret = excluded.secret, updated_at = excluded.updated_at").
		ToSql()
}

func buildDeleteSecretKeyQuery(identity string) (string, []any, error) {
	return sqlBuilder.
		Delete(secretKeysTable).
		Where(sq.Eq{"identity": identity}).
		ToSql()
}

func buildListIdentitiesQuery() (string, []any, error) {
	return sqlBuilder.
		Select("identity").
		From(secretKeysTable).
		OrderBy("identity").
		ToSql()
}

func buildDeleteOtherSecretKeysQuery(identity string) (string, []any, error) {
	return sqlBuilder.
		Delete(secretKeysTable).
		Where(sq.NotEq{"identity": identity}).
		ToSql()
}

func buildDeleteLegacySecretKeyQuery() (string, []any, error) {
	return sqlBuilder.
		Delete(legacyKeyTable).
		ToSql()
}

func buildPutLegacySecretKeyQuery(secret models.SecretKey) (string, []any, error) {
	return sqlBuilder.
		Insert(legacyKeyTable).
		Columns("id", "secret").
		Values(1, string(secret)).
		Suffix("ON CONFLICT(id) DO UPDATE SET secret = excluded.secret").
		ToSql()
}
