// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MKhiriev/go-key-keeper/internal/app"
	"github.com/MKhiriev/go-key-keeper/internal/codec"
	"github.com/MKhiriev/go-key-keeper/internal/config"
	"github.com/MKhiriev/go-key-keeper/internal/crypto"
	"github.com/MKhiriev/go-key-keeper/internal/logger"
	"github.com/MKhiriev/go-key-keeper/internal/mock"
	"github.com/MKhiriev/go-key-keeper/internal/service"
	"github.com/MKhiriev/go-key-keeper/internal/store"
	"github.com/MKhiriev/go-key-keeper/internal/workers"
	"github.com/MKhiriev/go-key-keeper/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const bobAccount = `{"loginId":"bob","password":"hunter2","website":"example.com"}`

type fakeScreen struct {
	rotated  bool
	err      error
	identity string
	contact  string
}

func (f *fakeScreen) Settings(_ context.Context, identity, contact string) (bool, error) {
	f.identity, f.contact = identity, contact
	return f.rotated, f.err
}

type testEnv struct {
	repo     store.SecretKeyRepository
	services *service.ClientServices
	adapter  *mock.MockVaultAdapter
	screen   *fakeScreen
}

// newTestEnv собирает клиент на хранилище в памяти, дешёвом argon2 и мок-адаптере
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	repo := store.NewMemorySecretKeyRepository()
	vaultAdapter := mock.NewMockVaultAdapter(ctrl)
	engine := crypto.NewDefaultEngine(crypto.WithDefaultParams(models.KDFParams{
		Iterations: 1, MemoryKB: 64, Parallelism: 1, KeyLength: crypto.KeyLength,
	}))

	return &testEnv{
		repo:     repo,
		services: service.NewClientServices(repo, vaultAdapter, engine, workers.NewPool(2), logger.Nop()),
		adapter:  vaultAdapter,
		screen:   &fakeScreen{},
	}
}

func (e *testEnv) run(t *testing.T, cfg *config.StructuredConfig, stdin string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := NewApp(cfg, e.services, e.adapter, e.screen, logger.Nop(), WithIO(strings.NewReader(stdin), &out))
	err := a.Run(context.Background())
	return out.String(), err
}

func cfgFor(identity string, args ...string) *config.StructuredConfig {
	return &config.StructuredConfig{
		Session: config.SessionConfig{Identity: identity},
		Args:    args,
	}
}

func (e *testEnv) setup(t *testing.T, identity string) models.SecretKey {
	t.Helper()
	secret, err := e.services.SecretKeyService.GenerateAndStore(context.Background(), identity)
	require.NoError(t, err)
	return secret
}

func TestApp_Help(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, cfgFor(""), "")

	require.NoError(t, err)
	assert.Contains(t, out, "usage: go-key-keeper")
}

func TestApp_UnknownCommand(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, cfgFor("u1", "frobnicate"), "")

	require.ErrorIs(t, err, ErrUnknownCommand)
}

func TestApp_NoIdentity(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, cfgFor("", "status"), "")

	require.ErrorIs(t, err, service.ErrEmptyIdentity)
	assert.Equal(t, app.MsgEmptyIdentity, Describe(err))
}

func TestApp_IdentityFromToken(t *testing.T) {
	env := newTestEnv(t)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u7"}).
		SignedString([]byte("server-side-key"))
	require.NoError(t, err)

	env.adapter.EXPECT().SetToken(token)

	cfg := &config.StructuredConfig{
		Session: config.SessionConfig{Token: token},
		Args:    []string{"setup"},
	}
	_, err = env.run(t, cfg, "")
	require.NoError(t, err)

	ok, err := env.services.SecretKeyService.Has(context.Background(), "u7")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestApp_StatusAndLoginCleanup(t *testing.T) {
	env := newTestEnv(t)
	env.setup(t, "u2")

	out, err := env.run(t, cfgFor("u1", "status"), "")

	require.NoError(t, err)
	assert.Contains(t, out, app.MsgSecretKeyMissing)
	assert.Contains(t, out, "stored identities: \n")

	// ключ другого пользователя удалён при входе
	_, err = env.repo.Get(context.Background(), "u2")
	assert.ErrorIs(t, err, store.ErrSecretKeyNotFound)
}

func TestApp_LoginCleanupEveryRun(t *testing.T) {
	env := newTestEnv(t)
	env.setup(t, "u1")

	for range 2 {
		env.setup(t, "u2")

		_, err := env.run(t, cfgFor("u1", "status"), "")
		require.NoError(t, err)

		ids, err := env.services.SecretKeyService.Identities(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"u1"}, ids)
	}
}

func TestApp_Status_ReportsIdentitiesAndKDF(t *testing.T) {
	env := newTestEnv(t)
	env.setup(t, "u1")

	out, err := env.run(t, cfgFor("u1", "status"), "")

	require.NoError(t, err)
	assert.Contains(t, out, "secret key: present")
	assert.Contains(t, out, "stored identities: u1\n")
	assert.Contains(t, out, "kdf defaults: argon2id iterations=1 memory=64KiB parallelism=1")
}

func TestApp_Setup(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, cfgFor("u1", "setup"), "")
	require.NoError(t, err)

	secret, ok, err := env.services.SecretKeyService.Load(context.Background(), "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, out, string(secret))

	_, err = env.run(t, cfgFor("u1", "setup"), "")
	require.ErrorIs(t, err, ErrKeyExists)

	cfg := cfgFor("u1", "setup")
	cfg.AssumeYes = true
	_, err = env.run(t, cfg, "")
	require.NoError(t, err)

	replaced, _, err := env.services.SecretKeyService.Load(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotEqual(t, secret, replaced)
}

func TestApp_Show(t *testing.T) {
	env := newTestEnv(t)
	secret := env.setup(t, "u1")

	out, err := env.run(t, cfgFor("u1", "show"), "")
	require.NoError(t, err)
	assert.Equal(t, env.services.SecretKeyService.Mask(secret)+"\n", out)
	assert.NotContains(t, out, string(secret))

	out, err = env.run(t, cfgFor("u1", "show", "full"), "")
	require.NoError(t, err)
	assert.Equal(t, string(secret)+"\n", out)
}

func TestApp_Show_NoKey(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, cfgFor("u1", "show"), "")

	require.ErrorIs(t, err, service.ErrSecretKeyMissing)
}

func TestApp_Settings(t *testing.T) {
	env := newTestEnv(t)
	env.screen.rotated = true

	out, err := env.run(t, cfgFor("u1", "settings", "u1@example.com"), "")

	require.NoError(t, err)
	assert.Equal(t, "u1", env.screen.identity)
	assert.Equal(t, "u1@example.com", env.screen.contact)
	assert.Contains(t, out, "secret key rotated")
}

func TestApp_Rotate(t *testing.T) {
	tests := []struct {
		name      string
		assumeYes bool
		stdin     string
		wantErr   error
		rotated   bool
	}{
		{name: "confirmed", stdin: "yes\n", rotated: true},
		{name: "assume yes", assumeYes: true, rotated: true},
		{name: "declined", stdin: "no\n", wantErr: ErrAborted},
		{name: "eof", stdin: "", wantErr: ErrAborted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			before := env.setup(t, "u1")

			cfg := cfgFor("u1", "rotate")
			cfg.AssumeYes = tt.assumeYes
			_, err := env.run(t, cfg, tt.stdin)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			after, _, err := env.services.SecretKeyService.Load(context.Background(), "u1")
			require.NoError(t, err)
			assert.Equal(t, tt.rotated, after != before)
		})
	}
}

func TestApp_Rotate_NoKey(t *testing.T) {
	env := newTestEnv(t)
	cfg := cfgFor("u1", "rotate")
	cfg.AssumeYes = true

	_, err := env.run(t, cfg, "")

	require.ErrorIs(t, err, service.ErrSecretKeyMissing)
}

func TestApp_ExportToFile(t *testing.T) {
	env := newTestEnv(t)
	env.setup(t, "u1")

	cfg := cfgFor("u1", "export", "u1@example.com")
	cfg.Output = filepath.Join(t.TempDir(), "backup.txt")

	out, err := env.run(t, cfg, "")
	require.NoError(t, err)
	assert.Contains(t, out, cfg.Output)

	doc, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "u1")
	assert.Contains(t, string(doc), "u1@example.com")
}

func TestApp_Import(t *testing.T) {
	env := newTestEnv(t)
	backups := env.services.BackupService

	code, err := backups.EncodeForTransport(backups.BuildPayload("u1", "ABCD1234EFGH5678"))
	require.NoError(t, err)

	// код передаётся через stdin
	out, err := env.run(t, cfgFor("u1", "import"), code+"\n")
	require.NoError(t, err)
	assert.Contains(t, out, "secret key restored")

	secret, ok, err := env.services.SecretKeyService.Load(context.Background(), "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.SecretKey("ABCD1234EFGH5678"), secret)
}

func TestApp_Import_IdentityMismatch(t *testing.T) {
	env := newTestEnv(t)
	original := env.setup(t, "u1")
	backups := env.services.BackupService

	code, err := backups.EncodeForTransport(backups.BuildPayload("u2", "ABCD1234EFGH5678"))
	require.NoError(t, err)

	_, err = env.run(t, cfgFor("u1", "import", code), "")
	require.ErrorIs(t, err, service.ErrIdentityMismatch)

	secret, _, err := env.services.SecretKeyService.Load(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, original, secret)
}

func TestApp_Import_Empty(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, cfgFor("u1", "import"), "")

	require.ErrorIs(t, err, ErrMissingArgument)
}

func TestApp_Logout(t *testing.T) {
	env := newTestEnv(t)
	env.setup(t, "u1")

	_, err := env.run(t, cfgFor("u1", "logout"), "")
	require.NoError(t, err)

	ok, err := env.services.SecretKeyService.Has(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestApp_EncryptDecrypt(t *testing.T) {
	env := newTestEnv(t)
	env.setup(t, "u1")

	out, err := env.run(t, cfgFor("u1", "encrypt", bobAccount), "")
	require.NoError(t, err)

	envelope := strings.TrimSpace(out)
	_, err = codec.Deserialize(envelope)
	require.NoError(t, err)

	out, err = env.run(t, cfgFor("u1", "decrypt", envelope), "")
	require.NoError(t, err)
	assert.Equal(t, bobAccount+"\n", out)
}

func TestApp_Decrypt_WrongKey(t *testing.T) {
	env := newTestEnv(t)
	env.setup(t, "u1")

	out, err := env.run(t, cfgFor("u1", "encrypt", "hello"), "")
	require.NoError(t, err)

	cfg := cfgFor("u1", "rotate")
	cfg.AssumeYes = true
	_, err = env.run(t, cfg, "")
	require.NoError(t, err)

	_, err = env.run(t, cfgFor("u1", "decrypt", strings.TrimSpace(out)), "")
	require.ErrorIs(t, err, crypto.ErrDecryptionFailed)
	assert.Equal(t, app.MsgDecryptionFailed, Describe(err))
}

func TestApp_MissingArguments(t *testing.T) {
	for _, args := range [][]string{
		{"encrypt"}, {"decrypt"}, {"list"}, {"add", "v1", "account"}, {"delete"},
	} {
		t.Run(args[0], func(t *testing.T) {
			env := newTestEnv(t)
			env.setup(t, "u1")

			_, err := env.run(t, cfgFor("u1", args...), "")

			require.ErrorIs(t, err, ErrMissingArgument)
			assert.Equal(t, err.Error(), Describe(err))
		})
	}
}

func TestApp_AddAndList(t *testing.T) {
	env := newTestEnv(t)
	env.setup(t, "u1")

	var stored models.VaultItem
	env.adapter.EXPECT().
		AddItem(gomock.Any(), "v1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, item models.VaultItem) (models.VaultItem, error) {
			item.ID = "item-1"
			stored = item
			return item, nil
		})

	out, err := env.run(t, cfgFor("u1", "add", "v1", "account", "example", bobAccount), "")
	require.NoError(t, err)
	assert.Contains(t, out, "item item-1 added")
	assert.Equal(t, models.Account, stored.Type)
	assert.NotContains(t, stored.Ciphertext, "hunter2")

	ciphertext, err := codec.DecodeBytes(stored.Ciphertext)
	require.NoError(t, err)
	ciphertext[0] ^= 0x01

	broken := stored
	broken.ID = "item-2"
	broken.Ciphertext = codec.EncodeBytes(ciphertext)

	env.adapter.EXPECT().ListItems(gomock.Any(), "v1").Return([]models.VaultItem{stored, broken}, nil)

	out, err = env.run(t, cfgFor("u1", "list", "v1"), "")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "item-1")
	assert.Contains(t, lines[0], `"loginId":"bob"`)
	assert.Contains(t, lines[1], "item-2")
	assert.Contains(t, lines[1], app.MsgDecryptionFailed)
}

func TestApp_Add_InvalidData(t *testing.T) {
	env := newTestEnv(t)
	env.setup(t, "u1")

	_, err := env.run(t, cfgFor("u1", "add", "v1", "account", "example", "{not json"), "")
	require.ErrorIs(t, err, service.ErrInvalidItem)

	_, err = env.run(t, cfgFor("u1", "add", "v1", "account", "example", `{"loginId":"bob"}`), "")
	require.ErrorIs(t, err, service.ErrInvalidItem)
}

func TestApp_Delete(t *testing.T) {
	env := newTestEnv(t)
	env.adapter.EXPECT().DeleteItem(gomock.Any(), "item-1").Return(nil)

	out, err := env.run(t, cfgFor("u1", "delete", "item-1"), "")

	require.NoError(t, err)
	assert.Contains(t, out, "item item-1 deleted")
}

func TestParseItemType(t *testing.T) {
	tests := map[string]models.VaultItemType{
		"account":     models.Account,
		"LOGIN":       models.Account,
		"note":        models.SecureNote,
		"SECURE_NOTE": models.SecureNote,
		"card":        models.Card,
		"identity":    models.Identity,
		"other":       models.VaultItemType("OTHER"),
	}
	for in, want := range tests {
		assert.Equal(t, want, parseItemType(in), in)
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, ErrAborted.Error(), Describe(ErrAborted))
	assert.Equal(t, app.MsgUnexpected, Describe(errors.New("boom")))
	assert.Equal(t, app.MsgIdentityMismatch, Describe(service.ErrIdentityMismatch))
}
