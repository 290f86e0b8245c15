// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MKhiriev/go-key-keeper/internal/adapter"
	"github.com/MKhiriev/go-key-keeper/internal/app"
	"github.com/MKhiriev/go-key-keeper/internal/codec"
	"github.com/MKhiriev/go-key-keeper/internal/config"
	"github.com/MKhiriev/go-key-keeper/internal/logger"
	"github.com/MKhiriev/go-key-keeper/internal/service"
	"github.com/MKhiriev/go-key-keeper/internal/utils"
	"github.com/MKhiriev/go-key-keeper/models"
)

const usage = `usage: go-key-keeper [flags] <command> [args]

commands:
  status                         report whether a secret key exists
  setup                          generate and store a new secret key
  show [full]                    print the secret key (masked by default)
  settings                       open the interactive key settings screen
  rotate                         replace the secret key
  export [contact]               write the backup code and document
  import [code]                  restore a secret key from a backup code
  logout                         remove the secret key from this device
  encrypt <text>                 seal text into an envelope
  decrypt <envelope>             open an envelope
  list <vault>                   list and decrypt vault items
  add <vault> <type> <title> <json>  seal and upload a vault item
  delete <item>                  delete a vault item
  version                        print build information
`

type App struct {
	cfg      *config.StructuredConfig
	services *service.ClientServices
	adapter  adapter.VaultAdapter
	ui       SettingsScreen
	logger   *logger.Logger

	in  *bufio.Reader
	out io.Writer
}

// AppOption configures an [App].
type AppOption func(*App)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) AppOption {
	return func(a *App) {
		a.in = bufio.NewReader(in)
		a.out = out
	}
}

func NewApp(
	cfg *config.StructuredConfig,
	services *service.ClientServices,
	vaultAdapter adapter.VaultAdapter,
	ui SettingsScreen,
	logger *logger.Logger,
	opts ...AppOption,
) *App {
	a := &App{
		cfg:      cfg,
		services: services,
		adapter:  vaultAdapter,
		ui:       ui,
		logger:   logger,
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run resolves the identity, runs login cleanup and executes the command.
func (a *App) Run(ctx context.Context) error {
	command := a.cfg.Command()
	if command == "" || command == "help" {
		fmt.Fprint(a.out, usage)
		return nil
	}

	identity, err := a.identity()
	if err != nil {
		return err
	}
	if a.adapter != nil && a.cfg.Session.Token != "" {
		a.adapter.SetToken(a.cfg.Session.Token)
	}

	if _, err = a.services.SessionHooks.OnLogin(ctx, identity); err != nil {
		return fmt.Errorf("login cleanup: %w", err)
	}

	args := a.cfg.CommandArgs()
	a.logger.Debug().Str("func", "App.Run").Str("command", command).Msg("running command")

	switch command {
	case "status":
		return a.status(ctx, identity)
	case "setup":
		return a.setup(ctx, identity)
	case "show":
		return a.show(ctx, identity, args)
	case "settings":
		return a.settings(ctx, identity, args)
	case "rotate":
		return a.rotate(ctx, identity)
	case "export":
		return a.export(ctx, identity, args)
	case "import":
		return a.importKey(ctx, identity, args)
	case "logout":
		return a.logout(ctx, identity)
	case "encrypt":
		return a.encrypt(ctx, identity, args)
	case "decrypt":
		return a.decrypt(ctx, identity, args)
	case "list":
		return a.list(ctx, identity, args)
	case "add":
		return a.add(ctx, identity, args)
	case "delete":
		return a.deleteItem(ctx, args)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
}

// identity prefers the configured identity and falls back to the sub claim
// of the access token.
func (a *App) identity() (string, error) {
	if id := strings.TrimSpace(a.cfg.Session.Identity); id != "" {
		return id, nil
	}
	if a.cfg.Session.Token == "" {
		return "", service.ErrEmptyIdentity
	}
	id, err := utils.IdentityFromToken(a.cfg.Session.Token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", service.ErrEmptyIdentity, err)
	}
	return id, nil
}

func (a *App) status(ctx context.Context, identity string) error {
	ok, err := a.services.SecretKeyService.Has(ctx, identity)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(a.out, "secret key: present")
	} else {
		fmt.Fprintln(a.out, app.MsgSecretKeyMissing)
	}

	identities, err := a.services.SecretKeyService.Identities(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "stored identities: %s\n", strings.Join(identities, ", "))

	p := a.services.Engine.DefaultParams()
	fmt.Fprintf(a.out, "kdf defaults: argon2id iterations=%d memory=%dKiB parallelism=%d\n",
		p.Iterations, p.MemoryKB, p.Parallelism)
	return nil
}

func (a *App) setup(ctx context.Context, identity string) error {
	ok, err := a.services.SecretKeyService.Has(ctx, identity)
	if err != nil {
		return err
	}
	if ok && !a.cfg.AssumeYes {
		return ErrKeyExists
	}

	secret, err := a.services.SecretKeyService.GenerateAndStore(ctx, identity)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "secret key: %s\n", string(secret))
	fmt.Fprintln(a.out, "write it down or run export: without it your items cannot be decrypted")
	return nil
}

func (a *App) show(ctx context.Context, identity string, args []string) error {
	secret, err := a.requireKey(ctx, identity)
	if err != nil {
		return err
	}
	if len(args) > 0 && args[0] == "full" {
		fmt.Fprintln(a.out, string(secret))
		return nil
	}
	fmt.Fprintln(a.out, a.services.SecretKeyService.Mask(secret))
	return nil
}

func (a *App) settings(ctx context.Context, identity string, args []string) error {
	rotated, err := a.ui.Settings(ctx, identity, firstArg(args))
	if err != nil {
		return err
	}
	if rotated {
		fmt.Fprintln(a.out, "secret key rotated")
	}
	return nil
}

func (a *App) rotate(ctx context.Context, identity string) error {
	var rotation service.Rotation
	if err := rotation.Begin(); err != nil {
		return err
	}

	if !a.cfg.AssumeYes {
		fmt.Fprintln(a.out, "every item encrypted with the current key will become unreadable")
		fmt.Fprint(a.out, "type yes to continue: ")
		answer, _ := a.in.ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			_ = rotation.Abort()
			return ErrAborted
		}
	}

	var secret models.SecretKey
	err := rotation.Confirm(func() error {
		var err error
		secret, err = a.services.SecretKeyService.Rotate(ctx, identity)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "new secret key: %s\n", string(secret))
	return nil
}

func (a *App) export(ctx context.Context, identity string, args []string) error {
	secret, err := a.requireKey(ctx, identity)
	if err != nil {
		return err
	}

	backups := a.services.BackupService
	payload := backups.BuildPayload(identity, secret)
	doc, err := backups.Document(payload, firstArg(args))
	if err != nil {
		return err
	}

	if a.cfg.Output == "" {
		fmt.Fprintln(a.out, doc)
		return nil
	}
	if err = os.WriteFile(a.cfg.Output, []byte(doc+"\n"), 0o600); err != nil {
		return fmt.Errorf("write backup document: %w", err)
	}
	fmt.Fprintf(a.out, "backup written to %s\n", a.cfg.Output)
	return nil
}

func (a *App) importKey(ctx context.Context, identity string, args []string) error {
	text := strings.Join(args, " ")
	if text == "" {
		line, err := a.in.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("read backup code: %w", err)
		}
		text = line
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: backup code", ErrMissingArgument)
	}

	secret, err := a.services.BackupService.ParseImport(strings.TrimSpace(text), identity)
	if err != nil {
		return err
	}
	if err = a.services.SecretKeyService.Store(ctx, identity, secret); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "secret key restored")
	return nil
}

func (a *App) logout(ctx context.Context, identity string) error {
	if err := a.services.SessionHooks.OnLogout(ctx, identity); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "logged out, secret key removed from this device")
	return nil
}

func (a *App) encrypt(ctx context.Context, identity string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: text", ErrMissingArgument)
	}
	secret, err := a.requireKey(ctx, identity)
	if err != nil {
		return err
	}

	env, err := a.services.Engine.Encrypt(strings.Join(args, " "), secret)
	if err != nil {
		return err
	}
	text, err := codec.Serialize(env)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, text)
	return nil
}

func (a *App) decrypt(ctx context.Context, identity string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: envelope", ErrMissingArgument)
	}
	secret, err := a.requireKey(ctx, identity)
	if err != nil {
		return err
	}

	env, err := codec.Deserialize(strings.Join(args, " "))
	if err != nil {
		return err
	}
	plaintext, err := a.services.Engine.Decrypt(env, secret)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, plaintext)
	return nil
}

func (a *App) list(ctx context.Context, identity string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: vault id", ErrMissingArgument)
	}

	results, err := a.services.VaultItemService.List(ctx, identity, args[0])
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(a.out, "%s\t%s\t%s\t! %s\n", r.Item.ID, r.Item.Type, r.Item.Title, app.MessageFor(r.Err))
			continue
		}
		fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\n", r.Item.ID, r.Item.Type, r.Item.Title, r.Data)
	}
	return nil
}

func (a *App) add(ctx context.Context, identity string, args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("%w: add <vault> <type> <title> <json>", ErrMissingArgument)
	}

	data := json.RawMessage(strings.Join(args[3:], " "))
	if !json.Valid(data) {
		return fmt.Errorf("%w: item data is not json", service.ErrInvalidItem)
	}
	input := models.VaultItemInput{
		Type:  parseItemType(args[1]),
		Title: args[2],
		Data:  data,
	}

	item, err := a.services.VaultItemService.Create(ctx, identity, args[0], input)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "item %s added\n", item.ID)
	return nil
}

func (a *App) deleteItem(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: item id", ErrMissingArgument)
	}
	if err := a.services.VaultItemService.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "item %s deleted\n", args[0])
	return nil
}

func (a *App) requireKey(ctx context.Context, identity string) (models.SecretKey, error) {
	secret, ok, err := a.services.SecretKeyService.Load(ctx, identity)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", service.ErrSecretKeyMissing
	}
	return secret, nil
}

// parseItemType accepts the wire names and a few short aliases.
func parseItemType(s string) models.VaultItemType {
	switch strings.ToLower(s) {
	case "account", "login":
		return models.Account
	case "note", "secure_note", "securenote":
		return models.SecureNote
	case "card":
		return models.Card
	case "identity":
		return models.Identity
	default:
		return models.VaultItemType(strings.ToUpper(s))
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
