package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/quickbasket/internal/auth"
	"github.com/example/quickbasket/internal/storage"
)

// Provider authenticates shoppers against a seeded user set and persists
// profiles through the KV abstraction so they survive restarts.
type Provider struct {
	kv storage.KV

	// seeded accounts: email -> (bcrypt hash, profile)
	accounts map[string]account
}

type account struct {
	passwordHash string
	user         User
}

// StorageKey returns the KV key a user profile is persisted under.
func StorageKey(userID string) string {
	return "user:" + userID
}

// NewProvider seeds the given users. Password hashes are bcrypt.
func NewProvider(kv storage.KV) *Provider {
	return &Provider{
		kv:       kv,
		accounts: make(map[string]account),
	}
}

// Register adds a seeded account. Used at startup with the demo user set.
func (p *Provider) Register(user User, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	p.accounts[user.Email] = account{passwordHash: hash, user: user}
	return nil
}

// Authenticate verifies the credentials and persists the profile. Unknown
// emails and wrong passwords both yield ErrInvalidCredentials.
func (p *Provider) Authenticate(ctx context.Context, email, password string) (User, error) {
	acct, ok := p.accounts[email]
	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, acct.passwordHash) {
		return User{}, ErrInvalidCredentials
	}

	if err := p.persist(ctx, acct.user); err != nil {
		log.Printf("[Identity] Failed to persist profile for user %s: %v", acct.user.ID, err)
	}
	return acct.user, nil
}

// GetUser loads a profile, preferring the persisted copy. A corrupt stored
// profile is discarded and the seeded one returned instead.
func (p *Provider) GetUser(ctx context.Context, userID string) (User, error) {
	data, ok, err := p.kv.Get(ctx, StorageKey(userID))
	if err == nil && ok {
		var u User
		if err := json.Unmarshal(data, &u); err == nil {
			return u, nil
		}
		log.Printf("[Identity] Discarding corrupt stored profile for user %s", userID)
		if err := p.kv.Delete(ctx, StorageKey(userID)); err != nil {
			log.Printf("[Identity] Failed to delete corrupt profile for user %s: %v", userID, err)
		}
	}

	for _, acct := range p.accounts {
		if acct.user.ID == userID {
			return acct.user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (p *Provider) persist(ctx context.Context, u User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return p.kv.Set(ctx, StorageKey(u.ID), data)
}
