package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"sk-barangay-service/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// ErrOTPNotFound is returned when no code is pending for an email
var ErrOTPNotFound = errors.New("otp not found")

// retention keeps expired entries around long enough to report them as expired
const retention = 5 * time.Minute

// OTP actions
const (
	ActionLogin         = "login"
	ActionPasswordReset = "password-reset"
)

// OTPEntry is one pending one-time code
type OTPEntry struct {
	Code      string    `json:"code"`
	UserID    uint      `json:"user_id"`
	Position  string    `json:"position"`
	Action    string    `json:"action"`
	ExpiresAt time.Time `json:"expires_at"`
	Attempts  int       `json:"-"`
}

// Expired reports whether the entry is past its expiry at now
func (e *OTPEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// InterfaceOTPStore keeps one pending code per email
type InterfaceOTPStore interface {
	Save(ctx context.Context, email string, entry OTPEntry) error
	Get(ctx context.Context, email string) (*OTPEntry, error)
	Delete(ctx context.Context, email string) error
	// IncrementAttempts atomically counts one failed guess and returns the new total
	IncrementAttempts(ctx context.Context, email string) (int, error)
}

// RedisOTPStore stores codes as JSON under otp:<email> and counts failed
// guesses under otp:attempts:<email>
type RedisOTPStore struct {
	Client *redis.Client
	now    func() time.Time
}

// NewRedisClient creates a client from config
func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// NewRedisOTPStore wraps an existing client
func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{Client: client, now: time.Now}
}

func otpKey(email string) string {
	return "otp:" + email
}

func attemptsKey(email string) string {
	return "otp:attempts:" + email
}

// 1 Save stores entry with a TTL slightly past its expiry and resets the
// attempt counter
func (s *RedisOTPStore) Save(ctx context.Context, email string, entry OTPEntry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	ttl := entry.ExpiresAt.Sub(s.now()) + retention
	if ttl <= 0 {
		return s.Delete(ctx, email)
	}
	_, err = s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, otpKey(email), value, ttl)
		pipe.Del(ctx, attemptsKey(email))
		return nil
	})
	return err
}

// 2 Get loads the pending entry for email along with its attempt count
func (s *RedisOTPStore) Get(ctx context.Context, email string) (*OTPEntry, error) {
	var entryCmd, attemptsCmd *redis.StringCmd
	_, err := s.Client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		entryCmd = pipe.Get(ctx, otpKey(email))
		attemptsCmd = pipe.Get(ctx, attemptsKey(email))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	value, err := entryCmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrOTPNotFound
	}
	if err != nil {
		return nil, err
	}

	var entry OTPEntry
	if err := json.Unmarshal(value, &entry); err != nil {
		return nil, err
	}
	attempts, err := attemptsCmd.Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	entry.Attempts = attempts
	return &entry, nil
}

// 3 Delete removes any pending entry for email
func (s *RedisOTPStore) Delete(ctx context.Context, email string) error {
	return s.Client.Del(ctx, otpKey(email), attemptsKey(email)).Err()
}

// 4 IncrementAttempts uses INCR so concurrent guesses each get their own count.
// The counter expires together with the entry.
func (s *RedisOTPStore) IncrementAttempts(ctx context.Context, email string) (int, error) {
	ttl, err := s.Client.PTTL(ctx, otpKey(email)).Result()
	if err != nil {
		return 0, err
	}
	if ttl <= 0 {
		return 0, ErrOTPNotFound
	}

	var incr *redis.IntCmd
	_, err = s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, attemptsKey(email))
		pipe.PExpire(ctx, attemptsKey(email), ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

// MemoryOTPStore is a single-process store for development and tests
type MemoryOTPStore struct {
	mu    sync.Mutex
	items map[string]OTPEntry
	now   func() time.Time
}

// NewMemoryOTPStore creates an empty store
func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{items: make(map[string]OTPEntry), now: time.Now}
}

// Save stores entry, dropping stale entries of other emails
func (s *MemoryOTPStore) Save(_ context.Context, email string, entry OTPEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, v := range s.items {
		if now.After(v.ExpiresAt.Add(retention)) {
			delete(s.items, k)
		}
	}
	s.items[email] = entry
	return nil
}

// Get returns a copy of the pending entry for email
func (s *MemoryOTPStore) Get(_ context.Context, email string) (*OTPEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.items[email]
	if !ok || s.now().After(entry.ExpiresAt.Add(retention)) {
		delete(s.items, email)
		return nil, ErrOTPNotFound
	}
	return &entry, nil
}

// Delete removes the entry for email
func (s *MemoryOTPStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	delete(s.items, email)
	s.mu.Unlock()
	return nil
}

// IncrementAttempts bumps the attempt count of the pending entry
func (s *MemoryOTPStore) IncrementAttempts(_ context.Context, email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.items[email]
	if !ok {
		return 0, ErrOTPNotFound
	}
	entry.Attempts++
	s.items[email] = entry
	return entry.Attempts, nil
}

// NewOTPStore picks the store named by OTP_STORE
func NewOTPStore(cfg *config.Config, client *redis.Client) InterfaceOTPStore {
	if cfg.OTPStore == "memory" || client == nil {
		return NewMemoryOTPStore()
	}
	return NewRedisOTPStore(client)
}
