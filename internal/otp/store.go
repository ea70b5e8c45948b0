package otp

import (
	"crypto/rand"
	"math/big"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// DefaultTTL is how long a generated code stays valid.
const DefaultTTL = 10 * time.Minute

type entry struct {
	code    string
	expires time.Time
}

// Store keeps one pending OTP per email address. It is owned by whoever
// constructs it and passed by reference into the handlers that need it; codes
// are single use and expire after the TTL.
type Store struct {
	mu    sync.Mutex
	codes map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		codes: make(map[string]entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Generate creates a six-digit code for the email, replacing any pending one.
func (s *Store) Generate(email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", errors.Wrap(err, "failed to generate OTP")
	}
	code := formatCode(n.Int64() + 100000)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = entry{code: code, expires: s.now().Add(s.ttl)}
	return code, nil
}

// Verify checks the code and consumes it on success. Expired or unknown codes
// verify as false.
func (s *Store) Verify(email, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.codes[email]
	if !ok {
		return false
	}
	if s.now().After(e.expires) {
		delete(s.codes, email)
		return false
	}
	if e.code != code {
		return false
	}
	delete(s.codes, email)
	return true
}

func formatCode(n int64) string {
	digits := make([]byte, 6)
	for i := 5; i >= 0; i-- {
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits)
}
