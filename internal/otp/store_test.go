package otp

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSixDigitCode(t *testing.T) {
	s := NewStore(DefaultTTL)
	for i := 0; i < 20; i++ {
		code, err := s.Generate("user@example.com")
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), code)
	}
}

func TestVerifyConsumesCode(t *testing.T) {
	s := NewStore(DefaultTTL)
	code, err := s.Generate("user@example.com")
	require.NoError(t, err)

	assert.True(t, s.Verify("user@example.com", code))
	// Single use
	assert.False(t, s.Verify("user@example.com", code))
}

func TestVerifyWrongCode(t *testing.T) {
	s := NewStore(DefaultTTL)
	code, err := s.Generate("user@example.com")
	require.NoError(t, err)

	assert.False(t, s.Verify("user@example.com", "000000"))
	// Wrong attempts do not consume the pending code.
	assert.True(t, s.Verify("user@example.com", code))
}

func TestVerifyUnknownEmail(t *testing.T) {
	s := NewStore(DefaultTTL)
	assert.False(t, s.Verify("nobody@example.com", "123456"))
}

func TestRegenerateReplacesCode(t *testing.T) {
	s := NewStore(DefaultTTL)
	old, err := s.Generate("user@example.com")
	require.NoError(t, err)
	fresh, err := s.Generate("user@example.com")
	require.NoError(t, err)

	if old != fresh {
		assert.False(t, s.Verify("user@example.com", old))
	}
	assert.True(t, s.Verify("user@example.com", fresh))
}

func TestExpiredCodeFailsVerification(t *testing.T) {
	s := NewStore(time.Minute)
	now := time.Now()
	s.now = func() time.Time { return now }

	code, err := s.Generate("user@example.com")
	require.NoError(t, err)

	s.now = func() time.Time { return now.Add(2 * time.Minute) }
	assert.False(t, s.Verify("user@example.com", code))

	// Expired entries are cleaned up.
	s.now = func() time.Time { return now }
	assert.False(t, s.Verify("user@example.com", code))
}
