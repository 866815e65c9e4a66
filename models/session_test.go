package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionExpiry(t *testing.T) {
	expires := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	s := &Session{ExpiresAt: expires}

	assert.False(t, s.IsExpiredAt(expires.Add(-time.Second)))
	assert.True(t, s.IsExpiredAt(expires))
	assert.True(t, s.IsExpiredAt(expires.Add(time.Hour)))
}

func TestSessionBeforeCreate(t *testing.T) {
	s := &Session{}
	assert.NoError(t, s.BeforeCreate(nil))
	assert.Len(t, s.ID, 36)

	fixed := &Session{ID: "fixed"}
	assert.NoError(t, fixed.BeforeCreate(nil))
	assert.Equal(t, "fixed", fixed.ID)
}
