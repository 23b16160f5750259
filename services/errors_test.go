package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorError(t *testing.T) {
	err := NewDomainError(ErrorTypeExternal, "embedding provider failed", errors.New("status 503"))
	assert.Equal(t, "external: embedding provider failed (status 503)", err.Error())

	bare := NewDomainError(ErrorTypeNotFound, "article not found", nil)
	assert.Equal(t, "not_found: article not found", bare.Error())
}

func TestDomainErrorIs(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", ErrArticleNotFound)
	assert.True(t, errors.Is(wrapped, ErrArticleNotFound))
	assert.True(t, IsNotFoundError(wrapped))
	assert.False(t, IsExternalError(wrapped))
}

func TestWrapExternal(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapExternal("generation provider failed", cause)

	assert.True(t, IsExternalError(err))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, IsValidationError(err))
}

func TestWrapInternal(t *testing.T) {
	err := WrapInternal("graph query failed", errors.New("session closed"))

	var domainErr *DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, ErrorTypeInternal, domainErr.Type)
}
