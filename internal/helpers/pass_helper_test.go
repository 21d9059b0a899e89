package helpers

import (
	"fmt"
	"testing"

	"github.com/confawards/confawards/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPassData(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	registration := &models.Registration{
		ID:      uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		EventID: uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		UserID:  uuid.MustParse("33333333-3333-3333-3333-333333333333"),
	}

	data := PassData(registration)
	expectedSignature := signPass(registration.ID, registration.EventID, registration.UserID, "test-secret")
	assert.Equal(t, fmt.Sprintf("registration:%s;event:%s;signature:%s",
		registration.ID, registration.EventID, expectedSignature), data)

	// Same inputs, same pass; door staff can verify offline.
	assert.Equal(t, data, PassData(registration))

	// A different secret invalidates the signature.
	other := signPass(registration.ID, registration.EventID, registration.UserID, "other-secret")
	assert.NotEqual(t, expectedSignature, other)
}
