package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/confawards/confawards/internal/models"
	"github.com/google/uuid"
)

// PassData builds the payload encoded into a registration's QR pass.
// The HMAC signature lets door staff verify a pass offline.
func PassData(registration *models.Registration) string {
	signature := signPass(registration.ID, registration.EventID, registration.UserID, os.Getenv("JWT_SECRET"))
	return fmt.Sprintf("registration:%s;event:%s;signature:%s",
		registration.ID.String(),
		registration.EventID.String(),
		signature,
	)
}

func signPass(registrationID, eventID, userID uuid.UUID, secretKey string) string {
	data := fmt.Sprintf("%s:%s:%s", registrationID.String(), eventID.String(), userID.String())
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
