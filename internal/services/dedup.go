package services

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/afetlink/afetlink-backend/internal/models"
	"github.com/afetlink/afetlink-backend/pkg/envelope"
)

// Duplicate fields reported by FindVolunteerDuplicate.
const (
	DupNationalID = "national_id"
	DupEmail      = "email"
)

// FindVolunteerDuplicate scans every existing volunteer, decrypting the
// national ID and email envelopes, and reports which unique field the
// candidate collides with ("" when none).
//
// Ciphertext is non-deterministic (fresh nonce per write), so equality has
// to be checked over decrypted values: this is an O(existing volunteers)
// decrypt-and-compare pass on every registration. Two concurrent
// registrations with the same national ID can both pass this scan before
// either commits; the check-then-act race is accepted at current scale.
func FindVolunteerDuplicate(ctx context.Context, volunteers []models.Volunteer, key []byte, nationalID, email string) (string, error) {
	type identity struct {
		nationalID string
		email      string
	}

	identities := make([]identity, len(volunteers))
	g, _ := errgroup.WithContext(ctx)
	for i, v := range volunteers {
		i, v := i, v
		g.Go(func() error {
			var id identity
			if v.EncryptedNationalID != nil {
				if err := envelope.Open(v.EncryptedNationalID, key, &id.nationalID); err != nil {
					return err
				}
			}
			if v.EncryptedEmail != nil {
				if err := envelope.Open(v.EncryptedEmail, key, &id.email); err != nil {
					return err
				}
			}
			identities[i] = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	for _, id := range identities {
		if id.nationalID != "" && id.nationalID == nationalID {
			return DupNationalID, nil
		}
		// Email uniqueness is case-insensitive.
		if id.email != "" && strings.EqualFold(id.email, email) {
			return DupEmail, nil
		}
	}
	return "", nil
}
