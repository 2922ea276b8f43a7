package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afetlink/afetlink-backend/internal/models"
)

func volunteerWith(t *testing.T, key []byte, nationalID, email string) models.Volunteer {
	t.Helper()
	return models.Volunteer{
		EncryptedNationalID: sealString(t, key, nationalID),
		EncryptedEmail:      sealString(t, key, email),
	}
}

func TestFindVolunteerDuplicateNationalID(t *testing.T) {
	key := testKey(t)
	existing := []models.Volunteer{
		volunteerWith(t, key, "12345678901", "a@example.com"),
		volunteerWith(t, key, "98765432109", "b@example.com"),
	}

	// Same national ID encrypts to different ciphertext every time; the
	// match must still be found over decrypted values.
	dup, err := FindVolunteerDuplicate(context.Background(), existing, key, "98765432109", "c@example.com")
	require.NoError(t, err)
	assert.Equal(t, DupNationalID, dup)
}

func TestFindVolunteerDuplicateEmailCaseInsensitive(t *testing.T) {
	key := testKey(t)
	existing := []models.Volunteer{
		volunteerWith(t, key, "12345678901", "Ayse@Example.COM"),
	}

	dup, err := FindVolunteerDuplicate(context.Background(), existing, key, "11111111111", "ayse@example.com")
	require.NoError(t, err)
	assert.Equal(t, DupEmail, dup)
}

func TestFindVolunteerDuplicateNone(t *testing.T) {
	key := testKey(t)
	existing := []models.Volunteer{
		volunteerWith(t, key, "12345678901", "a@example.com"),
	}

	dup, err := FindVolunteerDuplicate(context.Background(), existing, key, "22222222222", "new@example.com")
	require.NoError(t, err)
	assert.Empty(t, dup)
}

func TestFindVolunteerDuplicateEmptyCollection(t *testing.T) {
	dup, err := FindVolunteerDuplicate(context.Background(), nil, testKey(t), "12345678901", "a@example.com")
	require.NoError(t, err)
	assert.Empty(t, dup)
}

func TestFindVolunteerDuplicateDecryptFailureAborts(t *testing.T) {
	key := testKey(t)
	v := volunteerWith(t, key, "12345678901", "a@example.com")

	// Wrong key: the scan must fail rather than silently admit a duplicate.
	_, err := FindVolunteerDuplicate(context.Background(), []models.Volunteer{v}, testKey(t), "12345678901", "a@example.com")
	assert.Error(t, err)
}
