package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afetlink/afetlink-backend/internal/models"
	"github.com/afetlink/afetlink-backend/pkg/envelope"
)

func sealString(t *testing.T, key []byte, s string) *envelope.Envelope {
	t.Helper()
	env, err := envelope.Seal(s, key)
	require.NoError(t, err)
	return env
}

func TestDecryptScrapedReportSplicesPlaintext(t *testing.T) {
	key := testKey(t)
	now := time.Now()
	report := models.ScrapedReport{
		ID:                primitive.NewObjectID(),
		EncryptedText:     sealString(t, key, "enkaz altında 3 kişi"),
		EncryptedImageURL: sealString(t, key, "https://pbs.twimg.com/media/x.jpg"),
		Username:          "tanik123",
		TweetCreatedAt:    &now,
		CreatedAt:         now,
	}

	got, err := DecryptScrapedReport(report, key)
	require.NoError(t, err)

	assert.Equal(t, "enkaz altında 3 kişi", got["text"])
	assert.Equal(t, "https://pbs.twimg.com/media/x.jpg", got["image_url"])
	assert.Equal(t, "tanik123", got["username"])
	// Callers never see raw envelopes in normal reads.
	assert.NotContains(t, got, "encrypted_text")
	assert.NotContains(t, got, "encrypted_image_url")
}

func TestDecryptScrapedReportOptionalImageAbsent(t *testing.T) {
	key := testKey(t)
	report := models.ScrapedReport{
		ID:            primitive.NewObjectID(),
		EncryptedText: sealString(t, key, "yardım"),
	}

	got, err := DecryptScrapedReport(report, key)
	require.NoError(t, err)

	assert.Equal(t, "yardım", got["text"])
	assert.NotContains(t, got, "image_url")
}

func TestDecryptScrapedReportsBatchFailFast(t *testing.T) {
	key := testKey(t)
	good := models.ScrapedReport{ID: primitive.NewObjectID(), EncryptedText: sealString(t, key, "ok")}
	bad := models.ScrapedReport{ID: primitive.NewObjectID(), EncryptedText: sealString(t, key, "ok")}
	bad.EncryptedText.Ciphertext = good.EncryptedText.Ciphertext // wrong nonce/tag pair

	results, err := DecryptScrapedReports(context.Background(), []models.ScrapedReport{good, bad}, key)
	assert.Error(t, err)
	assert.Nil(t, results)
}

func TestDecryptVolunteer(t *testing.T) {
	key := testKey(t)
	v := models.Volunteer{
		ID:                  primitive.NewObjectID(),
		EncryptedName:       sealString(t, key, "Ayşe Yılmaz"),
		EncryptedNationalID: sealString(t, key, "12345678901"),
		EncryptedPhone:      sealString(t, key, "05321234567"),
		EncryptedEmail:      sealString(t, key, "ayse@example.com"),
		Age:                 34,
		Gender:              models.GenderFemale,
		Il:                  "Hatay",
		Ilce:                "Antakya",
		Certified:           true,
		SkillAreas:          []string{"ilk yardım", "arama kurtarma"},
	}

	got, err := DecryptVolunteer(v, key)
	require.NoError(t, err)

	assert.Equal(t, "Ayşe Yılmaz", got["name"])
	assert.Equal(t, "12345678901", got["national_id"])
	assert.Equal(t, "05321234567", got["phone"])
	assert.Equal(t, "ayse@example.com", got["email"])
	assert.Equal(t, "Hatay", got["il"])
	assert.NotContains(t, got, "address") // optional, absent
	assert.NotContains(t, got, "encrypted_name")
	assert.NotContains(t, got, "encrypted_national_id")
}

func TestDecryptCaseFull(t *testing.T) {
	key := testKey(t)
	a := models.Address{Il: "Ankara", Ilce: "Çankaya", Mahalle: "Kızılay", No: &models.StringOrNumber{Str: "12/A"}}
	encAddr, err := envelope.Seal(a, key)
	require.NoError(t, err)

	c := models.Case{
		ID:                   primitive.NewObjectID(),
		EncryptedSummary:     sealString(t, key, "bina hasarlı, yardım bekliyor"),
		EncryptedAddressLink: sealString(t, key, "https://maps.example.com/x"),
		EncryptedAddress:     encAddr,
	}

	got, err := DecryptCase(c, key)
	require.NoError(t, err)

	assert.Equal(t, "bina hasarlı, yardım bekliyor", got["summary_note"])
	assert.Equal(t, "https://maps.example.com/x", got["address_link"])

	gotAddr, ok := got["address"].(models.Address)
	require.True(t, ok)
	assert.Equal(t, "Çankaya", gotAddr.Ilce)
	assert.Equal(t, "12/A", gotAddr.No.String())
}

func TestDecryptVolunteerWrongKeyFails(t *testing.T) {
	key := testKey(t)
	v := models.Volunteer{EncryptedName: sealString(t, key, "Ali")}

	_, err := DecryptVolunteer(v, testKey(t))
	assert.ErrorIs(t, err, envelope.ErrAuthenticationFailed)
}
