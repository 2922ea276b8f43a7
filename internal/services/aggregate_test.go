package services

import (
	"context"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afetlink/afetlink-backend/internal/models"
	"github.com/afetlink/afetlink-backend/pkg/envelope"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, envelope.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func addr(il, ilce string) models.Address {
	return models.Address{Il: il, Ilce: ilce, Mahalle: "Merkez"}
}

func TestCountCasesByCity(t *testing.T) {
	addrs := []models.Address{
		addr("Ankara", "Çankaya"),
		addr("İzmir", "Konak"),
		addr("Ankara", "Keçiören"),
	}

	got := CountCasesByCity(addrs)

	assert.Equal(t, []CityCount{
		{Il: "Ankara", Count: 2},
		{Il: "İzmir", Count: 1},
	}, got)
}

func TestCountCasesByCityEmpty(t *testing.T) {
	got := CountCasesByCity(nil)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestCountCasesByDistrict(t *testing.T) {
	addrs := []models.Address{
		addr("Ankara", "Çankaya"),
		addr("Ankara", "Altındağ"),
		addr("Ankara", "Çankaya"),
		addr("İzmir", "Konak"),
	}

	got := CountCasesByDistrict(addrs, "Ankara")

	assert.Equal(t, []DistrictCount{
		{Ilce: "Altındağ", Count: 1},
		{Ilce: "Çankaya", Count: 2},
	}, got)
}

func TestMatchesDistrictCaseInsensitive(t *testing.T) {
	a := addr("Ankara", "Çankaya")

	assert.True(t, MatchesDistrict(a, "ankara", "ÇANKAYA"))
	assert.True(t, MatchesDistrict(a, "Ankara", "Çankaya"))
	assert.False(t, MatchesDistrict(a, "Ankara", "Keçiören"))
	assert.False(t, MatchesDistrict(a, "İstanbul", "Çankaya"))
}

func sealedCase(t *testing.T, key []byte, a models.Address) models.Case {
	t.Helper()
	encAddr, err := envelope.Seal(a, key)
	require.NoError(t, err)
	encSummary, err := envelope.Seal("summary", key)
	require.NoError(t, err)
	return models.Case{EncryptedAddress: encAddr, EncryptedSummary: encSummary}
}

func TestDecryptCaseAddresses(t *testing.T) {
	key := testKey(t)
	cases := []models.Case{
		sealedCase(t, key, addr("Hatay", "Antakya")),
		sealedCase(t, key, addr("Kahramanmaraş", "Onikişubat")),
	}

	addrs, err := DecryptCaseAddresses(context.Background(), cases, key)
	require.NoError(t, err)

	assert.Equal(t, "Hatay", addrs[0].Il)
	assert.Equal(t, "Onikişubat", addrs[1].Ilce)
}

func TestDecryptCaseAddressesFailFast(t *testing.T) {
	key := testKey(t)
	good := sealedCase(t, key, addr("Hatay", "Antakya"))
	bad := sealedCase(t, key, addr("Adana", "Seyhan"))
	bad.EncryptedAddress.AuthTag = bad.EncryptedAddress.Nonce // corrupt

	// One bad envelope aborts the whole scan; no partial results.
	_, err := DecryptCaseAddresses(context.Background(), []models.Case{good, bad}, key)
	assert.Error(t, err)
}
