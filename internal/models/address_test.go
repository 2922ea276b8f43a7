package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringOrNumberUnmarshal(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		var s StringOrNumber
		require.NoError(t, json.Unmarshal([]byte(`"12/A"`), &s))
		assert.False(t, s.IsNum)
		assert.Equal(t, "12/A", s.String())
	})

	t.Run("number", func(t *testing.T) {
		var s StringOrNumber
		require.NoError(t, json.Unmarshal([]byte(`12`), &s))
		assert.True(t, s.IsNum)
		assert.Equal(t, "12", s.String())
	})

	t.Run("null", func(t *testing.T) {
		var s StringOrNumber
		require.NoError(t, json.Unmarshal([]byte(`null`), &s))
		assert.Equal(t, StringOrNumber{}, s)
	})

	t.Run("bool rejected", func(t *testing.T) {
		var s StringOrNumber
		assert.Error(t, json.Unmarshal([]byte(`true`), &s))
	})
}

func TestStringOrNumberMarshalRoundTrip(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		b, err := json.Marshal(StringOrNumber{Str: "12/A"})
		require.NoError(t, err)
		assert.Equal(t, `"12/A"`, string(b))
	})

	t.Run("number", func(t *testing.T) {
		b, err := json.Marshal(StringOrNumber{Num: 12, IsNum: true})
		require.NoError(t, err)
		assert.Equal(t, `12`, string(b))
	})
}

func TestAddressJSONRoundTrip(t *testing.T) {
	in := Address{
		Il:      "Ankara",
		Ilce:    "Çankaya",
		Mahalle: "Kızılay",
		Cadde:   "Atatürk Bulvarı",
		No:      &StringOrNumber{Num: 7, IsNum: true},
	}

	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out Address
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestAddressOptionalFieldsOmitted(t *testing.T) {
	b, err := json.Marshal(Address{Il: "Hatay", Ilce: "Antakya", Mahalle: "Merkez"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "cadde")
	assert.NotContains(t, string(b), "no")
}
