package models

import (
	"encoding/json"
	"errors"
	"strconv"
)

// Address is the structured location of a case. It is encrypted as one
// opaque blob, so no field-level query is possible on it; all filtering
// happens after decryption.
type Address struct {
	Il      string          `bson:"il" json:"il"`
	Ilce    string          `bson:"ilce" json:"ilce"`
	Mahalle string          `bson:"mahalle" json:"mahalle"`
	Cadde   string          `bson:"cadde,omitempty" json:"cadde,omitempty"`
	Sokak   string          `bson:"sokak,omitempty" json:"sokak,omitempty"`
	No      *StringOrNumber `bson:"no,omitempty" json:"no,omitempty"`
}

// StringOrNumber accepts either a JSON string or a JSON number. Scraped
// feeds are inconsistent about house numbers ("12/A" vs 12).
type StringOrNumber struct {
	Str   string
	Num   float64
	IsNum bool
}

func (s *StringOrNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = StringOrNumber{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = StringOrNumber{Str: str}
		return nil
	}
	var num float64
	if err := json.Unmarshal(b, &num); err != nil {
		return errors.New("no must be a string or number")
	}
	*s = StringOrNumber{Num: num, IsNum: true}
	return nil
}

func (s StringOrNumber) MarshalJSON() ([]byte, error) {
	if s.IsNum {
		return json.Marshal(s.Num)
	}
	return json.Marshal(s.Str)
}

// String renders the value for display regardless of the underlying type.
func (s StringOrNumber) String() string {
	if s.IsNum {
		return strconv.FormatFloat(s.Num, 'f', -1, 64)
	}
	return s.Str
}
