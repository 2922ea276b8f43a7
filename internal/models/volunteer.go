package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afetlink/afetlink-backend/pkg/envelope"
)

// Volunteer gender values.
const (
	GenderMale   = "erkek"
	GenderFemale = "kadın"
)

// Volunteer is a registered helper. Name, national ID, phone, email and the
// free-form address are encrypted; the administrative region (il/ilce) stays
// plaintext so volunteers can be matched to work areas without decryption.
//
// Uniqueness of national ID and email is enforced over decrypted values:
// ciphertext is non-deterministic (fresh nonce per write), so equality
// indexing on the envelopes is impossible.
type Volunteer struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EncryptedName       *envelope.Envelope `bson:"encrypted_name" json:"encrypted_name"`
	EncryptedNationalID *envelope.Envelope `bson:"encrypted_national_id" json:"encrypted_national_id"`
	EncryptedPhone      *envelope.Envelope `bson:"encrypted_phone" json:"encrypted_phone"`
	EncryptedEmail      *envelope.Envelope `bson:"encrypted_email" json:"encrypted_email"`
	Age                 int                `bson:"age" json:"age"`
	Gender              string             `bson:"gender" json:"gender"`
	Il                  string             `bson:"il" json:"il"`
	Ilce                string             `bson:"ilce" json:"ilce"`
	EncryptedAddress    *envelope.Envelope `bson:"encrypted_address,omitempty" json:"encrypted_address,omitempty"`
	Certified           bool               `bson:"certified" json:"certified"`
	SkillAreas          []string           `bson:"skill_areas,omitempty" json:"skill_areas,omitempty"`
	SpecialSkills       string             `bson:"special_skills,omitempty" json:"special_skills,omitempty"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
}
