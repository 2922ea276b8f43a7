package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afetlink/afetlink-backend/pkg/envelope"
)

// ScrapedReport is a raw social-media report delivered by the ingestion
// pipeline. The report text and image URL are encrypted at rest; username
// and tweet timestamp stay plaintext. Reports are immutable except for the
// one-way is_used flip when staff promote them into a case.
type ScrapedReport struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EncryptedText     *envelope.Envelope `bson:"encrypted_text" json:"encrypted_text"`
	EncryptedImageURL *envelope.Envelope `bson:"encrypted_image_url,omitempty" json:"encrypted_image_url,omitempty"`
	Username          string             `bson:"username,omitempty" json:"username,omitempty"`
	TweetCreatedAt    *time.Time         `bson:"tweet_created_at,omitempty" json:"tweet_created_at,omitempty"`
	IsUsed            bool               `bson:"is_used" json:"is_used"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
}
