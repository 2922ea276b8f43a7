package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hashtag is a plaintext tracking tag for the scraper (e.g. "#deprem").
// Unique on tag; no encryption involved.
type Hashtag struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Tag       string             `bson:"tag" json:"tag"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
