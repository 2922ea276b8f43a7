package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afetlink/afetlink-backend/pkg/envelope"
)

// Case is a verified, geo-tagged relief report created by staff from a
// scraped report. The summary, the optional map link, and the whole address
// object are stored as independent envelopes.
type Case struct {
	ID                   primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	SourceReportID       *primitive.ObjectID `bson:"source_report_id,omitempty" json:"source_report_id,omitempty"`
	EncryptedSummary     *envelope.Envelope  `bson:"encrypted_summary" json:"encrypted_summary"`
	EncryptedAddressLink *envelope.Envelope  `bson:"encrypted_address_link,omitempty" json:"encrypted_address_link,omitempty"`
	EncryptedAddress     *envelope.Envelope  `bson:"encrypted_address" json:"encrypted_address"`
	CreatedAt            time.Time           `bson:"created_at" json:"created_at"`
}
