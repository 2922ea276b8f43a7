package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the record services rely on:
//   - accounts.email unique (plaintext duplicate check on account creation)
//   - hashtags.tag unique
//   - scraped_reports.is_used (the unused-report listing filters on it)
//
// Note there is deliberately no index over any encrypted field: envelopes
// are non-deterministic ciphertext, so equality indexing on them is useless.
func EnsureIndexes(ctx context.Context) error {
	_, err := DB.Collection(CollAccounts).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = DB.Collection(CollHashtags).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tag", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = DB.Collection(CollScrapedReports).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "is_used", Value: 1}},
	})
	return err
}
