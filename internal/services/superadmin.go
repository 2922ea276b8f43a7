package services

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/afetlink/afetlink-backend/internal/database"
	"github.com/afetlink/afetlink-backend/internal/models"
	"github.com/afetlink/afetlink-backend/pkg/utils"
)

// EnsureSuperadmin creates the bootstrap superadmin account when none
// exists. Idempotent: a second startup is a no-op. Exactly one superadmin
// is provisioned this way; further staff accounts are created through the
// API.
func EnsureSuperadmin(ctx context.Context, email, password string) error {
	accounts := database.DB.Collection(database.CollAccounts)

	var existing models.Account
	err := accounts.FindOne(ctx, bson.M{"role": models.RoleSuperadmin}).Decode(&existing)
	if err == nil {
		log.Printf("Superadmin already exists: %s", existing.Email)
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = accounts.InsertOne(ctx, models.Account{
		Email:     email,
		Password:  hashed,
		Role:      models.RoleSuperadmin,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	log.Printf("✅ Superadmin created: %s", email)
	return nil
}
