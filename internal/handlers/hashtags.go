package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/afetlink/afetlink-backend/internal/database"
	"github.com/afetlink/afetlink-backend/internal/models"
)

type HashtagRequest struct {
	Tag string `json:"tag"`
}

func validTag(tag string) bool {
	return strings.HasPrefix(tag, "#") && len(tag) > 1
}

// CreateHashtag adds a tracking tag for the scraper.
func CreateHashtag(w http.ResponseWriter, r *http.Request) {
	var req HashtagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !validTag(req.Tag) {
		respondError(w, http.StatusBadRequest, "Hashtag must start with # and not be empty")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	hashtag := models.Hashtag{
		Tag:       req.Tag,
		CreatedAt: time.Now(),
	}

	result, err := database.DB.Collection(database.CollHashtags).InsertOne(ctx, hashtag)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			respondError(w, http.StatusConflict, "Hashtag already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create hashtag")
		return
	}
	hashtag.ID = result.InsertedID.(primitive.ObjectID)

	respondJSON(w, http.StatusCreated, hashtag)
}

// GetHashtags lists all tags, newest first.
func GetHashtags(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := database.DB.Collection(database.CollHashtags).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	hashtags := make([]models.Hashtag, 0)
	if err := cursor.All(ctx, &hashtags); err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	respondJSON(w, http.StatusOK, hashtags)
}

// UpdateHashtag renames a tag (e.g. fixing a typo).
func UpdateHashtag(w http.ResponseWriter, r *http.Request) {
	hashtagID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Hashtag not found")
		return
	}

	var req HashtagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !validTag(req.Tag) {
		respondError(w, http.StatusBadRequest, "Hashtag must start with # and not be empty")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var updated models.Hashtag
	err = database.DB.Collection(database.CollHashtags).FindOneAndUpdate(
		ctx,
		bson.M{"_id": hashtagID},
		bson.M{"$set": bson.M{"tag": req.Tag}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondError(w, http.StatusNotFound, "Hashtag not found")
			return
		}
		if mongo.IsDuplicateKeyError(err) {
			respondError(w, http.StatusConflict, "Hashtag already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteHashtag removes a tag.
func DeleteHashtag(w http.ResponseWriter, r *http.Request) {
	hashtagID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Hashtag not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection(database.CollHashtags).DeleteOne(ctx, bson.M{"_id": hashtagID})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if result.DeletedCount == 0 {
		respondError(w, http.StatusNotFound, "Hashtag not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Hashtag deleted"})
}
