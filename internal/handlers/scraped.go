package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/afetlink/afetlink-backend/internal/database"
	"github.com/afetlink/afetlink-backend/internal/models"
	"github.com/afetlink/afetlink-backend/internal/services"
	"github.com/afetlink/afetlink-backend/pkg/envelope"
)

type CreateScrapedReportRequest struct {
	Text        string     `json:"text"`
	ImageURL    string     `json:"image_url,omitempty"`
	Username    string     `json:"username,omitempty"`
	TweetedTime *time.Time `json:"tweeted_time,omitempty"`
}

// CreateScrapedReport ingests a raw report from the scraper, encrypting the
// text and optional image URL. The 201 body is the stored record, envelopes
// included: write responses are intentionally not decrypted, unlike reads.
func CreateScrapedReport(w http.ResponseWriter, r *http.Request) {
	var req CreateScrapedReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "Text is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	key, err := masterKey(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	encryptedText, err := envelope.Seal(req.Text, key)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	report := models.ScrapedReport{
		EncryptedText:  encryptedText,
		Username:       req.Username,
		TweetCreatedAt: req.TweetedTime,
		IsUsed:         false,
		CreatedAt:      time.Now(),
	}

	// Absent optional fields store no envelope, not an empty one.
	if req.ImageURL != "" {
		encryptedImageURL, err := envelope.Seal(req.ImageURL, key)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		report.EncryptedImageURL = encryptedImageURL
	}

	result, err := database.DB.Collection(database.CollScrapedReports).InsertOne(ctx, report)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to create scraped report")
		return
	}
	report.ID = result.InsertedID.(primitive.ObjectID)

	respondJSON(w, http.StatusCreated, report)
}

// GetScrapedReports lists every report not yet promoted into a case, with
// sensitive fields decrypted. One failing envelope fails the whole listing.
func GetScrapedReports(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	key, err := masterKey(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	cursor, err := database.DB.Collection(database.CollScrapedReports).Find(ctx, bson.M{"is_used": false})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var reports []models.ScrapedReport
	if err := cursor.All(ctx, &reports); err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	decrypted, err := services.DecryptScrapedReports(ctx, reports, key)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, decrypted)
}

type MarkScrapedReportUsedRequest struct {
	ID string `json:"id"`
}

// MarkScrapedReportUsed flips is_used on a report and returns it decrypted.
// Calling it again on an already-used report succeeds and re-sets the flag.
func MarkScrapedReportUsed(w http.ResponseWriter, r *http.Request) {
	var req MarkScrapedReportUsedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ID == "" {
		respondError(w, http.StatusBadRequest, "id is required")
		return
	}

	reportID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Scraped report not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var report models.ScrapedReport
	err = database.DB.Collection(database.CollScrapedReports).FindOneAndUpdate(
		ctx,
		bson.M{"_id": reportID},
		bson.M{"$set": bson.M{"is_used": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondError(w, http.StatusNotFound, "Scraped report not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	key, err := masterKey(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	decrypted, err := services.DecryptScrapedReport(report, key)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, decrypted)
}
