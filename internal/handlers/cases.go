package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/afetlink/afetlink-backend/internal/database"
	"github.com/afetlink/afetlink-backend/internal/models"
	"github.com/afetlink/afetlink-backend/internal/services"
	"github.com/afetlink/afetlink-backend/pkg/envelope"
)

type CreateCaseRequest struct {
	SourceReportID string          `json:"source_report_id,omitempty"`
	SummaryNote    string          `json:"summary_note"`
	AddressLink    string          `json:"address_link,omitempty"`
	Address        *models.Address `json:"address"`
}

// CreateCase promotes a scraped report into a verified case. The summary,
// the optional map link and the whole address object are each encrypted as
// independent envelopes; the address is one opaque blob.
func CreateCase(w http.ResponseWriter, r *http.Request) {
	var req CreateCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.SummaryNote == "" || req.Address == nil ||
		req.Address.Il == "" || req.Address.Ilce == "" || req.Address.Mahalle == "" {
		respondError(w, http.StatusBadRequest, "summary_note and address (il, ilce, mahalle) are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	key, err := masterKey(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	encryptedSummary, err := envelope.Seal(req.SummaryNote, key)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	encryptedAddress, err := envelope.Seal(req.Address, key)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	c := models.Case{
		EncryptedSummary: encryptedSummary,
		EncryptedAddress: encryptedAddress,
		CreatedAt:        time.Now(),
	}

	if req.AddressLink != "" {
		encryptedAddressLink, err := envelope.Seal(req.AddressLink, key)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		c.EncryptedAddressLink = encryptedAddressLink
	}

	if req.SourceReportID != "" {
		sourceID, err := primitive.ObjectIDFromHex(req.SourceReportID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid source_report_id")
			return
		}
		c.SourceReportID = &sourceID
	}

	result, err := database.DB.Collection(database.CollCases).InsertOne(ctx, c)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to create case")
		return
	}
	c.ID = result.InsertedID.(primitive.ObjectID)

	respondJSON(w, http.StatusCreated, c)
}

// DeleteCase hard-deletes a case.
func DeleteCase(w http.ResponseWriter, r *http.Request) {
	caseID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Case not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection(database.CollCases).DeleteOne(ctx, bson.M{"_id": caseID})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if result.DeletedCount == 0 {
		respondError(w, http.StatusNotFound, "Case not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Case deleted successfully"})
}

// loadCases fetches every case carrying an encrypted address. All three
// aggregation endpoints start from this full-table scan: there is no index
// over encrypted fields, so counting by region means decrypting everything.
func loadCases(ctx context.Context) ([]models.Case, error) {
	cursor, err := database.DB.Collection(database.CollCases).Find(ctx,
		bson.M{"encrypted_address.ciphertext": bson.M{"$exists": true}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cases []models.Case
	if err := cursor.All(ctx, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// GetCityCases returns case counts per city, sorted ascending by city name.
func GetCityCases(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	key, err := masterKey(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	cases, err := loadCases(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	addrs, err := services.DecryptCaseAddresses(ctx, cases, key)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, services.CountCasesByCity(addrs))
}

// GetDistrictCases returns case counts per district for one city.
func GetDistrictCases(w http.ResponseWriter, r *http.Request) {
	il := chi.URLParam(r, "il")

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	key, err := masterKey(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	cases, err := loadCases(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	addrs, err := services.DecryptCaseAddresses(ctx, cases, key)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, services.CountCasesByDistrict(addrs, il))
}

type DistrictLookupRequest struct {
	Il   string `json:"il"`
	Ilce string `json:"ilce"`
}

// GetDistrictData returns every case in a city+district, matched
// case-insensitively over decrypted addresses. The pair arrives as URL
// params on GET or as a JSON body on POST.
func GetDistrictData(w http.ResponseWriter, r *http.Request) {
	il := chi.URLParam(r, "il")
	ilce := chi.URLParam(r, "ilce")
	if il == "" || ilce == "" {
		var req DistrictLookupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			il, ilce = req.Il, req.Ilce
		}
	}
	if il == "" || ilce == "" {
		respondError(w, http.StatusBadRequest, "il and ilce are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	key, err := masterKey(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	cases, err := loadCases(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Fan-out: decrypt each case's address concurrently; matches get fully
	// decrypted, the rest stay nil. One failing envelope fails the lookup.
	matches := make([]map[string]interface{}, len(cases))
	g, _ := errgroup.WithContext(ctx)
	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			addr, err := services.DecryptCaseAddress(c, key)
			if err != nil {
				return err
			}
			if !services.MatchesDistrict(addr, il, ilce) {
				return nil
			}
			full, err := services.DecryptCase(c, key)
			if err != nil {
				return err
			}
			matches[i] = full
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := make([]map[string]interface{}, 0, len(matches))
	for _, m := range matches {
		if m != nil {
			result = append(result, m)
		}
	}

	if len(result) == 0 {
		respondError(w, http.StatusNotFound, "No cases found for this city and district")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
