package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afetlink/afetlink-backend/internal/database"
	"github.com/afetlink/afetlink-backend/internal/models"
	"github.com/afetlink/afetlink-backend/internal/services"
	"github.com/afetlink/afetlink-backend/pkg/envelope"
)

var (
	nationalIDPattern = regexp.MustCompile(`^[0-9]{11}$`)
	phonePattern      = regexp.MustCompile(`^\+?[0-9]{10,}$`)
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type CreateVolunteerRequest struct {
	Name          string                 `json:"name"`
	NationalID    *models.StringOrNumber `json:"national_id"`
	Phone         *models.StringOrNumber `json:"phone"`
	Email         string                 `json:"email"`
	Age           *int                   `json:"age"`
	Gender        string                 `json:"gender"`
	Il            string                 `json:"il"`
	Ilce          string                 `json:"ilce"`
	Address       string                 `json:"address,omitempty"`
	Certified     *bool                  `json:"certified"`
	SkillAreas    []string               `json:"skill_areas,omitempty"`
	SpecialSkills string                 `json:"special_skills,omitempty"`
}

// CreateVolunteer registers a volunteer. Uniqueness of national ID and email
// is checked by decrypting and comparing every existing record, since the
// non-deterministic ciphertext defeats any equality index. O(existing
// volunteers) per registration.
func CreateVolunteer(w http.ResponseWriter, r *http.Request) {
	var req CreateVolunteerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.NationalID == nil || req.Phone == nil || req.Email == "" ||
		req.Age == nil || req.Gender == "" || req.Il == "" || req.Ilce == "" || req.Certified == nil {
		respondError(w, http.StatusBadRequest, "Required fields are missing")
		return
	}

	nationalID := req.NationalID.String()
	phone := req.Phone.String()

	switch {
	case !nationalIDPattern.MatchString(nationalID):
		respondError(w, http.StatusBadRequest, "National ID must be an 11-digit number")
		return
	case !phonePattern.MatchString(phone):
		respondError(w, http.StatusBadRequest, "Phone must be at least a 10-digit number")
		return
	case !emailPattern.MatchString(req.Email):
		respondError(w, http.StatusBadRequest, "Invalid email format")
		return
	case *req.Age < 0 || *req.Age > 120:
		respondError(w, http.StatusBadRequest, "Age must be between 0 and 120")
		return
	case req.Gender != models.GenderMale && req.Gender != models.GenderFemale:
		respondError(w, http.StatusBadRequest, "Invalid gender")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	key, err := masterKey(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	cursor, err := database.DB.Collection(database.CollVolunteers).Find(ctx, bson.M{})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	var existing []models.Volunteer
	if err := cursor.All(ctx, &existing); err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	dup, err := services.FindVolunteerDuplicate(ctx, existing, key, nationalID, req.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	switch dup {
	case services.DupNationalID:
		respondError(w, http.StatusBadRequest, "This national ID is already in use")
		return
	case services.DupEmail:
		respondError(w, http.StatusBadRequest, "This email is already in use")
		return
	}

	volunteer := models.Volunteer{
		Age:           *req.Age,
		Gender:        req.Gender,
		Il:            req.Il,
		Ilce:          req.Ilce,
		Certified:     *req.Certified,
		SkillAreas:    req.SkillAreas,
		SpecialSkills: req.SpecialSkills,
		CreatedAt:     time.Now(),
	}

	seal := func(value string, dst **envelope.Envelope) bool {
		env, err := envelope.Seal(value, key)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return false
		}
		*dst = env
		return true
	}
	if !seal(req.Name, &volunteer.EncryptedName) ||
		!seal(nationalID, &volunteer.EncryptedNationalID) ||
		!seal(phone, &volunteer.EncryptedPhone) ||
		!seal(req.Email, &volunteer.EncryptedEmail) {
		return
	}
	if req.Address != "" && !seal(req.Address, &volunteer.EncryptedAddress) {
		return
	}

	result, err := database.DB.Collection(database.CollVolunteers).InsertOne(ctx, volunteer)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to create volunteer")
		return
	}
	volunteer.ID = result.InsertedID.(primitive.ObjectID)

	respondJSON(w, http.StatusCreated, volunteer)
}

// GetVolunteers lists every volunteer with all sensitive fields decrypted.
// All-or-nothing: one failing envelope fails the listing.
func GetVolunteers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	key, err := masterKey(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	cursor, err := database.DB.Collection(database.CollVolunteers).Find(ctx, bson.M{})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	var volunteers []models.Volunteer
	if err := cursor.All(ctx, &volunteers); err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	decrypted, err := services.DecryptVolunteers(ctx, volunteers, key)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, decrypted)
}
