package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/afetlink/afetlink-backend/internal/database"
	"github.com/afetlink/afetlink-backend/internal/middleware"
	"github.com/afetlink/afetlink-backend/internal/models"
	"github.com/afetlink/afetlink-backend/pkg/utils"
)

type CreateAccountRequest struct {
	Email    string           `json:"email"`
	Password string           `json:"password"`
	WorkArea *models.WorkArea `json:"work_area,omitempty"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Token   string                 `json:"token"`
	Account map[string]interface{} `json:"account"`
}

func createAccount(w http.ResponseWriter, r *http.Request, role string) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if role == models.RoleWorker && (req.WorkArea == nil || req.WorkArea.Il == "" || req.WorkArea.Ilce == "") {
		respondError(w, http.StatusBadRequest, "Email, password and work_area (il, ilce) are required")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	account := models.Account{
		Email:     req.Email,
		Password:  hashed,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if role == models.RoleWorker {
		account.WorkArea = req.WorkArea
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection(database.CollAccounts).InsertOne(ctx, account)
	if err != nil {
		// Unique index on email.
		if mongo.IsDuplicateKeyError(err) {
			respondError(w, http.StatusBadRequest, "This email is already in use")
			return
		}
		respondError(w, http.StatusBadRequest, "Failed to create account")
		return
	}
	account.ID = result.InsertedID.(primitive.ObjectID)

	respondJSON(w, http.StatusCreated, account)
}

// CreateAdmin creates an admin account. Any authenticated staff token may
// call this (matching the original access model).
func CreateAdmin(w http.ResponseWriter, r *http.Request) {
	createAccount(w, r, models.RoleAdmin)
}

// CreateWorker creates a worker account scoped to a work area. Admin only.
func CreateWorker(w http.ResponseWriter, r *http.Request) {
	createAccount(w, r, models.RoleWorker)
}

// SignIn verifies credentials and issues a one-hour token carrying the
// account id and role. Unknown email and wrong password produce the same
// 401 so the two cases cannot be told apart.
func SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var account models.Account
	err := database.DB.Collection(database.CollAccounts).FindOne(ctx, bson.M{"email": req.Email}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	valid, err := utils.VerifyPassword(req.Password, account.Password)
	if err != nil || !valid {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := middleware.GenerateToken(account.ID.Hex(), account.Role, jwtSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, SignInResponse{
		Token: token,
		Account: map[string]interface{}{
			"id":    account.ID.Hex(),
			"email": account.Email,
			"role":  account.Role,
		},
	})
}
