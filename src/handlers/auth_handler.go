package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"finbook-server/src/config"
	db "finbook-server/src/db/sql"
	"finbook-server/src/models"
	"finbook-server/src/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func Register(pool *pgxpool.Pool, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Name     string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode register request body: %v", err)
			util.WriteError(w, http.StatusBadRequest, "invalid request")
			return
		}

		// Emails are normalized to lower case; they are the login identifier.
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		req.Name = strings.TrimSpace(req.Name)

		errs := util.FieldErrors{}
		if !util.ValidateEmail(req.Email) {
			errs.Add("email", "enter a valid email address")
		}
		if !util.ValidateName(req.Name) {
			errs.Add("name", "this field is required")
		}
		if !util.ValidatePassword(req.Password) {
			errs.Add("password", "ensure this field has at least 5 characters")
		}
		if errs.HasErrors() {
			log.Printf("ERROR: Registration validation failed - Email: %s", req.Email)
			util.WriteFieldErrors(w, errs)
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("ERROR: Failed to hash password for user %s: %v", req.Email, err)
			util.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		user, err := db.CreateUser(r.Context(), pool, req.Email, req.Name, string(hashedPassword))
		if err != nil {
			// Handle duplicate key
			if strings.Contains(err.Error(), "duplicate key") {
				log.Printf("ERROR: Registration failed - email already exists - Email: %s", req.Email)
				errs.Add("email", "user with this email already exists")
				util.WriteFieldErrors(w, errs)
				return
			}
			log.Printf("ERROR: Failed to create user %s: %v", req.Email, err)
			util.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		tokenString, err := generateToken(user, cfg)
		if err != nil {
			log.Printf("ERROR: Failed to generate token for user %s: %v", user.Email, err)
			util.WriteError(w, http.StatusInternalServerError, "error generating token")
			return
		}

		log.Printf("INFO: Successful registration - User: %s, ID: %d", user.Email, user.ID)

		util.WriteJSON(w, http.StatusCreated, map[string]interface{}{
			"user":  user,
			"token": tokenString,
		})
	}
}

func CreateToken(pool *pgxpool.Pool, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var credentials struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			log.Printf("ERROR: Failed to decode token request body: %v", err)
			util.WriteError(w, http.StatusBadRequest, "invalid request")
			return
		}

		email := strings.ToLower(strings.TrimSpace(credentials.Email))

		user, err := db.GetUserByEmail(r.Context(), pool, email)
		if err != nil {
			log.Printf("ERROR: Failed to find user during token request - Email: %s: %v", email, err)
			util.WriteError(w, http.StatusUnauthorized, "unable to authenticate with provided credentials")
			return
		}

		if !user.IsActive {
			log.Printf("ERROR: Inactive user attempted to authenticate - Email: %s", email)
			util.WriteError(w, http.StatusUnauthorized, "unable to authenticate with provided credentials")
			return
		}

		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(credentials.Password)); err != nil {
			log.Printf("ERROR: Invalid password attempt for email %s from IP %s", email, r.RemoteAddr)
			util.WriteError(w, http.StatusUnauthorized, "unable to authenticate with provided credentials")
			return
		}

		tokenString, err := generateToken(user, cfg)
		if err != nil {
			log.Printf("ERROR: Failed to generate token for user %s: %v", user.Email, err)
			util.WriteError(w, http.StatusInternalServerError, "error generating token")
			return
		}

		log.Printf("INFO: Token issued - User: %s, ID: %d", user.Email, user.ID)

		util.WriteJSON(w, http.StatusOK, map[string]string{
			"token": tokenString,
		})
	}
}

func generateToken(user *models.User, cfg config.Config) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(time.Hour * time.Duration(cfg.TokenTTLHours)).Unix(),
	})
	return token.SignedString([]byte(cfg.JWTSecret))
}
