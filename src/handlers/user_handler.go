package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	db "finbook-server/src/db/sql"
	"finbook-server/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func GetMe(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		user, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get user - user_id: %d: %v", userID, err)
			util.WriteError(w, http.StatusNotFound, "user not found")
			return
		}

		util.WriteJSON(w, http.StatusOK, user)
	}
}

// UpdateMe handles both PUT (full update) and PATCH (partial update) on the
// authenticated user's profile.
func UpdateMe(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		current, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get user for update - user_id: %d: %v", userID, err)
			util.WriteError(w, http.StatusNotFound, "user not found")
			return
		}

		var req struct {
			Email    *string `json:"email"`
			Name     *string `json:"name"`
			Password *string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update user request body: %v", err)
			util.WriteError(w, http.StatusBadRequest, "invalid request")
			return
		}

		errs := util.FieldErrors{}
		if r.Method == http.MethodPut {
			if req.Email == nil {
				errs.Add("email", "this field is required")
			}
			if req.Name == nil {
				errs.Add("name", "this field is required")
			}
		}

		email := current.Email
		if req.Email != nil {
			email = strings.ToLower(strings.TrimSpace(*req.Email))
			if !util.ValidateEmail(email) {
				errs.Add("email", "enter a valid email address")
			}
		}
		name := current.Name
		if req.Name != nil {
			name = strings.TrimSpace(*req.Name)
			if !util.ValidateName(name) {
				errs.Add("name", "this field is required")
			}
		}
		passwordHash := ""
		if req.Password != nil {
			if !util.ValidatePassword(*req.Password) {
				errs.Add("password", "ensure this field has at least 5 characters")
			} else {
				hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
				if err != nil {
					log.Printf("ERROR: Failed to hash password for user %d: %v", userID, err)
					util.WriteError(w, http.StatusInternalServerError, "internal error")
					return
				}
				passwordHash = string(hashed)
			}
		}

		if errs.HasErrors() {
			log.Printf("ERROR: Profile update validation failed - User: %d", userID)
			util.WriteFieldErrors(w, errs)
			return
		}

		user, err := db.UpdateUserProfile(r.Context(), pool, userID, email, name, passwordHash)
		if err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				errs.Add("email", "user with this email already exists")
				util.WriteFieldErrors(w, errs)
				return
			}
			log.Printf("ERROR: Failed to update user profile - user_id: %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		log.Printf("INFO: User profile updated - User: %d", userID)
		util.WriteJSON(w, http.StatusOK, user)
	}
}
