package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	db "finbook-server/src/db/sql"
	"finbook-server/src/models"
	"finbook-server/src/util"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			AccountType int64  `json:"account_type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create account request body for user %d: %v", userID, err)
			util.WriteError(w, http.StatusBadRequest, "invalid request")
			return
		}

		errs := util.FieldErrors{}
		util.ValidateRequiredString(errs, "name", req.Name, 50)
		util.ValidateRequiredString(errs, "description", req.Description, 512)
		if req.AccountType == 0 {
			errs.Add("account_type", "this field is required")
		} else if _, err := db.GetAccountTypeByID(r.Context(), pool, req.AccountType); err != nil {
			errs.Add("account_type", "invalid account type")
		}
		if errs.HasErrors() {
			util.WriteFieldErrors(w, errs)
			return
		}

		// The owner is always the caller; any client-supplied user value is
		// ignored.
		account := &models.Account{
			Name:          req.Name,
			Description:   req.Description,
			AccountTypeID: req.AccountType,
			UserID:        userID,
		}
		created, err := db.CreateAccount(r.Context(), pool, account)
		if err != nil {
			log.Printf("ERROR: Failed to create account for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, "failed to create account")
			return
		}

		log.Printf("INFO: Created account id %d for user %d", created.ID, userID)
		util.WriteJSON(w, http.StatusCreated, created)
	}
}

func GetAllAccounts(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		accounts, err := db.GetAllAccountsForUser(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get accounts for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, "failed to get accounts")
			return
		}

		if accounts == nil {
			accounts = []models.Account{}
		}
		util.WriteJSON(w, http.StatusOK, accounts)
	}
}

func GetAccountByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		accountID, err := parseIDParam(r, "account_id")
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, "invalid account id")
			return
		}

		account, err := db.GetAccountByID(r.Context(), pool, userID, accountID)
		if err != nil {
			log.Printf("ERROR: Account id %d not found for user %d: %v", accountID, userID, err)
			util.WriteError(w, http.StatusNotFound, "account not found")
			return
		}

		util.WriteJSON(w, http.StatusOK, account)
	}
}

// UpdateAccount handles PUT and PATCH. PATCH keeps current values for
// absent fields.
func UpdateAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		accountID, err := parseIDParam(r, "account_id")
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, "invalid account id")
			return
		}

		current, err := db.GetAccountByID(r.Context(), pool, userID, accountID)
		if err != nil {
			log.Printf("ERROR: Account id %d not found for user %d: %v", accountID, userID, err)
			util.WriteError(w, http.StatusNotFound, "account not found")
			return
		}

		var req struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
			AccountType *int64  `json:"account_type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update account request body for user %d: %v", userID, err)
			util.WriteError(w, http.StatusBadRequest, "invalid request")
			return
		}

		errs := util.FieldErrors{}
		if r.Method == http.MethodPut {
			if req.Name == nil {
				errs.Add("name", "this field is required")
			}
			if req.Description == nil {
				errs.Add("description", "this field is required")
			}
			if req.AccountType == nil {
				errs.Add("account_type", "this field is required")
			}
		}

		account := *current
		if req.Name != nil {
			account.Name = *req.Name
			util.ValidateRequiredString(errs, "name", account.Name, 50)
		}
		if req.Description != nil {
			account.Description = *req.Description
			util.ValidateRequiredString(errs, "description", account.Description, 512)
		}
		if req.AccountType != nil {
			account.AccountTypeID = *req.AccountType
			if _, err := db.GetAccountTypeByID(r.Context(), pool, account.AccountTypeID); err != nil {
				errs.Add("account_type", "invalid account type")
			}
		}
		if errs.HasErrors() {
			util.WriteFieldErrors(w, errs)
			return
		}

		updated, err := db.UpdateAccount(r.Context(), pool, &account)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "account not found")
				return
			}
			log.Printf("ERROR: Failed to update account id %d for user %d: %v", accountID, userID, err)
			util.WriteError(w, http.StatusInternalServerError, "failed to update account")
			return
		}

		log.Printf("INFO: Updated account id %d for user %d", updated.ID, userID)
		util.WriteJSON(w, http.StatusOK, updated)
	}
}

func DeleteAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		accountID, err := parseIDParam(r, "account_id")
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, "invalid account id")
			return
		}

		if err := db.DeleteAccount(r.Context(), pool, userID, accountID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "account not found")
				return
			}
			log.Printf("ERROR: Failed to delete account id %d for user %d: %v", accountID, userID, err)
			util.WriteError(w, http.StatusInternalServerError, "failed to delete account")
			return
		}

		log.Printf("INFO: Deleted account id %d for user %d", accountID, userID)
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	return strconv.ParseInt(raw, 10, 64)
}
