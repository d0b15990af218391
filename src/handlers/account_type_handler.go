package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	appdb "finbook-server/src/db"
	db "finbook-server/src/db/sql"
	"finbook-server/src/models"
	"finbook-server/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
)

const accountTypeListCacheKey = "account_types:list"

// GetAllAccountTypes lists the global account-type catalog. The endpoint is
// open to unauthenticated callers and served through the cache.
func GetAllAccountTypes(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cached, found := appdb.GetAccountTypeCache(accountTypeListCacheKey); found {
			if accountTypes, ok := cached.([]models.AccountType); ok {
				if accountTypes == nil {
					accountTypes = []models.AccountType{}
				}
				util.WriteJSON(w, http.StatusOK, accountTypes)
				return
			}
		}

		accountTypes, err := db.GetAllAccountTypes(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to get account types: %v", err)
			util.WriteError(w, http.StatusInternalServerError, "failed to get account types")
			return
		}

		if accountTypes == nil {
			accountTypes = []models.AccountType{}
		}
		appdb.SetAccountTypeCache(accountTypeListCacheKey, accountTypes)
		util.WriteJSON(w, http.StatusOK, accountTypes)
	}
}

// CreateAccountType creates a catalog entry. Account types are global, so
// nothing is stamped with an owner here.
func CreateAccountType(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name     string `json:"name"`
			IconName string `json:"icon_name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create account type request body: %v", err)
			util.WriteError(w, http.StatusBadRequest, "invalid request")
			return
		}

		errs := util.FieldErrors{}
		util.ValidateRequiredString(errs, "name", req.Name, 50)
		util.ValidateOptionalString(errs, "icon_name", req.IconName, 50)
		if errs.HasErrors() {
			util.WriteFieldErrors(w, errs)
			return
		}

		created, err := db.CreateAccountType(r.Context(), pool, &models.AccountType{
			Name:     req.Name,
			IconName: req.IconName,
		})
		if err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				errs.Add("name", "account type with this name already exists")
				util.WriteFieldErrors(w, errs)
				return
			}
			log.Printf("ERROR: Failed to create account type: %v", err)
			util.WriteError(w, http.StatusInternalServerError, "failed to create account type")
			return
		}

		appdb.ClearAllAccountTypeCaches()

		log.Printf("INFO: Created account type id %d (%s)", created.ID, created.Name)
		util.WriteJSON(w, http.StatusCreated, created)
	}
}
