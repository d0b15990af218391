package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	db "finbook-server/src/db/sql"
	"finbook-server/src/models"
	"finbook-server/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionDateLayout = "2006-01-02"

// defaultTransactionDate is midnight of now's calendar day. Built from
// calendar components so the stamped day matches the server's local date
// regardless of timezone offset.
func defaultTransactionDate(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func CreateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		var req struct {
			Amount          *decimal.Decimal `json:"amount"`
			Description     string           `json:"description"`
			Paid            bool             `json:"paid"`
			TransactionDate string           `json:"transaction_date"`
			Category        int64            `json:"category"`
			Account         int64            `json:"account"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request body for user %d: %v", userID, err)
			util.WriteError(w, http.StatusBadRequest, "invalid request")
			return
		}

		errs := util.FieldErrors{}
		if req.Amount == nil {
			errs.Add("amount", "this field is required")
		} else {
			util.ValidateAmount(errs, "amount", *req.Amount)
		}
		util.ValidateRequiredString(errs, "description", req.Description, 512)

		// Defaults to the creation day when no date is supplied.
		transactionDate := defaultTransactionDate(time.Now())
		if req.TransactionDate != "" {
			parsed, err := time.Parse(transactionDateLayout, req.TransactionDate)
			if err != nil {
				errs.Add("transaction_date", "enter a valid date in YYYY-MM-DD format")
			} else {
				transactionDate = parsed
			}
		}

		// Both references must resolve within the caller's own rows; a
		// foreign category or account behaves as if it does not exist.
		if req.Category == 0 {
			errs.Add("category", "this field is required")
		} else if _, err := db.GetCategoryByID(r.Context(), pool, userID, req.Category); err != nil {
			errs.Add("category", "invalid category")
		}
		if req.Account == 0 {
			errs.Add("account", "this field is required")
		} else if _, err := db.GetAccountByID(r.Context(), pool, userID, req.Account); err != nil {
			errs.Add("account", "invalid account")
		}

		if errs.HasErrors() {
			util.WriteFieldErrors(w, errs)
			return
		}

		transaction := &models.Transaction{
			Amount:          *req.Amount,
			Description:     req.Description,
			Paid:            req.Paid,
			TransactionDate: transactionDate,
			CategoryID:      req.Category,
			AccountID:       req.Account,
		}
		created, err := db.CreateTransaction(r.Context(), pool, transaction)
		if err != nil {
			log.Printf("ERROR: Failed to create transaction for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, "failed to create transaction")
			return
		}

		log.Printf("INFO: Created transaction id %d for user %d", created.ID, userID)
		util.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetAllTransactions lists the caller's transactions, optionally narrowed
// by query-parameter filters.
func GetAllTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		filter, errs := db.ParseTransactionFilter(r.URL.Query(), time.Now())
		if errs.HasErrors() {
			log.Printf("ERROR: Invalid transaction filter for user %d: %v", userID, errs)
			util.WriteFieldErrors(w, errs)
			return
		}

		transactions, err := db.GetAllTransactionsForUser(r.Context(), pool, userID, filter)
		if err != nil {
			log.Printf("ERROR: Failed to get transactions for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, "failed to get transactions")
			return
		}

		if transactions == nil {
			transactions = []models.Transaction{}
		}
		util.WriteJSON(w, http.StatusOK, transactions)
	}
}

func GetTransactionByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		transactionID, err := parseIDParam(r, "transaction_id")
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, "invalid transaction id")
			return
		}

		transaction, err := db.GetTransactionByID(r.Context(), pool, userID, transactionID)
		if err != nil {
			log.Printf("ERROR: Transaction id %d not found for user %d: %v", transactionID, userID, err)
			util.WriteError(w, http.StatusNotFound, "transaction not found")
			return
		}

		util.WriteJSON(w, http.StatusOK, transaction)
	}
}

func UpdateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		transactionID, err := parseIDParam(r, "transaction_id")
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, "invalid transaction id")
			return
		}

		current, err := db.GetTransactionByID(r.Context(), pool, userID, transactionID)
		if err != nil {
			log.Printf("ERROR: Transaction id %d not found for user %d: %v", transactionID, userID, err)
			util.WriteError(w, http.StatusNotFound, "transaction not found")
			return
		}

		var req struct {
			Amount          *decimal.Decimal `json:"amount"`
			Description     *string          `json:"description"`
			Paid            *bool            `json:"paid"`
			TransactionDate *string          `json:"transaction_date"`
			Category        *int64           `json:"category"`
			Account         *int64           `json:"account"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update transaction request body for user %d: %v", userID, err)
			util.WriteError(w, http.StatusBadRequest, "invalid request")
			return
		}

		errs := util.FieldErrors{}
		if r.Method == http.MethodPut {
			if req.Amount == nil {
				errs.Add("amount", "this field is required")
			}
			if req.Description == nil {
				errs.Add("description", "this field is required")
			}
			if req.Category == nil {
				errs.Add("category", "this field is required")
			}
			if req.Account == nil {
				errs.Add("account", "this field is required")
			}
		}

		transaction := *current
		if req.Amount != nil {
			transaction.Amount = *req.Amount
			util.ValidateAmount(errs, "amount", transaction.Amount)
		}
		if req.Description != nil {
			transaction.Description = *req.Description
			util.ValidateRequiredString(errs, "description", transaction.Description, 512)
		}
		if req.Paid != nil {
			transaction.Paid = *req.Paid
		}
		if req.TransactionDate != nil {
			parsed, err := time.Parse(transactionDateLayout, *req.TransactionDate)
			if err != nil {
				errs.Add("transaction_date", "enter a valid date in YYYY-MM-DD format")
			} else {
				transaction.TransactionDate = parsed
			}
		}
		if req.Category != nil {
			transaction.CategoryID = *req.Category
			if _, err := db.GetCategoryByID(r.Context(), pool, userID, transaction.CategoryID); err != nil {
				errs.Add("category", "invalid category")
			}
		}
		if req.Account != nil {
			transaction.AccountID = *req.Account
			if _, err := db.GetAccountByID(r.Context(), pool, userID, transaction.AccountID); err != nil {
				errs.Add("account", "invalid account")
			}
		}
		if errs.HasErrors() {
			util.WriteFieldErrors(w, errs)
			return
		}

		updated, err := db.UpdateTransaction(r.Context(), pool, userID, &transaction)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "transaction not found")
				return
			}
			log.Printf("ERROR: Failed to update transaction id %d for user %d: %v", transactionID, userID, err)
			util.WriteError(w, http.StatusInternalServerError, "failed to update transaction")
			return
		}

		log.Printf("INFO: Updated transaction id %d for user %d", updated.ID, userID)
		util.WriteJSON(w, http.StatusOK, updated)
	}
}

func DeleteTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		transactionID, err := parseIDParam(r, "transaction_id")
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, "invalid transaction id")
			return
		}

		if err := db.DeleteTransaction(r.Context(), pool, userID, transactionID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "transaction not found")
				return
			}
			log.Printf("ERROR: Failed to delete transaction id %d for user %d: %v", transactionID, userID, err)
			util.WriteError(w, http.StatusInternalServerError, "failed to delete transaction")
			return
		}

		log.Printf("INFO: Deleted transaction id %d for user %d", transactionID, userID)
		w.WriteHeader(http.StatusNoContent)
	}
}
