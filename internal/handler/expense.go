package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/equiledger/backend/internal/service"
)

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	caller := expenseCaller(r)
	category := r.URL.Query().Get("category")

	expenses, err := h.expenses.List(r.Context(), caller, category)
	if err != nil {
		respondError(w, err, "Expense not found.")
		return
	}

	if category != "" {
		logrus.Infof("expenses fetched by category: %s for user: %d", category, caller.ID)
	} else {
		logrus.Infof("expenses fetched for user: %d", caller.ID)
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid expense ID.")
		return
	}

	expense, err := h.expenses.GetByID(r.Context(), expenseCaller(r), id)
	if err != nil {
		respondError(w, err, "Expense not found.")
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// CreateExpense accepts either a JSON body or a multipart form with an
// optional receipt_image file. The upload is a sequence of fallible
// steps: size cap, image-type check, store to disk, then the record
// insert; any failed step aborts the whole request.
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	caller := expenseCaller(r)

	var in service.ExpenseInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		receiptURL, err := h.uploads.SaveReceipt(w, r)
		if err != nil {
			respondError(w, err, "Expense not found.")
			return
		}
		amount, err := decimal.NewFromString(r.FormValue("amount"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "User ID, Title, category, amount, and currency are required.")
			return
		}
		in = service.ExpenseInput{
			Title:           r.FormValue("title"),
			Description:     r.FormValue("description"),
			Category:        r.FormValue("category"),
			Amount:          amount,
			Currency:        r.FormValue("currency"),
			ReceiptImageURL: receiptURL,
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request payload.")
			return
		}
	}

	if err := h.validate.Struct(&in); err != nil {
		logrus.Warnf("invalid input data for creating expense for user: %d", caller.ID)
		writeError(w, http.StatusBadRequest, "User ID, Title, category, amount, and currency are required.")
		return
	}

	expense, err := h.expenses.Create(r.Context(), caller, &in)
	if err != nil {
		respondError(w, err, "Expense not found.")
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid expense ID.")
		return
	}

	var update service.ExpenseUpdate
	if err = json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	expense, err := h.expenses.Update(r.Context(), expenseCaller(r), id, &update)
	if err != nil {
		respondError(w, err, "Expense not found.")
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid expense ID.")
		return
	}

	if err = h.expenses.Delete(r.Context(), expenseCaller(r), id); err != nil {
		respondError(w, err, "Expense not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully."})
}
