package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"loan-interest/domain"
	"loan-interest/repository"
	"loan-interest/service"

	"github.com/cespare/xxhash/v2"
	log "github.com/sirupsen/logrus"
)

type LoanHandler struct {
	service *service.LoanService
	cache   repository.CacheRepository
}

func NewLoanHandler(service *service.LoanService, cache repository.CacheRepository) *LoanHandler {
	return &LoanHandler{service: service, cache: cache}
}

// NewRouter registers the loan routes. Mutating routes go through the rate limiter.
func NewRouter(h *LoanHandler, limiter *RateLimiter) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /loans", RateLimitMiddleware(limiter, http.HandlerFunc(h.CreateLoan)))
	mux.Handle("PUT /loans/{id}", RateLimitMiddleware(limiter, http.HandlerFunc(h.UpdateLoan)))
	mux.HandleFunc("GET /loans/{id}", h.GetLoan)
	mux.HandleFunc("GET /loans", h.ListLoans)
	return mux
}

func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	params, ok := decodeParams(w, r)
	if !ok {
		return
	}

	id, err := h.service.Create(params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, createLoanResponse{ID: id})
}

func (h *LoanHandler) UpdateLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathLoanID(w, r)
	if !ok {
		return
	}
	params, ok := decodeParams(w, r)
	if !ok {
		return
	}

	if err := h.service.Update(id, params); err != nil {
		if errors.Is(err, service.ErrLoanNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathLoanID(w, r)
	if !ok {
		return
	}
	loan, ok := h.service.Get(id)
	if !ok {
		http.Error(w, fmt.Sprintf("loan with ID %d: %v", id, service.ErrLoanNotFound), http.StatusNotFound)
		return
	}

	key := loanCacheKey(id, loan.LoanParams)
	if body, hit := h.cache.Get(key); hit {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Write([]byte(body))
		return
	}

	body, err := json.Marshal(newLoanResponse(id, loan))
	if err != nil {
		http.Error(w, "failed to encode loan", http.StatusInternalServerError)
		return
	}
	if err := h.cache.Set(key, string(body)); err != nil {
		log.WithFields(log.Fields{
			"loan_id": id,
			"error":   err,
		}).Warn("Failed to cache loan response")
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Write(body)
}

func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	entries := h.service.List()
	loans := make([]loanResponse, 0, len(entries))
	for _, e := range entries {
		loans = append(loans, newLoanResponse(e.ID, e.Loan))
	}
	writeJSON(w, http.StatusOK, loans)
}

// loanCacheKey identifies a rendered loan by id and parameters, so an update
// never serves the body computed for the previous parameters.
func loanCacheKey(id domain.LoanID, p domain.LoanParams) string {
	d := xxhash.New()
	fmt.Fprintf(d, "%s|%s|%s|%s|%s|%s",
		p.StartDate.Format(domain.DateLayout),
		p.EndDate.Format(domain.DateLayout),
		strconv.FormatUint(math.Float64bits(p.Principal), 16),
		p.Currency,
		strconv.FormatUint(math.Float64bits(p.BaseRate), 16),
		strconv.FormatUint(math.Float64bits(p.Margin), 16),
	)
	return fmt.Sprintf("loan:%d:%016x", id, d.Sum64())
}

func decodeParams(w http.ResponseWriter, r *http.Request) (domain.LoanParams, bool) {
	var req loanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return domain.LoanParams{}, false
	}
	params, err := req.toParams()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return domain.LoanParams{}, false
	}
	return params, true
}

func pathLoanID(w http.ResponseWriter, r *http.Request) (domain.LoanID, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid loan ID %q", raw), http.StatusBadRequest)
		return 0, false
	}
	return domain.LoanID(id), true
}

// writeJSON encodes v before writing the status so an encoding failure is
// reported as a 500 instead of a truncated success.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Error("Failed to encode response")
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}
