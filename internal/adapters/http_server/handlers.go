package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"bank_reviews/internal/app"
	"bank_reviews/internal/domain"
)

// maxBatchSize caps one /predict/batch request.
const maxBatchSize = 500

type Handlers struct {
	Predict  *app.PredictService
	Insights *app.InsightsService
	Repo     domain.ReviewRepository
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/predict", h.predict)
	s.mux.Post("/predict/batch", h.predictBatch)
	s.mux.Get("/v1/banks", h.listBanks)
	s.mux.Get("/v1/banks/{bank}/reviews", h.listReviews)
	s.mux.Get("/v1/insights", h.insights)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

type predictRequest struct {
	ReviewText string `json:"review_text"`
}

type batchRequest struct {
	Reviews []string `json:"reviews"`
}

type batchResponse struct {
	Results []app.Prediction `json:"results"`
	Count   int              `json:"count"`
}

func (h *Handlers) predict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "body must be JSON with a review_text field")
		return
	}
	if strings.TrimSpace(req.ReviewText) == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "review_text must not be empty")
		return
	}
	writeJSON(w, http.StatusOK, h.Predict.Predict(r.Context(), req.ReviewText))
}

func (h *Handlers) predictBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "body must be JSON with a reviews array")
		return
	}
	if len(req.Reviews) == 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "reviews must not be empty")
		return
	}
	if len(req.Reviews) > maxBatchSize {
		writeProblem(w, http.StatusBadRequest, "Batch too large", "reviews must hold at most "+strconv.Itoa(maxBatchSize)+" items")
		return
	}
	results := h.Predict.PredictBatch(r.Context(), req.Reviews)
	writeJSON(w, http.StatusOK, batchResponse{Results: results, Count: len(results)})
}

type bankView struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	AppName string `json:"app_name,omitempty"`
	AppID   string `json:"app_id,omitempty"`
}

func (h *Handlers) listBanks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.Repo.ListBanks(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not list banks")
		return
	}
	out := make([]bankView, len(banks))
	for i, b := range banks {
		out[i] = bankView{Code: b.Code, Name: b.Name, AppName: b.AppName, AppID: b.AppID}
	}
	writeCached(w, r, out)
}

type reviewView struct {
	ReviewID       int64   `json:"review_id"`
	Bank           string  `json:"bank"`
	ReviewText     string  `json:"review_text"`
	Rating         int     `json:"rating"`
	Date           string  `json:"date"`
	SentimentLabel string  `json:"sentiment_label"`
	SentimentScore float64 `json:"sentiment_score"`
	Theme          string  `json:"theme"`
	Source         string  `json:"source"`
}

type reviewsResponse struct {
	Items []reviewView `json:"items"`
	Total int          `json:"total"`
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	q := domain.ReviewsQuery{Bank: chi.URLParam(r, "bank"), Limit: 50}

	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		q.Limit = l
	}
	if s := r.URL.Query().Get("sentiment"); s != "" {
		s = strings.ToUpper(s)
		switch s {
		case domain.SentimentPositive, domain.SentimentNegative, domain.SentimentNeutral:
			q.Sentiment = s
		default:
			writeProblem(w, http.StatusBadRequest, "Invalid sentiment", "sentiment must be POSITIVE, NEGATIVE or NEUTRAL")
			return
		}
	}
	q.Theme = r.URL.Query().Get("theme")
	if mr := r.URL.Query().Get("min_rating"); mr != "" {
		m, err := strconv.Atoi(mr)
		if err != nil || m < 1 || m > 5 {
			writeProblem(w, http.StatusBadRequest, "Invalid min_rating", "min_rating must be an integer between 1 and 5")
			return
		}
		q.MinRating = m
	}

	page, err := h.Repo.ListReviews(r.Context(), q)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not list reviews")
		return
	}
	out := reviewsResponse{Items: make([]reviewView, len(page.Items)), Total: page.Total}
	for i, rv := range page.Items {
		out.Items[i] = reviewView{
			ReviewID:       rv.ReviewID,
			Bank:           rv.Bank,
			ReviewText:     rv.ReviewText,
			Rating:         rv.Rating,
			Date:           rv.Date,
			SentimentLabel: rv.SentimentLabel,
			SentimentScore: rv.SentimentScore,
			Theme:          rv.Theme,
			Source:         rv.Source,
		}
	}
	writeCached(w, r, out)
}

func (h *Handlers) insights(w http.ResponseWriter, r *http.Request) {
	out, err := h.Insights.Overview(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not build insights")
		return
	}
	writeCached(w, r, out)
}
