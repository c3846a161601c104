package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harborlane/specials/internal/auth"
	"github.com/harborlane/specials/internal/models"
	"github.com/harborlane/specials/internal/money"
	"github.com/harborlane/specials/internal/storage"
	"github.com/harborlane/specials/internal/validate"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// POST /api/admin/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Password == "" {
		writeError(w, http.StatusBadRequest, "Password is required")
		return
	}

	token, err := s.auth.Login(body.Password)
	switch {
	case errors.Is(err, auth.ErrNotConfigured):
		writeError(w, http.StatusInternalServerError, "Server configuration error")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid password")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "An error occurred")
	default:
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": token})
	}
}

// boardPayload is the wire shape of the four-course board, prices in
// major units.
type boardPayload struct {
	SoupName       string  `json:"soup_name"`
	SoupPrice      float64 `json:"soup_price"`
	LunchName      string  `json:"lunch_name"`
	LunchPrice     float64 `json:"lunch_price"`
	DinnerName     string  `json:"dinner_name"`
	DinnerPrice    float64 `json:"dinner_price"`
	VegetableName  string  `json:"vegetable_name"`
	VegetablePrice float64 `json:"vegetable_price"`
}

func toBoardPayload(board *models.MenuBoard) boardPayload {
	return boardPayload{
		SoupName:       board.Items[models.CourseSoup].Name,
		SoupPrice:      money.MajorUnits(board.Items[models.CourseSoup].PriceCents),
		LunchName:      board.Items[models.CourseLunch].Name,
		LunchPrice:     money.MajorUnits(board.Items[models.CourseLunch].PriceCents),
		DinnerName:     board.Items[models.CourseDinner].Name,
		DinnerPrice:    money.MajorUnits(board.Items[models.CourseDinner].PriceCents),
		VegetableName:  board.Items[models.CourseVegetable].Name,
		VegetablePrice: money.MajorUnits(board.Items[models.CourseVegetable].PriceCents),
	}
}

// GET /api/admin/specials
func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := s.specials.BoardForToday(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch daily specials")
		return
	}
	writeJSON(w, http.StatusOK, toBoardPayload(board))
}

// PUT /api/admin/specials
func (s *Server) handlePutBoard(w http.ResponseWriter, r *http.Request) {
	var raw validate.RawBoard
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.specials.SaveBoard(r.Context(), raw); err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save daily specials")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Daily specials saved successfully",
	})
}

// specialPayload is the wire shape of the rich record.
type specialPayload struct {
	ID           string   `json:"id"`
	SpecialDate  string   `json:"special_date"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	PriceCents   int64    `json:"price_cents"`
	CurrencyCode string   `json:"currency_code"`
	Emoji        string   `json:"emoji,omitempty"`
	Highlights   []string `json:"highlights"`
	CreatedAt    int64    `json:"created_at"`
	UpdatedAt    int64    `json:"updated_at"`
}

func toSpecialPayload(special *models.DailySpecial) specialPayload {
	highlights := special.Highlights
	if highlights == nil {
		highlights = []string{}
	}
	return specialPayload{
		ID:           special.ID,
		SpecialDate:  special.SpecialDate,
		Title:        special.Title,
		Description:  special.Description,
		PriceCents:   special.PriceCents,
		CurrencyCode: special.CurrencyCode,
		Emoji:        special.Emoji,
		Highlights:   highlights,
		CreatedAt:    special.CreatedAt,
		UpdatedAt:    special.UpdatedAt,
	}
}

// GET /api/admin/special
func (s *Server) handleGetSpecial(w http.ResponseWriter, r *http.Request) {
	special, err := s.specials.CurrentOrLatest(r.Context())
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusOK, map[string]any{"record": nil})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch daily special")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"record": toSpecialPayload(special)})
}

// POST /api/admin/special — form-encoded, returns the status/message
// pair the admin form renders directly.
func (s *Server) handleSaveSpecial(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"status": "error", "message": "Invalid form submission.",
		})
		return
	}

	raw := validate.RawSpecial{
		SpecialDate:  r.PostFormValue("special_date"),
		Title:        r.PostFormValue("title"),
		Description:  r.PostFormValue("description"),
		PriceMajor:   r.PostFormValue("price_major"),
		CurrencyCode: r.PostFormValue("currency_code"),
		Emoji:        r.PostFormValue("emoji"),
		Highlights:   r.PostFormValue("highlights"),
	}

	_, err := s.specials.SaveSpecial(r.Context(), raw)
	if err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"status": "error", "message": verr.Message,
			})
			return
		}
		// Storage failures surface the backend's message, unretried.
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "error", "message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "success", "message": "Daily special saved.",
	})
}

// GET /api/specials/today — the guest-facing read; no auth, price
// pre-formatted for display.
func (s *Server) handlePublicToday(w http.ResponseWriter, r *http.Request) {
	special, err := s.specials.CurrentOrLatest(r.Context())
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusOK, map[string]any{"record": nil})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch daily special")
		return
	}

	payload := toSpecialPayload(special)
	writeJSON(w, http.StatusOK, map[string]any{
		"record":        payload,
		"price_display": money.Format(special.PriceCents, special.CurrencyCode),
	})
}

// GET /healthz
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
