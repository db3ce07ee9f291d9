package cart

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Storefront/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Store *Store
	Log   *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Store.KV.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(RequireUserHeaders)

		pr.Get("/cart", s.view)
		pr.Get("/cart/summary", s.summary)
		pr.Post("/cart/items", s.add)
		pr.Patch("/cart/items/{key}", s.step)
		pr.Delete("/cart/items/{key}", s.remove)
		pr.Delete("/cart", s.clear)
		pr.Post("/checkout", s.checkout)
	})

	return r
}

// cartResp is every cart mutation's response: the fresh line set, the badge
// value, and totals (omitted entirely while the cart is empty).
type cartResp struct {
	Lines  []Line  `json:"lines"`
	Badge  int     `json:"badge"`
	Totals *Totals `json:"totals,omitempty"`
}

func newCartResp(lines []Line) cartResp {
	return cartResp{
		Lines:  lines,
		Badge:  Badge(lines),
		Totals: ComputeTotals(lines),
	}
}

func (s *Server) view(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, newCartResp(s.Store.Lines(r.Context(), u.ID)))
}

type summaryResp struct {
	Badge  int     `json:"badge"`
	Totals *Totals `json:"totals,omitempty"`
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	lines := s.Store.Lines(r.Context(), u.ID)
	kit.WriteJSON(w, http.StatusOK, summaryResp{
		Badge:  Badge(lines),
		Totals: ComputeTotals(lines),
	})
}

type addReq struct {
	ProductID int64   `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	var req addReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if details := validateAdd(req); details != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid item", details)
		return
	}

	line := Line{
		ProductID:      req.ProductID,
		VariationKey:   VariationKey(req.ProductID, req.Size, req.Color),
		Title:          strings.TrimSpace(req.Title),
		UnitPriceCents: int64(math.Round(req.Price * 100)),
		Image:          req.Image,
		Size:           req.Size,
		Color:          req.Color,
		Quantity:       req.Quantity,
	}

	lines, err := s.Store.Add(r.Context(), u.ID, line)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, newCartResp(lines))
}

func validateAdd(req addReq) map[string]any {
	details := map[string]any{}
	if req.ProductID <= 0 {
		details["product_id"] = "required"
	}
	if strings.TrimSpace(req.Title) == "" {
		details["title"] = "required"
	}
	if req.Price < 0 {
		details["price"] = "must not be negative"
	}
	if req.Quantity < MinQuantity || req.Quantity > MaxQuantity {
		details["quantity"] = "must be between 1 and 10"
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

type stepReq struct {
	Action string `json:"action"`
}

func (s *Server) step(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	var req stepReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	var delta int
	switch req.Action {
	case "increase":
		delta = 1
	case "decrease":
		delta = -1
	default:
		kit.WriteError(w, r, http.StatusBadRequest, "bad action", map[string]any{"action": req.Action})
		return
	}

	lines, err := s.Store.Step(r.Context(), u.ID, chi.URLParam(r, "key"), delta)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, newCartResp(lines))
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	lines, err := s.Store.Remove(r.Context(), u.ID, chi.URLParam(r, "key"))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, newCartResp(lines))
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	if err := s.Store.Clear(r.Context(), u.ID); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, newCartResp([]Line{}))
}

var errCartEmpty = errors.New("cart is empty")

type checkoutResp struct {
	Message string `json:"message"`
	Badge   int    `json:"badge"`
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	if len(s.Store.Lines(r.Context(), u.ID)) == 0 {
		kit.WriteError(w, r, http.StatusConflict, "cart is empty", nil)
		return
	}

	if err := s.placeOrder(r.Context(), u.ID); err != nil {
		if errors.Is(err, errCartEmpty) {
			kit.WriteError(w, r, http.StatusConflict, "cart is empty", nil)
			return
		}
		s.writeStoreError(w, r, err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, checkoutResp{
		Message: "Order placed successfully! Thank you for your purchase.",
		Badge:   0,
	})
}

// placeOrder re-checks emptiness before clearing; the handler's check and
// this one must both pass. No order record is kept, the purchase is a
// simulation that ends with an emptied cart.
func (s *Server) placeOrder(ctx context.Context, userID string) error {
	if len(s.Store.Lines(ctx, userID)) == 0 {
		return errCartEmpty
	}
	return s.Store.Clear(ctx, userID)
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if s.Log != nil {
		s.Log.Error("cart store error", zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}
