package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"rebalancer/internal/app"
	"rebalancer/internal/config"
	"rebalancer/internal/provider"
	"rebalancer/internal/storage"
)

type quotesResponse struct {
	Quotes     []provider.Quote `json:"quotes"`
	Unresolved []string         `json:"unresolved"`
}

type symbolResponse struct {
	Symbol   string `json:"symbol"`
	Quotable bool   `json:"quotable"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type quotesBody struct {
	Symbols []string `json:"symbols"`
}

type portfolioBody struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type holdingBody struct {
	Symbol string           `json:"symbol"`
	Units  *decimal.Decimal `json:"units"`
}

type unitsBody struct {
	Units *decimal.Decimal `json:"units"`
}

type rebalanceBody struct {
	Cash    decimal.Decimal            `json:"cash"`
	Targets map[string]decimal.Decimal `json:"targets"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetQuotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("symbols")
	if strings.TrimSpace(q) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{"missing symbols query param"})
		return
	}
	s.writeQuotes(w, r, config.SplitCSV(q))
}

func (s *Server) handlePostQuotes(w http.ResponseWriter, r *http.Request) {
	var b quotesBody
	if !decodeJSON(w, r, &b) {
		return
	}
	if len(b.Symbols) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{"symbols cannot be empty"})
		return
	}
	s.writeQuotes(w, r, b.Symbols)
}

func (s *Server) writeQuotes(w http.ResponseWriter, r *http.Request, symbols []string) {
	symbols = provider.NormalizeSymbols(symbols)
	if len(symbols) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{"symbols cannot be empty"})
		return
	}
	if len(symbols) > maxSymbols {
		writeJSON(w, http.StatusBadRequest, errorResponse{"too many symbols (max 1000)"})
		return
	}

	quotes := s.svc.ResolvePrices(r.Context(), symbols)
	resp := quotesResponse{
		Quotes:     make([]provider.Quote, 0, len(quotes)),
		Unresolved: []string{},
	}
	for _, sym := range symbols {
		if q, ok := quotes[sym]; ok {
			resp.Quotes = append(resp.Quotes, q)
		} else {
			resp.Unresolved = append(resp.Unresolved, sym)
		}
	}
	sort.Slice(resp.Quotes, func(i, j int) bool { return resp.Quotes[i].Symbol < resp.Quotes[j].Symbol })
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSymbol(w http.ResponseWriter, r *http.Request) {
	sym := provider.NormalizeSymbol(chi.URLParam(r, "symbol"))
	ok, err := s.svc.IsQuotable(r.Context(), sym)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, symbolResponse{Symbol: sym, Quotable: ok})
}

func (s *Server) handleListPortfolios(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.ListPortfolios(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var b portfolioBody
	if !decodeJSON(w, r, &b) {
		return
	}
	p, err := s.svc.CreatePortfolio(r.Context(), b.Name, b.Type)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleViewPortfolio(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleDeletePortfolio(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeletePortfolio(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddHolding(w http.ResponseWriter, r *http.Request) {
	var b holdingBody
	if !decodeJSON(w, r, &b) {
		return
	}
	if b.Units == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{"units is required"})
		return
	}
	h, err := s.svc.AddHolding(r.Context(), chi.URLParam(r, "id"), b.Symbol, *b.Units)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h)
}

func (s *Server) handleUpdateHolding(w http.ResponseWriter, r *http.Request) {
	var b unitsBody
	if !decodeJSON(w, r, &b) {
		return
	}
	if b.Units == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{"units is required"})
		return
	}
	h, err := s.svc.UpdateUnits(r.Context(), chi.URLParam(r, "id"), *b.Units)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleDeleteHolding(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteHolding(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLastKnownPrice(w http.ResponseWriter, r *http.Request) {
	q, err := s.svc.LastKnownPrice(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "symbol"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleRebalanceForm(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.RebalanceForm(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleRebalance(w http.ResponseWriter, r *http.Request) {
	var b rebalanceBody
	if !decodeJSON(w, r, &b) {
		return
	}
	plan, err := s.svc.Rebalance(r.Context(), chi.URLParam(r, "id"), b.Targets, b.Cash)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// writeError maps service errors to status codes. Unexpected errors are logged
// and reported without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{err.Error()})
	case errors.Is(err, app.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
	case errors.Is(err, app.ErrInvalidSymbol):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{err.Error()})
	default:
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{"internal server error"})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{"invalid JSON body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
