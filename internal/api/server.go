// Package api exposes the backtest engine and stores over HTTP. The engine
// core stays pure; this package owns all request decoding, validation and
// error-to-status mapping.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	engine "github.com/quantfold/pinebt/internal/backtest/engine/engine_v1"
	"github.com/quantfold/pinebt/internal/logger"
	"github.com/quantfold/pinebt/internal/store"
	"github.com/quantfold/pinebt/pkg/errors"
)

const dateLayout = "2006-01-02"

// Server routes API requests to the stores and the backtest engine.
type Server struct {
	router     *mux.Router
	log        *logger.Logger
	validate   *validator.Validate
	strategies store.StrategyStore
	bars       store.PriceSeriesStore
	results    store.ResultStore
	engine     *engine.BacktestEngineV1
}

// NewServer creates a Server wired to the given stores.
func NewServer(strategies store.StrategyStore, bars store.PriceSeriesStore, results store.ResultStore, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNopLogger()
	}

	s := &Server{
		router:     mux.NewRouter(),
		log:        log,
		validate:   validator.New(),
		strategies: strategies,
		bars:       bars,
		results:    results,
		engine:     engine.NewBacktestEngineV1(log),
	}

	s.routes()

	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/strategies", s.handleCreateStrategy).Methods(http.MethodPost)
	api.HandleFunc("/strategies", s.handleListStrategies).Methods(http.MethodGet)
	api.HandleFunc("/strategies/{id}", s.handleGetStrategy).Methods(http.MethodGet)
	api.HandleFunc("/strategies/{id}", s.handleUpdateStrategy).Methods(http.MethodPut)
	api.HandleFunc("/strategies/{id}", s.handleDeleteStrategy).Methods(http.MethodDelete)
	api.HandleFunc("/bars/{symbol}", s.handleGetBars).Methods(http.MethodGet)
	api.HandleFunc("/backtests", s.handleRunBacktest).Methods(http.MethodPost)
	api.HandleFunc("/backtests/{id}", s.handleGetBacktest).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the server on addr and blocks.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("API server listening", zap.String("addr", addr))

	server := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	return server.ListenAndServe()
}

type createStrategyRequest struct {
	Name        string `json:"name" validate:"required"`
	PineScript  string `json:"pineScript" validate:"required"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
}

func (s *Server) handleCreateStrategy(w http.ResponseWriter, r *http.Request) {
	var req createStrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidRequest, "malformed request body", err))

		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid strategy payload", err))

		return
	}

	record, err := s.strategies.CreateStrategy(store.StrategyRecord{
		Name:        req.Name,
		PineScript:  req.PineScript,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusCreated, record)
}

func (s *Server) handleListStrategies(w http.ResponseWriter, _ *http.Request) {
	records, err := s.strategies.ListStrategies()
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetStrategy(w http.ResponseWriter, r *http.Request) {
	record, err := s.strategies.GetStrategy(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleUpdateStrategy(w http.ResponseWriter, r *http.Request) {
	var update store.StrategyUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidRequest, "malformed request body", err))

		return
	}

	record, err := s.strategies.UpdateStrategy(mux.Vars(r)["id"], update)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleDeleteStrategy(w http.ResponseWriter, r *http.Request) {
	if err := s.strategies.DeleteStrategy(mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetBars(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		s.writeError(w, err)

		return
	}

	bars, err := s.bars.FetchBars(mux.Vars(r)["symbol"], start, end)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, bars)
}

type runBacktestRequest struct {
	StrategyID     string  `json:"strategyId" validate:"required"`
	Symbol         string  `json:"symbol" validate:"required"`
	StartDate      string  `json:"startDate" validate:"required"`
	EndDate        string  `json:"endDate" validate:"required"`
	InitialCapital float64 `json:"initialCapital" validate:"gt=0"`
}

type runBacktestResponse struct {
	BacktestID string `json:"backtestId"`
	store.BacktestRecord
}

func (s *Server) handleRunBacktest(w http.ResponseWriter, r *http.Request) {
	var req runBacktestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidRequest, "malformed request body", err))

		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid backtest payload", err))

		return
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		s.writeError(w, err)

		return
	}

	strategy, err := s.strategies.GetStrategy(req.StrategyID)
	if err != nil {
		s.writeError(w, err)

		return
	}

	bars, err := s.bars.FetchBars(req.Symbol, start, end)
	if err != nil {
		s.writeError(w, err)

		return
	}

	if len(bars) == 0 {
		s.writeError(w, errors.Newf(errors.ErrCodeEmptySeries, "no price data for %s in the requested window", req.Symbol))

		return
	}

	result, err := s.engine.Run(strategy.PineScript, bars, req.InitialCapital)
	if err != nil {
		s.writeError(w, err)

		return
	}

	record := store.BacktestRecord{
		StrategyID:     req.StrategyID,
		Symbol:         req.Symbol,
		StartDate:      start,
		EndDate:        end,
		InitialCapital: req.InitialCapital,
		Result:         result,
	}

	id, err := s.results.SaveResult(record)
	if err != nil {
		s.writeError(w, err)

		return
	}

	record.ID = id

	s.writeJSON(w, http.StatusOK, runBacktestResponse{
		BacktestID:     id,
		BacktestRecord: record,
	})
}

func (s *Server) handleGetBacktest(w http.ResponseWriter, r *http.Request) {
	record, err := s.results.GetResult(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, record)
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, startStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrapf(errors.ErrCodeInvalidDateRange, err, "invalid start date %q", startStr)
	}

	end, err := time.ParseInLocation(dateLayout, endStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrapf(errors.ErrCodeInvalidDateRange, err, "invalid end date %q", endStr)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.Newf(errors.ErrCodeInvalidDateRange, "end date %s precedes start date %s", endStr, startStr)
	}

	// Include the whole end day.
	return start, end.AddDate(0, 0, 1).Add(-time.Millisecond), nil
}

type errorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.IsNotFound(err):
		status = http.StatusNotFound
	case errors.IsInvalidInput(err):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.log.Error("Request failed", zap.Error(err))
	}

	s.writeJSON(w, status, errorResponse{
		Error: err.Error(),
		Code:  int(errors.GetCode(err)),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("Failed to encode response", zap.Error(err))
	}
}
