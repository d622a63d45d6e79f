package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Dan9191/budget-hub/internal/jobs"
	"github.com/Dan9191/budget-hub/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// JobRunner is the set of entry points the API can trigger
type JobRunner interface {
	RecurringHandler(ctx context.Context) jobs.Response
	RolloverHandler(ctx context.Context, month, year int) jobs.Response
	AllocationHandler(ctx context.Context) jobs.Response
}

type Handler struct {
	runner JobRunner
	log    *logrus.Logger
}

func NewHandler(runner JobRunner, log *logrus.Logger) *Handler {
	return &Handler{runner: runner, log: log}
}

// Router builds the operator API. Job routes require a bearer token signed
// with jwtSecret.
func (h *Handler) Router(jwtSecret string) *mux.Router {
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/health", h.Health).Methods("GET")
	// Protected routes. Registered on the root router so a wrong method
	// answers 405 instead of 404.
	auth := middleware.AuthMiddleware(jwtSecret)
	r.Handle("/jobs/recurring", auth(http.HandlerFunc(h.RunRecurring))).Methods("POST")
	r.Handle("/jobs/rollover", auth(http.HandlerFunc(h.RunRollover))).Methods("POST")
	r.Handle("/jobs/allocation", auth(http.HandlerFunc(h.RunAllocation))).Methods("POST")
	return r
}

// Health reports that the process is up
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// RunRecurring handles manual recurring transaction generation
func (h *Handler) RunRecurring(w http.ResponseWriter, r *http.Request) {
	h.audit(r, jobs.JobRecurring)
	h.write(w, h.runner.RecurringHandler(r.Context()))
}

// RunRollover handles manual budget rollover for ?month=&year=, defaulting
// to the current period
func (h *Handler) RunRollover(w http.ResponseWriter, r *http.Request) {
	month, err := periodParam(r, "month", 1, 12)
	if err != nil {
		http.Error(w, "month must be an integer between 1 and 12", http.StatusBadRequest)
		return
	}
	year, err := periodParam(r, "year", 1, 9999)
	if err != nil {
		http.Error(w, "year must be a positive integer", http.StatusBadRequest)
		return
	}
	h.audit(r, jobs.JobRollover)
	h.write(w, h.runner.RolloverHandler(r.Context(), month, year))
}

// RunAllocation handles manual saving goal allocation
func (h *Handler) RunAllocation(w http.ResponseWriter, r *http.Request) {
	h.audit(r, jobs.JobAllocation)
	h.write(w, h.runner.AllocationHandler(r.Context()))
}

func (h *Handler) audit(r *http.Request, job string) {
	op, _ := middleware.Operator(r.Context())
	h.log.WithFields(logrus.Fields{"job": job, "operator": op}).Info("Job triggered manually")
}

func (h *Handler) write(w http.ResponseWriter, resp jobs.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write([]byte(resp.Body))
}

// periodParam parses an optional integer query parameter in [lo, hi].
// An absent parameter yields 0.
func periodParam(r *http.Request, name string, lo, hi int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		return 0, strconv.ErrRange
	}
	return v, nil
}
