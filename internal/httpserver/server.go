// Package httpserver exposes the entropy scorer over HTTP:
//   - GET  /health
//   - GET  /scoreboard?top=N     opening guesses against the whole dictionary
//   - GET  /feedback?secret=&guess=
//   - POST /narrow               guess/pattern steps, returns remaining words and best guesses
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/powellquiring/wordle-entropy/internal/logger"
	"github.com/powellquiring/wordle-entropy/wordle"
)

type Options struct {
	Top     int // default size of returned scoreboards
	Workers int
	Timeout time.Duration
	Logger  *log.Logger
}

// Server bundles the router and the read-only scorer.
type Server struct {
	r      *chi.Mux
	scorer *wordle.Scorer
	opts   Options
	log    *log.Logger

	openingOnce sync.Once
	opening     wordle.Scoreboard
	openingErr  error
}

// New installs middleware and registers routes.
func New(scorer *wordle.Scorer, opts Options) *Server {
	if opts.Top <= 0 {
		opts.Top = wordle.DefaultTop
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	s := &Server{r: chi.NewRouter(), scorer: scorer, opts: opts, log: opts.Logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(opts.Timeout))
	s.r.Use(jsonContentType)

	s.r.Get("/health", s.handleHealth)
	s.r.Get("/scoreboard", s.handleScoreboard)
	s.r.Get("/feedback", s.handleFeedback)
	s.r.Post("/narrow", s.handleNarrow)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorRes{Error: "not found: " + r.URL.Path})
	})
	return s
}

// Start serves on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("listening", "addr", addr)
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(),
			"id", chimw.GetReqID(r.Context()), "elapsed", time.Since(start))
	})
}

type errorRes struct {
	Error string `json:"error"`
}

type entryRes struct {
	Word    string  `json:"word"`
	Entropy float64 `json:"entropy"`
}

type scoreboardRes struct {
	Candidates int        `json:"candidates"`
	Entries    []entryRes `json:"entries"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status. When the request deadline has passed the
// Timeout middleware writes 504 itself, so nothing is written here.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(r.Context().Err(), context.DeadlineExceeded) {
		return
	}
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
	case errors.Is(err, wordle.ErrEmptyDictionary):
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, errorRes{Error: err.Error()})
}

func toEntries(sb wordle.Scoreboard) []entryRes {
	ret := make([]entryRes, len(sb))
	for i, e := range sb {
		ret[i] = entryRes{Word: e.Word.String(), Entropy: e.Entropy}
	}
	return ret
}

// top reads ?top=N, falling back to the configured default.
func (s *Server) top(r *http.Request) (int, error) {
	v := r.URL.Query().Get("top")
	if v == "" {
		return s.opts.Top, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, errors.New("top must be a positive integer")
	}
	return n, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"words": s.scorer.Dictionary().Len(),
		"table": s.scorer.HasTable(),
	})
}

// openingScoreboard ranks every word against the whole dictionary once.
func (s *Server) openingScoreboard() (wordle.Scoreboard, error) {
	s.openingOnce.Do(func() {
		d := s.scorer.Dictionary()
		s.opening, s.openingErr = s.scorer.Rank(context.Background(), d.WordlistAll(), d.WordlistAll(),
			wordle.WithWorkers(s.opts.Workers), wordle.WithLogger(s.log))
	})
	return s.opening, s.openingErr
}

func (s *Server) handleScoreboard(w http.ResponseWriter, r *http.Request) {
	top, err := s.top(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sb, err := s.openingScoreboard()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreboardRes{
		Candidates: s.scorer.Dictionary().Len(),
		Entries:    toEntries(sb.Top(top)),
	})
}

type feedbackRes struct {
	Secret  string `json:"secret"`
	Guess   string `json:"guess"`
	Pattern string `json:"pattern"`
	Code    uint8  `json:"code"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p, err := wordle.Feedback(q.Get("secret"), q.Get("guess"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, feedbackRes{
		Secret:  wordle.MustParseWord(q.Get("secret")).String(),
		Guess:   wordle.MustParseWord(q.Get("guess")).String(),
		Pattern: p.String(),
		Code:    p.Code(),
	})
}

type narrowStep struct {
	Guess   string `json:"guess"`
	Pattern string `json:"pattern"`
}

type narrowReq struct {
	Steps []narrowStep `json:"steps"`
	Top   int          `json:"top"`
}

type narrowRes struct {
	Possible []string   `json:"possible"`
	Entries  []entryRes `json:"entries"`
}

func (s *Server) handleNarrow(w http.ResponseWriter, r *http.Request) {
	var req narrowReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("bad request body: %w", err))
		return
	}
	if req.Top < 0 {
		writeError(w, r, errors.New("top must not be negative"))
		return
	}
	if req.Top == 0 {
		req.Top = s.opts.Top
	}
	steps := make([]wordle.GuessAnswer, 0, len(req.Steps))
	for _, step := range req.Steps {
		guess, err := wordle.ParseWord(step.Guess)
		if err != nil {
			writeError(w, r, fmt.Errorf("step %d guess: %w", len(steps), err))
			return
		}
		p, err := wordle.ParsePattern(step.Pattern)
		if err != nil {
			writeError(w, r, fmt.Errorf("step %d pattern: %w", len(steps), err))
			return
		}
		steps = append(steps, wordle.GuessAnswer{Guess: guess, Pattern: p})
	}

	sb, possible, err := s.scorer.PlayReturnPossible(r.Context(), steps,
		wordle.WithWorkers(s.opts.Workers), wordle.WithLogger(s.log))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, narrowRes{
		Possible: s.scorer.Dictionary().WordlistStrings(possible),
		Entries:  toEntries(sb.Top(req.Top)),
	})
}
