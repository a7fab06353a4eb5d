// Package web serves the browsing interface: an HTML search page and a
// small JSON API over the stored property records.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/onobori/chintai"
	"golang.org/x/sync/errgroup"
)

// SessionCookie names the cookie carrying the browsing session ID.
const SessionCookie = "chintai_session"

// DefaultRequestsPerMinute is the per-IP rate limit when none is configured.
const DefaultRequestsPerMinute = 100

const defaultCommuteMinutes = 10

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(
	template.New("index.html").Funcs(funcs).ParseFS(templateFS, "templates/index.html"),
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	Properties chintai.PropertyService
	Suggester  chintai.Suggester
	Selections chintai.SelectionStore

	// Observer is optional.
	Observer chintai.Observer

	// MetricsHandler is mounted at /metrics when set.
	MetricsHandler http.Handler

	// RequestsPerMinute limits requests per client IP.
	// Defaults to DefaultRequestsPerMinute.
	RequestsPerMinute int

	Logger *slog.Logger
}

// Handler returns the router serving every endpoint.
func (s *Server) Handler() http.Handler {
	limit := s.RequestsPerMinute
	if limit <= 0 {
		limit = DefaultRequestsPerMinute
	}

	r := chi.NewRouter()
	r.Use(httprate.LimitByIP(limit, time.Minute))

	r.Get("/", s.handleIndex)
	r.Post("/suggest", s.handleSuggest)
	r.Post("/search", s.handleSearch)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/properties", s.handleAPIProperties)
		r.Post("/suggest", s.handleAPISuggest)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]bool{"ok": true})
	})
	if s.MetricsHandler != nil {
		r.Handle("/metrics", s.MetricsHandler)
	}

	return r
}

// pageData is the view model of the search page.
type pageData struct {
	Filter    chintai.PropertyFilter
	Layouts   []string
	Selection *chintai.Selection
	Results   []*chintai.Property
	Searched  bool
	Total     int
	Error     string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sessionID := s.session(w, r)
	sel, err := s.selection(r.Context(), sessionID)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	data := s.newPage(sel)
	s.renderPage(w, r, http.StatusOK, data)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	sessionID := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, chintai.Errorf(chintai.EINVALID, "invalid form"))
		return
	}

	station, minutes, err := parseCommute(r.PostForm)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	sug, err := s.suggest(r.Context(), station, minutes)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	sel := &chintai.Selection{
		WorkStation:    station,
		CommuteMinutes: minutes,
		Suggestion:     sug,
		Selected:       []string{},
	}
	if err := s.Selections.SaveSelection(r.Context(), sessionID, sel); err != nil {
		s.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sessionID := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, chintai.Errorf(chintai.EINVALID, "invalid form"))
		return
	}

	sel, err := s.selection(r.Context(), sessionID)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	// The form posts suggestion lines. Only suggested lines survive and
	// they are matched by station name.
	sel.Select(r.PostForm[fieldStation])
	if sel.Suggestion != nil {
		if err := s.Selections.SaveSelection(r.Context(), sessionID, sel); err != nil {
			s.renderError(w, r, err)
			return
		}
	}

	values := cloneValues(r.PostForm)
	values[fieldStation] = sel.StationNames()
	filter, err := parseFilter(values)
	data := s.newPage(sel)
	data.Filter = filter
	if err != nil {
		data.Error = chintai.ErrorMessage(err)
		s.renderPage(w, r, statusCode(err), data)
		return
	}

	props, err := s.Properties.FindProperties(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	data.Results = chintai.FilterProperties(props, filter)
	data.Total = len(props)
	data.Searched = true
	s.renderPage(w, r, http.StatusOK, data)
}

// propertiesResponse is the body of GET /api/properties.
type propertiesResponse struct {
	Count      int                 `json:"count"`
	Properties []*chintai.Property `json:"properties"`
}

func (s *Server) handleAPIProperties(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		s.jsonError(w, r, err)
		return
	}

	props, err := s.Properties.FindProperties(r.Context())
	if err != nil {
		s.jsonError(w, r, err)
		return
	}

	matched := chintai.FilterProperties(props, filter)
	render.JSON(w, r, propertiesResponse{Count: len(matched), Properties: matched})
}

// suggestRequest is the body of POST /api/suggest.
type suggestRequest struct {
	Station string `json:"station"`
	Minutes int    `json:"minutes"`
}

func (s *Server) handleAPISuggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, r, chintai.Errorf(chintai.EINVALID, "invalid JSON body"))
		return
	}
	if req.Minutes == 0 {
		req.Minutes = defaultCommuteMinutes
	}

	sug, err := s.suggest(r.Context(), req.Station, req.Minutes)
	if err != nil {
		s.jsonError(w, r, err)
		return
	}
	render.JSON(w, r, sug)
}

// suggest calls the suggester and reports the outcome to the observer.
func (s *Server) suggest(ctx context.Context, station string, minutes int) (*chintai.Suggestion, error) {
	if err := chintai.ValidateSuggestRequest(station, minutes); err != nil {
		return nil, err
	}
	sug, err := s.Suggester.Suggest(ctx, station, minutes)
	if err != nil {
		return nil, err
	}
	if s.Observer != nil {
		s.Observer.SuggestionServed(sug)
	}
	return sug, nil
}

// session returns the session ID from the cookie, issuing a new one when
// the request has none.
func (s *Server) session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// selection loads the session's selection, or an empty one if none exists.
func (s *Server) selection(ctx context.Context, sessionID string) (*chintai.Selection, error) {
	sel, err := s.Selections.FindSelection(ctx, sessionID)
	if chintai.ErrorCode(err) == chintai.ENOTFOUND {
		return &chintai.Selection{CommuteMinutes: defaultCommuteMinutes, Selected: []string{}}, nil
	} else if err != nil {
		return nil, err
	}
	return sel, nil
}

func (s *Server) newPage(sel *chintai.Selection) *pageData {
	return &pageData{
		Filter:    chintai.DefaultPropertyFilter(),
		Layouts:   chintai.Layouts,
		Selection: sel,
	}
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, data *pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger().Error("render page", "path", r.URL.Path, "error", err)
	}
}

// renderError renders the page with the error message and a matching status.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	s.logError(r, err)
	data := s.newPage(&chintai.Selection{CommuteMinutes: defaultCommuteMinutes, Selected: []string{}})
	data.Error = chintai.ErrorMessage(err)
	s.renderPage(w, r, statusCode(err), data)
}

// errorResponse is the body of every JSON error.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) jsonError(w http.ResponseWriter, r *http.Request, err error) {
	s.logError(r, err)
	render.Status(r, statusCode(err))
	render.JSON(w, r, errorResponse{Error: chintai.ErrorMessage(err)})
}

func (s *Server) logError(r *http.Request, err error) {
	if chintai.ErrorCode(err) == chintai.EINTERNAL {
		s.logger().Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// statusCode maps application error codes to HTTP status codes.
func statusCode(err error) int {
	switch chintai.ErrorCode(err) {
	case chintai.EINVALID:
		return http.StatusBadRequest
	case chintai.ENOTFOUND:
		return http.StatusNotFound
	case chintai.ECONFLICT:
		return http.StatusConflict
	case chintai.ENOTIMPLEMENTED:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func cloneValues(v map[string][]string) map[string][]string {
	out := make(map[string][]string, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

// ListenAndServe serves handler on addr until ctx is done, then shuts the
// server down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
