package docserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/five82/swipedeck/internal/card"
	"github.com/five82/swipedeck/internal/firestore"
)

const (
	requestIDHeader = "X-Request-Id"
	maxQueryBytes   = 64 << 10
)

// Server answers runQuery requests for one collection from a catalog.
type Server struct {
	catalog    *Catalog
	collection string
	logger     *slog.Logger
	started    time.Time
	now        func() time.Time
}

// New returns a server for the catalog's cards.
func New(catalog *Catalog, collection string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	collection = strings.TrimSpace(collection)
	if collection == "" {
		collection = "cards"
	}
	return &Server{
		catalog:    catalog,
		collection: collection,
		logger:     logger,
		started:    time.Now().UTC(),
		now:        time.Now,
	}
}

// Handler builds the HTTP router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Get("/healthz", s.health)
	r.Route("/v1/projects/{project}/databases/{database}", func(rr chi.Router) {
		rr.Post("/documents:runQuery", s.runQuery)
	})
	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	snap := s.catalog.Snapshot()
	status := "ok"
	if snap.Stale() {
		status = "stale"
	}
	body := map[string]any{
		"status":     status,
		"collection": s.collection,
		"cards":      len(snap.Cards),
		"loaded_at":  snap.LastLoaded.UTC().Format(time.RFC3339),
	}
	if snap.LastError != nil {
		body["last_error"] = snap.LastError.Error()
		body["failures"] = snap.ConsecutiveFailures
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) runQuery(w http.ResponseWriter, r *http.Request) {
	var req firestore.RunQueryRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxQueryBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", fmt.Sprintf("invalid query: %v", err))
		return
	}
	from := req.StructuredQuery.From
	if len(from) != 1 {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "query must select exactly one collection")
		return
	}

	readTime := s.now().UTC().Format(time.RFC3339Nano)
	if from[0].CollectionID != s.collection {
		// Firestore answers a query that matches nothing with a lone read time.
		writeJSON(w, http.StatusOK, []firestore.QueryRow{{ReadTime: readTime}})
		return
	}

	cards, err := ordered(s.catalog.Snapshot().Cards, req.StructuredQuery.OrderBy)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	if len(cards) == 0 {
		writeJSON(w, http.StatusOK, []firestore.QueryRow{{ReadTime: readTime}})
		return
	}

	prefix := fmt.Sprintf("projects/%s/databases/%s/documents/%s/",
		chi.URLParam(r, "project"), chi.URLParam(r, "database"), s.collection)
	stamp := s.started.Format(time.RFC3339Nano)
	rows := make([]firestore.QueryRow, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, firestore.QueryRow{
			Document: &firestore.Document{
				Name:       prefix + fmt.Sprint(c.ID),
				Fields:     firestore.EncodeCard(c),
				CreateTime: stamp,
				UpdateTime: stamp,
			},
			ReadTime: readTime,
		})
	}
	writeJSON(w, http.StatusOK, rows)
}

// ordered applies the query's orderBy. Only the id field is indexed.
func ordered(out []card.Card, orders []firestore.Order) ([]card.Card, error) {
	if len(orders) == 0 {
		return out, nil
	}
	if len(orders) > 1 || orders[0].Field.FieldPath != "id" {
		return nil, fmt.Errorf("only orderBy id is supported")
	}
	switch strings.ToUpper(orders[0].Direction) {
	case "", "ASCENDING":
	case "DESCENDING":
		slices.Reverse(out)
	default:
		return nil, fmt.Errorf("unknown direction %q", orders[0].Direction)
	}
	return out, nil
}

type ctxKey struct{}

// RequestID returns the request id stored by the server middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", RequestID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    status,
			"message": message,
			"status":  code,
		},
	})
}
