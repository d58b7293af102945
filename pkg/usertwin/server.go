// pkg/usertwin/server.go

package usertwin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// maxBody bounds request bodies.
const maxBody = 1 << 20

// Server answers the users API the way the hosted service does:
//
//	GET    {prefix}/users        200, JSON array
//	POST   {prefix}/users        201, stored document with its _id
//	GET    {prefix}/users/{id}   200 document, or 404 with an empty body
//	PUT    {prefix}/users/{id}   200 with an empty body, or 404
//	DELETE {prefix}/users/{id}   200 with an empty body, or 404
type Server struct {
	store    *Store
	router   *mux.Router
	log      *zap.Logger
	requests atomic.Int64
}

// Option customizes a Server.
type Option func(*serverOptions)

type serverOptions struct {
	prefix string
	log    *zap.Logger
}

// WithPrefix mounts the API under prefix, e.g. "/api/<token>".
func WithPrefix(prefix string) Option {
	return func(o *serverOptions) { o.prefix = "/" + strings.Trim(prefix, "/") }
}

func WithLogger(log *zap.Logger) Option {
	return func(o *serverOptions) { o.log = log }
}

// NewServer serves store. A nil store gets a fresh one.
func NewServer(store *Store, opts ...Option) *Server {
	o := serverOptions{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if store == nil {
		store = NewStore()
	}

	s := &Server{store: store, router: mux.NewRouter(), log: o.log}

	r := s.router
	if o.prefix != "" && o.prefix != "/" {
		r = s.router.PathPrefix(o.prefix).Subrouter()
	}
	r.HandleFunc("/users", s.listUsers).Methods(http.MethodGet)
	r.HandleFunc("/users", s.createUser).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}", s.getUser).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", s.replaceUser).Methods(http.MethodPut)
	r.HandleFunc("/users/{id}", s.deleteUser).Methods(http.MethodDelete)

	return s
}

// ServeHTTP counts every request, routed or not.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)
	s.log.Debug("twin request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
	s.router.ServeHTTP(w, r)
}

// Requests reports how many requests the server has received.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

func (s *Server) Store() *Store {
	return s.store
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. ready, if non-nil, receives the bound address once listening.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	if ready != nil {
		ready(ln.Addr())
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) listUsers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.List())
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	doc, ok := readDocument(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, s.store.Create(doc))
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.store.Get(mux.Vars(r)["id"])
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) replaceUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, ok := s.store.Get(id); !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	doc, ok := readDocument(w, r)
	if !ok {
		return
	}
	if !s.store.Replace(id, doc) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	if !s.store.Delete(mux.Vars(r)["id"]) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func readDocument(w http.ResponseWriter, r *http.Request) (Document, bool) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		http.Error(w, "could not read body", http.StatusBadRequest)
		return nil, false
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
		http.Error(w, "body must be a JSON object", http.StatusBadRequest)
		return nil, false
	}
	delete(doc, IDKey)
	return doc, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
