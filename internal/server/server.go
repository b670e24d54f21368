package server

import (
	"context"
	"net/http"
	"time"

	"github.com/sw33tLie/freedrops/internal/utils"
	"github.com/sw33tLie/freedrops/pkg/storage"
)

// Subscribers is the part of the subscriber database the API needs.
type Subscribers interface {
	Add(ctx context.Context, email string) (bool, error)
	Remove(ctx context.Context, email string) (bool, error)
}

type Server struct {
	Subs      Subscribers
	Store     *storage.Store
	StaticDir string // dashboard directory served at /, skipped when empty
}

func New(subs Subscribers, store *storage.Store, staticDir string) *Server {
	return &Server{
		Subs:      subs,
		Store:     store,
		StaticDir: staticDir,
	}
}

// Handler builds the routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/subscribe", s.cors(s.handleSubscribe))
	mux.HandleFunc("GET /api/drops", s.cors(s.handleDrops))

	if s.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.StaticDir)))
	}
	return mux
}

func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	utils.Log.Infof("Starting server on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) cors(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next(w, r)
	}
}
