// Package api implements the HTTP/JSON transport over TradingPlatform:
// route registration, request logging, panic recovery, and the mapping
// from wire DTOs to core calls. Every handler that reads or changes platform
// state goes through exactly one TradingPlatform, which serializes its own
// operations; GET / touches no state, and POST /match_order runs on a
// throwaway engine of its own.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"fenrir/internal/platform"
)

// Server is the HTTP frontend for a single TradingPlatform.
type Server struct {
	addr     string
	platform *platform.TradingPlatform
	router   *mux.Router
}

// New builds a Server bound to addr (e.g. "0.0.0.0:8080"), wiring every
// route from spec §6 onto platform.
func New(p *platform.TradingPlatform, addr string) *Server {
	s := &Server{
		addr:     addr,
		platform: p,
		router:   mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/", s.handleStatus).Methods(http.MethodGet)
	s.router.HandleFunc("/orderbook", s.handleOrderBook).Methods(http.MethodGet)
	s.router.HandleFunc("/transactions", s.handleTransactions).Methods(http.MethodGet)
	s.router.HandleFunc("/account", s.handleAccount).Methods(http.MethodGet)
	s.router.HandleFunc("/account/deposit", s.handleDeposit).Methods(http.MethodPost)
	s.router.HandleFunc("/account/withdraw", s.handleWithdraw).Methods(http.MethodPost)
	s.router.HandleFunc("/account/send", s.handleSend).Methods(http.MethodPost)
	s.router.HandleFunc("/submit_order", s.handleSubmitOrder).Methods(http.MethodPost)
	s.router.HandleFunc("/match_order", s.handleMatchOrder).Methods(http.MethodPost)
}

// Handler returns the fully wrapped handler: CORS, then request logging,
// then panic recovery, then routing.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(withLogging(withRecovery(s.router)))
}

// Run starts the HTTP server and blocks until ctx is cancelled, shutting
// the listener down gracefully. Adapted from the teacher's worker-pool
// lifecycle: a tomb supervises the listener goroutine and the shutdown
// goroutine together, so either a context cancellation or a listener
// error tears the whole thing down.
func (s *Server) Run(ctx context.Context) error {
	t, ctx := tomb.WithContext(ctx)

	httpServer := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	t.Go(func() error {
		log.Info().Str("addr", s.addr).Msg("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	t.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("http server shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})

	return t.Wait()
}
