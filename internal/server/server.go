package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"bookCatalog/internal/auth"
	"bookCatalog/internal/book"
	"bookCatalog/internal/config"
	"bookCatalog/internal/handlers"
	"bookCatalog/internal/storage"
	"bookCatalog/internal/user"
	"bookCatalog/package/logger"
	"bookCatalog/package/middleware"
)

const healthUrl = "/health"

// NewHandler wires services and handlers over the given storages.
func NewHandler(cfg *config.Config, st *storage.Storages) http.Handler {
	tokens := auth.NewTokenService(cfg.Key.SecretKey, cfg.Key.TTL)
	guard := auth.NewGuard(tokens)

	router := httprouter.New()
	router.GET(healthUrl, health)
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteJSON(w, http.StatusNotFound, handlers.ErrorResponse{
			StatusCode: http.StatusNotFound,
			Message:    "route not found",
		})
	})

	for _, h := range []handlers.Handler{
		user.NewHandler(user.NewService(st.Users, tokens), guard),
		book.NewHandler(book.NewService(st.Books, st.Users), guard),
	} {
		h.Register(router)
	}

	return middleware.Chain(router,
		middleware.RequestID,
		middleware.AccessLog,
		middleware.Recover,
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)
}

func health(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	handlers.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "status": "ok"})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler) error {
	logger.Log.Info("Listening TCP")
	listener, err := net.Listen("tcp", cfg.Address())
	if err != nil {
		return err
	}
	logger.Log.Info("Listening ", cfg.Address())

	server := &http.Server{
		Handler:      handler,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- server.Serve(listener) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
