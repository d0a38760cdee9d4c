package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"msgboard/internal/config"
	"msgboard/internal/model"
)

// MessageStore is the storage the handlers depend on.
type MessageStore interface {
	ListAll(ctx context.Context) ([]model.Message, error)
	GetByID(ctx context.Context, id int64) (model.Message, error)
	Create(ctx context.Context, body, username string) (model.Message, error)
	Update(ctx context.Context, id int64, body string) (model.Message, error)
	Delete(ctx context.Context, id int64) error
}

// Handler holds application dependencies
type Handler struct {
	Store  MessageStore
	Config config.Config
}

// New creates a new Handler with the given dependencies
func New(store MessageStore, cfg config.Config) *Handler {
	return &Handler{
		Store:  store,
		Config: cfg,
	}
}

// SetupRouter configures and returns the HTTP router
func (h *Handler) SetupRouter() *mux.Router {
	r := mux.NewRouter()

	// Collection
	r.HandleFunc("/messages", h.GetMessages).Methods(http.MethodGet)
	r.HandleFunc("/messages", h.CreateMessage).Methods(http.MethodPost)

	// Item: the lookup runs before the method handler sees the request.
	r.HandleFunc("/messages/{id:[0-9]+}", h.withMessage(h.GetMessage)).Methods(http.MethodGet)
	r.HandleFunc("/messages/{id:[0-9]+}", h.withMessage(h.UpdateMessage)).Methods(http.MethodPatch)
	r.HandleFunc("/messages/{id:[0-9]+}", h.withMessage(h.DeleteMessage)).Methods(http.MethodDelete)

	return r
}

// Routes returns the router wrapped with CORS handling, request ids and
// access logging. The wrappers sit outside the router so unmatched routes
// get them too.
func (h *Handler) Routes() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: h.Config.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:         300,
	})

	return requestID(accessLog(c.Handler(h.SetupRouter())))
}
