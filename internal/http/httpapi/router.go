package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"storygen/internal/http/handlers"
	"storygen/internal/infra"
	"storygen/internal/middleware"
)

// Options carries the router wiring that is not part of the handler container.
type Options struct {
	Logger          infra.Logger
	Auth            func(http.Handler) http.Handler
	ImageDir        string
	ImagePublicPath string
}

// NewRouter assembles the HTTP surface.
func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.CORS,
		middleware.Logger(opts.Logger),
	)

	r.Get("/", app.Health)

	r.Route("/api/v1/user", func(r chi.Router) {
		r.Post("/signup", app.Signup)
		r.Post("/login", app.Login)
	})

	r.Route("/api/v1/story", func(r chi.Router) {
		r.Use(opts.Auth)
		r.Post("/generateStory", app.GenerateStory)
	})

	// Generated images are served straight off the content directory.
	publicPath := opts.ImagePublicPath
	if publicPath == "" {
		publicPath = "/images"
	}
	fileServer := http.StripPrefix(publicPath+"/", http.FileServer(http.Dir(opts.ImageDir)))
	r.Get(publicPath+"/*", func(w http.ResponseWriter, req *http.Request) {
		fileServer.ServeHTTP(w, req)
	})

	r.NotFound(app.NotFound)
	r.MethodNotAllowed(app.NotFound)

	return r
}
