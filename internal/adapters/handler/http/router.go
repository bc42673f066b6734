package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pollboard/api/pkg/logger"
	"github.com/pollboard/api/pkg/metrics"
	"go.uber.org/zap"
)

func NewHandler(
	pollHandler *PollHandler,
	voteHandler *VoteHandler,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	auth *Authenticator,
	log *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logger.RequestLogger(log))
	r.Use(MetricsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, envelope{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.SignUp)
		r.Post("/signin", authHandler.SignIn)
		r.Post("/google", authHandler.GoogleSignIn)
		r.Post("/refresh", authHandler.Refresh)
		r.Post("/signout", authHandler.SignOut)
	})

	r.Route("/api", func(r chi.Router) {
		r.With(auth.Required).Get("/me", userHandler.GetMe)

		r.Route("/polls", func(r chi.Router) {
			r.With(auth.Required).Post("/", pollHandler.CreatePoll)
			r.With(auth.Optional).Get("/mine", pollHandler.ListMine)
			r.Get("/{id}", pollHandler.GetPoll)
			r.With(auth.Required).Put("/{id}", pollHandler.UpdatePoll)
			r.With(auth.Required).Delete("/{id}", pollHandler.DeletePoll)
			r.Get("/{id}/results", voteHandler.GetResults)
			r.With(auth.Optional).Post("/{id}/votes", voteHandler.SubmitVote)
		})

		r.Route("/admin", func(r chi.Router) {
			r.With(auth.Required).Get("/polls", pollHandler.ListAll)
		})
	})

	return r
}
