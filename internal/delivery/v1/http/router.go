package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/synapse-net/go-backend/docs" // Импорт сгенерированных файлов
	"github.com/synapse-net/go-backend/internal/metrics"
	"github.com/synapse-net/go-backend/internal/usecase"
	"github.com/synapse-net/go-backend/pkg/logger"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(matchingUC usecase.MatchingUC, feedUC usecase.FeedUC, impactUC usecase.ImpactUC, profileUC usecase.ProfileUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Handle("/metrics", promhttp.Handler())

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(metrics.Middleware())
		v1.Use(IdentityMiddleware)

		registerMatchingRoutes(v1, NewMatchingHandler(matchingUC, r.logger))
		registerFeedRoutes(v1, NewFeedHandler(feedUC, r.logger))
		registerImpactRoutes(v1, NewImpactHandler(impactUC, r.logger))
		registerProfileRoutes(v1, NewProfileHandler(profileUC, r.logger))
	})
}

func registerMatchingRoutes(router chi.Router, h *MatchingHandler) {
	router.Route("/matches", func(m chi.Router) {
		m.Get("/", h.findMatches)
		m.Get("/semantic", h.findSemanticMatches)
		m.Get("/nearby", h.nearbyProfiles)
	})

	router.Route("/connections", func(c chi.Router) {
		c.Post("/{user_id}", h.connect)
		c.Get("/{user_id}", h.connectionStatus)
	})
}

func registerFeedRoutes(router chi.Router, h *FeedHandler) {
	router.Route("/feed", func(f chi.Router) {
		f.Get("/", h.rankedFeed)
		f.Get("/recent", h.recentFeed)
	})

	router.Route("/posts", func(p chi.Router) {
		p.Post("/", h.createPost)
		p.Get("/{post_id}", h.getPost)
	})
}

func registerImpactRoutes(router chi.Router, h *ImpactHandler) {
	router.Post("/impact", h.giveImpact)
}

func registerProfileRoutes(router chi.Router, h *ProfileHandler) {
	router.Route("/profiles", func(p chi.Router) {
		p.Get("/{user_id}", h.getProfile)
		p.Get("/me", h.myProfile)
		p.Put("/me/goal", h.syncGoal)
		p.Put("/me/location", h.updateLocation)
		p.Get("/me/stats", h.stats)
	})
}
