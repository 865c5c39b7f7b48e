package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/basalt-io/basalt-cms/pkg/auth"
	"github.com/basalt-io/basalt-cms/pkg/backend"
	"github.com/basalt-io/basalt-cms/pkg/version"
	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port        int
	CORSOrigins []string
	StaticDir   string

	// Per-IP budget for the public write endpoints.
	PublicWritePerMinute float64
	PublicWriteBurst     int
}

type apiServer struct {
	ctx context.Context
	log *logrus.Entry
	cfg Config
}

func NewAPIServer(ctx context.Context, log *logrus.Entry, cfg Config) *apiServer {
	if cfg.PublicWritePerMinute <= 0 {
		cfg.PublicWritePerMinute = 30
	}
	if cfg.PublicWriteBurst <= 0 {
		cfg.PublicWriteBurst = 10
	}
	return &apiServer{
		ctx: ctx,
		log: log,
		cfg: cfg,
	}
}

func (a *apiServer) Start(b backend.Backend, authSvc *auth.Service) error {
	logrus.Infof("Version: %s", version.Get())

	router := a.buildRouter(b, authSvc)

	cors := ghandlers.CORS(
		ghandlers.AllowedOrigins(a.cfg.CORSOrigins),
		ghandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		ghandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.cfg.Port),
		Handler: cors(router),
	}

	go func() {
		a.log.WithField("port", a.cfg.Port).Info("starting api server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Fatalf("listen: %s\n", err)
		}
	}()

	go b.StartPurgerDaemon(a.ctx.Done())

	<-a.ctx.Done()

	a.log.Info("shutting down the api server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		a.log.WithError(err).Error("unable to shutdown the api server gracefully")
		return err
	}

	return nil
}

func (a *apiServer) buildRouter(b backend.Backend, authSvc *auth.Service) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(loggingMiddleware(a.log))
	h := newHandler(b, authSvc)

	router.Path("/").HandlerFunc(h.root)
	router.Path("/healthz").HandlerFunc(h.root)

	// Locally stored uploads are served straight off disk.
	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(a.cfg.StaticDir))))

	api := router.PathPrefix("/api").Subrouter()

	// Public content surface
	api.Path("/posts").Methods("GET").HandlerFunc(h.listPublicPosts)
	api.Path("/posts/{slug}").Methods("GET").HandlerFunc(h.getPublicPost)
	api.Path("/categories").Methods("GET").HandlerFunc(h.listCategories)

	// Public write endpoints get per-IP rate limiting
	limiter := newIPRateLimiter(a.cfg.PublicWritePerMinute, a.cfg.PublicWriteBurst)
	limited := api.NewRoute().Subrouter()
	limited.Use(rateLimitMiddleware(limiter))
	limited.Path("/inquiries").Methods("POST").HandlerFunc(h.createInquiry)
	limited.Path("/track").Methods("POST").HandlerFunc(h.track)

	// Token issuance sits under /api/admin but before the authed
	// subrouter so it stays reachable without a token.
	api.Path("/admin/login").Methods("POST").HandlerFunc(h.login)
	api.Path("/admin/refresh").Methods("POST").HandlerFunc(h.refresh)

	// Everything else under /api/admin requires a valid access token
	authedRoutes := api.PathPrefix("/admin").Subrouter()
	authedRoutes.Use(bearerAuthMiddleware(authSvc))

	authedRoutes.Path("/posts").Methods("GET").HandlerFunc(h.listAdminPosts)
	authedRoutes.Path("/posts").Methods("POST").HandlerFunc(h.createPost)
	authedRoutes.Path("/posts/{id}").Methods("GET").HandlerFunc(h.getAdminPost)
	authedRoutes.Path("/posts/{id}").Methods("PUT").HandlerFunc(h.updatePost)
	authedRoutes.Path("/posts/{id}").Methods("DELETE").HandlerFunc(h.deletePost)

	authedRoutes.Path("/categories").Methods("GET").HandlerFunc(h.listCategories)
	authedRoutes.Path("/categories").Methods("POST").HandlerFunc(h.createCategory)
	authedRoutes.Path("/categories/{id}").Methods("PUT").HandlerFunc(h.updateCategory)
	authedRoutes.Path("/categories/{id}").Methods("DELETE").HandlerFunc(h.deleteCategory)

	authedRoutes.Path("/inquiries").Methods("GET").HandlerFunc(h.listInquiries)
	authedRoutes.Path("/inquiries/stats").Methods("GET").HandlerFunc(h.inquiryStats)
	authedRoutes.Path("/inquiries/{id}").Methods("GET").HandlerFunc(h.getInquiry)
	authedRoutes.Path("/inquiries/{id}").Methods("PUT").HandlerFunc(h.updateInquiry)
	authedRoutes.Path("/inquiries/{id}").Methods("DELETE").HandlerFunc(h.deleteInquiry)

	authedRoutes.Path("/analytics/stats").Methods("GET").HandlerFunc(h.analyticsStats)
	authedRoutes.Path("/analytics/countries").Methods("GET").HandlerFunc(h.countryStats)
	authedRoutes.Path("/analytics/recent").Methods("GET").HandlerFunc(h.recentVisits)

	authedRoutes.Path("/dashboard/stats").Methods("GET").HandlerFunc(h.dashboardStats)
	authedRoutes.Path("/dashboard/recent-activity").Methods("GET").HandlerFunc(h.recentActivity)

	authedRoutes.Path("/upload").Methods("POST").HandlerFunc(h.upload)

	// Note: this allows not found urls to be logged via the middleware
	// It **HAS** to be defined after all other paths are defined.
	router.NotFoundHandler = router.NewRoute().HandlerFunc(http.NotFound).GetHandler()

	return router
}
