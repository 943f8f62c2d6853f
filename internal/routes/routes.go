package routes

import (
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/dormscout/dormscout/internal/app"
	"github.com/dormscout/dormscout/internal/handler"
	"github.com/dormscout/dormscout/internal/middleware"
)

// Version is stamped at build time.
var Version = "dev"

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.ConsentService)
	consent := handler.NewConsentHandler(app.ConsentService)
	school := handler.NewSchoolHandler(app.SchoolService, app.CampusService)
	dorm := handler.NewDormHandler(app.DormService, app.SavedService)
	post := handler.NewPostHandler(app.PostService)
	admin := handler.NewAdminHandler(app.AdminService)
	legal := handler.NewLegalHandler(app.LegalService)
	health := handler.NewHealthHandler(app.DB, app.Cfg.AppName, Version)

	// Auth endpoints get a strict per-IP limit; everything else a loose one.
	authLimit := middleware.RateLimit(middleware.NewIPRateLimiter(rate.Every(time.Minute), 10))
	apiLimit := middleware.RateLimit(middleware.NewIPRateLimiter(rate.Every(time.Second), 30))

	// Anonymous read paths are cached briefly; school data barely changes.
	readCache := middleware.Cache(cache.New(time.Minute, 5*time.Minute), time.Minute)

	mux := http.NewServeMux()

	// Health + metrics
	mux.HandleFunc("GET /api/health", health.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Auth
	mux.HandleFunc("POST /api/auth/signup", authLimit(auth.Signup))
	mux.HandleFunc("POST /api/auth/login", authLimit(auth.Login))
	mux.HandleFunc("POST /api/auth/logout", auth.Logout)
	mux.HandleFunc("GET /api/auth/session", auth.Session)
	mux.HandleFunc("GET /api/auth/verify-email/{token}", authLimit(auth.VerifyEmail))

	// Legal documents + consent
	mux.HandleFunc("GET /api/legal/versions", legal.Versions)
	mux.HandleFunc("GET /api/legal/{slug}", legal.Page)
	mux.HandleFunc("POST /api/consent", middleware.RequireAuth(consent.Record))
	mux.HandleFunc("GET /api/consent/history", middleware.RequireAuth(consent.History))

	// Schools, buildings, rooms
	mux.HandleFunc("GET /api/schools", apiLimit(readCache(school.List)))
	mux.HandleFunc("GET /api/schools/{id}", apiLimit(readCache(school.ByID)))
	mux.HandleFunc("GET /api/schools/{id}/buildings", apiLimit(readCache(school.Buildings)))
	mux.HandleFunc("GET /api/buildings/{id}/rooms", apiLimit(readCache(school.Rooms)))
	mux.HandleFunc("GET /api/rooms/{id}", apiLimit(readCache(school.Room)))

	// Dorm profiles
	mux.HandleFunc("GET /api/dorms", apiLimit(dorm.Search))
	mux.HandleFunc("GET /api/dorms/mine", middleware.RequireAuth(dorm.Mine))
	mux.HandleFunc("GET /api/dorms/{id}", apiLimit(dorm.ByID))
	mux.HandleFunc("POST /api/dorms", middleware.RequireAuth(dorm.Create))
	mux.HandleFunc("PATCH /api/dorms/{id}", middleware.RequireAuth(dorm.Update))
	mux.HandleFunc("POST /api/dorms/{id}/publish", middleware.RequireAuth(dorm.SetPublished))
	mux.HandleFunc("DELETE /api/dorms/{id}", middleware.RequireAuth(dorm.Delete))

	// Bookmarks
	mux.HandleFunc("POST /api/dorms/{id}/save", middleware.RequireAuth(dorm.Save))
	mux.HandleFunc("DELETE /api/dorms/{id}/save", middleware.RequireAuth(dorm.Unsave))
	mux.HandleFunc("GET /api/saved", middleware.RequireAuth(dorm.Saved))

	// Room posts and photos
	mux.HandleFunc("GET /api/rooms/{id}/posts", apiLimit(post.ByRoom))
	mux.HandleFunc("POST /api/rooms/{id}/posts", middleware.RequireAuth(post.Create))
	mux.HandleFunc("DELETE /api/posts/{id}", middleware.RequireAuth(post.Delete))
	mux.HandleFunc("GET /api/rooms/{id}/photos", apiLimit(post.Photos))
	mux.HandleFunc("POST /api/rooms/{id}/photos", middleware.RequireAuth(post.AddPhoto))
	mux.HandleFunc("DELETE /api/photos/{id}", middleware.RequireAuth(post.DeletePhoto))

	// Admin (role checks live in the service)
	mux.HandleFunc("GET /api/admin/stats", middleware.RequireAuth(admin.Stats))
	mux.HandleFunc("GET /api/admin/profiles", middleware.RequireAuth(admin.Profiles))
	mux.HandleFunc("GET /api/admin/dorms", middleware.RequireAuth(admin.Dorms))
	mux.HandleFunc("GET /api/admin/consents", middleware.RequireAuth(admin.Consents))

	// Global middleware, executed top to bottom.
	return middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.Metrics,
		middleware.Auth(app.AuthService),
		middleware.ConsentGate,
	)
}
