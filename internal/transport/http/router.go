package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/matchclub-api/internal/application/authn"
	"github.com/matchclub-api/internal/application/match"
	"github.com/matchclub-api/internal/application/member"
	"github.com/matchclub-api/internal/config"
	"github.com/matchclub-api/internal/infrastructure/dynamo"
	s3infra "github.com/matchclub-api/internal/infrastructure/s3"
	"github.com/matchclub-api/internal/infrastructure/smtp"
	"github.com/matchclub-api/internal/transport/http/handler"
	appmiddleware "github.com/matchclub-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router. Everything is
// injected here from main; there are no ambient globals.
type Deps struct {
	MemberRepo  *dynamo.MemberRepo
	MatchRepo   *dynamo.MatchRepo
	AvatarStore *s3infra.Store
	Mailer      smtp.Mailer
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", appmiddleware.SessionHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authnSvc := authn.NewService(authn.ServiceDeps{
		MemberRepo: deps.MemberRepo,
		Mailer:     deps.Mailer,
	})
	memberSvc := member.NewService(deps.MemberRepo, deps.AvatarStore)
	matchSvc := match.NewService(deps.MatchRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authnSvc)
	memberH := handler.NewMemberHandler(memberSvc)
	matchH := handler.NewMatchHandler(matchSvc)

	// 5 requests/second, burst of 10 — applied to the code-request and login endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	// ── Public routes (no session) ───────────────────────────────────────
	r.Get("/", healthH.Index)
	r.With(sensitiveRL.Limit).Post("/requestcode", authH.RequestCode)
	r.With(sensitiveRL.Limit).Post("/login", authH.Login)

	// ── Protected routes ─────────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(appmiddleware.Session(authnSvc))

		r.Post("/getuser", memberH.Get)
		r.Post("/updateuser", memberH.Update)
		r.Post("/updateuseravatar", memberH.UpdateAvatar)
		r.Post("/getmatches", matchH.List)
		r.Post("/creatematch", matchH.Create)
	})

	return r
}
