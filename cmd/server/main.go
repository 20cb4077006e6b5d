package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	restlite "github.com/MKhiriev/go-rest-lite"
	"github.com/MKhiriev/go-rest-lite/internal/config"
	"github.com/MKhiriev/go-rest-lite/internal/docs"
	"github.com/MKhiriev/go-rest-lite/internal/logger"
	"github.com/MKhiriev/go-rest-lite/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const defaultTokenDuration = time.Hour

func main() {
	info := printBuildInfo()

	log := logger.NewLogger("restlite")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	srv, err := restlite.New(cfg.RestLite())
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = register(srv, cfg, info); err != nil {
		log.Fatal().Err(err).Msg("error registering routes")
	}

	if cfg.DocsFile != "" {
		if err = writeDocs(srv, cfg); err != nil {
			log.Fatal().Err(err).Str("file", cfg.DocsFile).Msg("error writing route docs")
		}
	}

	if err = srv.Serve(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

// register installs the demo API: a public health route, a login issuing
// bearer tokens and a user route reachable only with a token for that user.
func register(srv *restlite.Server, cfg *config.StructuredConfig, info models.AppBuildInfo) error {
	health, err := srv.At("/health")
	if err != nil {
		return err
	}
	health.Get(func(_ *restlite.Request, res *restlite.Response, _ url.Values) {
		res.OK(map[string]string{
			"status":  "ok",
			"version": info.BuildVersion(),
			"commit":  info.BuildCommit(),
		})
	})

	if err = srv.SetWhitelists([]string{"/health", "/login"}); err != nil {
		return err
	}

	if cfg.Auth.TokenSignKey != "" {
		if err = registerAuth(srv, cfg); err != nil {
			return err
		}
	}

	srv.On(http.StatusNotFound).
		Render("<!doctype html><title>Not found</title><h1>404</h1><p>Nothing lives here.</p>").
		With(http.StatusNotFound)

	for _, f := range cfg.Forwards {
		fwd, err := srv.Forward(f.Path)
		if err != nil {
			return err
		}
		if f.Swap != "" {
			fwd.Swap(f.Swap)
		}
		if err = fwd.To(f.To); err != nil {
			return err
		}
	}

	return nil
}

func registerAuth(srv *restlite.Server, cfg *config.StructuredConfig) error {
	signKey := cfg.Auth.TokenSignKey
	issuer := cfg.Auth.TokenIssuer
	if issuer == "" {
		issuer = cfg.Server.ServiceName
	}
	ttl := cfg.Auth.TokenDuration
	if ttl <= 0 {
		ttl = defaultTokenDuration
	}

	login, err := srv.At("/login")
	if err != nil {
		return err
	}
	login.Post(func(req *restlite.Request, res *restlite.Response, _ url.Values) {
		user, _ := req.JSON["user"].(string)
		if user == "" {
			res.Bad(models.NewErrorEnvelope(http.StatusBadRequest, "user is required"))
			return
		}

		token, err := restlite.IssueJWT(signKey, issuer, user, ttl)
		if err != nil {
			res.Error(models.NewErrorEnvelope(http.StatusInternalServerError, "could not issue token"))
			return
		}
		res.Created(map[string]any{"token": token, "expires_in": int(ttl.Seconds())})
	})

	if err = srv.SetGuard(restlite.BearerJWT(signKey, issuer), "/api/*", restlite.NoFallback()); err != nil {
		return err
	}

	users, err := srv.At("/api/users/:id")
	if err != nil {
		return err
	}
	users.Get(func(req *restlite.Request, res *restlite.Response, _ url.Values) {
		res.OK(map[string]string{"id": req.Param("id")})
	}, sameUser)

	return nil
}

// sameUser lets a token holder read only their own user record.
func sameUser(req *restlite.Request) bool {
	sub, ok := req.Value(restlite.SubjectKey)
	return ok && sub == req.Param("id")
}

func writeDocs(srv *restlite.Server, cfg *config.StructuredConfig) error {
	f, err := os.Create(cfg.DocsFile)
	if err != nil {
		return err
	}
	defer f.Close()

	meta := map[string]docs.Meta{
		"/health":      {Summary: "Liveness probe", Description: "Reports build version and commit."},
		"/login":       {Summary: "Issue a bearer token", Description: "Body: `{\"user\": \"name\"}`."},
		"/api/users/*": {Summary: "Read a user", Description: "Requires a bearer token issued for the same user."},
	}
	if err = docs.Render(f, cfg.Server.ServiceName, srv.Routes(), srv.Forwards(), meta); err != nil {
		return err
	}
	return f.Close()
}

func printBuildInfo() models.AppBuildInfo {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)

	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
