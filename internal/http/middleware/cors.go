package middleware

import (
	"net/http"
	"slices"

	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/config"
)

// CORS builds the cross-origin policy from config. A wildcard entry or an
// empty origin list in development opens the API up; an empty list anywhere
// else denies every cross-origin request, since the cors package would
// otherwise treat it as "*".
func CORS(cfg *config.CORSConfig, environment string, logger *zap.Logger) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	dev := environment == "development" || environment == "local" || environment == ""
	wildcard := slices.Contains(cfg.AllowedOrigins, "*")

	switch {
	case wildcard:
		if !dev {
			logger.Warn("cors wildcard origin outside development",
				zap.String("environment", environment))
		}
		options.AllowOriginFunc = allowAnyOrigin

	case len(cfg.AllowedOrigins) > 0:
		options.AllowedOrigins = cfg.AllowedOrigins
		logger.Info("cors origins configured",
			zap.Strings("origins", cfg.AllowedOrigins))

	case dev:
		options.AllowOriginFunc = allowAnyOrigin
		logger.Info("cors open to all origins in development")

	default:
		options.AllowOriginFunc = denyAllOrigins
		logger.Warn("cors has no allowed origins, denying all cross-origin requests",
			zap.String("environment", environment))
	}

	return cors.Handler(options)
}

func allowAnyOrigin(r *http.Request, origin string) bool { return origin != "" }

func denyAllOrigins(r *http.Request, origin string) bool { return false }
