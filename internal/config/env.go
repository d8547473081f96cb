package config

import (
	"github.com/JaimeStill/route-shell/pkg/database"
	"github.com/JaimeStill/route-shell/pkg/logging"
	"github.com/JaimeStill/route-shell/pkg/middleware"
)

var databaseEnv = &database.Env{
	URL:         "MONGO_URL",
	Name:        "MONGO_DB_NAME",
	ConnTimeout: "MONGO_CONN_TIMEOUT",
}

var loggingEnv = &logging.Env{
	Level:  "LOG_LEVEL",
	Format: "LOG_FORMAT",
	Source: "LOG_SOURCE",
}

var accessLogEnv = &middleware.AccessLogEnv{
	Dir:          "ACCESS_LOG_DIR",
	File:         "ACCESS_LOG_FILE",
	RotationTime: "ACCESS_LOG_ROTATION",
}

var securityEnv = &middleware.SecurityEnv{
	ContentSecurityPolicy: "SECURITY_CSP",
	HSTSMaxAge:            "SECURITY_HSTS_MAX_AGE",
}

var corsEnv = &middleware.CORSEnv{
	Origins:          "CORS_ORIGINS",
	AllowedMethods:   "CORS_ALLOWED_METHODS",
	AllowedHeaders:   "CORS_ALLOWED_HEADERS",
	ExposedHeaders:   "CORS_EXPOSED_HEADERS",
	AllowCredentials: "CORS_ALLOW_CREDENTIALS",
	MaxAge:           "CORS_MAX_AGE",
}

var bodyEnv = &middleware.BodyEnv{
	Limit: "BODY_LIMIT",
}

var cookieEnv = &middleware.CookieEnv{
	Secret: "COOKIE_SECRET",
}

var staticEnv = &middleware.StaticEnv{
	Dir: "PUBLIC_DIR",
}
