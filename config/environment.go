package config

import "os"

type Environment struct {
	IsDevelopment bool
	Domain        string
	Auth0Domain   string
	Auth0Audience string
}

var Env Environment

func init() {
	// Get domain from environment variable
	domain := os.Getenv("APP_DOMAIN")

	// If no domain is set, we're in development
	isDev := domain == ""
	if isDev {
		domain = "localhost"
	}

	Env = Environment{
		IsDevelopment: isDev,
		Domain:        domain,
		Auth0Domain:   os.Getenv("AUTH0_DOMAIN"),
		Auth0Audience: os.Getenv("AUTH0_AUDIENCE"),
	}
}
