package config

import (
	"fmt"
	"time"
)

// BaseConfig is the application configuration tree. The zero value is
// filled in by Defaults before sources are merged on top.
type BaseConfig struct {
	App         App         `json:"app"`
	Auth        Auth        `json:"auth"`
	Persistence Persistence `json:"persistence"`
}

func (a *BaseConfig) Validate() error {
	if a.Auth.SigningKey == "" {
		return fmt.Errorf("config: auth.signing_key is required")
	}
	return nil
}

func (a *BaseConfig) GetAuth() *Auth {
	return &a.Auth
}

func (a *BaseConfig) GetPersistence() *Persistence {
	return &a.Persistence
}

func (a *BaseConfig) GetApp() *App {
	return &a.App
}

type App struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (a App) GetName() string {
	return a.Name
}

func (a App) GetAddress() string {
	if a.Address == "" {
		return ":8080"
	}
	return a.Address
}

// Auth satisfies the jobboard.Config interface
type Auth struct {
	SigningKey      string   `json:"signing_key"`
	SigningMethod   string   `json:"signing_method"`
	ContextKey      string   `json:"context_key"`
	TokenExpiration int      `json:"token_expiration"`
	TokenLookup     string   `json:"token_lookup"`
	AuthScheme      string   `json:"auth_scheme"`
	Issuer          string   `json:"issuer"`
	Audience        []string `json:"audience"`
}

func (a Auth) GetSigningKey() string {
	return a.SigningKey
}

func (a Auth) GetSigningMethod() string {
	if a.SigningMethod == "" {
		return "HS256"
	}
	return a.SigningMethod
}

func (a Auth) GetContextKey() string {
	if a.ContextKey == "" {
		return "user"
	}
	return a.ContextKey
}

// GetTokenExpiration is the token lifetime in minutes
func (a Auth) GetTokenExpiration() int {
	if a.TokenExpiration <= 0 {
		return 30
	}
	return a.TokenExpiration
}

func (a Auth) GetTokenLookup() string {
	if a.TokenLookup == "" {
		return "header:Authorization"
	}
	return a.TokenLookup
}

func (a Auth) GetAuthScheme() string {
	if a.AuthScheme == "" {
		return "Bearer"
	}
	return a.AuthScheme
}

func (a Auth) GetIssuer() string {
	return a.Issuer
}

func (a Auth) GetAudience() []string {
	return a.Audience
}

type Persistence struct {
	Debug                 bool   `json:"debug"`
	Driver                string `json:"driver"`
	DSN                   string `json:"dsn"`
	Server                string `json:"server"`
	Database              string `json:"database"`
	Username              string `json:"username"`
	Password              string `json:"password"`
	PingTimeoutExpression string `json:"ping_timeout"`
}

func (p Persistence) GetDebug() bool {
	return p.Debug
}

func (p Persistence) GetDriver() string {
	if p.Driver == "" {
		return "sqlite"
	}
	return p.Driver
}

func (p Persistence) GetDSN() string {
	if p.DSN == "" {
		return "file::memory:?cache=shared"
	}
	return p.DSN
}

func (p Persistence) GetServer() string {
	return p.Server
}

func (p Persistence) GetDatabase() string {
	return p.Database
}

func (p Persistence) GetUsername() string {
	return p.Username
}

func (p Persistence) GetPassword() string {
	return p.Password
}

func (p Persistence) GetPingTimeout() time.Duration {
	if p.PingTimeoutExpression == "" {
		return 5 * time.Second
	}

	dur, err := time.ParseDuration(p.PingTimeoutExpression)
	if err != nil {
		panic(
			fmt.Sprintf("unable to parse time: expr %s", p.PingTimeoutExpression),
		)
	}
	return dur
}
