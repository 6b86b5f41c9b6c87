package config

import (
	"fmt"
	"time"
)

// BaseConfig is the application configuration tree. Values load from
// config files and environment overrides via go-config.
type BaseConfig struct {
	App         App         `json:"app" yaml:"app"`
	Server      Server      `json:"server" yaml:"server"`
	Auth        Auth        `json:"auth" yaml:"auth"`
	Persistence Persistence `json:"persistence" yaml:"persistence"`
}

func (a *BaseConfig) Validate() error {
	if a.Auth.AccessSigningKey == "" {
		return fmt.Errorf("auth.access_signing_key is required")
	}
	if a.Auth.RefreshSigningKey == "" {
		return fmt.Errorf("auth.refresh_signing_key is required")
	}
	if a.Auth.AccessSigningKey == a.Auth.RefreshSigningKey {
		return fmt.Errorf("auth signing keys must differ between token kinds")
	}
	return nil
}

func (a *BaseConfig) GetApp() App {
	return a.App
}

func (a *BaseConfig) GetServer() Server {
	return a.Server
}

func (a *BaseConfig) GetAuth() Auth {
	return a.Auth
}

func (a *BaseConfig) GetPersistence() Persistence {
	return a.Persistence
}

type App struct {
	Name string `json:"name" yaml:"name"`
	Env  string `json:"env" yaml:"env"`
}

func (a App) GetName() string {
	return a.Name
}

func (a App) GetEnv() string {
	return a.Env
}

type Server struct {
	Addr string `json:"addr" yaml:"addr"`
}

func (s Server) GetAddr() string {
	if s.Addr == "" {
		return ":9911"
	}
	return s.Addr
}

// Auth carries token issuance options. Access and refresh tokens are
// signed with different keys; expirations are expressed in hours.
type Auth struct {
	AccessSigningKey       string `json:"access_signing_key" yaml:"access_signing_key"`
	RefreshSigningKey      string `json:"refresh_signing_key" yaml:"refresh_signing_key"`
	AccessTokenExpiration  int    `json:"access_token_expiration" yaml:"access_token_expiration"`
	RefreshTokenExpiration int    `json:"refresh_token_expiration" yaml:"refresh_token_expiration"`
	Issuer                 string `json:"issuer" yaml:"issuer"`
	ContextKey             string `json:"context_key" yaml:"context_key"`
	AuthScheme             string `json:"auth_scheme" yaml:"auth_scheme"`
}

func (a Auth) GetAccessSigningKey() string {
	return a.AccessSigningKey
}

func (a Auth) GetRefreshSigningKey() string {
	return a.RefreshSigningKey
}

func (a Auth) GetAccessTokenExpiration() int {
	if a.AccessTokenExpiration == 0 {
		return 1
	}
	return a.AccessTokenExpiration
}

func (a Auth) GetRefreshTokenExpiration() int {
	if a.RefreshTokenExpiration == 0 {
		return 24 * 7
	}
	return a.RefreshTokenExpiration
}

func (a Auth) GetIssuer() string {
	if a.Issuer == "" {
		return "commerce"
	}
	return a.Issuer
}

func (a Auth) GetContextKey() string {
	if a.ContextKey == "" {
		return "user"
	}
	return a.ContextKey
}

func (a Auth) GetAuthScheme() string {
	if a.AuthScheme == "" {
		return "Bearer"
	}
	return a.AuthScheme
}

type Persistence struct {
	Driver                string `json:"driver" yaml:"driver"`
	Server                string `json:"server" yaml:"server"`
	Database              string `json:"database" yaml:"database"`
	Debug                 bool   `json:"debug" yaml:"debug"`
	PingTimeoutExpression string `json:"ping_timeout" yaml:"ping_timeout"`
}

func (p Persistence) GetDriver() string {
	if p.Driver == "" {
		return "sqlite"
	}
	return p.Driver
}

func (p Persistence) GetServer() string {
	return p.Server
}

func (p Persistence) GetDatabase() string {
	return p.Database
}

func (p Persistence) GetDebug() bool {
	return p.Debug
}

func (p Persistence) GetDSN() string {
	if p.Database == "" {
		return "file::memory:?cache=shared"
	}
	return p.Database
}

func (p Persistence) GetOtelIdentifier() string {
	return ""
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
