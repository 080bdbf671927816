package baas

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/healthify/portal/internal/config"
)

// Key roles issued by the backend.
const (
	RoleAnon    = "anon"
	RoleService = "service_role"
)

var ErrKeyRole = errors.New("baas: key has the wrong role")

// Handles are the two process-wide backend handles.
type Handles struct {
	Anon    Handle
	Service Handle
}

// Connect builds both handles from cfg. Each key must be a backend-issued
// JWT whose role claim matches the handle it is configured for; when a JWT
// secret is configured the signatures are verified too.
func Connect(cfg *config.Config, logger zerolog.Logger, opts ...Option) (*Handles, error) {
	if cfg.SupabaseURL == "" {
		return nil, errors.New("baas: SUPABASE_URL is required")
	}
	if cfg.SupabaseAnonKey == "" {
		return nil, errors.New("baas: SUPABASE_ANON_KEY is required")
	}
	if cfg.SupabaseServiceRoleKey == "" {
		return nil, errors.New("baas: SUPABASE_SERVICE_ROLE_KEY is required")
	}
	if err := CheckKeyRole(cfg.SupabaseAnonKey, RoleAnon, cfg.SupabaseJWTSecret); err != nil {
		return nil, fmt.Errorf("SUPABASE_ANON_KEY: %w", err)
	}
	if err := CheckKeyRole(cfg.SupabaseServiceRoleKey, RoleService, cfg.SupabaseJWTSecret); err != nil {
		return nil, fmt.Errorf("SUPABASE_SERVICE_ROLE_KEY: %w", err)
	}

	log := logger.With().Str("component", "baas").Logger()
	h := &Handles{
		Anon:    NewClient(cfg.RESTURL(), cfg.SupabaseAnonKey, cfg.BaaSTimeout, log.With().Str("handle", RoleAnon).Logger(), opts...),
		Service: NewClient(cfg.RESTURL(), cfg.SupabaseServiceRoleKey, cfg.BaaSTimeout, log.With().Str("handle", RoleService).Logger(), opts...),
	}
	log.Info().Str("url", cfg.SupabaseURL).Msg("backend handles ready")
	return h, nil
}

type keyClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// CheckKeyRole reports whether key is a JWT carrying the wanted role. With an
// empty secret the claims are read without verifying the signature.
func CheckKeyRole(key, want, secret string) error {
	claims := &keyClaims{}
	var err error
	if secret == "" {
		_, _, err = jwt.NewParser().ParseUnverified(key, claims)
	} else {
		_, err = jwt.ParseWithClaims(key, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
	}
	if err != nil {
		return fmt.Errorf("baas: parse key: %w", err)
	}
	if claims.Role != want {
		return fmt.Errorf("%w: got %q, want %q", ErrKeyRole, claims.Role, want)
	}
	return nil
}
