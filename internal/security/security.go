package security

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ZanzyTHEbar/layoff-o-meter/internal/config"
	apperrors "github.com/ZanzyTHEbar/layoff-o-meter/internal/errors"
)

// SecurityConfig holds security configuration
type SecurityConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	EnableHSTS     bool
}

// DefaultSecurityConfig returns secure defaults
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		RequestTimeout: 10 * time.Second,
		MaxBodyBytes:   16 * 1024,
	}
}

// FromServerConfig derives the security settings from server configuration
func FromServerConfig(cfg config.ServerConfig) SecurityConfig {
	return SecurityConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		EnableHSTS:     cfg.Mode == gin.ReleaseMode,
	}
}

// SecurityMiddleware provides the request hardening chain
type SecurityMiddleware struct {
	config SecurityConfig
}

// NewSecurityMiddleware creates a new security middleware instance
func NewSecurityMiddleware(cfg SecurityConfig) *SecurityMiddleware {
	return &SecurityMiddleware{config: cfg}
}

// SecurityHeaders adds security headers to responses
func (sm *SecurityMiddleware) SecurityHeaders(c *gin.Context) {
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "DENY")
	c.Header("X-XSS-Protection", "1; mode=block")
	c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
	c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

	// Swagger UI needs inline scripts and styles.
	if strings.HasPrefix(c.Request.URL.Path, "/swagger/") {
		c.Header("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
	} else {
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
	}

	if sm.config.EnableHSTS && c.Request.TLS != nil {
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
	}

	c.Next()
}

// ValidateContentType requires a JSON body on requests that carry one
func (sm *SecurityMiddleware) ValidateContentType(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		c.Next()
		return
	}

	contentType := strings.ToLower(c.GetHeader("Content-Type"))
	if !strings.HasPrefix(contentType, "application/json") {
		builder := errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("Content-Type must be application/json")
		apperrors.Respond(c, apperrors.NewAppError(builder, apperrors.CategoryValidation, http.StatusUnsupportedMediaType))
		return
	}

	c.Next()
}

// RequestTimeout bounds the request context by the configured timeout
func (sm *SecurityMiddleware) RequestTimeout(c *gin.Context) {
	if sm.config.RequestTimeout <= 0 {
		c.Next()
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), sm.config.RequestTimeout)
	defer cancel()

	c.Request = c.Request.WithContext(ctx)
	c.Header("X-Timeout", strconv.Itoa(int(sm.config.RequestTimeout.Seconds())))

	c.Next()
}

// BodyLimit caps the number of bytes a handler may read from the body
func (sm *SecurityMiddleware) BodyLimit(c *gin.Context) {
	if sm.config.MaxBodyBytes > 0 && c.Request.Body != nil {
		if c.Request.ContentLength > sm.config.MaxBodyBytes {
			builder := errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("Request body too large")
			apperrors.Respond(c, apperrors.NewAppError(builder, apperrors.CategoryValidation, http.StatusRequestEntityTooLarge))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, sm.config.MaxBodyBytes)
	}

	c.Next()
}

// CORSConfig provides the CORS middleware for the configured origins
func (sm *SecurityMiddleware) CORSConfig() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins:  len(sm.config.AllowedOrigins) == 0,
		AllowOrigins:     sm.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-Trace-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}

// Handlers returns the chain in the order the router mounts it
func (sm *SecurityMiddleware) Handlers() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		sm.SecurityHeaders,
		sm.RequestTimeout,
		sm.ValidateContentType,
		sm.BodyLimit,
		sm.CORSConfig(),
	}
}
