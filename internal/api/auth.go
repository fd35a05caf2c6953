package api

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plume-social/plume/internal/models"
	"github.com/plume-social/plume/pkg/logging"
)

const (
	ctxIdentityKey  = "plume.identity"
	requestIDHeader = "X-Request-ID"
	ctxRequestIDKey = "plume.request_id"
)

// AuthorDirectory resolves token subjects to author rows. Implemented by
// db.AuthorRepository.
type AuthorDirectory interface {
	GetByHandle(ctx context.Context, handle string) (*models.Author, error)
	EnsureByHandle(ctx context.Context, handle string) (*models.Author, error)
}

// Identity is the resolved caller of a request.
type Identity struct {
	AuthorID int64
	Handle   string
	Admin    bool
}

// RequestID assigns each request a uuid, echoed in the response header and
// carried in log fields.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Authenticator verifies bearer tokens issued by the external auth
// collaborator and resolves them to author rows.
type Authenticator struct {
	secret  []byte
	authors AuthorDirectory
	admins  map[string]bool
	logger  *zap.Logger
}

// NewAuthenticator creates a new authenticator
func NewAuthenticator(secret string, authors AuthorDirectory, adminHandles []string) *Authenticator {
	admins := make(map[string]bool, len(adminHandles))
	for _, h := range adminHandles {
		admins[h] = true
	}
	return &Authenticator{
		secret:  []byte(secret),
		authors: authors,
		admins:  admins,
		logger:  logging.GetLogger().With(zap.String("component", "auth")),
	}
}

func (a *Authenticator) resolve(c *gin.Context) (*Identity, error) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, models.NewAuthenticationError("missing bearer token")
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, models.NewAuthenticationError("invalid bearer token")
	}
	if claims.Subject == "" {
		return nil, models.NewAuthenticationError("token has no subject")
	}

	author, err := a.authors.EnsureByHandle(c.Request.Context(), claims.Subject)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &Identity{
		AuthorID: author.ID,
		Handle:   author.Handle,
		Admin:    a.admins[author.Handle],
	}, nil
}

// Required aborts with 401 when no valid caller identity is present.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := a.resolve(c)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Set(ctxIdentityKey, identity)
		c.Next()
	}
}

// Optional resolves the caller identity when a token is present and
// continues anonymously otherwise.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, err := a.resolve(c); err == nil {
			c.Set(ctxIdentityKey, identity)
		}
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the resolved caller is an admin.
// Must run after Required.
func (a *Authenticator) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c)
		if !ok || !identity.Admin {
			respondError(c, models.NewAuthorizationError("admin privileges required"))
			return
		}
		c.Next()
	}
}

// identityFrom extracts the resolved caller identity, if any.
func identityFrom(c *gin.Context) (*Identity, bool) {
	value, ok := c.Get(ctxIdentityKey)
	if !ok {
		return nil, false
	}
	identity, ok := value.(*Identity)
	return identity, ok
}

// viewerID returns the caller's author ID or 0 for anonymous requests.
func viewerID(c *gin.Context) int64 {
	if identity, ok := identityFrom(c); ok {
		return identity.AuthorID
	}
	return 0
}
