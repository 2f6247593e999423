package middleware

import (
	"Inkwell/config"
	"Inkwell/models"
	pctx "Inkwell/pkg/context"
	"Inkwell/pkg/jwt"
	"Inkwell/pkg/log"
	"Inkwell/pkg/response"
	"Inkwell/types"
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	cmap "github.com/orcaman/concurrent-map/v2"
	"go.uber.org/zap"
)

// UserResolver maps a verified identity to its user row, creating it when
// missing.
type UserResolver interface {
	EnsureUser(ctx context.Context, identity *types.Identity) (*models.User, error)
}

// Authenticator verifies bearer tokens and resolves the actor id. Resolved
// ids are remembered per token identifier, since that mapping never changes.
type Authenticator struct {
	conf  *config.Jwt
	users UserResolver
	ids   cmap.ConcurrentMap[string, uint64]
}

func NewAuthenticator(conf *config.Config, users UserResolver) *Authenticator {
	return &Authenticator{
		conf:  conf.Jwt,
		users: users,
		ids:   cmap.New[uint64](),
	}
}

func (a *Authenticator) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "missing Authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "malformed Authorization header")
			return
		}

		claims, err := jwt.ParseToken([]byte(a.conf.Secret), a.conf.Issuer, parts[1])
		if err != nil {
			log.L.Debug("reject token", zap.Error(err))
			response.Abort(c, http.StatusUnauthorized, "invalid token")
			return
		}

		userID, ok := a.ids.Get(claims.Subject)
		if !ok {
			user, err := a.users.EnsureUser(c.Request.Context(), &types.Identity{
				TokenIdentifier: claims.Subject,
				Name:            claims.Name,
				Email:           claims.Email,
				PictureURL:      claims.Picture,
			})
			if err != nil {
				response.Error(c, err)
				c.Abort()
				return
			}
			userID = user.ID
			a.ids.Set(claims.Subject, userID)
		}

		c.Set(pctx.CtxUserID, userID)
		c.Set(pctx.CtxTokenIdentifier, claims.Subject)
		c.Set(ctxClaims, claims)
		c.Next()
	}
}

const ctxClaims = "claims"

// GetIdentity returns the identity carried by the verified token.
func GetIdentity(c *gin.Context) *types.Identity {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		return nil
	}
	return &types.Identity{
		TokenIdentifier: claims.Subject,
		Name:            claims.Name,
		Email:           claims.Email,
		PictureURL:      claims.Picture,
	}
}
