package service

import (
	"Inkwell/dao"
	"Inkwell/models"
	"Inkwell/pkg/apperror"
	"Inkwell/pkg/database"
	"Inkwell/pkg/snowflake"
	"Inkwell/types"
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/juju/clock"
	"gorm.io/gorm"
)

var _ IUserService = (*UserService)(nil)

type IUserService interface {
	// EnsureUser returns the user behind an identity, creating it on first
	// sight and refreshing the display name when it changed.
	EnsureUser(ctx context.Context, identity *types.Identity) (*models.User, error)
	GetUser(ctx context.Context, userID uint64) (*models.User, error)
	GetProfile(ctx context.Context, userID uint64) (*types.UserProfile, error)
}

type UserService struct {
	DB      *gorm.DB
	UserDAO *dao.Users
	Clock   clock.Clock
}

const maxUsernameAttempts = 20

func (s *UserService) EnsureUser(ctx context.Context, identity *types.Identity) (*models.User, error) {
	if identity == nil || identity.TokenIdentifier == "" {
		return nil, apperror.Unauthenticated("missing token identifier")
	}

	var user *models.User
	err := database.Transaction(ctx, s.DB, "users.ensure", func(tx *gorm.DB) error {
		users := s.UserDAO.WithTx(tx)
		now := database.Now(s.Clock)

		existing, err := users.FindByToken(ctx, identity.TokenIdentifier)
		if err != nil {
			return err
		}
		if existing != nil {
			updates := map[string]any{"last_active_at": now}
			if identity.Name != "" && identity.Name != existing.Name {
				updates["name"] = identity.Name
				updates["updated_at"] = now
				existing.Name = identity.Name
			}
			existing.LastActiveAt = now
			user = existing
			return users.UpdateProfile(ctx, existing.ID, updates)
		}

		username, err := s.pickUsername(ctx, users, identity.Email)
		if err != nil {
			return err
		}
		name := identity.Name
		if name == "" {
			name = username
		}
		user = &models.User{
			ID:              snowflake.GenID(),
			TokenIdentifier: identity.TokenIdentifier,
			Username:        username,
			Name:            name,
			Email:           identity.Email,
			ImageURL:        identity.PictureURL,
			CreatedAt:       now,
			LastActiveAt:    now,
			UpdatedAt:       now,
		}
		// a concurrent first login loses on uk_users_token and is replayed,
		// finding the winner's row on the next attempt
		return users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// pickUsername derives a free username from the email local part, appending
// a numeric suffix on collision.
func (s *UserService) pickUsername(ctx context.Context, users *dao.Users, email string) (string, error) {
	base := usernameBase(email)
	candidate := base
	for i := 2; i < maxUsernameAttempts+2; i++ {
		taken, err := users.IsUsernameTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
	return fmt.Sprintf("%s_%d", base, snowflake.GenID()%1_000_000), nil
}

func usernameBase(email string) string {
	local := email
	if i := strings.IndexByte(email, '@'); i >= 0 {
		local = email[:i]
	}
	var b strings.Builder
	for _, r := range strings.ToLower(local) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.') {
			b.WriteRune(r)
		}
	}
	base := b.String()
	if base == "" {
		base = "user"
	}
	if len(base) > 48 {
		base = base[:48]
	}
	return base
}

func (s *UserService) GetUser(ctx context.Context, userID uint64) (*models.User, error) {
	user, err := s.UserDAO.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user", userID)
	}
	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uint64) (*types.UserProfile, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserProfile(user), nil
}
