package dao

import (
	"Inkwell/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.User]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.User](db),
	}
}

func (u *Users) WithTx(tx *gorm.DB) *Users {
	return &Users{Repo: u.Repo.With(tx)}
}

// FindByToken 根据外部身份标识查询
func (u *Users) FindByToken(ctx context.Context, token string) (*models.User, error) {
	user, err := u.FindByWhere(ctx, "token_identifier = ?", token)
	return user, wrap("Users.FindByToken", err)
}

func (u *Users) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	exist, err := u.IsExist(ctx, "username = ?", username)
	return exist, wrap("Users.IsUsernameTaken", err)
}

// FindByIDs returns the users keyed by id; missing ids are absent.
func (u *Users) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]*models.User, error) {
	out := make(map[uint64]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []*models.User
	if err := u.Db.WithContext(ctx).Where("id IN ?", uniqueIDs(ids)).Find(&users).Error; err != nil {
		return nil, wrap("Users.FindByIDs", err)
	}
	for _, user := range users {
		out[user.ID] = user
	}
	return out, nil
}

func (u *Users) UpdateProfile(ctx context.Context, id uint64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	err := u.Db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumns(updates).Error
	return wrap("Users.UpdateProfile", err)
}

// IncrFollowCounts 关注关系变化: followers on the followed side, following on
// the follower side, both in the caller's transaction.
func (u *Users) IncrFollowCounts(ctx context.Context, followerID, followingID uint64, delta int64, now time.Time) error {
	if err := u.IncrColumns(ctx, followingID, map[string]int64{"followers_count": delta}, now); err != nil {
		return wrap("Users.IncrFollowCounts", err)
	}
	if err := u.IncrColumns(ctx, followerID, map[string]int64{"following_count": delta}, now); err != nil {
		return wrap("Users.IncrFollowCounts", err)
	}
	return nil
}

func (u *Users) IncrPostsCount(ctx context.Context, userID uint64, delta int64, now time.Time) error {
	return wrap("Users.IncrPostsCount", u.IncrColumns(ctx, userID, map[string]int64{"posts_count": delta}, now))
}

// TopByFollowers 按粉丝数倒序的候选用户
func (u *Users) TopByFollowers(ctx context.Context, limit int) ([]*models.User, error) {
	var users []*models.User
	err := u.Db.WithContext(ctx).
		Order("followers_count DESC").
		Order("id ASC").
		Limit(limit).
		Find(&users).Error
	return users, wrap("Users.TopByFollowers", err)
}

// AllIDs pages through every user id in ascending order.
func (u *Users) AllIDs(ctx context.Context, afterID uint64, limit int) ([]uint64, error) {
	var ids []uint64
	err := u.Db.WithContext(ctx).
		Model(&models.User{}).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, wrap("Users.AllIDs", err)
}
