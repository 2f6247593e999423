package dao

import (
	"Inkwell/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type PostDAO struct {
	Repo[models.Post]
}

func NewPostDAO(db *gorm.DB) *PostDAO {
	return &PostDAO{Repo: NewRepo[models.Post](db)}
}

func (d *PostDAO) WithTx(tx *gorm.DB) *PostDAO {
	return &PostDAO{Repo: d.Repo.With(tx)}
}

// LiveScope is models.Post.IsLive expressed as a query condition.
func LiveScope(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.status = ? AND (posts.scheduled_for IS NULL OR posts.scheduled_for <= ?)",
			models.PostStatusPublished, now)
	}
}

// UpdateFields 更新文章字段; updated_at must be part of updates.
func (d *PostDAO) UpdateFields(ctx context.Context, postID uint64, updates map[string]any) error {
	err := d.Db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumns(updates).Error
	return wrap("PostDAO.UpdateFields", err)
}

// TransitionStatus applies updates only while the post still has status
// from, reporting whether the row changed.
func (d *PostDAO) TransitionStatus(ctx context.Context, postID uint64, from models.PostStatus, updates map[string]any) (bool, error) {
	res := d.Db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND status = ?", postID, from).
		UpdateColumns(updates)
	if res.Error != nil {
		return false, wrap("PostDAO.TransitionStatus", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// IncrCounters adjusts view/like/comment counters of one post.
func (d *PostDAO) IncrCounters(ctx context.Context, postID uint64, deltas map[string]int64, now time.Time) error {
	return wrap("PostDAO.IncrCounters", d.IncrColumns(ctx, postID, deltas, now))
}

// FindByAuthor 作者的文章列表, newest first. status "" means any status.
func (d *PostDAO) FindByAuthor(ctx context.Context, authorID uint64, status models.PostStatus, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	q := d.Db.WithContext(ctx).Where("author_id = ?", authorID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, wrap("PostDAO.FindByAuthor", err)
}

// LatestDraft returns the author's most recently edited draft or nil.
func (d *PostDAO) LatestDraft(ctx context.Context, authorID uint64) (*models.Post, error) {
	var posts []*models.Post
	err := d.Db.WithContext(ctx).
		Where("author_id = ? AND status = ?", authorID, models.PostStatusDraft).
		Order("updated_at DESC").
		Order("id DESC").
		Limit(1).
		Find(&posts).Error
	if err != nil {
		return nil, wrap("PostDAO.LatestDraft", err)
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return posts[0], nil
}

func (d *PostDAO) IDsByAuthor(ctx context.Context, authorID uint64) ([]uint64, error) {
	var ids []uint64
	err := d.Db.WithContext(ctx).
		Model(&models.Post{}).
		Where("author_id = ?", authorID).
		Pluck("id", &ids).Error
	return ids, wrap("PostDAO.IDsByAuthor", err)
}

// FeedPage returns live posts of authors ordered by (published_at, id) desc,
// strictly after the given keyset position when afterAt is set.
func (d *PostDAO) FeedPage(ctx context.Context, authorIDs []uint64, now time.Time, afterAt *time.Time, afterID uint64, limit int) ([]*models.Post, error) {
	if len(authorIDs) == 0 {
		return []*models.Post{}, nil
	}
	q := d.Db.WithContext(ctx).
		Scopes(LiveScope(now)).
		Where("posts.author_id IN ?", uniqueIDs(authorIDs))
	if afterAt != nil {
		q = q.Where("(posts.published_at < ? OR (posts.published_at = ? AND posts.id < ?))", *afterAt, *afterAt, afterID)
	}
	var posts []*models.Post
	err := q.Order("posts.published_at DESC").
		Order("posts.id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, wrap("PostDAO.FeedPage", err)
}

// LiveSince returns every live post published in [since, now].
func (d *PostDAO) LiveSince(ctx context.Context, since, now time.Time) ([]*models.Post, error) {
	var posts []*models.Post
	err := d.Db.WithContext(ctx).
		Scopes(LiveScope(now)).
		Where("posts.published_at >= ?", since).
		Find(&posts).Error
	return posts, wrap("PostDAO.LiveSince", err)
}

// CountLiveSinceByAuthors 每个作者近期发布的文章数
func (d *PostDAO) CountLiveSinceByAuthors(ctx context.Context, authorIDs []uint64, since, now time.Time) (map[uint64]int64, error) {
	if len(authorIDs) == 0 {
		return map[uint64]int64{}, nil
	}
	var rows []idCount
	err := d.Db.WithContext(ctx).
		Model(&models.Post{}).
		Scopes(LiveScope(now)).
		Select("posts.author_id AS id, COUNT(*) AS cnt").
		Where("posts.author_id IN ? AND posts.published_at >= ?", uniqueIDs(authorIDs), since).
		Group("posts.author_id").
		Scan(&rows).Error
	if err != nil {
		return nil, wrap("PostDAO.CountLiveSinceByAuthors", err)
	}
	return toCountMap(rows), nil
}

// CountPublishedByAuthor is the source of truth for users.posts_count.
func (d *PostDAO) CountPublishedByAuthor(ctx context.Context, authorID uint64) (int64, error) {
	n, err := d.Count(ctx, "author_id = ? AND status = ?", authorID, models.PostStatusPublished)
	return n, wrap("PostDAO.CountPublishedByAuthor", err)
}

type AuthorTotals struct {
	Views int64 `gorm:"column:views"`
	Likes int64 `gorm:"column:likes"`
}

// TotalsByAuthor sums the cached counters across all of an author's posts.
func (d *PostDAO) TotalsByAuthor(ctx context.Context, authorID uint64) (AuthorTotals, error) {
	var t AuthorTotals
	err := d.Db.WithContext(ctx).
		Model(&models.Post{}).
		Select("COALESCE(SUM(view_count), 0) AS views, COALESCE(SUM(like_count), 0) AS likes").
		Where("author_id = ?", authorID).
		Scan(&t).Error
	return t, wrap("PostDAO.TotalsByAuthor", err)
}

// FindByIDs 根据 ID 列表查询文章
func (d *PostDAO) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]*models.Post, error) {
	out := make(map[uint64]*models.Post, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var posts []*models.Post
	if err := d.Db.WithContext(ctx).Where("id IN ?", uniqueIDs(ids)).Find(&posts).Error; err != nil {
		return nil, wrap("PostDAO.FindByIDs", err)
	}
	for _, p := range posts {
		out[p.ID] = p
	}
	return out, nil
}

// AllIDs pages through every post id in ascending order.
func (d *PostDAO) AllIDs(ctx context.Context, afterID uint64, limit int) ([]uint64, error) {
	var ids []uint64
	err := d.Db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, wrap("PostDAO.AllIDs", err)
}
