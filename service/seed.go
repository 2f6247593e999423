package service

import (
	"Inkwell/dao"
	"Inkwell/pkg/log"
	"Inkwell/types"
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/juju/clock"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

//go:embed fixtures/seed.json
var seedFixture []byte

var _ ISeedService = (*SeedService)(nil)

type ISeedService interface {
	// Seed loads the demo fixture once; later calls report false and do nothing.
	Seed(ctx context.Context) (bool, error)
}

// SeedService drives the fixture through the regular services so that every
// counter matches its edges.
type SeedService struct {
	UserDAO   *dao.Users
	Users     IUserService
	Follow    IFollowService
	Posts     IPostService
	Scheduler ISchedulerService
	Counter   ICounterService
	Clock     clock.Clock
}

func (s *SeedService) Seed(ctx context.Context) (bool, error) {
	return s.seed(ctx, seedFixture)
}

func (s *SeedService) seed(ctx context.Context, fixture []byte) (bool, error) {
	if !gjson.ValidBytes(fixture) {
		return false, fmt.Errorf("seed: fixture is not valid json")
	}
	doc := gjson.ParseBytes(fixture)

	first := doc.Get("users.0.token").String()
	if first == "" {
		return false, fmt.Errorf("seed: fixture has no users")
	}
	existing, err := s.UserDAO.FindByToken(ctx, first)
	if err != nil {
		return false, err
	}
	if existing != nil {
		log.L.Info("seed data already present, skipping")
		return false, nil
	}

	ids := make(map[string]uint64)
	var seedErr error
	doc.Get("users").ForEach(func(_, u gjson.Result) bool {
		user, err := s.Users.EnsureUser(ctx, &types.Identity{
			TokenIdentifier: u.Get("token").String(),
			Name:            u.Get("name").String(),
			Email:           u.Get("email").String(),
			PictureURL:      u.Get("image_url").String(),
		})
		if err != nil {
			seedErr = fmt.Errorf("seed user %s: %w", u.Get("token").String(), err)
			return false
		}
		ids[u.Get("token").String()] = user.ID
		return true
	})
	if seedErr != nil {
		return false, seedErr
	}

	doc.Get("follows").ForEach(func(_, pair gjson.Result) bool {
		follower, following := ids[pair.Get("0").String()], ids[pair.Get("1").String()]
		if _, err := s.Follow.ToggleFollow(ctx, follower, following); err != nil {
			seedErr = fmt.Errorf("seed follow: %w", err)
			return false
		}
		return true
	})
	if seedErr != nil {
		return false, seedErr
	}

	posts := 0
	doc.Get("posts").ForEach(func(_, p gjson.Result) bool {
		if err := s.seedPost(ctx, ids, p); err != nil {
			seedErr = fmt.Errorf("seed post %q: %w", p.Get("title").String(), err)
			return false
		}
		posts++
		return true
	})
	if seedErr != nil {
		return false, seedErr
	}

	log.L.Info("seed data loaded", zap.Int("users", len(ids)), zap.Int("posts", posts))
	return true, nil
}

func (s *SeedService) seedPost(ctx context.Context, ids map[string]uint64, p gjson.Result) error {
	authorID := ids[p.Get("author").String()]
	tags := make([]string, 0)
	for _, t := range p.Get("tags").Array() {
		tags = append(tags, t.String())
	}
	post, err := s.Posts.CreatePost(ctx, authorID, &types.CreatePostRequest{
		Title:         p.Get("title").String(),
		Content:       p.Get("content").String(),
		Tags:          tags,
		Category:      p.Get("category").String(),
		FeaturedImage: p.Get("featured_image").String(),
	})
	if err != nil {
		return err
	}

	switch p.Get("state").String() {
	case "live":
		if _, err := s.Scheduler.PublishNow(ctx, authorID, post.ID); err != nil {
			return err
		}
	case "scheduled":
		when := s.Clock.Now().Add(time.Duration(p.Get("publish_in_hours").Int()) * time.Hour)
		if _, err := s.Scheduler.Schedule(ctx, authorID, post.ID, when); err != nil {
			return err
		}
	default:
		return nil
	}

	// fixture views come from anonymous readers
	for i := int64(0); i < p.Get("views").Int(); i++ {
		if err := s.Counter.RecordView(ctx, 0, post.ID); err != nil {
			return err
		}
	}
	for _, by := range p.Get("liked_by").Array() {
		if _, err := s.Counter.ToggleLike(ctx, ids[by.String()], post.ID); err != nil {
			return err
		}
	}
	for _, c := range p.Get("comments").Array() {
		comment, err := s.Counter.RecordComment(ctx, post.ID, ids[c.Get("by").String()], c.Get("content").String())
		if err != nil {
			return err
		}
		if _, err := s.Counter.ModerateComment(ctx, authorID, comment.ID, "approved"); err != nil {
			return err
		}
	}
	return nil
}
