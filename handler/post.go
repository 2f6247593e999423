package handler

import (
	"Inkwell/middleware"
	"Inkwell/models"
	"Inkwell/pkg/context"
	"Inkwell/pkg/log"
	"Inkwell/pkg/response"
	"Inkwell/service"
	"Inkwell/types"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Post struct {
	Auth             *middleware.Authenticator
	PostService      service.IPostService
	CounterService   service.ICounterService
	SchedulerService service.ISchedulerService
}

func (p *Post) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/posts", p.Auth.Handler())
	g.POST("", context.Wrap(p.Create))
	g.GET("/mine", context.Wrap(p.Mine))
	g.GET("/draft", context.Wrap(p.Draft))
	g.GET("/:id", context.Wrap(p.Get))
	g.PUT("/:id", context.Wrap(p.Update))
	g.POST("/:id/view", context.Wrap(p.View))
	g.POST("/:id/like", context.Wrap(p.Like))
	g.GET("/:id/comments", context.Wrap(p.Comments))
	g.POST("/:id/comments", context.Wrap(p.Comment))
	g.POST("/:id/publish", context.Wrap(p.Publish))
	g.POST("/:id/schedule", context.Wrap(p.Schedule))
	g.POST("/:id/unpublish", context.Wrap(p.Unpublish))
}

// Create 新建草稿
func (p *Post) Create(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.CreatePostRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	post, err := p.PostService.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, post)
	return nil
}

func (p *Post) Update(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req types.UpdatePostRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	post, err := p.PostService.UpdatePost(c.Request.Context(), userID, postID, &req)
	if err != nil {
		return err
	}
	response.Success(c, post)
	return nil
}

// Get 文章详情. Reading a live post someone else wrote counts as a view;
// a failed view is logged and never fails the read.
func (p *Post) Get(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	post, err := p.PostService.GetPost(c.Request.Context(), userID, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID && post.State == types.PostStateLive {
		if err := p.CounterService.RecordView(c.Request.Context(), userID, postID); err != nil {
			log.L.Warn("record view failed", zap.Uint64("post_id", postID), zap.Error(err))
		} else {
			post.ViewCount++
		}
	}
	response.Success(c, post)
	return nil
}

func (p *Post) Mine(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.ListPostsRequest
	if err := bindQuery(c, &req); err != nil {
		return err
	}

	posts, err := p.PostService.GetUserPosts(c.Request.Context(), userID, models.PostStatus(req.Status), req.Limit)
	if err != nil {
		return err
	}
	response.Success(c, posts)
	return nil
}

// Draft returns the latest draft, or null data when there is none.
func (p *Post) Draft(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	draft, err := p.PostService.GetUserDraft(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	if draft == nil {
		response.Success(c, nil)
		return nil
	}
	response.Success(c, draft)
	return nil
}

func (p *Post) View(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := p.CounterService.RecordView(c.Request.Context(), userID, postID); err != nil {
		return err
	}
	c.Status(http.StatusNoContent)
	return nil
}

// Like 点赞/取消点赞
func (p *Post) Like(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	liked, err := p.CounterService.ToggleLike(c.Request.Context(), userID, postID)
	if err != nil {
		return err
	}
	response.Success(c, types.ToggleLikeResponse{Liked: liked})
	return nil
}

func (p *Post) Comments(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req types.LimitRequest
	if err := bindQuery(c, &req); err != nil {
		return err
	}

	list, err := p.CounterService.ListComments(c.Request.Context(), userID, postID, req.Limit)
	if err != nil {
		return err
	}
	response.Success(c, list)
	return nil
}

// Comment 发表评论
func (p *Post) Comment(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req types.CreateCommentRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	comment, err := p.CounterService.RecordComment(c.Request.Context(), postID, userID, req.Content)
	if err != nil {
		return err
	}
	response.Success(c, types.CreateCommentResponse{CommentID: comment.ID, Status: string(comment.Status)})
	return nil
}

func (p *Post) Publish(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	post, err := p.SchedulerService.PublishNow(c.Request.Context(), userID, postID)
	if err != nil {
		return err
	}
	return p.respond(c, userID, post.ID)
}

func (p *Post) Schedule(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req types.SchedulePostRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	post, err := p.SchedulerService.Schedule(c.Request.Context(), userID, postID, req.ScheduledFor)
	if err != nil {
		return err
	}
	return p.respond(c, userID, post.ID)
}

func (p *Post) Unpublish(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	post, err := p.SchedulerService.Unpublish(c.Request.Context(), userID, postID)
	if err != nil {
		return err
	}
	return p.respond(c, userID, post.ID)
}

// respond writes the post as its author sees it after a transition.
func (p *Post) respond(c *gin.Context, userID, postID uint64) error {
	post, err := p.PostService.GetPost(c.Request.Context(), userID, postID)
	if err != nil {
		return err
	}
	response.Success(c, post)
	return nil
}
