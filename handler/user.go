package handler

import (
	"Inkwell/middleware"
	"Inkwell/pkg/apperror"
	"Inkwell/pkg/context"
	"Inkwell/pkg/response"
	"Inkwell/service"

	"github.com/gin-gonic/gin"
)

type User struct {
	Auth        *middleware.Authenticator
	UserService service.IUserService
}

func (u *User) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/users", u.Auth.Handler())
	g.POST("/me", context.Wrap(u.Store))
	g.GET("/me", context.Wrap(u.Me))
}

// Store 同步当前登录用户资料
func (u *User) Store(c *gin.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return apperror.Unauthenticated("missing identity")
	}
	user, err := u.UserService.EnsureUser(c.Request.Context(), identity)
	if err != nil {
		return err
	}
	profile, err := u.UserService.GetProfile(c.Request.Context(), user.ID)
	if err != nil {
		return err
	}
	response.Success(c, profile)
	return nil
}

func (u *User) Me(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	profile, err := u.UserService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, profile)
	return nil
}
