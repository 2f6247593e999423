package server

import (
	"Inkwell/handler"
)

type Handlers struct {
	Health    *handler.Health
	User      *handler.User
	Follow    *handler.Follow
	Post      *handler.Post
	Comment   *handler.Comment
	Feed      *handler.Feed
	Dashboard *handler.Dashboard
}
