package queue

import "go.mongodb.org/mongo-driver/bson/primitive"

// Routing keys on the devlink.events topic exchange.
const (
	Exchange           = "devlink.events"
	KeyUserRegistered  = "user.registered"
	KeyUserLoggedIn    = "user.loggedin"
	KeyPostCreated     = "post.created"
	KeyCommentAdded    = "post.comment.added"
)

type UserRegistered struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Name   string             `json:"name"`
}

type UserLoggedIn struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
}

type PostCreated struct {
	PostID primitive.ObjectID `json:"post_id"`
	UserID primitive.ObjectID `json:"user_id"`
}

type CommentAdded struct {
	PostID    primitive.ObjectID `json:"post_id"`
	CommentID string             `json:"comment_id"`
	UserID    primitive.ObjectID `json:"user_id"`
}
