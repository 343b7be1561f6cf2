package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post carries the author's name and avatar as a snapshot taken at creation
// time. Display data stays stable even if the author renames later; reads
// never join back to the users collection.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id"       json:"user_id"`
	Text      string             `bson:"text"          json:"text"`
	Name      string             `bson:"name"          json:"name"`
	Avatar    string             `bson:"avatar"        json:"avatar"`
	Likes     []Like             `bson:"likes"         json:"likes"`
	Comments  []Comment          `bson:"comments"      json:"comments"`
	CreatedAt time.Time          `bson:"created_at"    json:"created_at"`
}

type Like struct {
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
}

type Comment struct {
	ID        string             `bson:"id"         json:"id"`
	UserID    primitive.ObjectID `bson:"user_id"    json:"user_id"`
	Text      string             `bson:"text"       json:"text"`
	Name      string             `bson:"name"       json:"name"`
	Avatar    string             `bson:"avatar"     json:"avatar"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
