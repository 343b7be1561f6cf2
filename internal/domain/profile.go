package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is the aggregate for a user's public profile. At most one per user
// (unique index on user_id). Experience and education entries are edited only
// through the dedicated add/remove operations, newest first.
type Profile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"  json:"id"`
	UserID         primitive.ObjectID `bson:"user_id"        json:"user_id"`
	Company        string             `bson:"company,omitempty"        json:"company,omitempty"`
	Website        string             `bson:"website,omitempty"        json:"website,omitempty"`
	Location       string             `bson:"location,omitempty"       json:"location,omitempty"`
	Status         string             `bson:"status"         json:"status"`
	Skills         []string           `bson:"skills"         json:"skills"`
	Bio            string             `bson:"bio,omitempty"            json:"bio,omitempty"`
	GithubUsername string             `bson:"githubusername,omitempty" json:"githubusername,omitempty"`
	Experience     []Experience       `bson:"experience"     json:"experience"`
	Education      []Education        `bson:"education"      json:"education"`
	Social         Social             `bson:"social"         json:"social"`
	CreatedAt      time.Time          `bson:"created_at"     json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"     json:"updated_at"`
}

type Experience struct {
	ID          string     `bson:"id"                    json:"id"`
	Title       string     `bson:"title"                 json:"title"`
	Company     string     `bson:"company"               json:"company"`
	Location    string     `bson:"location,omitempty"    json:"location,omitempty"`
	From        time.Time  `bson:"from"                  json:"from"`
	To          *time.Time `bson:"to,omitempty"          json:"to,omitempty"`
	Current     bool       `bson:"current"               json:"current"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
}

type Education struct {
	ID           string     `bson:"id"                    json:"id"`
	School       string     `bson:"school"                json:"school"`
	Degree       string     `bson:"degree"                json:"degree"`
	FieldOfStudy string     `bson:"fieldofstudy"          json:"fieldofstudy"`
	From         time.Time  `bson:"from"                  json:"from"`
	To           *time.Time `bson:"to,omitempty"          json:"to,omitempty"`
	Current      bool       `bson:"current"               json:"current"`
	Description  string     `bson:"description,omitempty" json:"description,omitempty"`
}

type Social struct {
	Youtube   string `bson:"youtube,omitempty"   json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty"   json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty"  json:"facebook,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty"  json:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}
