package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/devlink/devlink/internal/domain"
)

func (s *Store) CreatePost(ctx context.Context, p *domain.Post) error {
	p.CreatedAt = time.Now().UTC()
	if p.Likes == nil {
		p.Likes = []domain.Like{}
	}
	if p.Comments == nil {
		p.Comments = []domain.Comment{}
	}
	res, err := s.colPosts.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (s *Store) FindPostByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	var p domain.Post
	err := s.colPosts.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) ListPosts(ctx context.Context) ([]domain.Post, error) {
	cur, err := s.colPosts.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Post
	for cur.Next(ctx) {
		var p domain.Post
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}

// DeletePost removes the post only if actor owns it and returns the removed
// document.
func (s *Store) DeletePost(ctx context.Context, postID, actor primitive.ObjectID) (*domain.Post, error) {
	p, err := s.FindPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.UserID != actor {
		return nil, ErrForbidden
	}
	if _, err := s.colPosts.DeleteOne(ctx, bson.M{"_id": postID, "user_id": actor}); err != nil {
		return nil, err
	}
	return p, nil
}

// LikePost adds actor to the front of the like list. The membership guard is
// part of the update filter, so two concurrent likes by the same actor can
// never both insert: the second one matches nothing and fails AlreadyLiked.
func (s *Store) LikePost(ctx context.Context, postID, actor primitive.ObjectID) (*domain.Post, error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.post.like",
		tracer.Tag("post_id", postID.Hex()))
	defer sp.Finish()

	var out domain.Post
	err := s.colPosts.FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "likes.user_id": bson.M{"$ne": actor}},
		bson.M{"$push": bson.M{"likes": bson.M{
			"$each": bson.A{domain.Like{UserID: actor}}, "$position": 0,
		}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err == mongo.ErrNoDocuments {
		// post missing vs. actor already present
		if _, ferr := s.FindPostByID(ctx, postID); ferr != nil {
			return nil, ferr
		}
		return nil, ErrAlreadyLiked
	}
	if err != nil {
		sp.SetTag("error", err)
		return nil, err
	}
	return &out, nil
}

// UnlikePost removes actor's like; failing NotLiked when no like is present.
func (s *Store) UnlikePost(ctx context.Context, postID, actor primitive.ObjectID) (*domain.Post, error) {
	var out domain.Post
	err := s.colPosts.FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "likes.user_id": actor},
		bson.M{"$pull": bson.M{"likes": bson.M{"user_id": actor}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err == mongo.ErrNoDocuments {
		if _, ferr := s.FindPostByID(ctx, postID); ferr != nil {
			return nil, ferr
		}
		return nil, ErrNotLiked
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) AddComment(ctx context.Context, postID primitive.ObjectID, c domain.Comment) (*domain.Post, error) {
	var out domain.Post
	err := s.colPosts.FindOneAndUpdate(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": bson.M{
			"$each": bson.A{c}, "$position": 0,
		}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveComment is post-scoped: any authenticated actor may remove any
// comment on the post. Missing post or missing comment both report NotFound.
func (s *Store) RemoveComment(ctx context.Context, postID primitive.ObjectID, commentID string) (*domain.Post, error) {
	var out domain.Post
	err := s.colPosts.FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "comments.id": commentID},
		bson.M{"$pull": bson.M{"comments": bson.M{"id": commentID}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
