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

func (s *Store) FindProfileByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	var p domain.Profile
	err := s.colProfiles.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	cur, err := s.colProfiles.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Profile
	for cur.Next(ctx) {
		var p domain.Profile
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}

// UpsertProfile replaces every top-level profile field for the owner and
// creates the document if missing. Experience and education are deliberately
// left out of $set: those arrays belong to the dedicated add/remove
// operations and survive a full profile resubmission.
func (s *Store) UpsertProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.profile.upsert",
		tracer.Tag("user_id", p.UserID.Hex()))
	defer sp.Finish()

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"company":        p.Company,
			"website":        p.Website,
			"location":       p.Location,
			"status":         p.Status,
			"skills":         p.Skills,
			"bio":            p.Bio,
			"githubusername": p.GithubUsername,
			"social":         p.Social,
			"updated_at":     now,
		},
		"$setOnInsert": bson.M{
			"user_id":    p.UserID,
			"experience": []domain.Experience{},
			"education":  []domain.Education{},
			"created_at": now,
		},
	}

	var out domain.Profile
	err := s.colProfiles.FindOneAndUpdate(ctx,
		bson.M{"user_id": p.UserID},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		sp.SetTag("error", err)
		return nil, err
	}
	return &out, nil
}

func (s *Store) DeleteProfileByUser(ctx context.Context, userID primitive.ObjectID) error {
	res, err := s.colProfiles.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddExperience inserts the entry at the front of the owner's experience
// list (most-recent-first) and returns the updated profile.
func (s *Store) AddExperience(ctx context.Context, userID primitive.ObjectID, e domain.Experience) (*domain.Profile, error) {
	return s.pushEntry(ctx, userID, "experience", e)
}

// RemoveExperience is idempotent: a missing entry id leaves the profile
// unchanged and is not an error.
func (s *Store) RemoveExperience(ctx context.Context, userID primitive.ObjectID, entryID string) (*domain.Profile, error) {
	return s.pullEntry(ctx, userID, "experience", entryID)
}

func (s *Store) AddEducation(ctx context.Context, userID primitive.ObjectID, e domain.Education) (*domain.Profile, error) {
	return s.pushEntry(ctx, userID, "education", e)
}

func (s *Store) RemoveEducation(ctx context.Context, userID primitive.ObjectID, entryID string) (*domain.Profile, error) {
	return s.pullEntry(ctx, userID, "education", entryID)
}

// pushEntry and pullEntry are single atomic updates; concurrent edits of the
// same profile cannot lose each other's entries.
func (s *Store) pushEntry(ctx context.Context, userID primitive.ObjectID, field string, entry any) (*domain.Profile, error) {
	var out domain.Profile
	err := s.colProfiles.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$push": bson.M{field: bson.M{"$each": bson.A{entry}, "$position": 0}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
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

func (s *Store) pullEntry(ctx context.Context, userID primitive.ObjectID, field string, entryID string) (*domain.Profile, error) {
	var out domain.Profile
	err := s.colProfiles.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{field: bson.M{"id": entryID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
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
