package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/squadbase/player-catalog/internal/core/domain"
	"github.com/squadbase/player-catalog/internal/core/ports"
)

const collectionPlayers = "players"

// PlayerRepository persists players in a Mongo collection. Documents keep
// their insertion order for LoadAll, matching the seeded snapshot order.
type PlayerRepository struct {
	col *mongo.Collection
}

func NewPlayerRepository(db *mongo.Database) *PlayerRepository {
	return &PlayerRepository{col: db.Collection(collectionPlayers)}
}

// LoadAll returns every player in natural (insertion) order.
func (r *PlayerRepository) LoadAll(ctx context.Context) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	defer cur.Close(ctx)

	players := []domain.Player{}
	if err := cur.All(ctx, &players); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	return players, nil
}

// FindByID retrieves a single player by its catalog id.
func (r *PlayerRepository) FindByID(ctx context.Context, id string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Player
	err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Update applies the set patch fields with a single $set, so a concurrent
// update to the same document resolves to whichever write lands last.
func (r *PlayerRepository) Update(ctx context.Context, id string, patch ports.PlayerPatch) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Age != nil {
		set["age"] = *patch.Age
	}
	if patch.Position != nil {
		set["position"] = *patch.Position
	}
	if patch.Nationality != nil {
		set["nationality"] = *patch.Nationality
	}
	if patch.OverallRating != nil {
		set["overall_rating"] = *patch.OverallRating
	}
	if patch.IsActive != nil {
		set["is_active"] = *patch.IsActive
	}
	if patch.BirthDate != nil {
		set["birth_date"] = *patch.BirthDate
	}
	if patch.ClubName != nil {
		set["club.name"] = *patch.ClubName
	}
	if patch.ClubLeague != nil {
		set["club.league"] = *patch.ClubLeague
	}
	if patch.ImageURL != nil {
		set["image_url"] = *patch.ImageURL
	}

	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	var updated domain.Player
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.col.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// SeedIfEmpty imports the snapshot only when the collection holds zero
// documents, so it is safe to run on every process start.
func (r *PlayerRepository) SeedIfEmpty(ctx context.Context, players []domain.Player) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	count, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	if count > 0 || len(players) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(players))
	for i, p := range players {
		docs[i] = p
	}

	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("seed players: %w", err)
	}
	return len(res.InsertedIDs), nil
}

// EnsureIndexes creates the unique id index on the players collection.
func (r *PlayerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
