package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/timeshift/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UsersCollection is the collection name of users
const UsersCollection = "users"

type userDocument struct {
	ID           string    `firestore:"id"`
	AthleteID    int64     `firestore:"athlete_id"`
	FirstName    string    `firestore:"first_name"`
	LastName     string    `firestore:"last_name"`
	Email        string    `firestore:"email"`
	AccessToken  string    `firestore:"access_token"`
	RefreshToken string    `firestore:"refresh_token"`
	ExpiresAt    time.Time `firestore:"expires_at"`
	CreatedAt    time.Time `firestore:"created_at"`
	UpdatedAt    time.Time `firestore:"updated_at"`
}

type userRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newUserRepository(client *firestore.Client) *userRepository {
	return &userRepository{client: client}
}

func (r *userRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, UsersCollection))
}

func userToDocument(user *model.User) *userDocument {
	return &userDocument{
		ID:           user.ID.String(),
		AthleteID:    user.AthleteID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		AccessToken:  user.Credentials.AccessToken,
		RefreshToken: user.Credentials.RefreshToken,
		ExpiresAt:    user.Credentials.ExpiresAt,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func userToModel(doc *userDocument) *model.User {
	return &model.User{
		ID:        model.UserID(doc.ID),
		AthleteID: doc.AthleteID,
		FirstName: doc.FirstName,
		LastName:  doc.LastName,
		Email:     doc.Email,
		Credentials: model.Credentials{
			AccessToken:  doc.AccessToken,
			RefreshToken: doc.RefreshToken,
			ExpiresAt:    doc.ExpiresAt,
		},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func (r *userRepository) GetByAthleteID(ctx context.Context, athleteID int64) (*model.User, error) {
	iter := r.collection().Where("athlete_id", "==", athleteID).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query user by athlete ID", goerr.V("athlete_id", athleteID))
	}

	var userDoc userDocument
	if err := doc.DataTo(&userDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("athlete_id", athleteID))
	}
	return userToModel(&userDoc), nil
}

func (r *userRepository) Get(ctx context.Context, id model.UserID) (*model.User, error) {
	doc, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("id", id))
	}

	var userDoc userDocument
	if err := doc.DataTo(&userDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("id", id))
	}
	return userToModel(&userDoc), nil
}

func (r *userRepository) Put(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		return goerr.New("user ID is required")
	}

	if _, err := r.collection().Doc(user.ID.String()).Set(ctx, userToDocument(user)); err != nil {
		return goerr.Wrap(err, "failed to put user", goerr.V("id", user.ID))
	}
	return nil
}

func (r *userRepository) UpdateCredentials(ctx context.Context, id model.UserID, creds model.Credentials) error {
	_, err := r.collection().Doc(id.String()).Update(ctx, []firestore.Update{
		{Path: "access_token", Value: creds.AccessToken},
		{Path: "refresh_token", Value: creds.RefreshToken},
		{Path: "expires_at", Value: creds.ExpiresAt},
		{Path: "updated_at", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to update credentials", goerr.V("id", id))
	}
	return nil
}
