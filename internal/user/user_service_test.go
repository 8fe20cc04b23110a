package user_test

import (
	"context"
	"testing"

	"go-ems/internal/user"
	usererrors "go-ems/internal/user/errors"
	"go-ems/internal/user/mock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newServiceWithMock(t *testing.T) (user.Service, *mock.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	return user.NewService(repo), repo
}

func TestRegister_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc, repo := newServiceWithMock(t)

	repo.EXPECT().FindByEmail(gomock.Any(), "ann@x.com").Return(nil, mongo.ErrNoDocuments)

	var saved *user.User
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *user.User) error {
			saved = u
			return nil
		})

	resp, err := svc.Register(context.Background(), user.RegisterRequest{
		Name:     "Ann Lee",
		Email:    " ANN@X.com ",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "ann@x.com", resp.Email)
	assert.False(t, resp.IsAdmin)
	assert.NotEmpty(t, resp.Token)

	// the stored password is a hash, never the plaintext
	assert.NotEqual(t, "secret123", saved.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("secret123")))

	// token carries the auth claims the middleware relies on
	parsed, err := jwt.Parse(resp.Token, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, saved.ID.Hex(), claims["user_id"])
	assert.Equal(t, false, claims["is_admin"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, repo := newServiceWithMock(t)

	repo.EXPECT().FindByEmail(gomock.Any(), "ann@x.com").
		Return(&user.User{Email: "ann@x.com"}, nil)

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Name:     "Ann Lee",
		Email:    "ann@x.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, usererrors.ErrUserAlreadyExists)
}

func TestRegister_DuplicateKeyRace(t *testing.T) {
	svc, repo := newServiceWithMock(t)

	repo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, mongo.ErrNoDocuments)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}},
	})

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Name:     "Ann Lee",
		Email:    "ann@x.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, usererrors.ErrUserAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc, repo := newServiceWithMock(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	repo.EXPECT().FindByEmail(gomock.Any(), "ann@x.com").Return(&user.User{
		ID:       primitive.NewObjectID(),
		Name:     "Ann Lee",
		Email:    "ann@x.com",
		Password: string(hashed),
		IsAdmin:  true,
	}, nil)

	resp, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "ANN@X.com",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.True(t, resp.IsAdmin)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo := newServiceWithMock(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	repo.EXPECT().FindByEmail(gomock.Any(), "ann@x.com").
		Return(&user.User{Email: "ann@x.com", Password: string(hashed)}, nil)

	_, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "ann@x.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, usererrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	// the same error as a wrong password, so responses don't reveal
	// which accounts exist
	svc, repo := newServiceWithMock(t)

	repo.EXPECT().FindByEmail(gomock.Any(), "ghost@x.com").Return(nil, mongo.ErrNoDocuments)

	_, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "ghost@x.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, usererrors.ErrInvalidCredentials)
}

func TestProfile(t *testing.T) {
	svc, repo := newServiceWithMock(t)
	id := primitive.NewObjectID()

	repo.EXPECT().FindByID(gomock.Any(), id).Return(&user.User{
		ID:    id,
		Name:  "Ann Lee",
		Email: "ann@x.com",
	}, nil)

	resp, err := svc.Profile(context.Background(), id.Hex())

	assert.NoError(t, err)
	assert.Equal(t, id.Hex(), resp.ID)
	assert.Empty(t, resp.Token) // profile never re-issues a token
}

func TestProfile_MalformedID(t *testing.T) {
	svc, _ := newServiceWithMock(t)

	_, err := svc.Profile(context.Background(), "nope")
	assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
}
