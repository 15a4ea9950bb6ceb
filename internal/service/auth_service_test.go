package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/youthunion/union-go-api/internal/dto"
	"github.com/youthunion/union-go-api/internal/models"
)

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, user := range users {
		if user.ID == 0 {
			repo.nextID++
			user.ID = repo.nextID
		} else if user.ID > repo.nextID {
			repo.nextID = user.ID
		}
		repo.users[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email || existing.StudentID == user.StudentID {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	user.ID = f.nextID
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return *user, nil
}

func (f *fakeUserRepo) FindByIdentity(ctx context.Context, identity string) (models.User, error) {
	for _, user := range f.users {
		if user.Email == identity || user.StudentID == identity {
			return *user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindStaffByIdentity(ctx context.Context, identity string) (models.User, error) {
	for _, user := range f.users {
		if (user.Email == identity || user.StudentID == identity) &&
			(user.Role == models.RoleAdmin || user.Role == models.RoleSecretary) {
			return *user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	for _, user := range f.users {
		if user.Email == email && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) StudentIDTaken(ctx context.Context, studentID string, excludeID uint) (bool, error) {
	for _, user := range f.users {
		if user.StudentID == studentID && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]models.User, error) {
	result := make([]models.User, 0, len(f.users))
	for _, user := range f.users {
		result = append(result, *user)
	}
	return result, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id uint, role string) error {
	if user, ok := f.users[id]; ok {
		user.Role = role
	}
	return nil
}

func (f *fakeUserRepo) SetLocked(ctx context.Context, id uint, locked bool) error {
	if user, ok := f.users[id]; ok {
		user.Locked = locked
	}
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	if user, ok := f.users[id]; ok {
		user.PasswordHash = passwordHash
	}
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	delete(f.users, id)
	return nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func testTokenConfig() TokenConfig {
	return TokenConfig{
		Secret:   "test-secret",
		UserTTL:  168 * time.Hour,
		AdminTTL: 24 * time.Hour,
	}
}

func newTestValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func TestAuthServiceRegister(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testTokenConfig(), newTestValidator(), testLogger())

	user, err := svc.Register(context.Background(), dto.RegisterRequest{
		FullName:  "Nguyễn Văn A",
		StudentID: "SV2026001",
		Email:     "Member@Example.Com",
		Password:  "secret123",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, user.Role)
	require.Equal(t, "member@example.com", user.Email)
	require.False(t, user.Locked)

	stored, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotEqual(t, "secret123", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo(&models.User{Email: "taken@example.com", StudentID: "SV1"})
	svc := NewAuthService(repo, testTokenConfig(), newTestValidator(), testLogger())

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		FullName:  "B",
		StudentID: "SV2",
		Email:     "taken@example.com",
		Password:  "secret123",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthServiceRegisterDuplicateStudentID(t *testing.T) {
	repo := newFakeUserRepo(&models.User{Email: "a@example.com", StudentID: "SV1"})
	svc := NewAuthService(repo, testTokenConfig(), newTestValidator(), testLogger())

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		FullName:  "B",
		StudentID: "SV1",
		Email:     "b@example.com",
		Password:  "secret123",
	})
	require.ErrorIs(t, err, ErrStudentIDTaken)
}

func TestAuthServiceLoginByStudentID(t *testing.T) {
	repo := newFakeUserRepo(&models.User{
		FullName:     "Nguyễn Văn A",
		StudentID:    "SV2026001",
		Email:        "member@example.com",
		PasswordHash: hashPassword(t, "secret123"),
		Role:         models.RoleUser,
	})
	svc := NewAuthService(repo, testTokenConfig(), newTestValidator(), testLogger())

	login, err := svc.Login(context.Background(), "SV2026001", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)
	require.Equal(t, "member@example.com", login.User.Email)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(login.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, claims["role"])
	require.Equal(t, "member@example.com", claims["email"])

	issuedAt, expiry := int64(claims["iat"].(float64)), int64(claims["exp"].(float64))
	require.Equal(t, int64(168*3600), expiry-issuedAt)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo(&models.User{
		StudentID:    "SV1",
		Email:        "member@example.com",
		PasswordHash: hashPassword(t, "secret123"),
	})
	svc := NewAuthService(repo, testTokenConfig(), newTestValidator(), testLogger())

	_, err := svc.Login(context.Background(), "member@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceLoginLockedAccount(t *testing.T) {
	repo := newFakeUserRepo(&models.User{
		StudentID:    "SV1",
		Email:        "member@example.com",
		PasswordHash: hashPassword(t, "secret123"),
		Locked:       true,
	})
	svc := NewAuthService(repo, testTokenConfig(), newTestValidator(), testLogger())

	_, err := svc.Login(context.Background(), "member@example.com", "secret123")
	require.ErrorIs(t, err, ErrAccountLocked)
}

func TestAuthServiceAdminLoginRejectsMembers(t *testing.T) {
	repo := newFakeUserRepo(
		&models.User{
			StudentID:    "SV1",
			Email:        "member@example.com",
			PasswordHash: hashPassword(t, "secret123"),
			Role:         models.RoleUser,
		},
		&models.User{
			StudentID:    "CB1",
			Email:        "secretary@example.com",
			PasswordHash: hashPassword(t, "secret123"),
			Role:         models.RoleSecretary,
		},
	)
	svc := NewAuthService(repo, testTokenConfig(), newTestValidator(), testLogger())

	_, err := svc.AdminLogin(context.Background(), "member@example.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	login, err := svc.AdminLogin(context.Background(), "secretary@example.com", "secret123")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(login.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleSecretary, claims["role"])

	issuedAt, expiry := int64(claims["iat"].(float64)), int64(claims["exp"].(float64))
	require.Equal(t, int64(24*3600), expiry-issuedAt)
}

func TestAuthServiceChangePassword(t *testing.T) {
	repo := newFakeUserRepo(&models.User{
		StudentID:    "SV1",
		Email:        "member@example.com",
		PasswordHash: hashPassword(t, "secret123"),
	})
	svc := NewAuthService(repo, testTokenConfig(), newTestValidator(), testLogger())

	err := svc.ChangePassword(context.Background(), 1, dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "updated456",
	})
	require.ErrorIs(t, err, ErrWrongPassword)

	err = svc.ChangePassword(context.Background(), 1, dto.ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "updated456",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "member@example.com", "updated456")
	require.NoError(t, err)
}
