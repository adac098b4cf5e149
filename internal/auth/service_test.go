package auth

import (
	"testing"

	"dialdesk/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Update(user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func newTestUser(t *testing.T, svc *Service, password string) *models.User {
	t.Helper()
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	companyID := uuid.New()
	return &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		CompanyID: &companyID,
		Email:     "agent@example.com",
		Password:  hash,
		Name:      "Agent",
		Role:      models.RoleAgent,
		IsActive:  true,
	}
}

func TestLoginIssuesValidAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newFakeUserRepo()
	svc := NewService(repo)
	user := newTestUser(t, svc, "hunter2233")
	repo.users[user.ID] = user

	resp, err := svc.Login(LoginRequest{Email: "agent@example.com", Password: "hunter2233"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("Login() returned empty tokens")
	}

	claims, err := svc.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %v, expected %v", claims.UserID, user.ID)
	}
	if claims.Type != "access" {
		t.Errorf("claims.Type = %q, expected access", claims.Type)
	}
	if claims.CompanyID == nil || *claims.CompanyID != *user.CompanyID {
		t.Error("claims must carry the user's company scope")
	}
	if claims.Role != models.RoleAgent {
		t.Errorf("claims.Role = %q", claims.Role)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newFakeUserRepo()
	svc := NewService(repo)
	user := newTestUser(t, svc, "hunter2233")
	repo.users[user.ID] = user

	if _, err := svc.Login(LoginRequest{Email: "agent@example.com", Password: "wrong"}); err == nil {
		t.Error("Login() with wrong password must fail")
	}
}

func TestLoginRejectsDisabledUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newFakeUserRepo()
	svc := NewService(repo)
	user := newTestUser(t, svc, "hunter2233")
	user.IsActive = false
	repo.users[user.ID] = user

	if _, err := svc.Login(LoginRequest{Email: "agent@example.com", Password: "hunter2233"}); err == nil {
		t.Error("Login() for a disabled user must fail")
	}
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newFakeUserRepo()
	svc := NewService(repo)
	user := newTestUser(t, svc, "hunter2233")
	repo.users[user.ID] = user

	resp, err := svc.Login(LoginRequest{Email: "agent@example.com", Password: "hunter2233"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if _, err := svc.RefreshToken(resp.AccessToken); err == nil {
		t.Error("RefreshToken() must reject an access token")
	}
	if _, err := svc.RefreshToken(resp.RefreshToken); err != nil {
		t.Errorf("RefreshToken() with a refresh token failed: %v", err)
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newFakeUserRepo()
	svc := NewService(repo)
	user := newTestUser(t, svc, "hunter2233")
	repo.users[user.ID] = user

	resp, err := svc.Login(LoginRequest{Email: "agent@example.com", Password: "hunter2233"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	t.Setenv("JWT_SECRET", "different-secret")
	if _, err := svc.ValidateToken(resp.AccessToken); err == nil {
		t.Error("ValidateToken() must reject a token signed with another secret")
	}
}
