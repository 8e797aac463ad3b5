package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"bandbook/internal/model"
)

// stubUserRepo serves a fixed set of users by id.
type stubUserRepo struct {
	users map[uint]*model.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *model.User) error { return nil }
func (s *stubUserRepo) Update(ctx context.Context, user *model.User) error { return nil }

func (s *stubUserRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) List(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	return nil, 0, nil
}

func (s *stubUserRepo) UpdateRole(ctx context.Context, id uint, role model.Role) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}

const testCookie = "bb_token"

func identifyRequest(t *testing.T, repo *stubUserRepo, cookieValue string) *model.User {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var resolved *model.User
	handler := Identify(NewJWTService("test-secret"), repo, testCookie)(func(c echo.Context) error {
		resolved = CurrentUser(c)
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	return resolved
}

func TestIdentify(t *testing.T) {
	repo := &stubUserRepo{users: map[uint]*model.User{
		42: {ID: 42, Name: "Known", Role: model.RoleUser},
	}}
	jwtService := NewJWTService("test-secret")

	t.Run("valid cookie resolves the user", func(t *testing.T) {
		token, err := jwtService.Issue(&model.User{ID: 42, Role: model.RoleUser})
		assert.NoError(t, err)

		user := identifyRequest(t, repo, token)
		assert.NotNil(t, user)
		assert.Equal(t, uint(42), user.ID)
	})

	t.Run("no cookie stays anonymous", func(t *testing.T) {
		assert.Nil(t, identifyRequest(t, repo, ""))
	})

	t.Run("garbage token stays anonymous", func(t *testing.T) {
		assert.Nil(t, identifyRequest(t, repo, "garbage"))
	})

	t.Run("token for a deleted user stays anonymous", func(t *testing.T) {
		token, err := jwtService.Issue(&model.User{ID: 999, Role: model.RoleUser})
		assert.NoError(t, err)
		assert.Nil(t, identifyRequest(t, repo, token))
	})
}

func TestRequireAdmin(t *testing.T) {
	run := func(user *model.User) error {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		if user != nil {
			c.Set(currentUserKey, user)
		}
		return RequireAdmin()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})(c)
	}

	t.Run("admin passes", func(t *testing.T) {
		assert.NoError(t, run(&model.User{ID: 1, Role: model.RoleAdmin}))
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		err := run(&model.User{ID: 2, Role: model.RoleUser})
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("anonymous is unauthenticated", func(t *testing.T) {
		err := run(nil)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}

func TestSessionCookie(t *testing.T) {
	cookie := SessionCookie(testCookie, "token-value", false)
	assert.Equal(t, testCookie, cookie.Name)
	assert.Equal(t, "token-value", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int(TokenExpiry.Seconds()), cookie.MaxAge)
	assert.Equal(t, "/", cookie.Path)

	cleared := ClearSessionCookie(testCookie, false)
	assert.Equal(t, testCookie, cleared.Name)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)
}
