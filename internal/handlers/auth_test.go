package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/streamseed/streamseed-api/internal/config"
	"github.com/streamseed/streamseed-api/internal/constants"
	"github.com/streamseed/streamseed-api/internal/database"
	"github.com/streamseed/streamseed-api/internal/middleware"
	"github.com/streamseed/streamseed-api/internal/models"
	"github.com/streamseed/streamseed-api/internal/repository"
	"github.com/streamseed/streamseed-api/internal/services"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
	router      *gin.Engine
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, func() time.Time {
		return time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)
	})
	handler := NewAuthHandler(authService, &config.Config{PublicBaseURL: "http://localhost:8080"})

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/logout", handler.Logout)
	r.GET("/api/auth/me", middleware.RequireAuth(), handler.Me)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
		router:      r,
	}
}

func postJSON(t *testing.T, r *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/auth/register", map[string]string{
		"email":      "newuser@example.com",
		"password":   "supersecret",
		"first_name": "New",
		"last_name":  "User",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "newuser@example.com", response.User.Email)
	require.NotEmpty(t, w.Result().Cookies())
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	payload := map[string]string{
		"email":      "taken@example.com",
		"password":   "supersecret",
		"first_name": "First",
		"last_name":  "User",
	}

	w := postJSON(t, env.router, "/api/auth/register", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, env.router, "/api/auth/register", payload)
	require.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "ALREADY_EXISTS", response["code"])
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/auth/register", map[string]string{
		"email":      "short@example.com",
		"password":   "short",
		"first_name": "Short",
		"last_name":  "Password",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Email:     "existing@example.com",
		Password:  "supersecret",
		FirstName: "Existing",
		LastName:  "User",
	})
	require.NoError(t, err)

	w := postJSON(t, env.router, "/api/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "wrongpassword",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "INVALID_CREDENTIALS", response["code"])
}

func TestAuthHandler_SessionFlow(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/auth/register", map[string]string{
		"email":      "flow@example.com",
		"password":   "supersecret",
		"first_name": "Flow",
		"last_name":  "User",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// The session cookie authenticates /me.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "flow@example.com", response.User.Email)

	// Logout invalidates the session.
	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Me_NoSession(t *testing.T) {
	env := setupAuthTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_OAuthRedirect_UnknownProvider(t *testing.T) {
	env := setupAuthTestEnv(t)

	env.router.GET("/api/auth/oauth/:provider", env.handler.OAuthRedirect)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/oauth/myspace", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}
