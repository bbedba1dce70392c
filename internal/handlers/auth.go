package handlers

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/streamseed/streamseed-api/internal/config"
	"github.com/streamseed/streamseed-api/internal/constants"
	"github.com/streamseed/streamseed-api/internal/dto"
	"github.com/streamseed/streamseed-api/internal/errors"
	"github.com/streamseed/streamseed-api/internal/middleware"
	"github.com/streamseed/streamseed-api/internal/models"
	"github.com/streamseed/streamseed-api/internal/services"
	"github.com/streamseed/streamseed-api/internal/utils"
)

const sessionKeyOAuthState = "oauth_state"

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	if err := h.openSession(c, user); err != nil {
		errors.InternalError(c, "Failed to create session")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": dto.ToUserDTO(*user)})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	if err := h.openSession(c, user); err != nil {
		errors.InternalError(c, "Failed to create session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserDTO(*user)})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{MaxAge: -1, Path: "/"})
	if err := session.Save(); err != nil {
		errors.InternalError(c, "Failed to clear session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserDTO(*user)})
}

// OAuthRedirect handles GET /api/auth/oauth/:provider. It stores a one-shot
// state token in the session and redirects to the provider's consent page.
func (h *AuthHandler) OAuthRedirect(c *gin.Context) {
	provider, ok := h.cfg.OAuthProvider(c.Param("provider"))
	if !ok {
		errors.NotFound(c, "Unknown authentication provider")
		return
	}

	state, err := utils.GenerateStateToken()
	if err != nil {
		errors.InternalError(c, "Failed to generate state token")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyOAuthState, state)
	if err := session.Save(); err != nil {
		errors.InternalError(c, "Failed to save session")
		return
	}

	oauthCfg := provider.OAuth2Config(h.callbackURL(provider.Name))
	c.Redirect(http.StatusTemporaryRedirect, oauthCfg.AuthCodeURL(state))
}

// OAuthCallback handles GET /api/auth/oauth/:provider/callback. It verifies
// the state token, exchanges the code, fetches the provider identity and
// opens a session for the matching or freshly provisioned user.
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	provider, ok := h.cfg.OAuthProvider(c.Param("provider"))
	if !ok {
		errors.NotFound(c, "Unknown authentication provider")
		return
	}

	session := sessions.Default(c)
	expectedState, _ := session.Get(sessionKeyOAuthState).(string)
	session.Delete(sessionKeyOAuthState)

	if expectedState == "" || c.Query("state") != expectedState {
		errors.BadRequest(c, "Invalid state token")
		return
	}

	code := c.Query("code")
	if code == "" {
		errors.BadRequest(c, "Missing authorization code")
		return
	}

	oauthCfg := provider.OAuth2Config(h.callbackURL(provider.Name))
	token, err := oauthCfg.Exchange(c.Request.Context(), code)
	if err != nil {
		errors.BadRequest(c, "Code exchange failed")
		return
	}

	info, err := fetchProviderUserInfo(c, oauthCfg.Client(c.Request.Context(), token), provider.UserInfoURL)
	if err != nil {
		errors.ServiceUnavailable(c, "Failed to fetch provider profile")
		return
	}

	user, err := h.authService.LoginWithProvider(models.AuthProvider(provider.Name), info)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	if err := h.openSession(c, user); err != nil {
		errors.InternalError(c, "Failed to create session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserDTO(*user)})
}

func (h *AuthHandler) callbackURL(provider string) string {
	return fmt.Sprintf("%s/api/auth/oauth/%s/callback", h.cfg.PublicBaseURL, provider)
}

func (h *AuthHandler) openSession(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	return session.Save()
}

// providerClaims covers the userinfo payloads of both supported providers;
// Google populates sub/given_name/family_name, Facebook id/first_name/last_name.
type providerClaims struct {
	Sub        string `json:"sub"`
	ID         string `json:"id"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Picture    string `json:"picture"`
}

func fetchProviderUserInfo(c *gin.Context, client *http.Client, url string) (services.ProviderUserInfo, error) {
	var info services.ProviderUserInfo

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, url, nil)
	if err != nil {
		return info, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return info, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return info, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return info, err
	}

	var claims providerClaims
	if err := json.Unmarshal(body, &claims); err != nil {
		return info, err
	}

	info.ID = claims.Sub
	if info.ID == "" {
		info.ID = claims.ID
	}
	info.Email = claims.Email
	info.GivenName = claims.GivenName
	if info.GivenName == "" {
		info.GivenName = claims.FirstName
	}
	info.FamilyName = claims.FamilyName
	if info.FamilyName == "" {
		info.FamilyName = claims.LastName
	}
	info.Picture = claims.Picture

	return info, nil
}

func (h *AuthHandler) respondAuthError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, services.ErrEmailTaken):
		errors.RespondWithError(c, http.StatusConflict,
			errors.NewAPIError(errors.ErrCodeAlreadyExists, "Email already registered"))
	case stderrors.Is(err, services.ErrPasswordTooShort):
		errors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case stderrors.Is(err, services.ErrInvalidCredentials),
		stderrors.Is(err, services.ErrAccountDeactivated):
		errors.RespondWithError(c, http.StatusUnauthorized,
			errors.NewAPIError(errors.ErrCodeInvalidCredentials, "Invalid email or password"))
	case stderrors.Is(err, services.ErrUserNotFound):
		errors.Unauthorized(c, "")
	case stderrors.Is(err, services.ErrSocialIDMissing):
		errors.BadRequest(c, "Provider did not return a usable identity")
	default:
		errors.InternalError(c, "")
	}
}
