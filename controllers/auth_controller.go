package controllers

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/petandco/PetAndCo/config"
	"github.com/petandco/PetAndCo/models"
	"github.com/petandco/PetAndCo/utils"
)

// Register creates a customer account.
func Register(c *gin.Context) {
	utils.LogInfo("Register called")

	var req struct {
		Username  string `json:"username" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if len(req.Password) < utils.MinPasswordLength {
		utils.BadRequest(c, "Password must be at least 8 characters", nil)
		return
	}

	var existing models.User
	if err := config.DB.Where("LOWER(email) = LOWER(?) OR username = ?", req.Email, req.Username).
		First(&existing).Error; err == nil {
		utils.Conflict(c, "An account with this email or username already exists", nil)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create session", nil)
		return
	}

	utils.LogInfo("User %d registered: %s", user.ID, user.Email)
	utils.Created(c, "Account created successfully", gin.H{
		"token": token,
		"user":  user,
	})
}

// Login authenticates a customer by email and password.
func Login(c *gin.Context) {
	utils.LogInfo("Login called")

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("LOWER(email) = LOWER(?)", req.Email).First(&user).Error; err != nil {
		utils.Unauthorized(c, utils.ErrInvalidCredentials)
		return
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		utils.Unauthorized(c, utils.ErrInvalidCredentials)
		return
	}
	if user.IsBlocked {
		utils.Forbidden(c, utils.ErrUserBlocked)
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create session", nil)
		return
	}

	config.DB.Model(&user).UpdateColumn("last_login_at", time.Now())
	utils.LogInfo("User %d logged in", user.ID)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// AdminLogin authenticates a store administrator and issues an admin token.
func AdminLogin(c *gin.Context) {
	utils.LogInfo("AdminLogin called")

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var admin models.Admin
	if err := config.DB.Where("LOWER(email) = LOWER(?)", req.Email).First(&admin).Error; err != nil {
		utils.Unauthorized(c, utils.ErrInvalidCredentials)
		return
	}
	if !utils.CheckPassword(req.Password, admin.Password) {
		utils.Unauthorized(c, utils.ErrInvalidCredentials)
		return
	}
	if !admin.IsActive {
		utils.Forbidden(c, "Admin account is inactive")
		return
	}

	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["admin_id"] = admin.ID
	claims["email"] = admin.Email
	claims["exp"] = time.Now().Add(time.Hour * 24).Unix()
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		utils.LogError("Failed to sign admin token: %v", err)
		utils.InternalServerError(c, "Failed to create session", nil)
		return
	}

	config.DB.Model(&admin).UpdateColumn("last_login", time.Now())
	utils.LogInfo("Admin %d logged in", admin.ID)
	utils.Success(c, "Login successful", gin.H{
		"token": signed,
		"admin": admin,
	})
}

// GoogleLogin starts the Google OAuth flow. The random state is kept in the
// session and checked on callback.
func GoogleLogin(c *gin.Context) {
	if config.GoogleOAuthConfig == nil {
		utils.InternalServerError(c, "Google login is not configured", nil)
		return
	}

	state := uuid.NewString()
	session := sessions.Default(c)
	session.Set("oauth_state", state)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save oauth state: %v", err)
		utils.InternalServerError(c, "Failed to start Google login", nil)
		return
	}

	url := config.GoogleOAuthConfig.AuthCodeURL(state)
	utils.Success(c, "Redirect to Google", gin.H{"url": url})
}

// GoogleCallback completes the OAuth flow, creating an account on first
// login.
func GoogleCallback(c *gin.Context) {
	if config.GoogleOAuthConfig == nil {
		utils.InternalServerError(c, "Google login is not configured", nil)
		return
	}

	session := sessions.Default(c)
	expected, _ := session.Get("oauth_state").(string)
	session.Delete("oauth_state")
	_ = session.Save()
	if expected == "" || c.Query("state") != expected {
		utils.BadRequest(c, "Invalid OAuth state", nil)
		return
	}

	oauthToken, err := config.GoogleOAuthConfig.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		utils.LogError("Google code exchange failed: %v", err)
		utils.BadRequest(c, "Google login failed", nil)
		return
	}

	client := config.GoogleOAuthConfig.Client(c.Request.Context(), oauthToken)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		utils.LogError("Failed to fetch Google userinfo: %v", err)
		utils.InternalServerError(c, "Google login failed", nil)
		return
	}
	defer resp.Body.Close()

	var info struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		GivenName string `json:"given_name"`
		Family    string `json:"family_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		utils.LogError("Failed to decode Google userinfo: %v", err)
		utils.InternalServerError(c, "Google login failed", nil)
		return
	}
	if info.Email == "" {
		utils.BadRequest(c, "Google account has no email", nil)
		return
	}

	var user models.User
	err = config.DB.Where("google_id = ? OR LOWER(email) = LOWER(?)", info.ID, info.Email).First(&user).Error
	if err != nil {
		user = models.User{
			Username:   strings.Split(info.Email, "@")[0] + "-" + uuid.NewString()[:8],
			Email:      strings.ToLower(info.Email),
			GoogleID:   info.ID,
			FirstName:  info.GivenName,
			LastName:   info.Family,
			IsVerified: true,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			utils.LogError("Failed to create Google user %s: %v", info.Email, err)
			utils.InternalServerError(c, "Failed to create account", nil)
			return
		}
		utils.LogInfo("Created user %d via Google login", user.ID)
	} else if user.GoogleID == "" {
		config.DB.Model(&user).UpdateColumn("google_id", info.ID)
	}

	if user.IsBlocked {
		utils.Forbidden(c, utils.ErrUserBlocked)
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create session", nil)
		return
	}

	config.DB.Model(&user).UpdateColumn("last_login_at", time.Now())
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}
