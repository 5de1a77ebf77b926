package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campus-buzz/campus-events-api/internal/config"
	"github.com/campus-buzz/campus-events-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	TokenDuration = 24 * time.Hour
	BcryptCost    = 10
)

type AuthHandler struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	return &AuthHandler{cfg: cfg, db: db}
}

// AuthInput carries the credentials accepted on protected operations. Embed it
// in a request struct and pass it to Authorize.
type AuthInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token issued by /auth/register or /auth/login"`
	APIKey        string `header:"X-API-Key" doc:"API key issued by an administrator"`
}

// Claims is the identity extracted from a verified token or API key.
type Claims struct {
	UserID uint
	Email  string
	Role   models.Role
}

type SignupRequest struct {
	Body struct {
		FirstName  string `json:"firstName" required:"true" doc:"First name"`
		LastName   string `json:"lastName" required:"true" doc:"Last name"`
		Email      string `json:"email" required:"true" format:"email" doc:"Email address, unique per account"`
		Password   string `json:"password" required:"true" minLength:"6" doc:"Plaintext password, stored only as a bcrypt hash"`
		Phone      string `json:"phone,omitempty"`
		Role       string `json:"role,omitempty" enum:"student,admin" default:"student" doc:"Account role"`
		Department string `json:"department,omitempty"`
		Year       string `json:"year,omitempty"`
		StudentID  string `json:"studentId,omitempty"`
		AdminID    string `json:"adminId,omitempty"`
	}
}

type LoginRequest struct {
	Body struct {
		Email    string `json:"email" required:"true" format:"email"`
		Password string `json:"password" required:"true"`
	}
}

// UserInfo is the public projection of a user returned by auth endpoints.
type UserInfo struct {
	ID         uint        `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	Role       models.Role `json:"role"`
	Department string      `json:"department"`
	Year       string      `json:"year"`
	StudentID  string      `json:"studentId"`
	AdminID    string      `json:"adminId"`
}

type AuthResponse struct {
	Body struct {
		Message string   `json:"message"`
		Token   string   `json:"token"`
		User    UserInfo `json:"user"`
	}
}

func userInfo(user models.User) UserInfo {
	return UserInfo{
		ID:         user.ID,
		Name:       user.FullName(),
		Email:      user.Email,
		Phone:      user.Phone,
		Role:       user.Role,
		Department: user.Department,
		Year:       user.Year,
		StudentID:  user.StudentID,
		AdminID:    user.AdminID,
	}
}

func (h *AuthHandler) HandleSignup(ctx context.Context, input *SignupRequest) (*AuthResponse, error) {
	role, err := models.ParseRole(input.Body.Role)
	if err != nil {
		role = models.RoleStudent
	}

	var existing models.User
	err = h.db.Where("email = ?", input.Body.Email).First(&existing).Error
	if err == nil {
		return nil, huma.Error400BadRequest("User already exists with this email")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Body.Password), BcryptCost)
	if err != nil {
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	user := models.User{
		FirstName:  input.Body.FirstName,
		LastName:   input.Body.LastName,
		Email:      input.Body.Email,
		Password:   string(hashed),
		Phone:      input.Body.Phone,
		Role:       role,
		Department: input.Body.Department,
		Year:       input.Body.Year,
		StudentID:  input.Body.StudentID,
		AdminID:    input.Body.AdminID,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, huma.Error400BadRequest("User already exists with this email")
		}
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	token, err := h.GenerateToken(user)
	if err != nil {
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	res := &AuthResponse{}
	res.Body.Message = "User registered successfully"
	res.Body.Token = token
	res.Body.User = userInfo(user)
	return res, nil
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*AuthResponse, error) {
	// Unknown email and wrong password must be indistinguishable.
	var user models.User
	err := h.db.Where("email = ?", input.Body.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error400BadRequest("Invalid credentials")
		}
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Body.Password)); err != nil {
		return nil, huma.Error400BadRequest("Invalid credentials")
	}

	token, err := h.GenerateToken(user)
	if err != nil {
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	res := &AuthResponse{}
	res.Body.Message = "Login successful"
	res.Body.Token = token
	res.Body.User = userInfo(user)
	return res, nil
}

func (h *AuthHandler) GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// Authorize resolves the caller's identity from an API key or bearer token.
// API keys take precedence so integrations keep working when a stale cookie
// token is also sent.
func (h *AuthHandler) Authorize(ctx context.Context, input AuthInput) (*Claims, error) {
	if input.APIKey != "" {
		return h.authorizeAPIKey(input.APIKey)
	}

	tokenString, err := tokenFromHeader(input.Authorization)
	if err != nil {
		return nil, huma.Error401Unauthorized("Unauthorized: No token found")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, huma.Error401Unauthorized("Unauthorized: Invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized: Invalid token claims")
	}

	userIDFloat, ok := mapClaims["user_id"].(float64)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized: Invalid token claims")
	}
	roleStr, _ := mapClaims["role"].(string)
	role, err := models.ParseRole(roleStr)
	if err != nil {
		return nil, huma.Error401Unauthorized("Unauthorized: Invalid token claims")
	}
	email, _ := mapClaims["email"].(string)

	return &Claims{
		UserID: uint(userIDFloat),
		Email:  email,
		Role:   role,
	}, nil
}

// AuthorizeAdmin is Authorize plus an exhaustive role check.
func (h *AuthHandler) AuthorizeAdmin(ctx context.Context, input AuthInput) (*Claims, error) {
	claims, err := h.Authorize(ctx, input)
	if err != nil {
		return nil, err
	}
	switch claims.Role {
	case models.RoleAdmin:
		return claims, nil
	case models.RoleStudent:
		return nil, huma.Error403Forbidden("Admin access required")
	}
	return nil, huma.Error403Forbidden("Admin access required")
}

func (h *AuthHandler) authorizeAPIKey(key string) (*Claims, error) {
	var keyModel models.APIKey
	if err := h.db.Where("key = ?", key).First(&keyModel).Error; err != nil {
		return nil, huma.Error401Unauthorized("Unauthorized: Invalid API key")
	}
	if keyModel.ExpiresAt != nil && time.Now().After(*keyModel.ExpiresAt) {
		return nil, huma.Error401Unauthorized("Unauthorized: API key expired")
	}

	h.db.Model(&keyModel).Update("last_used_at", time.Now())

	var user models.User
	if err := h.db.First(&user, keyModel.UserID).Error; err != nil {
		return nil, huma.Error401Unauthorized("Unauthorized: Invalid API key")
	}

	return &Claims{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

func tokenFromHeader(header string) (string, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("missing token")
	}
	return parts[1], nil
}
