package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Rashi-Dwivedi1812/SentiLog-AI/internal/application"
	"github.com/Rashi-Dwivedi1812/SentiLog-AI/internal/domain/repository"
	"github.com/Rashi-Dwivedi1812/SentiLog-AI/pkg/helpers"
	"github.com/Rashi-Dwivedi1812/SentiLog-AI/pkg/response"
	"github.com/Rashi-Dwivedi1812/SentiLog-AI/pkg/validation"
)

// AuthHandler translates auth service results into the HTTP contract:
// 201/200 with {token} on success, {message} with 400/401/409/500 otherwise.
type AuthHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	token, _, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Password:  req.Password,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"token": token})
	case errors.Is(err, repository.ErrEmailTaken):
		response.Error(c, http.StatusConflict, "email already exists", nil)
	case errors.Is(err, application.ErrMissingFields):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	default:
		if h.Logger != nil {
			helpers.LogError(h.Logger, "signup failed", err, nil)
		}
		response.Error(c, http.StatusInternalServerError, "something went wrong", nil)
	}
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"token": token})
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
	default:
		if h.Logger != nil {
			helpers.LogError(h.Logger, "login failed", err, nil)
		}
		response.Error(c, http.StatusInternalServerError, "something went wrong", nil)
	}
}

// Me GET /api/auth/me (auth required)
func (h *AuthHandler) Me(c *gin.Context) {
	uid := c.GetString("userID")
	u, err := h.Svc.Identity(c.Request.Context(), uid)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"id":        u.ID,
			"firstname": u.Firstname,
			"lastname":  u.Lastname,
			"email":     u.Email,
		})
	case errors.Is(err, application.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "user not found", nil)
	default:
		if h.Logger != nil {
			helpers.LogError(h.Logger, "identity lookup failed", err, nil)
		}
		response.Error(c, http.StatusInternalServerError, "something went wrong", nil)
	}
}
