// User HTTP handlers.
//
// This file exposes account endpoints:
//   - POST  /users        (register)
//   - POST  /auth/login   (issue a bearer token)
//   - GET   /me           (current profile)
//   - PATCH /me           (partial profile update)
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
	"github.com/tbourn/go-nutrition-backend/internal/services"
)

//
// DTOs
//

// ProfileFields are the optional body attributes of a user.
type ProfileFields struct {
	HeightCm *float64 `json:"height_cm,omitempty" example:"175"`
	WeightKg *float64 `json:"weight_kg,omitempty" example:"72.5"`
	Age      *int     `json:"age,omitempty"       example:"30"`
	Gender   *string  `json:"gender,omitempty"    example:"female" enums:"male,female,other"`
}

// RegisterRequest is the JSON payload for creating an account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"s3cret!"`
	ProfileFields
}

// LoginRequest is the JSON payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"s3cret!"`
}

// LoginResponse carries the bearer token. Token is empty when the server runs
// without JWT_SECRET.
type LoginResponse struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token,omitempty"      example:"eyJhbGciOiJIUzI1NiIs..."`
	TokenType string       `json:"token_type,omitempty" example:"Bearer"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}

// UpdateProfileRequest is the JSON payload for PATCH /me. Absent fields are
// left unchanged.
type UpdateProfileRequest struct {
	ProfileFields
	Password *string `json:"password,omitempty" example:"n3w-s3cret"`
}

func (p ProfileFields) update() services.ProfileUpdate {
	return services.ProfileUpdate{HeightCm: p.HeightCm, WeightKg: p.WeightKg, Age: p.Age, Gender: p.Gender}
}

//
// Handlers
//

// Register godoc
// @ID          registerUser
// @Summary     Register a user
// @Description Creates an account with a bcrypt-hashed password and optional body profile.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.RegisterRequest  true  "Account"
// @Success     201   {object}  domain.User
// @Failure     400   {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     409   {object}  handlers.ErrorResponse  "Username taken"
// @Failure     500   {object}  handlers.ErrorResponse  "Storage failure"
// @Router      /users [post]
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username and password required")
		return
	}
	u, err := h.users.Register(c.Request.Context(), req.Username, req.Password, req.ProfileFields.update())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, u)
}

// Login godoc
// @ID          login
// @Summary     Log in
// @Description Verifies credentials and returns a bearer token for the Authorization header.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.LoginRequest  true  "Credentials"
// @Success     200   {object}  handlers.LoginResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401   {object}  handlers.ErrorResponse  "Invalid credentials"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username and password required")
		return
	}
	res, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		failErr(c, err)
		return
	}
	resp := LoginResponse{User: res.User}
	if res.Token != "" {
		resp.Token, resp.TokenType = res.Token, "Bearer"
		exp := res.ExpiresAt
		resp.ExpiresAt = &exp
	}
	ok(c, http.StatusOK, resp)
}

// GetMe godoc
// @ID          getMe
// @Summary     Current user
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
// @Param       X-User-ID  header    string  false  "User ID (when auth is disabled)"
// @Success     200        {object}  domain.User
// @Failure     401        {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404        {object}  handlers.ErrorResponse  "User not found"
// @Router      /me [get]
func (h *Handlers) GetMe(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), userID(c))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// UpdateMe godoc
// @ID          updateMe
// @Summary     Update profile
// @Description Partially updates height, weight, age, gender or password.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       X-User-ID  header    string                            false  "User ID (when auth is disabled)"
// @Param       body       body      handlers.UpdateProfileRequest     true   "Changed fields"
// @Success     200        {object}  domain.User
// @Failure     400        {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     404        {object}  handlers.ErrorResponse  "User not found"
// @Router      /me [patch]
func (h *Handlers) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	p := req.ProfileFields.update()
	p.Password = req.Password
	u, err := h.users.UpdateProfile(c.Request.Context(), userID(c), p)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}
