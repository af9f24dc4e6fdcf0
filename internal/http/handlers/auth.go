package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/midcare/pflegedoc/internal/auth"
	"github.com/midcare/pflegedoc/internal/config"
	"github.com/midcare/pflegedoc/internal/domain/staff"
	"github.com/midcare/pflegedoc/internal/http/middlewares"
	"github.com/midcare/pflegedoc/internal/repo/postgres"
	"github.com/midcare/pflegedoc/internal/security"
)

type StaffReader interface {
	GetByEmail(ctx context.Context, email string) (staff.Staff, error)
}

type StaffWriter interface {
	Create(ctx context.Context, email, passwordHash, name string, role staff.Role) (staff.Staff, error)
}

type AuthHandler struct {
	staff       StaffReader
	staffWriter StaffWriter
	jwt         *auth.Manager
}

func NewAuthHandler(staffReader StaffReader, staffWriter StaffWriter, jwtManager *auth.Manager) *AuthHandler {
	return &AuthHandler{
		staff:       staffReader,
		staffWriter: staffWriter,
		jwt:         jwtManager,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
}

type staffView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	RoleLabel string `json:"roleLabel"`
	Active    bool   `json:"active"`
}

func viewOf(s staff.Staff) staffView {
	return staffView{
		ID:        s.ID,
		Email:     s.Email,
		Name:      s.Name,
		Role:      string(s.Role),
		RoleLabel: s.Role.Label(),
		Active:    s.Active,
	}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create account")
		return
	}

	// new accounts always start as care workers
	s, err := h.staffWriter.Create(cctx, strings.ToLower(req.Email), hash, req.Name, staff.RoleCareWorker)

	if err != nil {
		if errors.Is(err, postgres.ErrEmailAlreadyUsed) {
			RespondConflict(ctx, "email_taken", "Email is already registered.")
			return
		}

		RespondInternal(ctx, "Could not create account")
		return
	}

	ctx.JSON(http.StatusCreated, viewOf(s))
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	s, err := h.staff.GetByEmail(cctx, strings.ToLower(req.Email))

	if err != nil {
		// same answer for unknown email and bad password
		RespondError(ctx, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password", nil)
		return
	}

	if err := security.CheckPassword(s.PasswordHash, req.Password); err != nil {
		RespondError(ctx, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password", nil)
		return
	}

	if !s.Active {
		RespondError(ctx, http.StatusForbidden, "account_disabled", "Account is deactivated", nil)
		return
	}

	token, err := h.jwt.GenerateAccessToken(s.ID, s.Email, string(s.Role))

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"accessToken": token,
		"user":        viewOf(s),
	})
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	email, ok := middlewares.EmailFromContext(ctx)

	if !ok || email == "" {
		RespondError(ctx, http.StatusUnauthorized, "unauthorized", "Missing identity context", nil)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	s, err := h.staff.GetByEmail(cctx, email)

	if err != nil {
		RespondNotFound(ctx, "Account not found")
		return
	}

	ctx.JSON(http.StatusOK, viewOf(s))
}
