package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/midcare/pflegedoc/internal/config"
	"github.com/midcare/pflegedoc/internal/domain/staff"
	"github.com/midcare/pflegedoc/internal/repo/postgres"
)

type StaffAccessWriter interface {
	UpdateAccess(ctx context.Context, id string, role staff.Role, active bool) (staff.Staff, error)
}

// StaffHandler carries the admin-only account management surface.
// Identity fields are immutable; only role and active flag change.
type StaffHandler struct {
	repo StaffAccessWriter
}

func NewStaffHandler(repo StaffAccessWriter) *StaffHandler {
	return &StaffHandler{repo: repo}
}

func (h *StaffHandler) UpdateAccess(ctx *gin.Context) {
	id := ctx.Param("id")

	var req staff.UpdateAccessRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	s, err := h.repo.UpdateAccess(cctx, id, staff.Role(req.Role), *req.Active)

	if err != nil {
		if errors.Is(err, postgres.ErrStaffNotFound) {
			RespondNotFound(ctx, "Staff member not found")
			return
		}

		RespondInternal(ctx, "Could not update staff access")
		return
	}

	ctx.JSON(http.StatusOK, viewOf(s))
}
