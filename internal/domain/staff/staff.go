package staff

import "time"

// Role is the closed set of staff roles with the same
// code-plus-label shape as entry categories.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleCareWorker Role = "pflegekraft"
)

var roleLabels = map[Role]string{
	RoleAdmin:      "Administrator",
	RoleCareWorker: "Pflegekraft",
}

func (r Role) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}

	return string(r)
}

func (r Role) Valid() bool {
	_, ok := roleLabels[r]

	return ok
}

type Staff struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (s Staff) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// admin-only edit surface: identity stays immutable, only role and
// the active flag may change.
type UpdateAccessRequest struct {
	Role   string `json:"role" binding:"required,oneof=admin pflegekraft"`
	Active *bool  `json:"active" binding:"required"`
}
