package domain

import (
	"time"

	"github.com/google/uuid"
)

type AdminRole string

const (
	RoleAdmin      AdminRole = "ADMIN"
	RoleSuperAdmin AdminRole = "SUPER_ADMIN"
)

// Admin is an operator account. Shipments are owned by exactly one admin;
// a SUPER_ADMIN may act on any admin's data.
type Admin struct {
	AdminID      string    `json:"admin_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         AdminRole `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewAdminID() string { return "adm_" + uuid.NewString() }
