package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atlaslogistics/shipment-tracking/internal/domain"
	"github.com/atlaslogistics/shipment-tracking/internal/ports"
)

// Login exchanges admin credentials for a signed session token. Unknown
// email and wrong password fail identically.
func (s *Service) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return LoginResult{}, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return LoginResult{}, domain.ErrUnauthorized
		}
		return LoginResult{}, err
	}
	if err := s.hasher.Compare(admin.PasswordHash, in.Password); err != nil {
		return LoginResult{}, domain.ErrUnauthorized
	}
	token, err := s.signer.Sign(ports.AuthClaims{
		AdminID: admin.AdminID,
		Email:   admin.Email,
		Name:    admin.Name,
		Role:    string(admin.Role),
	}, s.cfg.TokenTTL)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, Admin: admin}, nil
}

// Seed provisions the demo accounts for local setups, mirroring the
// original one-shot setup endpoint. Existing accounts are left untouched.
func (s *Service) Seed(ctx context.Context) ([]domain.Admin, error) {
	seeds := []struct {
		email string
		name  string
		role  domain.AdminRole
	}{
		{"super@admin.com", "Super Admin", domain.RoleSuperAdmin},
		{"admin@demo.com", "Demo Admin", domain.RoleAdmin},
	}

	admins := make([]domain.Admin, 0, len(seeds))
	for _, seed := range seeds {
		existing, err := s.admins.GetByEmail(ctx, seed.email)
		if err == nil {
			admins = append(admins, existing)
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		hash, err := s.hasher.Hash("password123")
		if err != nil {
			return nil, err
		}
		admin := domain.Admin{
			AdminID:      domain.NewAdminID(),
			Email:        seed.email,
			Name:         seed.name,
			PasswordHash: hash,
			Role:         seed.role,
			CreatedAt:    s.nowFn(),
		}
		if err := s.admins.Create(ctx, admin); err != nil {
			return nil, err
		}
		admins = append(admins, admin)
	}
	return admins, nil
}

func (s *Service) CreateAdmin(ctx context.Context, actor Actor, in CreateAdminInput) (domain.Admin, error) {
	if !actor.IsAuthenticated() {
		return domain.Admin{}, domain.ErrUnauthorized
	}
	if !actor.IsSuperAdmin() {
		return domain.Admin{}, domain.ErrForbidden
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return domain.Admin{}, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = domain.RoleAdmin
	}
	if role != domain.RoleAdmin && role != domain.RoleSuperAdmin {
		return domain.Admin{}, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.Admin{}, err
	}
	admin := domain.Admin{
		AdminID:      domain.NewAdminID(),
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.nowFn(),
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return domain.Admin{}, err
	}
	s.audit(ctx, actor.AdminID, domain.AuditCreateAdmin, admin.AdminID, map[string]any{
		"email": admin.Email,
		"role":  admin.Role,
	})
	return admin, nil
}

func (s *Service) ListAdmins(ctx context.Context, actor Actor) ([]domain.Admin, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}
	if !actor.IsSuperAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.admins.List(ctx)
}
