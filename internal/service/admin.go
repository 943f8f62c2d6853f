package service

import (
	"errors"

	"github.com/dormscout/dormscout/internal/model"
	"github.com/dormscout/dormscout/internal/rbac"
	"github.com/dormscout/dormscout/internal/repository"
)

var ErrForbidden = errors.New("forbidden")

const defaultAdminListLimit = 50

// AdminService exposes the moderation dashboards. Every method checks the
// caller's role against the permission it needs; the handler never has to
// know which roles map to what.
type AdminService struct {
	adminRepository   repository.AdminRepository
	consentRepository repository.ConsentRepository
}

func NewAdminService(
	adminRepository repository.AdminRepository,
	consentRepository repository.ConsentRepository,
) *AdminService {
	return &AdminService{
		adminRepository:   adminRepository,
		consentRepository: consentRepository,
	}
}

func (s *AdminService) Stats(role string) (*model.AdminStats, error) {
	if !rbac.Can(role, rbac.PermAdminStatsRead) {
		return nil, ErrForbidden
	}
	return s.adminRepository.Stats()
}

func (s *AdminService) Profiles(role string, limit int) ([]model.AdminProfileEntry, error) {
	if !rbac.Can(role, rbac.PermAdminProfilesRead) {
		return nil, ErrForbidden
	}
	return s.adminRepository.Profiles(normalizeLimit(limit))
}

func (s *AdminService) RecentDorms(role string, limit int) ([]model.AdminDormEntry, error) {
	if !rbac.Can(role, rbac.PermAdminDormsRead) {
		return nil, ErrForbidden
	}
	return s.adminRepository.RecentDorms(normalizeLimit(limit))
}

// Consents returns the consent log joined with user emails, optionally
// filtered by email substring.
func (s *AdminService) Consents(role, emailFilter string) ([]*model.ConsentEntry, error) {
	if !rbac.Can(role, rbac.PermAdminConsentsRead) {
		return nil, ErrForbidden
	}
	return s.consentRepository.All(emailFilter)
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 200 {
		return defaultAdminListLimit
	}
	return limit
}
