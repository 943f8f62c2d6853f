package service

import (
	"errors"
	"strings"

	"github.com/dormscout/dormscout/internal/model"
	"github.com/dormscout/dormscout/internal/repository"
)

var ErrSchoolNotFound = errors.New("school not found")

type SchoolService struct {
	schoolRepository repository.SchoolRepository
}

func NewSchoolService(schoolRepository repository.SchoolRepository) *SchoolService {
	return &SchoolService{schoolRepository: schoolRepository}
}

// Search returns active schools matching the term, all of them when the
// term is empty.
func (s *SchoolService) Search(term string) ([]*model.School, error) {
	return s.schoolRepository.Search(strings.TrimSpace(term))
}

func (s *SchoolService) ByID(id string) (*model.School, error) {
	school, err := s.schoolRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrSchoolNotFound) {
			return nil, ErrSchoolNotFound
		}
		return nil, err
	}
	return school, nil
}
