package service

import (
	"errors"

	"github.com/dormscout/dormscout/internal/model"
	"github.com/dormscout/dormscout/internal/repository"
)

var (
	ErrBuildingNotFound = errors.New("building not found")
	ErrRoomNotFound     = errors.New("room not found")
)

// CampusService serves the structured building and room catalog that sits
// underneath room posts and photos.
type CampusService struct {
	buildingRepository repository.BuildingRepository
	roomRepository     repository.RoomRepository
}

func NewCampusService(
	buildingRepository repository.BuildingRepository,
	roomRepository repository.RoomRepository,
) *CampusService {
	return &CampusService{
		buildingRepository: buildingRepository,
		roomRepository:     roomRepository,
	}
}

func (s *CampusService) Buildings(schoolID string) ([]*model.Building, error) {
	if schoolID == "" {
		return nil, ErrSchoolRequired
	}
	return s.buildingRepository.BySchool(schoolID)
}

func (s *CampusService) Rooms(buildingID string) ([]*model.Room, error) {
	_, err := s.buildingRepository.ByID(buildingID)
	if err != nil {
		if errors.Is(err, repository.ErrBuildingNotFound) {
			return nil, ErrBuildingNotFound
		}
		return nil, err
	}
	return s.roomRepository.ByBuilding(buildingID)
}

func (s *CampusService) Room(id string) (*model.Room, error) {
	room, err := s.roomRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}
