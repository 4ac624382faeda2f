package services

import (
	"log"

	"linkadmin/internal/apperrors"
	"linkadmin/internal/models"
	"linkadmin/internal/repositories"
	"linkadmin/internal/utils"
)

type CreateUrlRequest struct {
	OriginalUrl string
	Description string
}

type UpdateUrlRequest struct {
	OriginalUrl string
	Description string
}

type UrlPage struct {
	Urls  []models.Url `json:"urls"`
	Total int          `json:"total"`
}

type UrlService interface {
	CreateUrl(userID int64, req CreateUrlRequest) (*models.Url, error)
	GetUrl(userID, id int64) (*models.Url, error)
	ListUrls(userID int64, sortBy, order string, limit, offset int) (*UrlPage, error)
	UpdateUrl(userID, id int64, req UpdateUrlRequest) (*models.Url, error)
	DeleteUrl(userID, id int64) error
}

type urlService struct {
	repo repositories.UrlRepository
}

func NewUrlService(repo repositories.UrlRepository) UrlService {
	return &urlService{repo: repo}
}

func (s *urlService) CreateUrl(userID int64, req CreateUrlRequest) (*models.Url, error) {
	// regenerate on the rare collision instead of widening the alphabet
	var code string
	for attempt := 0; attempt < 3; attempt++ {
		c, err := utils.GenerateShortCode()
		if err != nil {
			return nil, err
		}
		existing, err := s.repo.GetByShortCode(c)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			code = c
			break
		}
	}
	if code == "" {
		return nil, apperrors.ErrStorageUnavailable
	}

	url := &models.Url{
		UserID:      userID,
		OriginalUrl: req.OriginalUrl,
		ShortCode:   code,
		Description: req.Description,
	}
	if err := s.repo.Create(url); err != nil {
		return nil, err
	}
	log.Printf("[url][create] user=%d short_code=%s", userID, code)
	return url, nil
}

func (s *urlService) GetUrl(userID, id int64) (*models.Url, error) {
	url, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if url == nil || url.UserID != userID {
		return nil, apperrors.ErrUrlNotFound
	}
	return url, nil
}

func (s *urlService) ListUrls(userID int64, sortBy, order string, limit, offset int) (*UrlPage, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	urls, err := s.repo.Filter(repositories.UrlFilter{
		UserID: userID,
		SortBy: sortBy,
		Order:  order,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	return &UrlPage{Urls: urls, Total: total}, nil
}

func (s *urlService) UpdateUrl(userID, id int64, req UpdateUrlRequest) (*models.Url, error) {
	url, err := s.GetUrl(userID, id)
	if err != nil {
		return nil, err
	}
	if req.OriginalUrl != "" {
		url.OriginalUrl = req.OriginalUrl
	}
	if req.Description != "" {
		url.Description = req.Description
	}
	if err := s.repo.Update(url); err != nil {
		return nil, err
	}
	return url, nil
}

func (s *urlService) DeleteUrl(userID, id int64) error {
	url, err := s.GetUrl(userID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(url.ID)
}
