package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const cachePrefix = "locations:"

// Service loads selector options from the database through the Redis cache
type Service struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewService(db *gorm.DB, ttl time.Duration) *Service {
	return &Service{db: db, ttl: ttl}
}

// Countries returns every country ordered by name
func (s *Service) Countries(ctx context.Context, search string) ([]Option, error) {
	options, err := s.cached(ctx, cachePrefix+"countries", func() ([]Option, error) {
		var countries []models.Country
		if err := s.db.WithContext(ctx).Order("name ASC").Find(&countries).Error; err != nil {
			return nil, err
		}
		return CountryOptions(countries), nil
	})
	if err != nil {
		return nil, err
	}
	return SearchOptions(options, search), nil
}

// States returns the states of countryID ordered by name
func (s *Service) States(ctx context.Context, countryID *uint, search string) ([]Option, error) {
	if countryID == nil {
		return []Option{}, nil
	}

	key := fmt.Sprintf("%sstates:%d", cachePrefix, *countryID)
	options, err := s.cached(ctx, key, func() ([]Option, error) {
		var states []models.State
		if err := s.db.WithContext(ctx).Where("country_id = ?", *countryID).Order("name ASC").Find(&states).Error; err != nil {
			return nil, err
		}
		return StateOptions(FilterStates(states, countryID)), nil
	})
	if err != nil {
		return nil, err
	}
	return SearchOptions(options, search), nil
}

// Cities returns the cities of stateID ordered by name
func (s *Service) Cities(ctx context.Context, stateID *uint, search string) ([]Option, error) {
	if stateID == nil {
		return []Option{}, nil
	}

	key := fmt.Sprintf("%scities:%d", cachePrefix, *stateID)
	options, err := s.cached(ctx, key, func() ([]Option, error) {
		var cities []models.City
		if err := s.db.WithContext(ctx).Where("state_id = ?", *stateID).Order("name ASC").Find(&cities).Error; err != nil {
			return nil, err
		}
		return CityOptions(FilterCities(cities, stateID)), nil
	})
	if err != nil {
		return nil, err
	}
	return SearchOptions(options, search), nil
}

// Invalidate drops every cached option list. Called after country, state or city writes.
func (s *Service) Invalidate(ctx context.Context) {
	if err := utils.CacheDeletePattern(ctx, cachePrefix+"*"); err != nil && !errors.Is(err, utils.ErrCacheUnavailable) {
		logrus.WithError(err).Warn("Failed to invalidate location cache")
	}
}

func (s *Service) cached(ctx context.Context, key string, load func() ([]Option, error)) ([]Option, error) {
	var options []Option
	if err := utils.CacheGetJSON(ctx, key, &options); err == nil {
		return options, nil
	}

	options, err := load()
	if err != nil {
		return nil, err
	}

	if err := utils.CacheSetJSON(ctx, key, options, s.ttl); err != nil && !errors.Is(err, utils.ErrCacheUnavailable) {
		logrus.WithError(err).WithField("key", key).Warn("Failed to cache location options")
	}
	return options, nil
}
