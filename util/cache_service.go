// api/util/cache_service.go

package util

import (
	"context"

	"github.com/alcaldia-digital/ausentismo/api/db"
	"github.com/alcaldia-digital/ausentismo/api/model"
)

// CacheService fronts the redis lookaside cache. When redis is not
// configured every operation is a no-op miss, so the cache stays a
// soft dependency.
type CacheService struct{}

func NewCacheService() *CacheService {
	return &CacheService{}
}

func (c *CacheService) GetUnit(ctx context.Context, unitID uint) (*model.Unit, error) {
	if db.RedisClient == nil {
		return nil, nil
	}
	return db.GetCachedUnit(ctx, unitID)
}

func (c *CacheService) SetUnit(ctx context.Context, unit model.Unit) error {
	if db.RedisClient == nil {
		return nil
	}
	return db.CacheUnit(ctx, &unit)
}

func (c *CacheService) DeleteUnit(ctx context.Context, unitID uint) error {
	if db.RedisClient == nil {
		return nil
	}
	return db.DeleteCachedUnit(ctx, unitID)
}

func (c *CacheService) GetUser(ctx context.Context, userID uint) (*model.User, error) {
	if db.RedisClient == nil {
		return nil, nil
	}
	return db.GetCachedUser(ctx, userID)
}

func (c *CacheService) SetUser(ctx context.Context, user model.User) error {
	if db.RedisClient == nil {
		return nil
	}
	return db.CacheUser(ctx, &user)
}

func (c *CacheService) DeleteUser(ctx context.Context, userID uint) error {
	if db.RedisClient == nil {
		return nil
	}
	return db.DeleteCachedUser(ctx, userID)
}
