package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/Doneddie/kampala-closet/entities"
	"github.com/Doneddie/kampala-closet/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cart line items live in a redis hash per user, keyed by item id. The hash
// expires after cartTTL of inactivity; every write refreshes it.
const cartTTL = 30 * 24 * time.Hour

type CartRepository interface {
	ListCartItems(userEmail string) (items []entities.CartLineItem, err error)
	GetCartItem(userEmail string, itemId string) (item entities.CartLineItem, exists bool, err error)
	SetCartItem(userEmail string, item entities.CartLineItem) (err error)
	RemoveCartItem(userEmail string, itemId string) (err error)
}

type CartRepo struct {
	rdb *redis.Client
	ctx context.Context
}

func NewCartRepository(redis_conn *redis.Client, _ctx context.Context) (CartRepository, error) {
	if redis_conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redis_conn.Ping(_ctx).Err()
	if err != nil {
		return nil, err
	}
	return &CartRepo{
		rdb: redis_conn,
		ctx: _ctx,
	}, nil
}

func cartKey(userEmail string) string {
	return "cart:" + userEmail
}

// ListCartItems returns the user's line items oldest-first, so displayed
// carts and order summaries keep a stable add-time order.
func (c *CartRepo) ListCartItems(userEmail string) (items []entities.CartLineItem, err error) {
	val, e := c.rdb.HGetAll(c.ctx, cartKey(userEmail)).Result()
	if e != nil {
		zap.S().Errorf("ListCartItems: %v", e)
		err = models.ErrServerError
		return
	}
	for _, raw := range val {
		var item entities.CartLineItem
		if e := json.Unmarshal([]byte(raw), &item); e != nil {
			zap.S().Errorf("ListCartItems: unmarshal: %v", e)
			err = models.ErrServerError
			return
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].AddedAt.Equal(items[j].AddedAt) {
			return items[i].Id < items[j].Id
		}
		return items[i].AddedAt.Before(items[j].AddedAt)
	})
	return
}

func (c *CartRepo) GetCartItem(userEmail string, itemId string) (item entities.CartLineItem, exists bool, err error) {
	val, e := c.rdb.HGet(c.ctx, cartKey(userEmail), itemId).Result()
	if e != nil {
		if e == redis.Nil {
			return
		}
		zap.S().Errorf("GetCartItem: %v", e)
		err = models.ErrServerError
		return
	}
	if e := json.Unmarshal([]byte(val), &item); e != nil {
		zap.S().Errorf("GetCartItem: unmarshal: %v", e)
		err = models.ErrServerError
		return
	}
	exists = true
	return
}

func (c *CartRepo) SetCartItem(userEmail string, item entities.CartLineItem) (err error) {
	jsonData, e := json.Marshal(item)
	if e != nil {
		zap.S().Errorf("SetCartItem: marshal: %v", e)
		err = models.ErrServerError
		return
	}
	key := cartKey(userEmail)
	if e := c.rdb.HSet(c.ctx, key, item.Id, jsonData).Err(); e != nil {
		zap.S().Errorf("SetCartItem: %v", e)
		err = models.ErrServerError
		return
	}
	c.rdb.Expire(c.ctx, key, cartTTL)
	return
}

func (c *CartRepo) RemoveCartItem(userEmail string, itemId string) (err error) {
	if e := c.rdb.HDel(c.ctx, cartKey(userEmail), itemId).Err(); e != nil {
		zap.S().Errorf("RemoveCartItem: %v", e)
		err = models.ErrServerError
	}
	return
}
