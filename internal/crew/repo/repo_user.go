// Copyright 2025 Crew Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-crew/crew/internal/crew/model"
	"github.com/go-crew/crew/pkg/cache"
	"github.com/go-crew/crew/pkg/database"
	"github.com/go-crew/crew/pkg/http"
	"gorm.io/gorm"
)

type IUserRepository interface {
	AddUser(user *model.User) error
	GetUserById(userId string) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUsersByIds(userIds []string) ([]*model.User, error)
	UpdateUser(userId string, updates map[string]interface{}) error
	SetToken(userId, aToken string, auth http.Auth) error
	GetToken(key string) (string, error)
	DelToken(key string) error
}

type UserRepo struct {
	db        database.IDatabase
	cache     cache.ICache
	userModel *model.User
}

func NewUserRepo(db database.IDatabase, cache cache.ICache) IUserRepository {
	return &UserRepo{
		db:        db,
		cache:     cache,
		userModel: &model.User{},
	}
}

// AddUser 新增用户
func (ur *UserRepo) AddUser(user *model.User) error {
	return ur.db.Database().Create(user).Error
}

// GetUserById 根据用户ID获取用户
func (ur *UserRepo) GetUserById(userId string) (*model.User, error) {
	var user model.User
	err := ur.db.Database().Where("user_id = ?", userId).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername 根据用户名获取用户
func (ur *UserRepo) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	err := ur.db.Database().Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail 根据邮箱获取用户，邮箱统一小写存储
func (ur *UserRepo) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	err := ur.db.Database().Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetUsersByIds 批量获取用户，用于成员列表视图
func (ur *UserRepo) GetUsersByIds(userIds []string) ([]*model.User, error) {
	if len(userIds) == 0 {
		return nil, nil
	}
	var users []*model.User
	err := ur.db.Database().Where("user_id IN ?", userIds).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser 更新用户字段
func (ur *UserRepo) UpdateUser(userId string, updates map[string]interface{}) error {
	return ur.db.Database().Model(ur.userModel).
		Where("user_id = ?", userId).
		Updates(updates).Error
}

// SetToken 将 access token 写入 Redis，有效期与令牌一致
func (ur *UserRepo) SetToken(userId, aToken string, auth http.Auth) error {
	if ur.cache == nil {
		return fmt.Errorf("cache not available")
	}
	ctx := context.Background()
	key := auth.RedisKeyPrefix + userId
	if err := ur.cache.Set(ctx, key, aToken, auth.AccessExpire*time.Minute).Err(); err != nil {
		return fmt.Errorf("failed to set token to Redis: %w", err)
	}
	return nil
}

func (ur *UserRepo) GetToken(key string) (string, error) {
	if ur.cache == nil {
		return "", fmt.Errorf("cache not available")
	}
	ctx := context.Background()
	token, err := ur.cache.Get(ctx, key).Result()
	if err != nil {
		return "", fmt.Errorf("failed to get token from Redis: %w", err)
	}
	return token, nil
}

func (ur *UserRepo) DelToken(key string) error {
	if ur.cache == nil {
		return nil
	}
	ctx := context.Background()
	if err := ur.cache.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete token from Redis: %w", err)
	}
	return nil
}
