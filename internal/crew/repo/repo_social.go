package repo

import (
	"errors"

	"github.com/go-crew/crew/internal/crew/model"
	"github.com/go-crew/crew/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/11 21:42
 * @file: repo_social.go
 * @description: 第三方平台连接数据访问层
 */

type ISocialRepository interface {
	UpsertConnection(conn *model.SocialConnection) error
	GetConnection(userId, provider string) (*model.SocialConnection, error)
	ListConnections(userId string) ([]*model.SocialConnection, error)
	DeleteConnection(userId, provider string) error
}

type SocialRepo struct {
	database.IDatabase
}

func NewSocialRepo(db database.IDatabase) ISocialRepository {
	return &SocialRepo{IDatabase: db}
}

// UpsertConnection 同一用户同一平台只保留一条连接记录
func (r *SocialRepo) UpsertConnection(conn *model.SocialConnection) error {
	return r.Database().Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"provider_user_id", "access_token", "refresh_token", "expires_at", "scopes", "updated_at",
		}),
	}).Create(conn).Error
}

// GetConnection 获取单个平台连接
func (r *SocialRepo) GetConnection(userId, provider string) (*model.SocialConnection, error) {
	var conn model.SocialConnection
	err := r.Database().Where("user_id = ? AND provider = ?", userId, provider).First(&conn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conn, nil
}

// ListConnections 列出用户全部平台连接
func (r *SocialRepo) ListConnections(userId string) ([]*model.SocialConnection, error) {
	var conns []*model.SocialConnection
	err := r.Database().Where("user_id = ?", userId).Find(&conns).Error
	if err != nil {
		return nil, err
	}
	return conns, nil
}

// DeleteConnection 断开平台连接
func (r *SocialRepo) DeleteConnection(userId, provider string) error {
	return r.Database().Where("user_id = ? AND provider = ?", userId, provider).
		Delete(&model.SocialConnection{}).Error
}
