package model

import "time"

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/10 22:14
 * @file: model_social.go
 * @description: 第三方平台连接模型
 */

// SocialConnection 用户与第三方平台的 OAuth 连接
type SocialConnection struct {
	BaseModel
	UserId         string    `gorm:"column:user_id" json:"userId"`
	Provider       string    `gorm:"column:provider" json:"provider"` // linkedin, youtube, spotify
	ProviderUserId string    `gorm:"column:provider_user_id" json:"providerUserId"`
	AccessToken    string    `gorm:"column:access_token" json:"-"`
	RefreshToken   string    `gorm:"column:refresh_token" json:"-"`
	ExpiresAt      time.Time `gorm:"column:expires_at" json:"expiresAt"`
	Scopes         string    `gorm:"column:scopes" json:"scopes"`
}

func (SocialConnection) TableName() string {
	return "t_social_connection"
}

// SocialConnectionView 对外隐藏令牌内容
type SocialConnectionView struct {
	Provider       string    `json:"provider"`
	ProviderUserId string    `json:"providerUserId"`
	Connected      bool      `json:"connected"`
	ExpiresAt      time.Time `json:"expiresAt"`
	Scopes         string    `json:"scopes"`
}
