package model

import (
	"time"

	"gorm.io/datatypes"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/10 21:43
 * @file: model_user.go
 * @description: user model
 */

type User struct {
	BaseModel
	UserId    string `gorm:"column:user_id" json:"userId"`
	Username  string `gorm:"column:username" json:"username"`
	FirstName string `gorm:"column:first_name" json:"firstName"`
	LastName  string `gorm:"column:last_name" json:"lastName"`
	Password  string `gorm:"column:password" json:"-"`
	Avatar    string `gorm:"column:avatar" json:"avatar"`
	Email     string `gorm:"column:email" json:"email"`
	Phone     string `gorm:"column:phone" json:"phone"`
	IsEnabled int    `gorm:"column:is_enabled" json:"isEnabled"` // 0: disabled, 1: enabled

	Preferences datatypes.JSON `gorm:"column:preferences;type:json" json:"preferences"` // 用户偏好（结构化 JSON）
}

func (User) TableName() string {
	return "t_user"
}

type Register struct {
	UserId     string    `json:"userId"`
	Username   string    `json:"username"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Avatar     string    `json:"avatar"`
	Password   string    `json:"password"`
	CreateTime time.Time `json:"createTime"`
}

type UpdatePreferencesReq struct {
	Preferences datatypes.JSON `json:"preferences" binding:"required"`
}

type Login struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResp struct {
	UserInfo UserInfo          `json:"userInfo"`
	Token    map[string]string `json:"token"`
	ExpireAt int64             `json:"-"`
	CreateAt int64             `json:"-"`
}

type UserInfo struct {
	UserId      string         `json:"userId"`
	Username    string         `json:"username"`
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	Avatar      string         `json:"avatar"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone"`
	Preferences datatypes.JSON `json:"preferences,omitempty"`
}
