package logic

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/go-crew/crew/internal/crew/model"
	"github.com/go-crew/crew/internal/crew/repo"
	"github.com/go-crew/crew/pkg/ctx"
	"github.com/go-crew/crew/pkg/http"
	"github.com/go-crew/crew/pkg/http/jwt"
	"github.com/go-crew/crew/pkg/id"
	"github.com/go-crew/crew/pkg/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/12 22:30
 * @file: logic_user.go
 * @description: user logic
 */

type UserLogic struct {
	ctx      *ctx.Context
	userRepo repo.IUserRepository
}

func NewUserLogic(ctx *ctx.Context, userRepo repo.IUserRepository) *UserLogic {
	return &UserLogic{
		ctx:      ctx,
		userRepo: userRepo,
	}
}

func (ul *UserLogic) Login(login *model.Login, auth http.Auth) (*model.LoginResp, error) {
	pwd, err := base64.StdEncoding.DecodeString(login.Password)
	if err != nil {
		log.Errorf("failed to decode password: %v", err)
		return nil, errors.New(http.UserIncorrectPassword.Msg)
	}

	user, err := ul.userRepo.GetUserByUsername(login.Username)
	if err != nil {
		log.Errorf("login failed for user: %v", err)
		return nil, err
	}
	if user == nil {
		log.Error("user not found")
		return nil, errors.New(http.UserNotExist.Msg)
	}

	// 比较存储的密码哈希与提供的密码
	if !comparePassword(user.Password, string(pwd)) {
		log.Error("incorrect password provided")
		return nil, errors.New(http.UserIncorrectPassword.Msg)
	}

	aToken, rToken, err := jwt.GenToken(user.UserId, []byte(auth.SecretKey), auth.AccessExpire, auth.RefreshExpire)
	if err != nil {
		log.Errorf("failed to generate tokens: %v", err)
		return nil, err
	}

	// 将访问令牌登记到 Redis
	go func() {
		if err := ul.userRepo.SetToken(user.UserId, aToken, auth); err != nil {
			log.Errorf("failed to set token in Redis: %v", err)
		}
	}()

	return &model.LoginResp{
		UserInfo: model.UserInfo{
			UserId:    user.UserId,
			Username:  user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Avatar:    user.Avatar,
			Email:     user.Email,
			Phone:     user.Phone,
		},
		Token: map[string]string{
			"accessToken":  aToken,
			"refreshToken": rToken,
		},
	}, nil
}

func (ul *UserLogic) Register(register *model.Register) error {
	pwd, err := base64.StdEncoding.DecodeString(register.Password)
	if err != nil {
		log.Errorf("failed to decode password: %v", err)
		return errors.New(http.UserIncorrectPassword.Msg)
	}

	if existing, err := ul.userRepo.GetUserByUsername(register.Username); err != nil {
		return err
	} else if existing != nil {
		return errors.New(http.UserAlreadyExist.Msg)
	}

	email := strings.ToLower(strings.TrimSpace(register.Email))
	if existing, err := ul.userRepo.GetUserByEmail(email); err != nil {
		return err
	} else if existing != nil {
		return errors.New(http.UserAlreadyExist.Msg)
	}

	hash, err := bcrypt.GenerateFromPassword(pwd, bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		UserId:    id.GetUUIDWithoutDashes(),
		Username:  register.Username,
		FirstName: register.FirstName,
		LastName:  register.LastName,
		Email:     email,
		Avatar:    register.Avatar,
		Password:  string(hash),
		IsEnabled: 1,
	}
	return ul.userRepo.AddUser(user)
}

func (ul *UserLogic) Refresh(userId, rToken string, auth *http.Auth) (map[string]string, error) {
	token, err := jwt.RefreshToken(auth, userId, rToken)
	if err != nil {
		return token, err
	}

	if err := ul.userRepo.SetToken(userId, token["accessToken"], *auth); err != nil {
		log.Errorf("failed to set token in Redis: %v", err)
		return token, err
	}
	return token, nil
}

func (ul *UserLogic) Logout(userId string, auth http.Auth) error {
	return ul.userRepo.DelToken(auth.RedisKeyPrefix + userId)
}

func (ul *UserLogic) GetUserInfo(userId string) (*model.UserInfo, error) {
	user, err := ul.userRepo.GetUserById(userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New(http.UserNotExist.Msg)
	}
	return &model.UserInfo{
		UserId:      user.UserId,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Avatar:      user.Avatar,
		Email:       user.Email,
		Phone:       user.Phone,
		Preferences: user.Preferences,
	}, nil
}

// UpdatePreferences 整体替换用户偏好 JSON
func (ul *UserLogic) UpdatePreferences(userId string, prefs datatypes.JSON) error {
	user, err := ul.userRepo.GetUserById(userId)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New(http.UserNotExist.Msg)
	}
	return ul.userRepo.UpdateUser(userId, map[string]interface{}{"preferences": prefs})
}

// comparePassword 比较 bcrypt 哈希与明文
func comparePassword(hashed, plain string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if err != nil {
		log.Debugf("password mismatch: %v", err)
		return false
	}
	return true
}
