package oauth

import (
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/linkedin"
	"golang.org/x/oauth2/spotify"
)

// 平台标识
const (
	PlatformLinkedIn = "linkedin"
	PlatformYouTube  = "youtube"
	PlatformSpotify  = "spotify"
)

// ProviderConfig 单个平台的 OAuth 配置
type ProviderConfig struct {
	ClientID     string   `mapstructure:"clientId"`
	ClientSecret string   `mapstructure:"clientSecret"`
	RedirectURL  string   `mapstructure:"redirectURL"`
	Scopes       []string `mapstructure:"scopes"`
}

// NewPlatformProvider 按平台标识创建 OAuth 提供者
// youtube 走 Google 的授权端点
func NewPlatformProvider(platform string, cfg ProviderConfig) (*OAuthProvider, error) {
	var endpoint oauth2.Endpoint
	var userInfoURL string

	switch platform {
	case PlatformLinkedIn:
		endpoint = linkedin.Endpoint
		userInfoURL = "https://api.linkedin.com/v2/userinfo"
	case PlatformYouTube:
		endpoint = google.Endpoint
		userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	case PlatformSpotify:
		endpoint = spotify.Endpoint
		userInfoURL = "https://api.spotify.com/v1/me"
	default:
		return nil, fmt.Errorf("unsupported platform: %s", platform)
	}

	return NewOAuthProvider(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURL, cfg.Scopes, endpoint, userInfoURL), nil
}
