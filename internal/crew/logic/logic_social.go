package logic

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-crew/crew/internal/crew/model"
	"github.com/go-crew/crew/internal/crew/repo"
	"github.com/go-crew/crew/pkg/ctx"
	"github.com/go-crew/crew/pkg/log"
	"github.com/go-crew/crew/pkg/sso/oauth"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/12 22:50
 * @file: logic_social.go
 * @description: social connection logic
 */

type SocialLogic struct {
	ctx        *ctx.Context
	socialRepo repo.ISocialRepository
	providers  map[string]*oauth.OAuthProvider
}

func NewSocialLogic(c *ctx.Context, socialRepo repo.ISocialRepository, providerConfs map[string]oauth.ProviderConfig) *SocialLogic {
	providers := make(map[string]*oauth.OAuthProvider, len(providerConfs))
	for platform, cfg := range providerConfs {
		p, err := oauth.NewPlatformProvider(platform, cfg)
		if err != nil {
			log.Warnf("skip oauth provider %s: %v", platform, err)
			continue
		}
		providers[platform] = p
	}
	return &SocialLogic{
		ctx:        c,
		socialRepo: socialRepo,
		providers:  providers,
	}
}

// AuthorizeURL 返回平台授权跳转地址，state 建议带 userId 防串接
func (sl *SocialLogic) AuthorizeURL(platform, state string) (string, error) {
	p, ok := sl.providers[platform]
	if !ok {
		return "", fmt.Errorf("unsupported platform: %s", platform)
	}
	return p.GetAuthURL(state), nil
}

// HandleCallback 用授权码换令牌并落库连接记录
func (sl *SocialLogic) HandleCallback(userId, platform, code string) (*model.SocialConnectionView, error) {
	p, ok := sl.providers[platform]
	if !ok {
		return nil, fmt.Errorf("unsupported platform: %s", platform)
	}

	token, err := p.ExchangeToken(sl.ctx.GetCtx(), code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	info, err := p.GetUserInfo(sl.ctx.GetCtx(), token)
	if err != nil {
		return nil, fmt.Errorf("fetch user info failed: %w", err)
	}

	conn := &model.SocialConnection{
		UserId:         userId,
		Provider:       platform,
		ProviderUserId: info.ExternalId,
		AccessToken:    token.AccessToken,
		RefreshToken:   token.RefreshToken,
		ExpiresAt:      token.Expiry,
		Scopes:         strings.Join(p.Config.Scopes, " "),
	}
	if err := sl.socialRepo.UpsertConnection(conn); err != nil {
		return nil, err
	}

	view := connectionView(conn)
	return &view, nil
}

// ListConnections 列出用户的平台连接
func (sl *SocialLogic) ListConnections(userId string) ([]model.SocialConnectionView, error) {
	conns, err := sl.socialRepo.ListConnections(userId)
	if err != nil {
		return nil, err
	}
	views := make([]model.SocialConnectionView, 0, len(conns))
	for _, c := range conns {
		views = append(views, connectionView(c))
	}
	return views, nil
}

// Disconnect 断开平台连接
func (sl *SocialLogic) Disconnect(userId, platform string) error {
	if _, ok := sl.providers[platform]; !ok {
		return fmt.Errorf("unsupported platform: %s", platform)
	}
	return sl.socialRepo.DeleteConnection(userId, platform)
}

func connectionView(c *model.SocialConnection) model.SocialConnectionView {
	return model.SocialConnectionView{
		Provider:       c.Provider,
		ProviderUserId: c.ProviderUserId,
		Connected:      c.AccessToken != "" && time.Now().Before(c.ExpiresAt),
		ExpiresAt:      c.ExpiresAt,
		Scopes:         c.Scopes,
	}
}
