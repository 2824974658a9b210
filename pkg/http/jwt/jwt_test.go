package jwt

import (
	"testing"
	"time"

	"github.com/go-crew/crew/pkg/http"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/9 21:12
 * @file: jwt_test.go
 * @description:
 */

func TestGenToken(t *testing.T) {

	userId := "1"
	secretKey := []byte("1111111111111111")
	accessExpired := time.Duration(60)
	refreshExpired := time.Duration(1440)

	aToken, rToken, err := GenToken(userId, secretKey, accessExpired, refreshExpired)
	if err != nil {
		t.Errorf("GenToken error: %v", err)
	}
	t.Logf("aToken: %s, rToken: %s", aToken, rToken)
}

func TestParseToken(t *testing.T) {

	userId := "1b8be82017ba4d4982d9e6e429438cf9"
	secretKey := "bf284d03-ba65-42d4-a9fe-0d2fbfe61060"
	aToken, _, err := GenToken(userId, []byte(secretKey), time.Duration(60), time.Duration(1440))
	if err != nil {
		t.Fatalf("GenToken error: %v", err)
	}

	claims, err := ParseToken(aToken, secretKey)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.UserId != userId {
		t.Errorf("userId mismatch, got %s", claims.UserId)
	}
	if claims.Issuer != issUser {
		t.Errorf("issuer mismatch, got %s", claims.Issuer)
	}
}

func TestRefreshToken(t *testing.T) {

	userId := "1"
	secretKey := "bf284d03-ba65-42d4-a9fe-0d2fbfe61060"
	_, rToken, err := GenToken(userId, []byte(secretKey), time.Duration(60), time.Duration(1440))
	if err != nil {
		t.Fatalf("GenToken error: %v", err)
	}

	auth := &http.Auth{
		SecretKey:     secretKey,
		AccessExpire:  time.Duration(60),
		RefreshExpire: time.Duration(1440),
	}
	newToken, err := RefreshToken(auth, userId, rToken)
	if err != nil {
		t.Fatalf("RefreshToken error: %v", err)
	}
	if newToken["accessToken"] == "" || newToken["refreshToken"] == "" {
		t.Errorf("expected refreshed token pair, got %v", newToken)
	}
}
