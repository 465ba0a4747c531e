package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const tokenInfoEndpoint = "https://oauth2.googleapis.com/tokeninfo"

var (
	ErrTokenInvalid     = errors.New("invalid google id token")
	ErrAudienceMismatch = errors.New("token audience mismatch")
)

// TokenInfo Google ID Token 验证通过后得到的用户信息
type TokenInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Aud     string `json:"aud"`
	Exp     string `json:"exp"` // tokeninfo 接口返回字符串形式的 unix 秒
}

// Verifier 通过 Google tokeninfo 接口验证 ID Token
type Verifier struct {
	clientID string
	client   *http.Client
}

// NewVerifier 创建验证器
func NewVerifier(clientID string) *Verifier {
	return &Verifier{
		clientID: clientID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify 验证 ID Token 并返回用户信息
func (v *Verifier) Verify(ctx context.Context, idToken string) (*TokenInfo, error) {
	if v.clientID == "" {
		return nil, errors.New("google client id not configured")
	}

	endpoint := tokenInfoEndpoint + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tokeninfo request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrTokenInvalid
	}

	var info TokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if info.Aud != v.clientID {
		return nil, ErrAudienceMismatch
	}

	if exp, err := strconv.ParseInt(info.Exp, 10, 64); err != nil || time.Now().Unix() >= exp {
		return nil, ErrTokenInvalid
	}

	return &info, nil
}
