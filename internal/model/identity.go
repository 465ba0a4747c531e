package model

// Identity 请求方身份，匿名或已认证二选一
// 用带标记的结构体而不是可空字符串，避免两个空值被误判为同一用户
type Identity struct {
	authenticated bool
	userID        string
	email         string
	name          string
}

// Anonymous 匿名身份
func Anonymous() Identity {
	return Identity{}
}

// Authenticated 已认证身份
func Authenticated(userID, email, name string) Identity {
	return Identity{
		authenticated: true,
		userID:        userID,
		email:         email,
		name:          name,
	}
}

// IsAnonymous 是否匿名
func (i Identity) IsAnonymous() bool {
	return !i.authenticated
}

// UserID 用户 ID，匿名时返回空串和 false
func (i Identity) UserID() (string, bool) {
	if !i.authenticated {
		return "", false
	}
	return i.userID, true
}

// Email 用户邮箱
func (i Identity) Email() string {
	return i.email
}

// Name 用户显示名
func (i Identity) Name() string {
	return i.name
}

// RateLimitKey 限流桶的 key：已认证用户按用户 ID，游客共享 guest 桶
func (i Identity) RateLimitKey() string {
	if i.authenticated {
		return i.userID
	}
	return "guest"
}
