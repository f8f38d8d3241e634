package etprimitive

// Identity 请求身份（和类型）
// 两种取值：Authenticated(已认证主体 ID) / Anonymous(匿名访客)
// 避免用魔法字符串和真实主体 ID 共用同一字段
type Identity struct {
	principalID string
	anonymous   bool
}

// Authenticated 创建已认证身份
func Authenticated(principalID string) Identity {
	if principalID == "" {
		return Anonymous()
	}
	return Identity{principalID: principalID}
}

// Anonymous 创建匿名身份
func Anonymous() Identity {
	return Identity{anonymous: true}
}

// IsAnonymous 是否匿名身份
func (i Identity) IsAnonymous() bool {
	return i.anonymous
}

// PrincipalID 已认证主体 ID（匿名身份返回空串）
func (i Identity) PrincipalID() string {
	if i.anonymous {
		return ""
	}
	return i.principalID
}

// Equal 身份相等判断（匿名身份之间相等）
func (i Identity) Equal(other Identity) bool {
	if i.anonymous || other.anonymous {
		return i.anonymous == other.anonymous
	}
	return i.principalID == other.principalID
}

// IdentityFromOwnerColumn 从存储层 owner_id 列值还原身份
// 空串为匿名哨兵值（见 common/entity）
func IdentityFromOwnerColumn(ownerID string) Identity {
	if ownerID == "" {
		return Anonymous()
	}
	return Authenticated(ownerID)
}
