package tokens

import (
	"time"
)

// Kind discriminates the two token families handled by the lifecycle
// manager. The values double as the persisted token_type column and the
// cookie names on the auth endpoints.
type Kind string

const (
	KindAccess  Kind = "access_token"
	KindRefresh Kind = "refresh_token"
)

// Record is the persisted unit of the token store. The raw token string is
// never stored; TokenHash is the lookup key. Revoked only ever advances
// false to true.
type Record struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Kind      Kind      `json:"token_type" gorm:"column:token_type;size:32;not null;uniqueIndex:idx_jwt_tokens_type_hash"`
	TokenHash string    `json:"token_hash" gorm:"size:64;not null;uniqueIndex:idx_jwt_tokens_type_hash"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	Revoked   bool      `json:"revoked" gorm:"not null;default:false"`
}

func (Record) TableName() string {
	return "jwt_tokens"
}
