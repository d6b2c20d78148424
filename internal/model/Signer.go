package model

import (
	"time"

	"github.com/rithvisal/inksign/internal/constant"
)

type Signer struct {
	BaseModel
	DocumentID string   `gorm:"type:text;not null;index" json:"documentId"`
	Document   Document `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name  string `gorm:"type:varchar(100);not null" json:"name" form:"name" binding:"required,strNotEmpty,cmax=100"`
	Email string `gorm:"type:citext;not null" json:"email" form:"email" binding:"required,email"`

	Status      constant.SignerStatus `gorm:"type:varchar(20);default:pending;not null" json:"status"`
	CompletedAt *time.Time            `gorm:"type:timestamptz" json:"completedAt,omitempty"`

	// SignToken is the unguessable capability that resolves this signer's
	// signing session without further authentication. SignURL is the full
	// frontend link derived from it, stored so invitation mails and the API
	// response agree on the exact link.
	SignToken string `gorm:"type:text;uniqueIndex;not null" json:"-"`
	SignURL   string `gorm:"type:text;not null" json:"signUrl"`
}

func (s Signer) TableName() string {
	return "signers"
}

func (s Signer) IsCompleted() bool {
	return s.Status == constant.SignerStatusCompleted
}
