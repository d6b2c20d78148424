package model

import (
	"github.com/rithvisal/inksign/internal/constant"
)

type SignatureField struct {
	BaseModel
	DocumentID string   `gorm:"type:text;not null;index" json:"documentId"`
	Document   Document `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Page   int     `gorm:"type:int;not null" json:"page" form:"page" binding:"required,number,gte=1"`
	X      float64 `gorm:"type:double precision;not null" json:"x" form:"x"`
	Y      float64 `gorm:"type:double precision;not null" json:"y" form:"y"`
	Width  float64 `gorm:"type:double precision;not null" json:"width" form:"width" binding:"gt=0"`
	Height float64 `gorm:"type:double precision;not null" json:"height" form:"height" binding:"gt=0"`

	Type constant.FieldType `gorm:"type:varchar(20);not null" json:"type" form:"type" binding:"required"`

	// Empty string means unassigned. Deleting a signer resets this to empty
	// instead of deleting the field.
	AssignedTo string `gorm:"type:text;default:'';index" json:"assignedTo"`
	Required   bool   `gorm:"type:boolean;default:true" json:"required"`

	Completed bool   `gorm:"type:boolean;default:false" json:"completed"`
	Value     string `gorm:"type:text;default:''" json:"value,omitempty"`
}

func (sf SignatureField) TableName() string {
	return "signature_fields"
}

func (sf SignatureField) IsAssigned() bool {
	return sf.AssignedTo != ""
}
