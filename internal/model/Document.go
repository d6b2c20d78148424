package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rithvisal/inksign/internal/constant"
)

// SigningOrder is an ordered list of signer ids stored as a jsonb column.
// When sequential signing is enabled it is the authority over which signer
// may currently act.
type SigningOrder []string

func (so SigningOrder) Value() (driver.Value, error) {
	if so == nil {
		return "[]", nil
	}

	data, err := json.Marshal(so)
	if err != nil {
		return nil, err
	}

	return string(data), nil
}

func (so *SigningOrder) Scan(value any) error {
	if value == nil {
		*so = SigningOrder{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for signing order")
	}

	return json.Unmarshal(data, so)
}

type Document struct {
	BaseModel
	Name   string                  `gorm:"type:varchar(100);not null" json:"name" form:"name" binding:"required,strNotEmpty,cmax=100"`
	Status constant.DocumentStatus `gorm:"type:varchar(20);default:draft;not null" json:"status"`

	CreatedBy string `gorm:"type:text;not null" json:"createdBy"`
	Creator   User   `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// Uploaded file reference. The core never inspects the bytes, it only
	// carries the metadata supplied at upload time.
	FileBucket string `gorm:"type:text;not null" json:"-"`
	FileKey    string `gorm:"type:text;not null" json:"-"`
	FileName   string `gorm:"type:text;not null" json:"fileName"`
	FileType   string `gorm:"type:varchar(100)" json:"fileType"`
	FileSize   int64  `gorm:"type:bigint;default:0" json:"fileSize"`
	PageCount  int    `gorm:"type:int;default:0" json:"pageCount"`

	SequentialEnabled bool         `gorm:"type:boolean;default:false" json:"sequentialEnabled"`
	SigningOrder      SigningOrder `gorm:"type:jsonb;default:'[]'" json:"signingOrder"`
	UploaderAsSigner  bool         `gorm:"type:boolean;default:false" json:"uploaderAsSigner"`

	Fields  []SignatureField `gorm:"foreignKey:DocumentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"fields,omitempty"`
	Signers []Signer         `gorm:"foreignKey:DocumentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"signers,omitempty"`
}

func (d Document) TableName() string {
	return "documents"
}

func (d Document) IsDraft() bool {
	return d.Status == constant.DocumentStatusDraft
}

func (d Document) IsPending() bool {
	return d.Status == constant.DocumentStatusPending
}

func (d Document) IsCompleted() bool {
	return d.Status == constant.DocumentStatusCompleted
}

// CopyName is the display name a duplicate of this document gets.
func (d Document) CopyName() string {
	return fmt.Sprintf("%s (Copy)", d.Name)
}
