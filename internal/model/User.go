package model

type User struct {
	BaseModel
	Email        string `gorm:"type:citext;unique;not null" json:"email" form:"email" binding:"required,email"`
	FirstName    string `gorm:"type:varchar(50);not null" json:"firstName" form:"firstName" binding:"required"`
	LastName     string `gorm:"type:varchar(50)" json:"lastName" form:"lastName"`
	PasswordHash string `gorm:"type:text" json:"-" form:"-"`
}

func (u User) TableName() string {
	return "users"
}
