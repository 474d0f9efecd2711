package domain

import "time"

// Person is the contact-style record: unique document id plus optional phone/email.
type Person struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"not null;size:100;column:name" json:"name"`
	DocumentID string    `gorm:"uniqueIndex;not null;size:32;column:document_id" json:"document_id"`
	Phone      string    `gorm:"size:32;column:phone" json:"phone,omitempty"`
	Email      string    `gorm:"size:255;column:email" json:"email,omitempty"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Person) TableName() string { return "person" }

// Clone returns a detached copy. Nil in, nil out.
func (p *Person) Clone() *Person {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}
