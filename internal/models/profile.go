package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Social holds the normalized social network links of a profile.
type Social struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

// Profile is the developer profile owned by exactly one user.
type Profile struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID    `gorm:"type:uuid;uniqueIndex;not null" json:"-"`
	User           UserSummary  `gorm:"-" json:"user"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Status         string       `gorm:"not null" json:"status"`
	Skills         []string     `gorm:"serializer:json;type:text" json:"skills"`
	GithubUsername string       `json:"githubusername,omitempty"`
	Social         Social       `gorm:"embedded;embeddedPrefix:social_" json:"social"`
	Experience     []Experience `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"experience"`
	Education      []Education  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"education"`
	CreatedAt      time.Time    `json:"date"`
	UpdatedAt      time.Time    `json:"-"`
}

// BeforeCreate assigns a UUID when the caller did not set one.
func (p *Profile) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Experience is a single job entry on a profile.
type Experience struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"-"`
	Title       string     `gorm:"not null" json:"title"`
	Company     string     `gorm:"not null" json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `gorm:"column:from_date;not null" json:"from"`
	To          *time.Time `gorm:"column:to_date" json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"-"`
}

// BeforeCreate assigns a UUID when the caller did not set one.
func (e *Experience) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Education is a single school entry on a profile.
type Education struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"-"`
	School       string     `gorm:"not null" json:"school"`
	Degree       string     `gorm:"not null" json:"degree"`
	FieldOfStudy string     `gorm:"column:field_of_study;not null" json:"fieldofstudy"`
	From         time.Time  `gorm:"column:from_date;not null" json:"from"`
	To           *time.Time `gorm:"column:to_date" json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
	CreatedAt    time.Time  `json:"-"`
}

// BeforeCreate assigns a UUID when the caller did not set one.
func (e *Education) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
