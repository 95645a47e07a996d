package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category classifies a car in the catalog.
type Category string

const (
	CategoryHypercar Category = "hypercar"
	CategorySupercar Category = "supercar"
	CategoryLuxury   Category = "luxury"
	CategorySports   Category = "sports"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryHypercar, CategorySupercar, CategoryLuxury, CategorySports:
		return true
	}
	return false
}

// MinYear is the oldest model year the catalog accepts.
const MinYear = 1900

// MaxYear returns the newest model year the catalog accepts.
// Upcoming models may be listed up to two years ahead.
func MaxYear() int {
	return time.Now().Year() + 2
}

// Specifications holds the technical sub-record of a car.
type Specifications struct {
	Engine       string `json:"engine" gorm:"size:255;not null"`
	Horsepower   int    `json:"horsepower" gorm:"not null"`
	TopSpeed     string `json:"topSpeed" gorm:"size:255;not null"`
	Acceleration string `json:"acceleration" gorm:"size:255;not null"`
	Transmission string `json:"transmission" gorm:"size:255;not null"`
	Drivetrain   string `json:"drivetrain" gorm:"size:255;not null"`
}

// CarImage is a single catalog image for a car.
type CarImage struct {
	ID    uuid.UUID `json:"-" gorm:"type:char(36);primaryKey"`
	CarID uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	URL   string    `json:"url" gorm:"size:512;not null"`
	Alt   string    `json:"alt" gorm:"size:255;default:''"`
}

// BeforeCreate sets UUID before creating the record.
func (i *CarImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Car represents a listed vehicle in the catalog.
type Car struct {
	ID             uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name           string          `json:"name" gorm:"size:100;not null"`
	Brand          string          `json:"brand" gorm:"size:255;not null;index"`
	Model          string          `json:"model" gorm:"size:255;not null"`
	Year           int             `json:"year" gorm:"not null"`
	Price          decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	Specifications Specifications  `json:"specifications" gorm:"embedded;embeddedPrefix:spec_"`
	Description    string          `json:"description" gorm:"size:1000"`
	Category       Category        `json:"category" gorm:"size:50;default:'hypercar';index"`
	Availability   bool            `json:"availability" gorm:"default:true;index"`
	Featured       bool            `json:"featured" gorm:"default:false;index"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Images []CarImage `json:"images" gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Car) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
