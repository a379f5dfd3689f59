package models

import (
	"time"

	"github.com/lib/pq"
)

// Pokemon is the locally cached copy of a remote catalog entry. Rows are
// created on first reference and never updated afterwards.
type Pokemon struct {
	ID        int            `gorm:"primaryKey;autoIncrement:false" json:"id"`
	CreatedAt time.Time      `json:"-"`
	Name      string         `gorm:"not null;size:100;index" json:"name"`
	Image     string         `gorm:"size:500" json:"image"`
	Types     pq.StringArray `gorm:"type:text[]" json:"types"`
	Stats     `gorm:"embedded"`
}

func (Pokemon) TableName() string {
	return "pokemons"
}

func (p *Pokemon) PrimaryType() string {
	if len(p.Types) == 0 {
		return ""
	}
	return p.Types[0]
}
