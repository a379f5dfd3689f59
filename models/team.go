package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinTeamSize = 1
	MaxTeamSize = 6
)

type Team struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `gorm:"not null;size:100" json:"name"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	Members   []Pokemon `gorm:"many2many:team_members" json:"pokemons"`
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *Team) MemberIDs() []int {
	ids := make([]int, 0, len(t.Members))
	for _, m := range t.Members {
		ids = append(ids, m.ID)
	}
	return ids
}
