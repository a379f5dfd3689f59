package models

import "math"

// Remote catalog stat names.
const (
	StatHP             = "hp"
	StatAttack         = "attack"
	StatDefense        = "defense"
	StatSpecialAttack  = "special-attack"
	StatSpecialDefense = "special-defense"
	StatSpeed          = "speed"
)

// StatNames lists the stats in canonical order.
var StatNames = []string{StatHP, StatAttack, StatDefense, StatSpecialAttack, StatSpecialDefense, StatSpeed}

type Stats struct {
	HP        int `gorm:"column:hp;not null;default:0" json:"hp"`
	Attack    int `gorm:"column:attack;not null;default:0" json:"attack"`
	Defense   int `gorm:"column:defense;not null;default:0" json:"defense"`
	SpAttack  int `gorm:"column:sp_attack;not null;default:0" json:"spAttack"`
	SpDefense int `gorm:"column:sp_defense;not null;default:0" json:"spDefense"`
	Speed     int `gorm:"column:speed;not null;default:0" json:"speed"`
}

// Set assigns value to the stat called name. Unknown names are ignored and
// reported with false.
func (s *Stats) Set(name string, value int) bool {
	switch name {
	case StatHP:
		s.HP = value
	case StatAttack:
		s.Attack = value
	case StatDefense:
		s.Defense = value
	case StatSpecialAttack:
		s.SpAttack = value
	case StatSpecialDefense:
		s.SpDefense = value
	case StatSpeed:
		s.Speed = value
	default:
		return false
	}
	return true
}

func (s Stats) Get(name string) int {
	switch name {
	case StatHP:
		return s.HP
	case StatAttack:
		return s.Attack
	case StatDefense:
		return s.Defense
	case StatSpecialAttack:
		return s.SpAttack
	case StatSpecialDefense:
		return s.SpDefense
	case StatSpeed:
		return s.Speed
	}
	return 0
}

// BattleScore is hp + attack + defense + speed. Special stats do not count.
func (s Stats) BattleScore() int {
	return s.HP + s.Attack + s.Defense + s.Speed
}

// Distance is the Euclidean distance between two stat blocks, matched by name.
func (s Stats) Distance(other Stats) float64 {
	var sum float64
	for _, name := range StatNames {
		d := float64(s.Get(name) - other.Get(name))
		sum += d * d
	}
	return math.Sqrt(sum)
}
