package services

import (
	"fmt"
	"math"

	"pokedex/models"
)

const (
	// A type shared by more members than this makes the team lopsided.
	overRelianceThreshold = 2

	BalancedMessage = "team is balanced across types"
)

type MVP struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	TotalStats int    `json:"totalStats"`
}

type Analysis struct {
	TeamName         string         `json:"teamName"`
	MemberCount      int            `json:"memberCount"`
	AverageStats     models.Stats   `json:"averageStats"`
	TypeDistribution map[string]int `json:"typeDistribution"`
	Warnings         []string       `json:"warnings"`
	MVP              *MVP           `json:"mvp"`
}

// Analyze computes average stats, type distribution, over-reliance warnings
// and the MVP of a team. Members are taken in the order they are stored.
func Analyze(team models.Team) Analysis {
	members := team.Members
	a := Analysis{
		TeamName:         team.Name,
		MemberCount:      len(members),
		TypeDistribution: map[string]int{},
	}

	if len(members) > 0 {
		for _, name := range models.StatNames {
			sum := 0
			for _, m := range members {
				sum += m.Stats.Get(name)
			}
			a.AverageStats.Set(name, int(math.Round(float64(sum)/float64(len(members)))))
		}
	}

	var order []string
	for _, m := range members {
		for _, t := range m.Types {
			if _, ok := a.TypeDistribution[t]; !ok {
				order = append(order, t)
			}
			a.TypeDistribution[t]++
		}
	}

	for _, t := range order {
		if count := a.TypeDistribution[t]; count > overRelianceThreshold {
			a.Warnings = append(a.Warnings,
				fmt.Sprintf("team is vulnerable to over-reliance on type %s (%d members)", t, count))
		}
	}
	if len(a.Warnings) == 0 {
		a.Warnings = []string{BalancedMessage}
	}

	a.MVP = mostValuable(members)
	return a
}

// mostValuable ranks by hp + attack + defense + speed. The first member wins
// a tie.
func mostValuable(members []models.Pokemon) *MVP {
	if len(members) == 0 {
		return nil
	}

	best := members[0]
	for _, m := range members[1:] {
		if m.Stats.BattleScore() > best.Stats.BattleScore() {
			best = m
		}
	}

	return &MVP{
		ID:         best.ID,
		Name:       best.Name,
		Image:      best.Image,
		TotalStats: best.Stats.BattleScore(),
	}
}
