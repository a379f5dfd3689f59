package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokedex/models"
)

func member(id int, name string, s models.Stats, types ...string) models.Pokemon {
	return models.Pokemon{ID: id, Name: name, Image: "img" + name, Types: types, Stats: s}
}

func TestAnalyze_AveragesAndMVP(t *testing.T) {
	team := models.Team{
		Name: "duo",
		Members: []models.Pokemon{
			member(1, "first", stats(80, 100, 70, 90, 85, 95), "fire"),
			member(2, "second", stats(50, 60, 40, 50, 45, 70), "water"),
		},
	}

	got := Analyze(team)

	want := stats(65, 80, 55, 70, 65, 83)
	if diff := cmp.Diff(want, got.AverageStats); diff != "" {
		t.Errorf("average stats mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "duo", got.TeamName)
	assert.Equal(t, 2, got.MemberCount)
	require.NotNil(t, got.MVP)
	assert.Equal(t, 1, got.MVP.ID)
	assert.Equal(t, 345, got.MVP.TotalStats)
	assert.Equal(t, []string{BalancedMessage}, got.Warnings)
}

func TestAnalyze_TypeWarnings(t *testing.T) {
	tests := []struct {
		name         string
		members      []models.Pokemon
		distribution map[string]int
		warnings     []string
	}{
		{
			name: "two of a type is fine",
			members: []models.Pokemon{
				member(1, "a", stats(1, 1, 1, 1, 1, 1), "grass", "poison"),
				member(2, "b", stats(1, 1, 1, 1, 1, 1), "grass"),
			},
			distribution: map[string]int{"grass": 2, "poison": 1},
			warnings:     []string{BalancedMessage},
		},
		{
			name: "three of a type warns",
			members: []models.Pokemon{
				member(1, "a", stats(1, 1, 1, 1, 1, 1), "water"),
				member(2, "b", stats(1, 1, 1, 1, 1, 1), "water", "flying"),
				member(3, "c", stats(1, 1, 1, 1, 1, 1), "water"),
			},
			distribution: map[string]int{"water": 3, "flying": 1},
			warnings:     []string{"team is vulnerable to over-reliance on type water (3 members)"},
		},
		{
			name: "warnings follow first appearance",
			members: []models.Pokemon{
				member(1, "a", stats(1, 1, 1, 1, 1, 1), "bug", "poison"),
				member(2, "b", stats(1, 1, 1, 1, 1, 1), "poison", "bug"),
				member(3, "c", stats(1, 1, 1, 1, 1, 1), "bug", "poison"),
			},
			distribution: map[string]int{"bug": 3, "poison": 3},
			warnings: []string{
				"team is vulnerable to over-reliance on type bug (3 members)",
				"team is vulnerable to over-reliance on type poison (3 members)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(models.Team{Name: "t", Members: tt.members})
			assert.Equal(t, tt.distribution, got.TypeDistribution)
			assert.Equal(t, tt.warnings, got.Warnings)
		})
	}
}

func TestAnalyze_MVPTieGoesToFirstMember(t *testing.T) {
	team := models.Team{Members: []models.Pokemon{
		member(4, "charmander", stats(10, 20, 30, 99, 1, 40)),
		member(7, "squirtle", stats(40, 30, 20, 1, 99, 10)),
	}}

	got := Analyze(team)

	require.NotNil(t, got.MVP)
	assert.Equal(t, "charmander", got.MVP.Name)
	assert.Equal(t, 100, got.MVP.TotalStats)
}

func TestAnalyze_SingleMemberAndEmpty(t *testing.T) {
	solo := member(25, "pikachu", stats(35, 55, 40, 50, 50, 90), "electric")
	got := Analyze(models.Team{Members: []models.Pokemon{solo}})
	assert.Equal(t, solo.Stats, got.AverageStats)
	require.NotNil(t, got.MVP)
	assert.Equal(t, 25, got.MVP.ID)

	empty := Analyze(models.Team{Name: "empty"})
	assert.Nil(t, empty.MVP)
	assert.Zero(t, empty.AverageStats)
	assert.Equal(t, []string{BalancedMessage}, empty.Warnings)
}

func TestAnalyze_IsPure(t *testing.T) {
	team := models.Team{Name: "same", Members: []models.Pokemon{
		member(1, "a", stats(45, 49, 49, 65, 65, 45), "grass", "poison"),
		member(4, "b", stats(39, 52, 43, 60, 50, 65), "fire"),
		member(7, "c", stats(44, 48, 65, 50, 64, 43), "water"),
	}}

	first := Analyze(team)
	second := Analyze(team)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("analysis changed between runs (-first +second):\n%s", diff)
	}
}
