package store

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nutriflavoros/nutriplan-cli/internal/model"
)

type GamificationState struct {
	Achievements  []model.Achievement
	Leaderboards  map[string][]model.LeaderboardEntry
	Streak        int
	ImpactMetrics *model.ImpactSummary
	Loading       bool
	Err           string
}

type GamificationAction interface{ isGamificationAction() }

type SetAchievements struct{ Achievements []model.Achievement }

// UnlockAchievement flips one achievement locked → unlocked, typically
// driving an unlock animation. Unknown ids are a logged no-op.
type UnlockAchievement struct{ ID string }

// SetLeaderboard replaces the entries for one board type wholesale;
// entries from different fetches are never merged.
type SetLeaderboard struct {
	Type    string
	Entries []model.LeaderboardEntry
}

type SetStreak struct{ Streak int }

type SetImpactMetrics struct{ Metrics *model.ImpactSummary }

type SetGamificationLoading struct{ Loading bool }

type SetGamificationError struct{ Message string }

type ClearGamificationError struct{}

func (SetAchievements) isGamificationAction()        {}
func (UnlockAchievement) isGamificationAction()      {}
func (SetLeaderboard) isGamificationAction()         {}
func (SetStreak) isGamificationAction()              {}
func (SetImpactMetrics) isGamificationAction()       {}
func (SetGamificationLoading) isGamificationAction() {}
func (SetGamificationError) isGamificationAction()   {}
func (ClearGamificationError) isGamificationAction() {}

type GamificationStore = Store[GamificationState, GamificationAction]

func NewGamificationStore(log zerolog.Logger) *GamificationStore {
	return New(GamificationState{Leaderboards: map[string][]model.LeaderboardEntry{}}, ReduceGamification, log)
}

func ReduceGamification(s GamificationState, action GamificationAction) (GamificationState, string) {
	switch a := action.(type) {
	case SetAchievements:
		s.Achievements = a.Achievements
		s.Loading = false
		return s, ""

	case UnlockAchievement:
		found := false
		next := make([]model.Achievement, len(s.Achievements))
		for i, ach := range s.Achievements {
			if ach.ID == a.ID {
				ach.Unlocked = true
				found = true
			}
			next[i] = ach
		}
		if !found {
			return s, fmt.Sprintf("unlock achievement: id %q unknown", a.ID)
		}
		s.Achievements = next
		return s, ""

	case SetLeaderboard:
		boards := make(map[string][]model.LeaderboardEntry, len(s.Leaderboards)+1)
		for k, v := range s.Leaderboards {
			boards[k] = v
		}
		boards[a.Type] = a.Entries
		s.Leaderboards = boards
		s.Loading = false
		return s, ""

	case SetStreak:
		s.Streak = a.Streak
		s.Loading = false
		return s, ""

	case SetImpactMetrics:
		s.ImpactMetrics = a.Metrics
		s.Loading = false
		return s, ""

	case SetGamificationLoading:
		s.Loading = a.Loading
		return s, ""

	case SetGamificationError:
		s.Err = a.Message
		s.Loading = false
		return s, ""

	case ClearGamificationError:
		s.Err = ""
		return s, ""
	}
	return s, ""
}
