package store

import (
	"fmt"
	"maps"

	"github.com/rs/zerolog"

	"github.com/nutriflavoros/nutriplan-cli/internal/model"
)

// historyCap bounds the plan history ring: newest first, oldest evicted.
const historyCap = 10

type MealPlanState struct {
	CurrentPlan *model.MealPlan
	PlanHistory []*model.MealPlan
	Loading     bool
	Err         string
}

type MealPlanAction interface{ isMealPlanAction() }

// SetPlan replaces the whole plan, e.g. after generation.
type SetPlan struct{ Plan *model.MealPlan }

// UpdateDay replaces one day in place, leaving every other day's
// pointer untouched.
type UpdateDay struct {
	DayIndex int
	Day      *model.DailyPlan
}

// UpdateMeal replaces exactly one slot of one day. All other slots and
// days keep reference identity so nothing else appears changed.
type UpdateMeal struct {
	DayIndex int
	MealSlot string
	Recipe   *model.Recipe
}

type AddToHistory struct{ Plan *model.MealPlan }

type SetPlanLoading struct{ Loading bool }

type SetPlanError struct{ Message string }

type ClearPlanError struct{}

func (SetPlan) isMealPlanAction()        {}
func (UpdateDay) isMealPlanAction()      {}
func (UpdateMeal) isMealPlanAction()     {}
func (AddToHistory) isMealPlanAction()   {}
func (SetPlanLoading) isMealPlanAction() {}
func (SetPlanError) isMealPlanAction()   {}
func (ClearPlanError) isMealPlanAction() {}

type MealPlanStore = Store[MealPlanState, MealPlanAction]

func NewMealPlanStore(log zerolog.Logger) *MealPlanStore {
	return New(MealPlanState{}, ReduceMealPlan, log)
}

func ReduceMealPlan(s MealPlanState, action MealPlanAction) (MealPlanState, string) {
	switch a := action.(type) {
	case SetPlan:
		s.CurrentPlan = a.Plan
		s.Loading = false
		return s, ""

	case UpdateDay:
		if s.CurrentPlan == nil {
			return s, "update day: no current plan"
		}
		if a.DayIndex < 0 || a.DayIndex >= len(s.CurrentPlan.Days) {
			return s, fmt.Sprintf("update day: day %d not in plan", a.DayIndex)
		}
		days := make([]*model.DailyPlan, len(s.CurrentPlan.Days))
		copy(days, s.CurrentPlan.Days)
		days[a.DayIndex] = a.Day
		plan := *s.CurrentPlan
		plan.Days = days
		s.CurrentPlan = &plan
		s.Loading = false
		return s, ""

	case UpdateMeal:
		if s.CurrentPlan == nil {
			return s, "update meal: no current plan"
		}
		if a.DayIndex < 0 || a.DayIndex >= len(s.CurrentPlan.Days) {
			return s, fmt.Sprintf("update meal: day %d not in plan", a.DayIndex)
		}
		day := s.CurrentPlan.Days[a.DayIndex]
		if _, ok := day.Meals[a.MealSlot]; !ok {
			return s, fmt.Sprintf("update meal: slot %q not in day %d", a.MealSlot, a.DayIndex)
		}
		meals := make(map[string]*model.Recipe, len(day.Meals))
		maps.Copy(meals, day.Meals)
		meals[a.MealSlot] = a.Recipe

		newDay := *day
		newDay.Meals = meals

		days := make([]*model.DailyPlan, len(s.CurrentPlan.Days))
		copy(days, s.CurrentPlan.Days)
		days[a.DayIndex] = &newDay

		plan := *s.CurrentPlan
		plan.Days = days
		s.CurrentPlan = &plan
		s.Loading = false
		return s, ""

	case AddToHistory:
		history := make([]*model.MealPlan, 0, historyCap)
		history = append(history, a.Plan)
		history = append(history, s.PlanHistory...)
		if len(history) > historyCap {
			history = history[:historyCap]
		}
		s.PlanHistory = history
		return s, ""

	case SetPlanLoading:
		s.Loading = a.Loading
		return s, ""

	case SetPlanError:
		s.Err = a.Message
		s.Loading = false
		return s, ""

	case ClearPlanError:
		s.Err = ""
		return s, ""
	}
	return s, ""
}
