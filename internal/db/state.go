package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nutriflavoros/nutriplan-cli/internal/model"
)

// Fixed app_state keys. Nothing outside this package depends on the
// literal names.
const (
	keySessionToken = "session.token"
	keySessionUser  = "session.user"
	keyProfile      = "profile"
	keyPlanCurrent  = "plan.current"
	keyPlanFetched  = "plan.fetched_at"
)

// StateStore is the typed face of the app_state and plan_history
// tables.
type StateStore struct {
	sqldb *sql.DB
}

func NewStateStore(sqldb *sql.DB) *StateStore {
	return &StateStore{sqldb: sqldb}
}

func (s *StateStore) set(key, value string) error {
	_, err := s.sqldb.Exec(`
INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`, key, value)
	if err != nil {
		return fmt.Errorf("write state key %q: %w", key, err)
	}
	return nil
}

// get returns the stored value, or ("", false) when the key is absent.
func (s *StateStore) get(key string) (string, bool, error) {
	var value string
	err := s.sqldb.QueryRow(`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read state key %q: %w", key, err)
	}
	return value, true, nil
}

func (s *StateStore) delete(keys ...string) error {
	for _, key := range keys {
		if _, err := s.sqldb.Exec(`DELETE FROM app_state WHERE key = ?`, key); err != nil {
			return fmt.Errorf("delete state key %q: %w", key, err)
		}
	}
	return nil
}

// SaveProfile mirrors the in-memory profile; called on every profile
// transition so a reload starts from last-known-good state.
func (s *StateStore) SaveProfile(profile *model.UserProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.set(keyProfile, string(payload))
}

func (s *StateStore) LoadProfile() (*model.UserProfile, error) {
	raw, ok, err := s.get(keyProfile)
	if err != nil || !ok {
		return nil, err
	}
	var profile model.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("decode stored profile: %w", err)
	}
	return &profile, nil
}

func (s *StateStore) SaveSession(session *model.Session) error {
	user, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}
	if err := s.set(keySessionToken, session.AccessToken); err != nil {
		return err
	}
	return s.set(keySessionUser, string(user))
}

// LoadSession returns nil when no session is stored.
func (s *StateStore) LoadSession() (*model.Session, error) {
	token, ok, err := s.get(keySessionToken)
	if err != nil || !ok {
		return nil, err
	}
	rawUser, ok, err := s.get(keySessionUser)
	if err != nil {
		return nil, err
	}
	session := &model.Session{AccessToken: token}
	if ok {
		if err := json.Unmarshal([]byte(rawUser), &session.User); err != nil {
			return nil, fmt.Errorf("decode stored user: %w", err)
		}
	}
	return session, nil
}

func (s *StateStore) ClearSession() error {
	return s.delete(keySessionToken, keySessionUser)
}

// SavePlan stores the current plan with its fetch timestamp so staleness
// can be judged on the next start.
func (s *StateStore) SavePlan(plan *model.MealPlan, fetchedAt time.Time) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	if err := s.set(keyPlanCurrent, string(payload)); err != nil {
		return err
	}
	return s.set(keyPlanFetched, fetchedAt.UTC().Format(time.RFC3339))
}

// LoadPlan returns the stored plan and when it was fetched, or nil when
// none is stored.
func (s *StateStore) LoadPlan() (*model.MealPlan, time.Time, error) {
	raw, ok, err := s.get(keyPlanCurrent)
	if err != nil || !ok {
		return nil, time.Time{}, err
	}
	var plan model.MealPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode stored plan: %w", err)
	}
	rawAt, ok, err := s.get(keyPlanFetched)
	if err != nil {
		return nil, time.Time{}, err
	}
	var fetchedAt time.Time
	if ok {
		fetchedAt, err = time.Parse(time.RFC3339, rawAt)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("parse plan fetch time: %w", err)
		}
	}
	return &plan, fetchedAt, nil
}

// AppendPlanHistory records a generated plan and prunes the table down
// to cap rows, oldest first.
func (s *StateStore) AppendPlanHistory(plan *model.MealPlan, cap int) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal history plan: %w", err)
	}
	if _, err := s.sqldb.Exec(`INSERT INTO plan_history (payload) VALUES (?)`, string(payload)); err != nil {
		return fmt.Errorf("append plan history: %w", err)
	}
	if cap <= 0 {
		return nil
	}
	_, err = s.sqldb.Exec(`
DELETE FROM plan_history WHERE id NOT IN (
  SELECT id FROM plan_history ORDER BY id DESC LIMIT ?
)`, cap)
	if err != nil {
		return fmt.Errorf("prune plan history: %w", err)
	}
	return nil
}

// ListPlanHistory returns up to limit stored plans, newest first.
func (s *StateStore) ListPlanHistory(limit int) ([]*model.MealPlan, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.sqldb.Query(`SELECT payload FROM plan_history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list plan history: %w", err)
	}
	defer rows.Close()

	var plans []*model.MealPlan
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan plan history row: %w", err)
		}
		var plan model.MealPlan
		if err := json.Unmarshal([]byte(payload), &plan); err != nil {
			return nil, fmt.Errorf("decode plan history row: %w", err)
		}
		plans = append(plans, &plan)
	}
	return plans, rows.Err()
}
