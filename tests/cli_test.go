package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func buildNutriplanBinary(t *testing.T) string {
	t.Helper()
	repoRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("resolve repo root: %v", err)
	}
	binPath := filepath.Join(t.TempDir(), "nutriplan")
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = repoRoot
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("build nutriplan binary: %v\n%s", err, string(out))
	}
	return binPath
}

func runNutriplan(t *testing.T, binPath, dbPath, apiURL string, args ...string) (string, string, int) {
	t.Helper()
	allArgs := append([]string{"--db", dbPath}, args...)
	cmd := exec.Command(binPath, allArgs...)
	cmd.Env = append(os.Environ(), "NUTRIPLAN_API_BASE_URL="+apiURL)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return stdout.String(), stderr.String(), 0
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("run nutriplan command: %v", err)
	}
	return stdout.String(), stderr.String(), exitErr.ExitCode()
}

func stubBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"access_token": "tok-e2e",
			"user":         map[string]string{"id": "u1", "name": "Dana", "email": "dana@example.com"},
		})
	})
	mux.HandleFunc("/api/v1/meals/generate", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"user_id": "u1",
			"days": []map[string]any{
				{
					"day": 1,
					"meals": map[string]any{
						"breakfast": map[string]any{"id": "r1", "name": "Oatmeal", "calories": 320, "macros": map[string]float64{"protein": 12, "carbs": 54, "fat": 6}},
						"dinner":    map[string]any{"id": "r2", "name": "Lentil Curry", "calories": 540, "macros": map[string]float64{"protein": 24, "carbs": 70, "fat": 14}},
					},
					"total_stats": map[string]float64{"calories": 860},
				},
			},
		})
	})
	mux.HandleFunc("/api/v1/recipes/search", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{
			{"id": "r9", "name": "Green Curry", "calories": 480, "cuisine": "thai", "macros": map[string]float64{"protein": 18, "carbs": 40, "fat": 22}},
		})
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestVersionWorksOffline(t *testing.T) {
	binPath := buildNutriplanBinary(t)
	dbPath := filepath.Join(t.TempDir(), "nutriplan.db")

	stdout, stderr, exit := runNutriplan(t, binPath, dbPath, "http://127.0.0.1:0", "version")
	if exit != 0 {
		t.Fatalf("version failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "nutriplan") {
		t.Fatalf("expected version output, got: %s", stdout)
	}
}

func TestProfileSetAndShowWithoutBackend(t *testing.T) {
	binPath := buildNutriplanBinary(t)
	dbPath := filepath.Join(t.TempDir(), "nutriplan.db")
	offline := "http://127.0.0.1:0"

	_, stderr, exit := runNutriplan(t, binPath, dbPath, offline,
		"profile", "set",
		"--name", "Dana",
		"--age", "31",
		"--weight", "68.5",
		"--height", "172",
		"--gender", "female",
		"--goal", "maintenance",
		"--likes", "tofu,spinach",
	)
	if exit != 0 {
		t.Fatalf("profile set failed: exit=%d stderr=%s", exit, stderr)
	}

	// The profile is mirrored locally, so a later run shows it with the
	// backend unreachable.
	stdout, stderr, exit := runNutriplan(t, binPath, dbPath, offline, "profile", "show")
	if exit != 0 {
		t.Fatalf("profile show failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "Dana") || !strings.Contains(stdout, "tofu") {
		t.Fatalf("expected mirrored profile in output, got: %s", stdout)
	}
}

func TestProfileSetRejectsNonNumericAge(t *testing.T) {
	binPath := buildNutriplanBinary(t)
	dbPath := filepath.Join(t.TempDir(), "nutriplan.db")

	_, stderr, exit := runNutriplan(t, binPath, dbPath, "http://127.0.0.1:0",
		"profile", "set",
		"--age", "thirty",
		"--weight", "68",
		"--height", "172",
		"--gender", "female",
		"--goal", "maintenance",
	)
	if exit == 0 {
		t.Fatal("expected non-zero exit for invalid age")
	}
	if !strings.Contains(stderr, "invalid age") {
		t.Fatalf("expected age validation error, got: %s", stderr)
	}
}

func TestPlanGenerateThenShowFromCacheOffline(t *testing.T) {
	binPath := buildNutriplanBinary(t)
	dbPath := filepath.Join(t.TempDir(), "nutriplan.db")
	backend := stubBackend(t)

	_, stderr, exit := runNutriplan(t, binPath, dbPath, backend.URL,
		"profile", "set",
		"--age", "31", "--weight", "68", "--height", "172",
		"--gender", "female", "--goal", "maintenance",
	)
	if exit != 0 {
		t.Fatalf("profile set failed: exit=%d stderr=%s", exit, stderr)
	}

	stdout, stderr, exit := runNutriplan(t, binPath, dbPath, backend.URL, "plan", "generate")
	if exit != 0 {
		t.Fatalf("plan generate failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "Oatmeal") || !strings.Contains(stdout, "Lentil Curry") {
		t.Fatalf("expected generated plan in output, got: %s", stdout)
	}

	// Within the freshness window the plan renders from the local cache
	// even with the backend gone.
	stdout, stderr, exit = runNutriplan(t, binPath, dbPath, "http://127.0.0.1:0", "plan", "show")
	if exit != 0 {
		t.Fatalf("cached plan show failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "Oatmeal") {
		t.Fatalf("expected cached plan in output, got: %s", stdout)
	}

	stdout, stderr, exit = runNutriplan(t, binPath, dbPath, "http://127.0.0.1:0", "plan", "history")
	if exit != 0 {
		t.Fatalf("plan history failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "1 days") {
		t.Fatalf("expected one history entry, got: %s", stdout)
	}
}

func TestPlanSwapRejectsBadDayArg(t *testing.T) {
	binPath := buildNutriplanBinary(t)
	dbPath := filepath.Join(t.TempDir(), "nutriplan.db")

	_, stderr, exit := runNutriplan(t, binPath, dbPath, "http://127.0.0.1:0", "plan", "swap", "zero", "lunch")
	if exit == 0 {
		t.Fatal("expected non-zero exit for invalid day")
	}
	if !strings.Contains(stderr, "invalid day") {
		t.Fatalf("expected day validation error, got: %s", stderr)
	}
}

func TestAuthLoginThenWhoami(t *testing.T) {
	binPath := buildNutriplanBinary(t)
	dbPath := filepath.Join(t.TempDir(), "nutriplan.db")
	backend := stubBackend(t)

	stdout, stderr, exit := runNutriplan(t, binPath, dbPath, backend.URL,
		"auth", "login", "--email", "dana@example.com", "--password", "hunter2")
	if exit != 0 {
		t.Fatalf("login failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "Logged in as Dana") {
		t.Fatalf("unexpected login output: %s", stdout)
	}

	// The session survives into the next run without the backend.
	stdout, stderr, exit = runNutriplan(t, binPath, dbPath, "http://127.0.0.1:0", "auth", "whoami")
	if exit != 0 {
		t.Fatalf("whoami failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "dana@example.com") {
		t.Fatalf("expected stored user in whoami, got: %s", stdout)
	}

	_, stderr, exit = runNutriplan(t, binPath, dbPath, "http://127.0.0.1:0", "auth", "logout")
	if exit != 0 {
		t.Fatalf("logout failed: exit=%d stderr=%s", exit, stderr)
	}
	stdout, _, exit = runNutriplan(t, binPath, dbPath, "http://127.0.0.1:0", "auth", "whoami")
	if exit != 0 || !strings.Contains(stdout, "Not logged in") {
		t.Fatalf("expected logged-out whoami, got exit=%d stdout=%s", exit, stdout)
	}
}

func TestRecipeSearchRendersTable(t *testing.T) {
	binPath := buildNutriplanBinary(t)
	dbPath := filepath.Join(t.TempDir(), "nutriplan.db")
	backend := stubBackend(t)

	stdout, stderr, exit := runNutriplan(t, binPath, dbPath, backend.URL, "recipe", "search", "curry")
	if exit != 0 {
		t.Fatalf("recipe search failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "Green Curry") || !strings.Contains(stdout, "thai") {
		t.Fatalf("expected search results, got: %s", stdout)
	}
}

func TestUnauthenticatedGroceryListFailsWithHint(t *testing.T) {
	binPath := buildNutriplanBinary(t)
	dbPath := filepath.Join(t.TempDir(), "nutriplan.db")

	_, stderr, exit := runNutriplan(t, binPath, dbPath, "http://127.0.0.1:0", "grocery", "list")
	if exit == 0 {
		t.Fatal("expected non-zero exit when not logged in")
	}
	if !strings.Contains(stderr, "not logged in") {
		t.Fatalf("expected login hint, got: %s", stderr)
	}
}
