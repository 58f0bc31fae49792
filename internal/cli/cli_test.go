package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// mustEnv runs studhub against dir and decodes the JSON envelope.
func mustEnv(t *testing.T, dir string, args ...string) map[string]any {
	t.Helper()
	full := append([]string{"--dir", dir}, args...)
	stdout, stderr, err := runCLI(t, full)
	if err != nil {
		t.Fatalf("command failed: studhub %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", full, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s", err, string(stdout))
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
	}
	return env
}

func mustFail(t *testing.T, dir string, args ...string) string {
	t.Helper()
	full := append([]string{"--dir", dir}, args...)
	stdout, stderr, err := runCLI(t, full)
	if err == nil {
		t.Fatalf("expected studhub %v to fail; stdout:\n%s", full, string(stdout))
	}
	return string(stderr)
}

func titlesOf(t *testing.T, env map[string]any) []string {
	t.Helper()
	xs, ok := env["data"].([]any)
	if !ok {
		t.Fatalf("expected data to be a list; got %T", env["data"])
	}
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		out = append(out, x.(map[string]any)["title"].(string))
	}
	return out
}

func labelTextsOf(t *testing.T, env map[string]any) []string {
	t.Helper()
	meta := env["meta"].(map[string]any)
	xs, ok := meta["labels"].([]any)
	if !ok {
		t.Fatalf("expected meta.labels to be a list; got %T", meta["labels"])
	}
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		out = append(out, x.(map[string]any)["text"].(string))
	}
	return out
}

func seededDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	mustEnv(t, dir, "init", "--seed")
	return dir
}

func TestInit_SeedsAndWritesConfig(t *testing.T) {
	dir := t.TempDir()

	env := mustEnv(t, dir, "init", "--seed")
	data := env["data"].(map[string]any)
	if got := data["seeded"].(float64); got != 10 {
		t.Fatalf("seeded: got %v want 10", got)
	}
	if data["configCreated"] != true {
		t.Fatalf("expected config.yaml to be created; got %#v", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("stat config.yaml: %v", err)
	}

	// A second init neither reseeds nor rewrites config.
	env = mustEnv(t, dir, "init", "--seed")
	data = env["data"].(map[string]any)
	if data["seeded"].(float64) != 0 || data["configCreated"] != false || data["listings"].(float64) != 10 {
		t.Fatalf("unexpected second init: %#v", data)
	}
}

func TestStats(t *testing.T) {
	dir := seededDir(t)

	env := mustEnv(t, dir, "stats")
	data := env["data"].(map[string]any)
	if data["listings"].(float64) != 10 || data["sellers"].(float64) != 7 || data["schools"].(float64) != 6 {
		t.Fatalf("unexpected stats: %#v", data)
	}
}

func TestSearch_LocationAndRating(t *testing.T) {
	dir := seededDir(t)

	env := mustEnv(t, dir, "search", "--location", "Binom 2 (BI-2)", "--rating", "4")
	if got, want := labelTextsOf(t, env), []string{"Binom 2 (BI-2)", "4+ звезд"}; strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("labels: got %v want %v", got, want)
	}
	if got, want := titlesOf(t, env), []string{"Репетитор по алгебре", "Ноутбук Lenovo ThinkPad"}; strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("titles: got %v want %v", got, want)
	}
	if total := env["meta"].(map[string]any)["total"].(float64); total != 2 {
		t.Fatalf("total: got %v want 2", total)
	}
}

func TestSearch_RemoveLabel(t *testing.T) {
	dir := seededDir(t)

	env := mustEnv(t, dir, "search", "--category", "Электроника", "--rating", "4", "--remove", "Электроника")
	if got := labelTextsOf(t, env); len(got) != 1 || got[0] != "4+ звезд" {
		t.Fatalf("labels after remove: got %v", got)
	}
	filters := env["meta"].(map[string]any)["filters"].(map[string]any)
	if filters["category"] != "" {
		t.Fatalf("expected category to be reset; got %#v", filters["category"])
	}
	// Unknown labels are ignored.
	env = mustEnv(t, dir, "search", "--rating", "5", "--remove", "что-то другое")
	if got := labelTextsOf(t, env); len(got) != 1 || got[0] != "5+ звезд" {
		t.Fatalf("labels: got %v", got)
	}
}

func TestSearch_ResetAxis(t *testing.T) {
	dir := seededDir(t)

	env := mustEnv(t, dir, "search", "--category", "Электроника", "--max-price", "3000", "--reset", "cat", "--reset", "PRICE")
	meta := env["meta"].(map[string]any)
	if got := labelTextsOf(t, env); len(got) != 0 {
		t.Fatalf("labels after reset: got %v", got)
	}
	price := meta["filters"].(map[string]any)["priceRange"].(map[string]any)
	if price["min"] != float64(0) || price["max"] != float64(10000) {
		t.Fatalf("expected full price range; got %v", price)
	}
	if meta["narrowed"] != false {
		t.Fatalf("expected narrowed=false; got %v", meta["narrowed"])
	}
	if total := meta["total"].(float64); total != 10 {
		t.Fatalf("expected the whole catalog; got %v", total)
	}

	env = mustEnv(t, dir, "search", "--rating", "4", "--reset", "school")
	if env["meta"].(map[string]any)["narrowed"] != true {
		t.Fatalf("expected the rating to keep the search narrowed")
	}

	if stderr := mustFail(t, dir, "search", "--reset", "size"); !strings.Contains(stderr, "invalid --reset size") {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
}

func TestSearch_QueryAndPrice(t *testing.T) {
	dir := seededDir(t)

	env := mustEnv(t, dir, "search", "--query", "РЕМОНТ", "--max-price", "9000")
	if got := titlesOf(t, env); len(got) != 1 || got[0] != "Ремонт смартфонов" {
		t.Fatalf("titles: got %v", got)
	}
	if got := labelTextsOf(t, env); len(got) != 0 {
		t.Fatalf("query and price never produce labels; got %v", got)
	}
}

func TestSearch_RejectsBadFlags(t *testing.T) {
	dir := seededDir(t)

	if stderr := mustFail(t, dir, "search", "--rating", "2"); !strings.Contains(stderr, "invalid --rating") {
		t.Fatalf("unexpected stderr: %q", stderr)
	}
	if stderr := mustFail(t, dir, "search", "--category", "Космос"); !strings.Contains(stderr, "unknown category") {
		t.Fatalf("unexpected stderr: %q", stderr)
	}
	if stderr := mustFail(t, dir, "search", "--min-price", "5000", "--max-price", "100"); !strings.Contains(stderr, "min <= max") {
		t.Fatalf("unexpected stderr: %q", stderr)
	}
}

func TestSearch_TextFormat(t *testing.T) {
	dir := seededDir(t)

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "--format", "text", "search", "--category", "Спорт"})
	if err != nil {
		t.Fatalf("search failed: %v\n%s", err, string(stderr))
	}
	out := string(stdout)
	if !strings.Contains(out, "Велосипед горный") || !strings.Contains(out, "Title") {
		t.Fatalf("unexpected table:\n%s", out)
	}
}

func TestFilters(t *testing.T) {
	dir := t.TempDir()

	env := mustEnv(t, dir, "filters")
	data := env["data"].(map[string]any)
	cats := data["categories"].([]any)
	if len(cats) != 9 || cats[0] != "Все категории" {
		t.Fatalf("categories: %v", cats)
	}
	locs := data["locations"].([]any)
	if len(locs) != 7 || locs[0] != "Все школы" {
		t.Fatalf("locations: %v", locs)
	}
	if axes := data["axes"].([]any); len(axes) != 4 || axes[2] != "priceRange" {
		t.Fatalf("axes: %v", axes)
	}
}

func TestListings_AddShowDelete(t *testing.T) {
	dir := t.TempDir()
	mustEnv(t, dir, "init")

	if stderr := mustFail(t, dir, "listings", "add", "--title", "Гитара", "--category", "Спорт", "--location", "KTL Almaty"); !strings.Contains(stderr, "--seller") {
		t.Fatalf("expected seller error; got %q", stderr)
	}

	added := mustEnv(t, dir, "--user", "Арман", "listings", "add",
		"--title", "Гитара", "--category", "Спорт", "--location", "KTL Almaty", "--price", "700", "--rating", "4.6")
	id, _ := added["data"].(map[string]any)["id"].(string)
	if !strings.HasPrefix(id, "lst-") {
		t.Fatalf("expected generated id; got %q", id)
	}

	shown := mustEnv(t, dir, "listings", "show", id)
	l := shown["data"].(map[string]any)
	if l["title"] != "Гитара" || l["seller"] != "Арман" || l["price"].(float64) != 700 {
		t.Fatalf("unexpected listing: %#v", l)
	}

	listed := mustEnv(t, dir, "listings", "list")
	if got := titlesOf(t, listed); len(got) != 1 {
		t.Fatalf("list: got %v", got)
	}

	mustEnv(t, dir, "listings", "delete", id)
	if stderr := mustFail(t, dir, "listings", "show", id); !strings.Contains(stderr, "listing not found") {
		t.Fatalf("unexpected stderr: %q", stderr)
	}
}

func TestListings_Import(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(t.TempDir(), "listings.yaml")
	yml := `listings:
  - title: Микроскоп
    category: Электроника
    location: NIS Astana
    price: 1200
    seller: Асель
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	env := mustEnv(t, dir, "listings", "import", path)
	if n := env["data"].(map[string]any)["imported"].(float64); n != 1 {
		t.Fatalf("imported: got %v want 1", n)
	}
	found := mustEnv(t, dir, "search", "--query", "микроскоп")
	if got := titlesOf(t, found); len(got) != 1 || got[0] != "Микроскоп" {
		t.Fatalf("search after import: got %v", got)
	}
}

func TestLoginLogoutWhoami(t *testing.T) {
	dir := t.TempDir()

	who := mustEnv(t, dir, "whoami")
	if who["data"].(map[string]any)["loggedIn"] != false {
		t.Fatalf("expected guest; got %#v", who["data"])
	}

	mustFail(t, dir, "login", "   ")

	mustEnv(t, dir, "login", "Мадина")
	who = mustEnv(t, dir, "whoami")
	if d := who["data"].(map[string]any); d["loggedIn"] != true || d["user"] != "Мадина" {
		t.Fatalf("unexpected whoami after login: %#v", d)
	}

	// The remembered user becomes the default seller.
	added := mustEnv(t, dir, "listings", "add", "--title", "Глобус", "--category", "Книги и учебники", "--location", "Binom 3 (BI-3)")
	if added["data"].(map[string]any)["seller"] != "Мадина" {
		t.Fatalf("expected seller from login; got %#v", added["data"])
	}

	mustEnv(t, dir, "logout")
	who = mustEnv(t, dir, "whoami")
	if d := who["data"].(map[string]any); d["loggedIn"] != false || d["user"] != "" {
		t.Fatalf("unexpected whoami after logout: %#v", d)
	}
}

func TestDocs(t *testing.T) {
	dir := t.TempDir()

	env := mustEnv(t, dir, "docs")
	topics := env["data"].(map[string]any)["topics"].([]any)
	if len(topics) != 4 {
		t.Fatalf("topics: %v", topics)
	}

	stdout, _, err := runCLI(t, []string{"--dir", dir, "docs", "filters", "--raw"})
	if err != nil {
		t.Fatalf("docs --raw: %v", err)
	}
	if !strings.HasPrefix(string(stdout), "# Filters") {
		t.Fatalf("unexpected raw docs:\n%s", string(stdout))
	}

	if stderr := mustFail(t, dir, "docs", "nope"); !strings.Contains(stderr, "unknown docs topic") {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
}

func TestPublishCatalog(t *testing.T) {
	dir := seededDir(t)
	out := filepath.Join(t.TempDir(), "site")

	env := mustEnv(t, dir, "publish", "catalog", "--to", out)
	written := env["data"].(map[string]any)["written"].([]any)
	if len(written) != 11 {
		t.Fatalf("expected index + 10 pages; got %d", len(written))
	}
	index, err := os.ReadFile(filepath.Join(out, "index.md"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if !strings.Contains(string(index), "## Электроника") {
		t.Fatalf("unexpected index:\n%s", string(index))
	}

	if stderr := mustFail(t, dir, "publish", "catalog", "--to", out); !strings.Contains(stderr, "file exists") {
		t.Fatalf("expected overwrite guard; got %s", stderr)
	}
	mustEnv(t, dir, "publish", "catalog", "--to", out, "--overwrite")

	if stderr := mustFail(t, dir, "publish", "listing", "lst-missing", "--to", out); !strings.Contains(stderr, "listing not found") {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
}
