package migrations

import (
	"regexp"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

func TestLoadOrdersByVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_add_index.sql": {Data: []byte("CREATE INDEX IF NOT EXISTS x ON t (a);")},
		"0001_init.sql":      {Data: []byte("CREATE TABLE IF NOT EXISTS t (a INT);")},
		"README.md":          {Data: []byte("ignored")},
	}
	migs, err := Load(fsys)
	if err != nil {
		t.Fatal(err)
	}
	if len(migs) != 2 || migs[0].Version != 1 || migs[0].Name != "init" || migs[1].Name != "add_index" {
		t.Fatalf("migrations: %+v", migs)
	}
	if migs[0].Checksum != checksum("CREATE TABLE IF NOT EXISTS t (a INT);") || len(migs[0].Checksum) != 64 {
		t.Fatalf("checksum: %s", migs[0].Checksum)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
		want string
	}{
		{
			name: "duplicate version",
			fsys: fstest.MapFS{
				"0001_a.sql": {Data: []byte("SELECT 1;")},
				"0001_b.sql": {Data: []byte("SELECT 2;")},
			},
			want: "duplicate version",
		},
		{
			name: "missing padding",
			fsys: fstest.MapFS{"1_init.sql": {Data: []byte("SELECT 1;")}},
			want: "malformed",
		},
		{
			name: "upper case name",
			fsys: fstest.MapFS{"0001_Init.sql": {Data: []byte("SELECT 1;")}},
			want: "malformed",
		},
		{
			name: "zero version",
			fsys: fstest.MapFS{"0000_init.sql": {Data: []byte("SELECT 1;")}},
			want: "0001",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.fsys)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("want error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestPlanDetectsPendingAndDrift(t *testing.T) {
	migs := []Migration{
		{Version: 1, Name: "init", Checksum: "aaa"},
		{Version: 2, Name: "indexes", Checksum: "bbb"},
		{Version: 3, Name: "carts", Checksum: "ccc"},
	}
	applied := map[int]Applied{
		1: {Version: 1, Checksum: "aaa"},
		2: {Version: 2, Checksum: "changed"},
	}
	pending, drifted := Plan(migs, applied)
	if len(pending) != 1 || pending[0].Version != 3 {
		t.Fatalf("pending: %+v", pending)
	}
	if len(drifted) != 1 || drifted[0].Version != 2 {
		t.Fatalf("drifted: %+v", drifted)
	}

	status := buildStatus(migs, map[int]Applied{1: {Version: 1, Checksum: "aaa", AppliedAt: time.Now()}})
	if !status[0].Applied || status[0].Drifted || status[1].Applied || status[2].AppliedAt != nil {
		t.Fatalf("status: %+v", status)
	}
}

func TestEmbeddedMigrationsAreContiguous(t *testing.T) {
	migs, err := Embedded()
	if err != nil {
		t.Fatal(err)
	}
	if len(migs) == 0 {
		t.Fatal("no embedded migrations")
	}
	for i, m := range migs {
		if m.Version != i+1 {
			t.Fatalf("gap before %04d_%s", m.Version, m.Name)
		}
	}
}

var (
	createTableRe = regexp.MustCompile(`(?i)CREATE\s+TABLE\s+`)
	createIndexRe = regexp.MustCompile(`(?i)CREATE\s+(UNIQUE\s+)?INDEX\s+`)
	addColumnRe   = regexp.MustCompile(`(?i)ADD\s+COLUMN\s+`)
	addConstrRe   = regexp.MustCompile(`(?i)ADD\s+CONSTRAINT\s+(\w+)`)
)

// Every statement must be safe to replay against a database that already
// has the object.
func TestEmbeddedMigrationsAreGuarded(t *testing.T) {
	migs, err := Embedded()
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range migs {
		for _, loc := range createTableRe.FindAllStringIndex(m.SQL, -1) {
			if !strings.HasPrefix(strings.ToUpper(m.SQL[loc[1]:]), "IF NOT EXISTS") {
				t.Errorf("%04d_%s: unguarded CREATE TABLE at %d", m.Version, m.Name, loc[0])
			}
		}
		for _, loc := range createIndexRe.FindAllStringIndex(m.SQL, -1) {
			if !strings.HasPrefix(strings.ToUpper(m.SQL[loc[1]:]), "IF NOT EXISTS") {
				t.Errorf("%04d_%s: unguarded CREATE INDEX at %d", m.Version, m.Name, loc[0])
			}
		}
		for _, loc := range addColumnRe.FindAllStringIndex(m.SQL, -1) {
			if !strings.HasPrefix(strings.ToUpper(m.SQL[loc[1]:]), "IF NOT EXISTS") {
				t.Errorf("%04d_%s: unguarded ADD COLUMN at %d", m.Version, m.Name, loc[0])
			}
		}
		for _, match := range addConstrRe.FindAllStringSubmatch(m.SQL, -1) {
			if !strings.Contains(m.SQL, "conname = '"+match[1]+"'") {
				t.Errorf("%04d_%s: constraint %s has no existence check", m.Version, m.Name, match[1])
			}
		}
	}
}
