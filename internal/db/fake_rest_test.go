package db

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	postgrest "github.com/supabase-community/postgrest-go"
)

// fakeREST is a minimal in-memory PostgREST: eq filters, order, limit, insert and patch.
type fakeREST struct {
	mu      sync.Mutex
	tables  map[string][]map[string]interface{}
	queries []string
	fail    bool
}

func newFakeREST(t *testing.T) (*fakeREST, *postgrest.Client) {
	t.Helper()
	fake := &fakeREST{tables: map[string][]map[string]interface{}{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client := postgrest.NewClient(srv.URL, "", map[string]string{
		"apikey":        "service-key",
		"Authorization": "Bearer service-key",
	})
	return fake, client
}

func (f *fakeREST) seed(table string, rows ...map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[table] = append(f.tables[table], rows...)
}

func (f *fakeREST) rows(table string) []map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]interface{}(nil), f.tables[table]...)
}

func (f *fakeREST) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries = append(f.queries, r.Method+" "+r.URL.Path+"?"+r.URL.RawQuery)
	w.Header().Set("Content-Type", "application/json")

	if f.fail {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code":"XX000","message":"database unavailable","details":null,"hint":null}`))
		return
	}

	table := strings.TrimPrefix(r.URL.Path, "/")
	switch r.Method {
	case http.MethodPost:
		raw, _ := io.ReadAll(r.Body)
		var rows []map[string]interface{}
		if err := json.Unmarshal(raw, &rows); err != nil {
			var row map[string]interface{}
			if err := json.Unmarshal(raw, &row); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"code":"PGRST102","message":"bad body"}`))
				return
			}
			rows = []map[string]interface{}{row}
		}
		for _, row := range rows {
			if _, ok := row["id"]; !ok {
				row["id"] = uuid.NewString()
			}
			if _, ok := row["created_at"]; !ok {
				row["created_at"] = time.Now().UTC().Format(time.RFC3339Nano)
			}
			f.tables[table] = append(f.tables[table], row)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(rows)
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(f.query(table, r))
	case http.MethodPatch:
		var fields map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&fields)
		matched := f.query(table, r)
		for _, row := range matched {
			for k, v := range fields {
				row[k] = v
			}
		}
		_ = json.NewEncoder(w).Encode(matched)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeREST) query(table string, r *http.Request) []map[string]interface{} {
	params := r.URL.Query()
	out := []map[string]interface{}{}
	for _, row := range f.tables[table] {
		match := true
		for key, values := range params {
			if key == "select" || key == "order" || key == "limit" {
				continue
			}
			want := strings.TrimPrefix(values[0], "eq.")
			if got, _ := row[key].(string); got != want {
				match = false
			}
		}
		if match {
			out = append(out, row)
		}
	}

	if order := params.Get("order"); strings.HasPrefix(order, "created_at.desc") {
		sort.SliceStable(out, func(i, j int) bool {
			return parseTime(out[i]["created_at"]).After(parseTime(out[j]["created_at"]))
		})
	}
	if limit, err := strconv.Atoi(params.Get("limit")); err == nil && limit < len(out) {
		out = out[:limit]
	}
	return out
}

func parseTime(v interface{}) time.Time {
	s, _ := v.(string)
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
