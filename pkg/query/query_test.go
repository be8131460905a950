package query_test

import (
	"reflect"
	"testing"

	"github.com/talonhq/talon/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "resumes", "r").
		Project("id", "ID").
		Project("original_name", "OriginalName").
		Project("status", "Status").
		Project("created_at", "CreatedAt")
}

func ptr[T any](v T) *T { return &v }

func TestProjectionMapTable(t *testing.T) {
	p := testProjection()
	if got, want := p.Table(), "public.resumes r"; got != want {
		t.Errorf("Table() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumns(t *testing.T) {
	p := testProjection()
	want := "r.id, r.original_name, r.status, r.created_at"
	if got := p.Columns(); got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumnLookup(t *testing.T) {
	p := testProjection()

	tests := []struct {
		name     string
		viewName string
		want     string
	}{
		{"mapped field", "OriginalName", "r.original_name"},
		{"unmapped passthrough", "unknown", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Column(tt.viewName); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.viewName, got, tt.want)
			}
		})
	}
}

func TestProjectionMapJoin(t *testing.T) {
	p := query.NewProjectionMap("public", "evaluations", "e").
		Project("id", "ID").
		Join("public", "resumes", "r", "INNER JOIN", "r.id = e.resume_id").
		Project("original_name", "OriginalName")

	wantFrom := "public.evaluations e INNER JOIN public.resumes r ON r.id = e.resume_id"
	if got := p.From(); got != wantFrom {
		t.Errorf("From() = %q, want %q", got, wantFrom)
	}

	if got := p.Column("OriginalName"); got != "r.original_name" {
		t.Errorf("Column(OriginalName) = %q, want %q", got, "r.original_name")
	}
	if got := p.Column("ID"); got != "e.id" {
		t.Errorf("Column(ID) = %q, want %q", got, "e.id")
	}
}

func TestProjectionMapFilterOnly(t *testing.T) {
	p := query.NewProjectionMap("public", "evaluations", "e").
		Project("id", "ID").
		Join("public", "resumes", "r", "INNER JOIN", "r.id = e.resume_id").
		Map("search_text", "ResumeContent")

	if got := p.Column("ResumeContent"); got != "r.search_text" {
		t.Errorf("Column(ResumeContent) = %q, want %q", got, "r.search_text")
	}
	if got := p.Columns(); got != "e.id" {
		t.Errorf("Columns() = %q, want select list unchanged", got)
	}

	search := "docker"
	sql, args := query.NewBuilder(p).
		WhereSearch(&search, "ResumeContent").
		Build()

	wantSQL := "SELECT e.id FROM public.evaluations e " +
		"INNER JOIN public.resumes r ON r.id = e.resume_id " +
		"WHERE (r.search_text ILIKE $1)"
	if sql != wantSQL {
		t.Errorf("Build() = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "%docker%" {
		t.Errorf("args = %v, want [%%docker%%]", args)
	}
}

func TestProjectionMapFromWithoutJoins(t *testing.T) {
	p := testProjection()
	if got := p.From(); got != p.Table() {
		t.Errorf("From() = %q, want %q", got, p.Table())
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty string", "", nil},
		{"single ascending", "Name", []query.SortField{{Field: "Name"}}},
		{"single descending", "-CreatedAt", []query.SortField{{Field: "CreatedAt", Descending: true}}},
		{
			name:  "mixed with whitespace",
			input: "Name, -CreatedAt",
			want: []query.SortField{
				{Field: "Name"},
				{Field: "CreatedAt", Descending: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSortFields(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuilderBuild(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).Build()

	want := "SELECT r.id, r.original_name, r.status, r.created_at FROM public.resumes r"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderConditions(t *testing.T) {
	tests := []struct {
		name     string
		build    func(*query.Builder) *query.Builder
		wantSQL  string
		wantArgs []any
	}{
		{
			name: "where equals",
			build: func(b *query.Builder) *query.Builder {
				return b.WhereEquals("Status", ptr("parsed"))
			},
			wantSQL:  " WHERE r.status = $1",
			wantArgs: []any{ptr("parsed")},
		},
		{
			name: "nil equals is no-op",
			build: func(b *query.Builder) *query.Builder {
				return b.WhereEquals("Status", (*string)(nil))
			},
			wantSQL:  "",
			wantArgs: nil,
		},
		{
			name: "where contains",
			build: func(b *query.Builder) *query.Builder {
				return b.WhereContains("OriginalName", ptr("smith"))
			},
			wantSQL:  " WHERE r.original_name ILIKE $1",
			wantArgs: []any{"%smith%"},
		},
		{
			name: "where at least",
			build: func(b *query.Builder) *query.Builder {
				return b.WhereAtLeast("Status", ptr(70.0))
			},
			wantSQL:  " WHERE r.status >= $1",
			wantArgs: []any{ptr(70.0)},
		},
		{
			name: "nil at least is no-op",
			build: func(b *query.Builder) *query.Builder {
				return b.WhereAtLeast("Status", (*float64)(nil))
			},
			wantSQL:  "",
			wantArgs: nil,
		},
		{
			name: "chained conditions number sequentially",
			build: func(b *query.Builder) *query.Builder {
				return b.
					WhereEquals("Status", ptr("parsed")).
					WhereContains("OriginalName", ptr("smith"))
			},
			wantSQL:  " WHERE r.status = $1 AND r.original_name ILIKE $2",
			wantArgs: []any{ptr("parsed"), "%smith%"},
		},
	}

	base := "SELECT r.id, r.original_name, r.status, r.created_at FROM public.resumes r"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.build(query.NewBuilder(testProjection())).Build()

			if sql != base+tt.wantSQL {
				t.Errorf("sql = %q, want %q", sql, base+tt.wantSQL)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestBuilderOrderBy(t *testing.T) {
	t.Run("default sort", func(t *testing.T) {
		sql, _ := query.NewBuilder(
			testProjection(),
			query.SortField{Field: "CreatedAt", Descending: true},
		).Build()

		want := " ORDER BY r.created_at DESC"
		if got := sql[len(sql)-len(want):]; got != want {
			t.Errorf("order by = %q, want %q", got, want)
		}
	})

	t.Run("explicit sort overrides default", func(t *testing.T) {
		sql, _ := query.NewBuilder(
			testProjection(),
			query.SortField{Field: "CreatedAt", Descending: true},
		).OrderByFields([]query.SortField{{Field: "OriginalName"}}).Build()

		want := " ORDER BY r.original_name ASC"
		if got := sql[len(sql)-len(want):]; got != want {
			t.Errorf("order by = %q, want %q", got, want)
		}
	})
}

func TestBuilderBuildPage(t *testing.T) {
	sql, _ := query.NewBuilder(testProjection()).BuildPage(3, 25)

	want := " LIMIT 25 OFFSET 50"
	if got := sql[len(sql)-len(want):]; got != want {
		t.Errorf("pagination = %q, want %q", got, want)
	}
}

func TestBuilderBuildCount(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereEquals("Status", ptr("parsed")).
		BuildCount()

	want := "SELECT COUNT(*) FROM public.resumes r WHERE r.status = $1"
	if sql != want {
		t.Errorf("BuildCount() = %q, want %q", sql, want)
	}
	if len(args) != 1 {
		t.Errorf("args = %v, want one", args)
	}
}

func TestBuilderBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildSingle("ID", "abc")

	want := "SELECT r.id, r.original_name, r.status, r.created_at FROM public.resumes r WHERE r.id = $1"
	if sql != want {
		t.Errorf("BuildSingle() = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("args = %v, want [abc]", args)
	}
}

func TestBuilderWhereNullable(t *testing.T) {
	t.Run("nil value becomes IS NULL", func(t *testing.T) {
		sql, args := query.NewBuilder(testProjection()).
			WhereNullable("Status", (*string)(nil)).
			Build()

		if got := " WHERE r.status IS NULL"; sql[len(sql)-len(got):] != got {
			t.Errorf("sql = %q, want suffix %q", sql, got)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("value becomes equality", func(t *testing.T) {
		sql, args := query.NewBuilder(testProjection()).
			WhereNullable("Status", "parsed").
			Build()

		if got := " WHERE r.status = $1"; sql[len(sql)-len(got):] != got {
			t.Errorf("sql = %q, want suffix %q", sql, got)
		}
		if len(args) != 1 {
			t.Errorf("args = %v, want one", args)
		}
	})
}

func TestBuilderWhereSearch(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereSearch(ptr("jane"), "OriginalName", "Status").
		Build()

	want := " WHERE (r.original_name ILIKE $1 OR r.status ILIKE $2)"
	if sql[len(sql)-len(want):] != want {
		t.Errorf("sql = %q, want suffix %q", sql, want)
	}
	if len(args) != 2 {
		t.Errorf("args = %v, want two", args)
	}
}
