package query

import (
	"testing"

	"github.com/goliatone/go-hooks/pkg/model"
)

func TestExpressionMatch(t *testing.T) {
	t.Parallel()

	hook := model.NewHook(map[string]any{
		"name":       "save_post",
		"type":       "action",
		"args":       float64(3),
		"deprecated": false,
		"doc": map[string]any{
			"since": "1.5.0",
			"tags":  []any{"post", "save"},
		},
	})

	cases := []struct {
		expr string
		want bool
	}{
		{expr: "", want: true},
		{expr: `type == "action"`, want: true},
		{expr: `type == action`, want: true},
		{expr: `type != 'action'`, want: false},
		{expr: `args == 3`, want: true},
		{expr: `args == 4`, want: false},
		{expr: `deprecated`, want: false},
		{expr: `!deprecated`, want: true},
		{expr: `deprecated == false`, want: true},
		{expr: `doc.since == "1.5.0"`, want: true},
		{expr: `doc.tags.1 == save`, want: true},
		{expr: `doc.missing == null`, want: true},
		{expr: `name =~ "^save_"`, want: true},
		{expr: `name =~ "_page$"`, want: false},
		{expr: `type == filter || name =~ "post"`, want: true},
		{expr: `type == filter && name =~ "post"`, want: false},
		{expr: `!(type == filter) && (args == 3 || args == 4)`, want: true},
		{expr: `unknown`, want: false},
	}

	for _, tc := range cases {
		expr, err := Compile(tc.expr)
		if err != nil {
			t.Fatalf("Compile(%q): %v", tc.expr, err)
		}
		if got := expr.Match(hook); got != tc.want {
			t.Fatalf("Compile(%q).Match() = %v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	for _, source := range []string{
		`type = action`,
		`type ==`,
		`(type == action`,
		`type == action)`,
		`"action" == type`,
		`name =~ "("`,
		`name =~ 3`,
		`name == "unterminated`,
		`a & b`,
	} {
		if _, err := Compile(source); err == nil {
			t.Fatalf("Compile(%q): expected error", source)
		}
	}
}

func TestPredicate(t *testing.T) {
	t.Parallel()

	pred := MustCompile(`type == filter`).Predicate()
	if !pred(&model.Hook{Name: "the_title", Type: model.TypeFilter}) {
		t.Fatalf("expected filter hook to match")
	}
	if pred(nil) {
		t.Fatalf("nil hook must not match")
	}
}
