package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-hooks/pkg/match"
	"github.com/goliatone/go-hooks/pkg/model"
	"github.com/goliatone/go-hooks/pkg/query"
)

func newFilterCommand(a *app) *cobra.Command {
	var (
		where []string
		expr  string
		limit int
		long  bool
		links bool
	)
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List hooks matching criteria or an expression",
		Long: `filter selects hooks with partial-match criteria and/or a boolean
expression. Criteria keys may be dotted to reach nested fields.

  hooks filter --where type=action --where doc.since=1.5.0
  hooks filter --expr 'type == filter && name =~ "^the_"' --limit 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pred, err := buildPredicate(where, expr)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.Output.Limit
			}
			repo, err := a.repository(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, repo.Filter(pred, limit), long, links)
		},
	}
	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, "criteria as key=value; dotted keys reach nested fields (repeatable)")
	cmd.Flags().StringVarP(&expr, "expr", "e", "", "boolean expression over hook fields")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results (0 for all)")
	cmd.Flags().BoolVarP(&long, "long", "l", false, "include long descriptions")
	cmd.Flags().BoolVar(&links, "links", false, "include doc links")
	return cmd
}

// buildPredicate combines --where criteria and --expr into one predicate.
// With neither, every hook matches.
func buildPredicate(where []string, expr string) (model.Predicate, error) {
	criteria, err := parseWhere(where)
	if err != nil {
		return nil, err
	}
	var compiled *query.Expression
	if strings.TrimSpace(expr) != "" {
		compiled, err = query.Compile(expr)
		if err != nil {
			return nil, err
		}
	}

	return func(h *model.Hook) bool {
		if len(criteria) > 0 && !match.Matches(h.Fields(), map[string]any(criteria)) {
			return false
		}
		return compiled == nil || compiled.Match(h)
	}, nil
}

// parseWhere turns key=value pairs into nested criteria. Values are decoded
// as YAML scalars, so numbers, booleans and null keep their type.
func parseWhere(pairs []string) (model.Criteria, error) {
	criteria := model.Criteria{}
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --where %q: expected key=value", pair)
		}

		path := strings.Split(key, ".")
		node := map[string]any(criteria)
		for _, segment := range path[:len(path)-1] {
			if segment == "" {
				return nil, fmt.Errorf("invalid --where key %q", key)
			}
			next, ok := node[segment].(map[string]any)
			if !ok {
				if _, taken := node[segment]; taken {
					return nil, fmt.Errorf("--where key %q conflicts with an earlier value", key)
				}
				next = map[string]any{}
				node[segment] = next
			}
			node = next
		}
		leaf := path[len(path)-1]
		if leaf == "" {
			return nil, fmt.Errorf("invalid --where key %q", key)
		}
		node[leaf] = scalar(raw)
	}
	return criteria, nil
}

func scalar(raw string) any {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}
	switch value.(type) {
	case map[string]any, []any:
		return raw
	}
	return value
}
