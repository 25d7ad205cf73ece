package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hooks/pkg/model"
)

type fakeDriver struct {
	input     string
	inputErr  error
	choose    func(cfg SelectConfig) (int, error)
	asked     []string
	selectCfg SelectConfig
}

func (f *fakeDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	f.asked = append(f.asked, cfg.Message)
	return f.input, f.inputErr
}

func (f *fakeDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	f.asked = append(f.asked, cfg.Message)
	f.selectCfg = cfg
	if f.choose == nil {
		return 0, nil
	}
	return f.choose(cfg)
}

func pickFixtures() []*model.Hook {
	return []*model.Hook{
		model.NewHook(map[string]any{
			"name": "init",
			"type": "action",
			"doc":  map[string]any{"description": "Fires after <b>loading</b>."},
		}),
		nil,
		{Name: "the_title", Type: model.TypeFilter},
		{Name: "the_content"},
	}
}

func TestPickSelectsByIndex(t *testing.T) {
	t.Parallel()

	driver := &fakeDriver{choose: func(cfg SelectConfig) (int, error) {
		return 1, nil
	}}
	got, err := Pick(context.Background(), driver, pickFixtures(), PickOptions{})
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if got.Name != "the_title" {
		t.Fatalf("expected the_title, got %q", got.Name)
	}

	wantLabels := []string{"init (action)", "the_title (filter)", "the_content"}
	if diff := cmp.Diff(wantLabels, driver.selectCfg.Options); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if driver.selectCfg.PageSize != DefaultPageSize {
		t.Fatalf("expected default page size, got %d", driver.selectCfg.PageSize)
	}
	if desc := driver.selectCfg.Description("init (action)", 0); desc != "Fires after loading." {
		t.Fatalf("unexpected description %q", desc)
	}
	if desc := driver.selectCfg.Description("", 7); desc != "" {
		t.Fatalf("out of range description should be empty, got %q", desc)
	}
}

func TestPickRefine(t *testing.T) {
	t.Parallel()

	driver := &fakeDriver{input: "THE_", choose: func(cfg SelectConfig) (int, error) {
		return len(cfg.Options) - 1, nil
	}}
	got, err := Pick(context.Background(), driver, pickFixtures(), PickOptions{Refine: true, Message: "Hook?"})
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if got.Name != "the_content" {
		t.Fatalf("expected the_content, got %q", got.Name)
	}
	if diff := cmp.Diff([]string{"Filter hooks by name:", "Hook?"}, driver.asked); diff != "" {
		t.Fatalf("prompt sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestPickErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	if _, err := Pick(ctx, nil, pickFixtures(), PickOptions{}); err == nil {
		t.Fatalf("expected error for nil driver")
	}
	if _, err := Pick(ctx, &fakeDriver{}, []*model.Hook{nil}, PickOptions{}); !errors.Is(err, ErrNoOptions) {
		t.Fatalf("expected ErrNoOptions, got %v", err)
	}
	if _, err := Pick(ctx, &fakeDriver{input: "nothing-matches"}, pickFixtures(), PickOptions{Refine: true}); !errors.Is(err, ErrNoOptions) {
		t.Fatalf("expected ErrNoOptions after refine, got %v", err)
	}

	aborted := &fakeDriver{choose: func(SelectConfig) (int, error) { return -1, ErrAborted }}
	if _, err := Pick(ctx, aborted, pickFixtures(), PickOptions{}); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	outOfRange := &fakeDriver{choose: func(SelectConfig) (int, error) { return 9, nil }}
	if _, err := Pick(ctx, outOfRange, pickFixtures(), PickOptions{}); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	t.Parallel()

	if err := translateSurveyErr(terminal.InterruptErr); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected interrupt to map to ErrAborted, got %v", err)
	}
	other := errors.New("io")
	if err := translateSurveyErr(other); err != other {
		t.Fatalf("expected passthrough, got %v", err)
	}
}
