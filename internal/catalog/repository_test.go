package catalog

import (
	"testing"

	pkgerrors "github.com/peasmarket/storefront/pkg/errors"
)

const seedJSON = `[
  {"id": 1, "name": "Bamboo Cutlery Set", "price": 899, "image": "/images/bamboo.jpg", "description": "Reusable cutlery"},
  {"id": 2, "name": "Solar-Powered Phone Charger", "price": 2499.5, "image": "/images/solar.jpg", "description": "Portable charger"}
]`

func TestRepositoryListAndFind(t *testing.T) {
	t.Parallel()

	repo, err := NewRepositoryFromJSON([]byte(seedJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list := repo.List()
	if len(list) != 2 || repo.Len() != 2 {
		t.Fatalf("expected 2 products, got %d", len(list))
	}
	if list[0].ID != 1 || list[1].ID != 2 {
		t.Fatalf("seed order must be preserved, got %+v", list)
	}

	p, err := repo.FindByID(2)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if p.Name != "Solar-Powered Phone Charger" || p.Price.StringFixed(2) != "2499.50" {
		t.Fatalf("unexpected product %+v", p)
	}

	_, err = repo.FindByID(99)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRepositoryListReturnsCopy(t *testing.T) {
	t.Parallel()

	repo, err := NewRepositoryFromJSON([]byte(seedJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list := repo.List()
	list[0].Name = "mutated"

	again := repo.List()
	if again[0].Name != "Bamboo Cutlery Set" {
		t.Fatalf("catalog records must be immutable, got %q", again[0].Name)
	}
}

func TestRepositoryRejectsBadSeeds(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"malformed":      `{"not": "an array"}`,
		"negative price": `[{"id": 1, "name": "x", "price": -5}]`,
		"duplicate id":   `[{"id": 1, "name": "a", "price": 1}, {"id": 1, "name": "b", "price": 2}]`,
	}

	for name, seed := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := NewRepositoryFromJSON([]byte(seed)); err == nil {
				t.Fatalf("expected seed %q to be rejected", name)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	id, err := ParseID(" 42 ")
	if err != nil || id != 42 {
		t.Fatalf("expected 42, got %d err=%v", id, err)
	}

	for _, raw := range []string{"", "abc", "4.2", "1e3"} {
		if _, err := ParseID(raw); err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}
