package batch

import (
	"strings"
	"testing"

	"github.com/octobees/recycling-finder/internal/entity"
)

func sampleBusiness(ref int) entity.NormalizedBusiness {
	phone := "+441642123456"
	website := "https://teesside-recycling.example"
	rating := 4.5
	open := entity.TimeOfDay{Hour: 9}
	closeAt := entity.TimeOfDay{Hour: 17}

	return entity.NormalizedBusiness{
		Business: entity.Business{
			Name:        "Teesside Metal & Paper Ltd",
			Address:     "1 Quay Street, Middlesbrough",
			Coordinates: entity.Coordinates{Lat: 54.57, Lng: -1.23},
			PlaceID:     "place-123",
			Phone:       &phone,
			Website:     &website,
			Rating:      &rating,
			AddressParts: entity.AddressComponents{
				City:       "Middlesbrough",
				PostalCode: "TS1 1AA",
				Country:    "United Kingdom",
			},
		},
		Ref: ref,
		Schedule: []entity.DaySchedule{
			{Day: entity.Monday, Open: &open, Close: &closeAt},
			{Day: entity.Sunday, Closed: true},
		},
		Matches: []entity.MaterialMatch{
			{Category: "metal", Description: "Mixed Metals"},
			{Category: "paper", Description: "Mixed Paper (general)"},
		},
	}
}

func TestBuild_StatementOrderAndCounts(t *testing.T) {
	b := NewEmitter().Build([]entity.NormalizedBusiness{sampleBusiness(0)})

	if len(b.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(b.Groups))
	}
	g := b.Groups[0]

	wantTables := []string{
		"recycling.businesses",
		"recycling.address_components",
		"recycling.business_hours",
		"recycling.business_hours",
		"recycling.business_materials",
		"recycling.business_materials",
		"recycling.business_services",
	}
	if len(g.Statements) != len(wantTables) {
		t.Fatalf("expected %d statements, got %d", len(wantTables), len(g.Statements))
	}
	for i, want := range wantTables {
		if g.Statements[i].Table != want {
			t.Fatalf("statement %d: got table %s, want %s", i, g.Statements[i].Table, want)
		}
	}
}

func TestBuild_ChildStatementsReferenceParent(t *testing.T) {
	nb := sampleBusiness(7)
	b := NewEmitter().Build([]entity.NormalizedBusiness{nb})
	g := b.Groups[0]

	// Parent row must return its key and carry no ParentKey argument.
	if !strings.Contains(g.Statements[0].SQL, "RETURNING business_id") {
		t.Fatalf("parent statement must return the generated key")
	}
	for _, arg := range g.Statements[0].Args {
		if _, ok := arg.(ParentKey); ok {
			t.Fatalf("parent statement must not reference itself")
		}
	}

	// Every child resolves to exactly the parent's ref.
	for i, stmt := range g.Statements[1:] {
		refs := 0
		for _, arg := range stmt.Args {
			if key, ok := arg.(ParentKey); ok {
				refs++
				if key.Ref != nb.Ref {
					t.Fatalf("child %d references ref %d, want %d", i, key.Ref, nb.Ref)
				}
			}
		}
		if refs != 1 {
			t.Fatalf("child %d carries %d parent references, want 1", i, refs)
		}
	}
}

func TestBuild_NoMaterialsStillEmitsService(t *testing.T) {
	nb := sampleBusiness(0)
	nb.Matches = nil
	b := NewEmitter().Build([]entity.NormalizedBusiness{nb})

	var materialStmts, serviceStmts []Statement
	for _, stmt := range b.Groups[0].Statements {
		switch stmt.Table {
		case "recycling.business_materials":
			materialStmts = append(materialStmts, stmt)
		case "recycling.business_services":
			serviceStmts = append(serviceStmts, stmt)
		}
	}

	if len(materialStmts) != 0 {
		t.Fatalf("expected no material statements, got %d", len(materialStmts))
	}
	if len(serviceStmts) != 1 {
		t.Fatalf("expected exactly one service statement, got %d", len(serviceStmts))
	}
	desc, _ := serviceStmts[0].Args[2].(string)
	if desc != "General recycling services" {
		t.Fatalf("expected generic fallback description, got %q", desc)
	}
}

func TestServiceDescription(t *testing.T) {
	matches := []entity.MaterialMatch{
		{Category: "plastic", Description: "PET"},
		{Category: "metal", Description: "Mixed Metals"},
		{Category: "plastic", Description: "HDPE"},
	}
	got := serviceDescription(matches)
	if got != "Recycling services for metal, plastic" {
		t.Fatalf("unexpected description: %q", got)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	input := []entity.NormalizedBusiness{sampleBusiness(0), sampleBusiness(1)}
	first := NewEmitter().Build(input)
	second := NewEmitter().Build(input)

	if len(first.Groups) != len(second.Groups) {
		t.Fatalf("group counts differ")
	}
	for i := range first.Groups {
		a, b := first.Groups[i], second.Groups[i]
		if len(a.Statements) != len(b.Statements) {
			t.Fatalf("group %d statement counts differ", i)
		}
		for j := range a.Statements {
			if a.Statements[j].SQL != b.Statements[j].SQL {
				t.Fatalf("group %d statement %d differs", i, j)
			}
		}
	}
}
