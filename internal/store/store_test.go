package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"skeyedit/internal/skey"
)

func openTest(t *testing.T) *Repository {
	t.Helper()
	repo, db, err := Open(context.Background(), filepath.Join(t.TempDir(), "db", "skeys.db"), "tester")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return repo
}

func valve() skey.Symbol {
	return skey.Symbol{
		Name:        "VALV",
		Group:       "Valves",
		Subgroup:    "Gate Valves",
		Spindle:     "SP01",
		Orientation: skey.NonSymmetrical,
		FlowArrow:   skey.On,
		Geometry: []string{
			"ArrivePoint: x0=-1.0 y0=0.0 type=FL",
			"Line: x1=-1.0 y1=0.0 x2=1.0 y2=0.0",
			"LeavePoint: x0=1.0 y0=0.0 type=FL",
		},
	}
}

func TestSaveAndLoadSymbol(t *testing.T) {
	ctx := context.Background()
	repo := openTest(t)

	id, err := repo.SaveSymbol(ctx, valve(), "first")
	if err != nil || id == 0 {
		t.Fatalf("SaveSymbol = %d, %v", id, err)
	}
	got, err := repo.LoadSymbol(ctx, "VALV")
	if err != nil {
		t.Fatalf("LoadSymbol: %v", err)
	}
	want := valve()
	want.Group, want.Subgroup = "valves", "gate_valves"
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadSymbol =\n%+v\nwant\n%+v", got, want)
	}

	edited := valve()
	edited.Geometry = edited.Geometry[:1]
	id2, err := repo.SaveSymbol(ctx, edited, "trim")
	if err != nil || id2 != id {
		t.Fatalf("second SaveSymbol = %d, %v, want id %d", id2, err, id)
	}
	got, _ = repo.LoadSymbol(ctx, "VALV")
	if len(got.Geometry) != 1 {
		t.Errorf("latest geometry has %d entries, want 1", len(got.Geometry))
	}

	hist, err := repo.History(ctx, "VALV")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 2 || hist[0].Action != ActionCreate || hist[1].Action != ActionEdit {
		t.Fatalf("History = %+v", hist)
	}
	if hist[1].User != "tester" || hist[1].Comment != "trim" || hist[1].Session != repo.Session() {
		t.Errorf("transaction = %+v", hist[1])
	}
	if hist[0].Timestamp.IsZero() {
		t.Error("transaction without timestamp")
	}
}

func TestSaveClearsGeometry(t *testing.T) {
	ctx := context.Background()
	repo := openTest(t)
	repo.SaveSymbol(ctx, valve(), "")
	empty := valve()
	empty.Geometry = nil
	if _, err := repo.SaveSymbol(ctx, empty, ""); err != nil {
		t.Fatal(err)
	}
	got, _ := repo.LoadSymbol(ctx, "VALV")
	if len(got.Geometry) != 0 {
		t.Errorf("geometry = %v, want none", got.Geometry)
	}
}

func TestSaveRejectsEmptyName(t *testing.T) {
	repo := openTest(t)
	if _, err := repo.SaveSymbol(context.Background(), skey.Symbol{Name: " "}, ""); !errors.Is(err, skey.ErrEmptyName) {
		t.Errorf("err = %v, want ErrEmptyName", err)
	}
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	repo := openTest(t)
	if _, err := repo.LoadSymbol(ctx, "NONE"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadSymbol err = %v", err)
	}
	if err := repo.DeleteSymbol(ctx, "NONE"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteSymbol err = %v", err)
	}
	if _, err := repo.SpindleGeometry(ctx, "SP99"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SpindleGeometry err = %v", err)
	}
}

func TestDeleteAndList(t *testing.T) {
	ctx := context.Background()
	repo := openTest(t)
	for _, name := range []string{"TEE", "ELBW", "VALV"} {
		s := valve()
		s.Name = name
		if _, err := repo.SaveSymbol(ctx, s, ""); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.DeleteSymbol(ctx, "TEE"); err != nil {
		t.Fatal(err)
	}
	list, err := repo.ListSymbols(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, s := range list {
		names = append(names, s.Name)
		if s.Geometry != nil {
			t.Errorf("ListSymbols returned geometry for %s", s.Name)
		}
	}
	if !reflect.DeepEqual(names, []string{"ELBW", "VALV"}) {
		t.Errorf("names = %v", names)
	}
	if _, err := repo.History(ctx, "TEE"); !errors.Is(err, ErrNotFound) {
		t.Errorf("History of deleted symbol: %v", err)
	}
}

func TestSpindles(t *testing.T) {
	ctx := context.Background()
	repo := openTest(t)
	sp := skey.Symbol{Name: "SP01", Geometry: []string{"SpindlePoint: x0=0.0 y0=0.0", "Line: x1=0.0 y1=0.0 x2=0.0 y2=0.5"}}
	if _, err := repo.SaveSpindle(ctx, sp, ""); err != nil {
		t.Fatal(err)
	}
	got, err := repo.SpindleGeometry(ctx, "SP01")
	if err != nil || !reflect.DeepEqual(got, sp.Geometry) {
		t.Errorf("SpindleGeometry = %v, %v", got, err)
	}
	list, _ := repo.ListSpindles(ctx)
	if len(list) != 1 || list[0].Group != "unknown" {
		t.Errorf("ListSpindles = %+v", list)
	}
	if syms, _ := repo.ListSymbols(ctx); len(syms) != 0 {
		t.Errorf("spindle leaked into skeys: %+v", syms)
	}
}

func TestGroupsAndCatalog(t *testing.T) {
	ctx := context.Background()
	repo := openTest(t)
	a, b := valve(), valve()
	b.Name, b.Subgroup = "BALL", "Ball Valves"
	repo.SaveSymbol(ctx, a, "")
	repo.SaveSymbol(ctx, b, "")

	groups, err := repo.Groups(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []Group{{Key: "valves", Subgroups: []string{"ball_valves", "gate_valves"}}}
	if !reflect.DeepEqual(groups, want) {
		t.Errorf("Groups = %+v, want %+v", groups, want)
	}

	cat, err := repo.Catalog(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := cat.Symbols("valves", "ball_valves"); !reflect.DeepEqual(got, []string{"BALL"}) {
		t.Errorf("catalog symbols = %v", got)
	}
}
