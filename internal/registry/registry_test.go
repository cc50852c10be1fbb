package registry_test

import (
	"context"
	"testing"

	"cityfeed/internal/registry"
	"cityfeed/internal/testsupport"
	"cityfeed/internal/violation"
)

func TestRegisterIfAbsentStagesNewCodes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	reg, err := registry.Load(ctx, st)
	if err != nil {
		t.Fatalf("registry.Load: %v", err)
	}

	if !reg.RegisterIfAbsent("590.005", "Improper storage") {
		t.Fatal("expected first registration to stage the code")
	}
	if reg.RegisterIfAbsent("590.005", "Different description") {
		t.Fatal("expected repeat registration to be a no-op")
	}

	pending := reg.Pending()
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending code, got %d", len(pending))
	}
	if pending[0].Description != "Improper storage" {
		t.Fatalf("first description must win, got %q", pending[0].Description)
	}
}

func TestRegisterIfAbsentSkipsStoredCodes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	codes := []violation.Code{{Code: "590.005", Description: "Improper storage"}}
	if err := st.CommitMerge(ctx, nil, codes); err != nil {
		t.Fatalf("CommitMerge: %v", err)
	}

	reg, err := registry.Load(ctx, st)
	if err != nil {
		t.Fatalf("registry.Load: %v", err)
	}
	if !reg.Known("590.005") {
		t.Fatal("stored code should be known after Load")
	}
	desc, ok := reg.Description("590.005")
	if !ok || desc != "Improper storage" {
		t.Fatalf("unexpected description %q (ok=%v)", desc, ok)
	}
	if _, ok := reg.Description("999"); ok {
		t.Fatal("unknown code must not resolve a description")
	}
	if reg.RegisterIfAbsent("590.005", "replacement") {
		t.Fatal("stored code must not be staged again")
	}
	if len(reg.Pending()) != 0 {
		t.Fatal("expected no pending codes")
	}
}

func TestPendingPreservesRegistrationOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	reg, err := registry.Load(context.Background(), st)
	if err != nil {
		t.Fatalf("registry.Load: %v", err)
	}

	for _, code := range []string{"30", "10", "20"} {
		reg.RegisterIfAbsent(code, "desc "+code)
	}
	pending := reg.Pending()
	if len(pending) != 3 {
		t.Fatalf("expected 3 pending codes, got %d", len(pending))
	}
	for i, want := range []string{"30", "10", "20"} {
		if pending[i].Code != want {
			t.Fatalf("pending[%d] = %q, want %q", i, pending[i].Code, want)
		}
	}
}

func TestRegisterIfAbsentIgnoresBlankCodes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	reg, err := registry.Load(context.Background(), st)
	if err != nil {
		t.Fatalf("registry.Load: %v", err)
	}
	if reg.RegisterIfAbsent("   ", "blank") {
		t.Fatal("blank codes must not be staged")
	}
}
