package services

import (
	"context"
	"errors"
	"testing"

	"appfiy/backoffice/internal/db/repositories"
	"appfiy/backoffice/internal/models/dtos"
	"appfiy/backoffice/internal/testutil"
)

func newLayoutService(t *testing.T) *LayoutTypeService {
	t.Helper()
	gdb, _ := testutil.NewTestDB(t)
	return NewLayoutTypeService(repositories.NewLayoutTypeRepository(gdb))
}

func TestLayoutType_CreateGeneratesSlug(t *testing.T) {
	svc := newLayoutService(t)
	ctx := context.Background()

	row, err := svc.Create(ctx, dtos.LayoutTypeReq{Name: "Grid Layout"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if row.Slug != "grid-layout" {
		t.Errorf("Expected slug grid-layout, got %s", row.Slug)
	}

	_, err = svc.Create(ctx, dtos.LayoutTypeReq{Name: "Another", Slug: "Grid Layout"})
	if _, ok := fieldErrors(t, err)["slug"]; !ok {
		t.Errorf("Expected slug field error, got %v", err)
	}
	if !errors.Is(err, ErrConflict) {
		t.Errorf("Expected ErrConflict cause, got %v", err)
	}

	_, err = svc.Create(ctx, dtos.LayoutTypeReq{Name: "  "})
	if msg := fieldErrors(t, err)["name"]; msg != "is required" {
		t.Errorf("Expected name is required, got %q", msg)
	}
}

func TestLayoutType_UpdateKeepsOwnSlug(t *testing.T) {
	svc := newLayoutService(t)
	ctx := context.Background()

	row, err := svc.Create(ctx, dtos.LayoutTypeReq{Name: "List"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	updated, err := svc.Update(ctx, row.ID, dtos.LayoutTypeReq{Name: "List View", Slug: "list"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Name != "List View" || updated.Slug != "list" {
		t.Errorf("Unexpected row after update: %s / %s", updated.Name, updated.Slug)
	}
}

func TestLayoutType_DeleteAndRestore(t *testing.T) {
	svc := newLayoutService(t)
	ctx := context.Background()

	row, err := svc.Create(ctx, dtos.LayoutTypeReq{Name: "Tabs"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := svc.Delete(ctx, row.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := svc.Get(ctx, row.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on trashed row: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Update(ctx, row.ID, dtos.LayoutTypeReq{Name: "Tabs 2"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update on trashed row: expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, row.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Second delete: expected ErrNotFound, got %v", err)
	}

	live, err := svc.List(ctx, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(live) != 0 {
		t.Errorf("Expected no live layout types, got %d", len(live))
	}

	restored, err := svc.Restore(ctx, row.ID)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored.DeletedAt != nil {
		t.Errorf("Expected deleted_at cleared, got %v", restored.DeletedAt)
	}

	if _, err := svc.Restore(ctx, row.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Restoring a live row: expected ErrNotFound, got %v", err)
	}
}
