package sharing

import (
	"testing"

	"github.com/cardfolio/cardfolio-api/models"
)

func TestListSharedWithUserGroupsBySet(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	set := createSet(t, db, alice, "biology")

	if _, err := engine.GrantShare(set.ID, alice.ID, bob.ID, false); err != nil {
		t.Fatalf("grant to bob failed: %v", err)
	}
	if _, err := engine.GrantShare(set.ID, alice.ID, carol.ID, true); err != nil {
		t.Fatalf("grant to carol failed: %v", err)
	}

	category := models.Category{Name: "science"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	tag := models.CategoryInSet{SetID: set.ID, CategoryID: category.ID}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("failed to tag set: %v", err)
	}
	setID := set.ID
	favorite := models.Favorite{UserID: bob.ID, SetID: &setID}
	if err := db.Create(&favorite).Error; err != nil {
		t.Fatalf("failed to create favorite: %v", err)
	}

	views, err := engine.ListSharedWithUser(bob.ID)
	if err != nil {
		t.Fatalf("ListSharedWithUser failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected one view entry, got %d", len(views))
	}

	view := views[0]
	if view.SetID != set.ID || view.OwnerID != alice.ID || view.OwnerUsername != "alice" {
		t.Fatalf("unexpected view: %+v", view)
	}
	// The entry carries every grantee of the set, not just the caller.
	if len(view.Grantees) != 2 {
		t.Fatalf("expected two grantees, got %d", len(view.Grantees))
	}
	edits := map[string]bool{}
	for _, g := range view.Grantees {
		edits[g.Username] = g.Edit
	}
	if edits["bob"] || !edits["carol"] {
		t.Fatalf("unexpected grantee edit flags: %+v", edits)
	}
	if len(view.Categories) != 1 || view.Categories[0] != "science" {
		t.Fatalf("unexpected categories: %v", view.Categories)
	}
	if !view.IsFavorite {
		t.Fatalf("expected IsFavorite for bob")
	}
}

func TestListSharedWithUserEmptyAndUnfavorited(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db)
	alice := createUser(t, db, "alice")
	carol := createUser(t, db, "carol")

	views, err := engine.ListSharedWithUser(carol.ID)
	if err != nil {
		t.Fatalf("ListSharedWithUser failed: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected empty listing, got %d entries", len(views))
	}

	set := createSet(t, db, alice, "biology")
	if _, err := engine.GrantShare(set.ID, alice.ID, carol.ID, false); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	views, err = engine.ListSharedWithUser(carol.ID)
	if err != nil {
		t.Fatalf("ListSharedWithUser failed: %v", err)
	}
	if len(views) != 1 || views[0].IsFavorite {
		t.Fatalf("expected single unfavorited entry, got %+v", views)
	}
	if views[0].Categories == nil || views[0].Grantees == nil {
		t.Fatalf("expected empty slices, not nil")
	}
}

func TestListSharedByOwnerOrdering(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	first := createSet(t, db, alice, "first")
	second := createSet(t, db, alice, "second")
	unshared := createSet(t, db, alice, "unshared")

	if _, err := engine.GrantShare(second.ID, alice.ID, bob.ID, true); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if _, err := engine.GrantShare(first.ID, alice.ID, bob.ID, false); err != nil {
		t.Fatalf("grant failed: %v", err)
	}

	views, err := engine.ListSharedByOwner(alice.ID)
	if err != nil {
		t.Fatalf("ListSharedByOwner failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected two entries, got %d", len(views))
	}
	// Set id ascending, regardless of grant order.
	if views[0].SetID != first.ID || views[1].SetID != second.ID {
		t.Fatalf("unexpected order: %d, %d", views[0].SetID, views[1].SetID)
	}
	for _, v := range views {
		if v.SetID == unshared.ID {
			t.Fatalf("unshared set leaked into the listing")
		}
	}
}
