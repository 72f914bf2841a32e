package indexes_test

import (
	"testing"

	"github.com/dalemusser/campushub/internal/app/system/indexes"
	"github.com/dalemusser/campushub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// EnsureAll should succeed on a clean database
	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// First call
	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}

	// Second call should also succeed (idempotent)
	err = indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesFormResponseUniqueIndex(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	cur, err := db.Collection("form_responses").Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	found := false
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			t.Fatalf("Decode index failed: %v", err)
		}
		if idx["name"] == "uniq_forms_posting_user" {
			found = true
			if unique, _ := idx["unique"].(bool); !unique {
				t.Error("uniq_forms_posting_user exists but is not unique")
			}
		}
	}
	if !found {
		t.Error("expected uniq_forms_posting_user index to exist")
	}
}

func TestEnsureAll_CreatesNotificationIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	cur, err := db.Collection("notifications").Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			t.Fatalf("Decode index failed: %v", err)
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}

	for _, want := range []string{"idx_notifs_recipient_read", "idx_notifs_recipient_created", "idx_notifs_posting"} {
		if !names[want] {
			t.Errorf("expected index %q to exist", want)
		}
	}
}
