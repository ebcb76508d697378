package sitetext

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/atelier3d/site-backend/internal/models"
)

func openSiteTextDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, errOpen := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open sqlite: %v", errOpen)
	}
	if errMigrate := conn.AutoMigrate(&models.SiteText{}); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	return conn
}

func TestResolveMissingKeyFallsBackToDefault(t *testing.T) {
	conn := openSiteTextDB(t)

	got := Resolve(context.Background(), conn, HeroLeadKey, "default lead")
	if got != "default lead" {
		t.Fatalf("expected default, got %q", got)
	}
}

func TestResolveStoredValueWinsUntrimmed(t *testing.T) {
	conn := openSiteTextDB(t)

	if errUpsert := Upsert(context.Background(), conn, models.SiteText{
		Key:   HeroLeadKey,
		Value: "  Impression 3D sur mesure  ",
	}); errUpsert != nil {
		t.Fatalf("upsert: %v", errUpsert)
	}

	got := Resolve(context.Background(), conn, HeroLeadKey, "default lead")
	if got != "  Impression 3D sur mesure  " {
		t.Fatalf("expected stored value untrimmed, got %q", got)
	}
}

func TestResolveBlankStoredValueFallsBack(t *testing.T) {
	conn := openSiteTextDB(t)

	if errUpsert := Upsert(context.Background(), conn, models.SiteText{
		Key:   HeroTitleKey,
		Value: "   \n\t ",
	}); errUpsert != nil {
		t.Fatalf("upsert: %v", errUpsert)
	}

	got := Resolve(context.Background(), conn, HeroTitleKey, "default title")
	if got != "default title" {
		t.Fatalf("expected default for blank stored value, got %q", got)
	}
}

func TestResolveManyMixesStoredAndDefaults(t *testing.T) {
	conn := openSiteTextDB(t)

	if errUpsert := Upsert(context.Background(), conn, models.SiteText{
		Key:   HeroLeadKey,
		Value: "override",
	}); errUpsert != nil {
		t.Fatalf("upsert: %v", errUpsert)
	}
	if errUpsert := Upsert(context.Background(), conn, models.SiteText{
		Key:   AboutTextKey,
		Value: "  ",
	}); errUpsert != nil {
		t.Fatalf("upsert blank: %v", errUpsert)
	}

	got := ResolveMany(context.Background(), conn, map[string]string{
		HeroLeadKey:   "lead default",
		AboutTextKey:  "about default",
		FooterTextKey: "footer default",
	})
	if got[HeroLeadKey] != "override" {
		t.Fatalf("expected override for %s, got %q", HeroLeadKey, got[HeroLeadKey])
	}
	if got[AboutTextKey] != "about default" {
		t.Fatalf("expected default for blank %s, got %q", AboutTextKey, got[AboutTextKey])
	}
	if got[FooterTextKey] != "footer default" {
		t.Fatalf("expected default for missing %s, got %q", FooterTextKey, got[FooterTextKey])
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	conn := openSiteTextDB(t)
	row := models.SiteText{Key: BannerHTMLKey, Value: "<b>Promo</b>", UpdatedBy: "alice"}

	for i := 0; i < 3; i++ {
		if errUpsert := Upsert(context.Background(), conn, row); errUpsert != nil {
			t.Fatalf("upsert %d: %v", i, errUpsert)
		}
	}

	rows, errList := List(context.Background(), conn)
	if errList != nil {
		t.Fatalf("list: %v", errList)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row after repeated upsert, got %d", len(rows))
	}
	if rows[0].Value != "<b>Promo</b>" || rows[0].UpdatedBy != "alice" {
		t.Fatalf("unexpected stored row: %+v", rows[0])
	}
}

func TestUpsertReplacesValue(t *testing.T) {
	conn := openSiteTextDB(t)

	if errUpsert := Upsert(context.Background(), conn, models.SiteText{Key: ContactEmailKey, Value: "a@b.fr", UpdatedBy: "alice"}); errUpsert != nil {
		t.Fatalf("first upsert: %v", errUpsert)
	}
	if errUpsert := Upsert(context.Background(), conn, models.SiteText{Key: ContactEmailKey, Value: "c@d.fr", UpdatedBy: "bob"}); errUpsert != nil {
		t.Fatalf("second upsert: %v", errUpsert)
	}

	got := Resolve(context.Background(), conn, ContactEmailKey, "")
	if got != "c@d.fr" {
		t.Fatalf("expected replaced value, got %q", got)
	}
}

func TestUpsertRejectsEmptyKey(t *testing.T) {
	conn := openSiteTextDB(t)

	if errUpsert := Upsert(context.Background(), conn, models.SiteText{Key: "  ", Value: "x"}); !errors.Is(errUpsert, ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", errUpsert)
	}
	if errUpsert := UpsertBatch(context.Background(), conn, []models.SiteText{
		{Key: BannerHTMLKey, Value: "x"},
		{Key: "", Value: "y"},
	}); !errors.Is(errUpsert, ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey from batch, got %v", errUpsert)
	}
}

func TestUpsertBatchWritesAllRows(t *testing.T) {
	conn := openSiteTextDB(t)

	batch := []models.SiteText{
		{Key: BannerHTMLKey, Value: "<b>Promo</b>", UpdatedBy: "alice"},
		{Key: BannerLinkKey, Value: "/promo", UpdatedBy: "alice"},
		{Key: BannerEnabledKey, Value: "true", UpdatedBy: "alice"},
	}
	if errUpsert := UpsertBatch(context.Background(), conn, batch); errUpsert != nil {
		t.Fatalf("upsert batch: %v", errUpsert)
	}

	rows, errList := List(context.Background(), conn)
	if errList != nil {
		t.Fatalf("list: %v", errList)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if Resolve(context.Background(), conn, BannerEnabledKey, "false") != "true" {
		t.Fatal("banner enabled flag not stored")
	}
}

func TestSnapshotServesStoredOverrides(t *testing.T) {
	conn := openSiteTextDB(t)

	if errUpsert := Upsert(context.Background(), conn, models.SiteText{Key: HeroLeadKey, Value: "snapshot lead"}); errUpsert != nil {
		t.Fatalf("upsert: %v", errUpsert)
	}
	if errRefresh := RefreshSnapshot(context.Background(), conn); errRefresh != nil {
		t.Fatalf("refresh snapshot: %v", errRefresh)
	}

	if got := SnapshotValue(HeroLeadKey, "default"); got != "snapshot lead" {
		t.Fatalf("expected snapshot value, got %q", got)
	}
	if got := SnapshotValue(FooterTextKey, "footer default"); got != "footer default" {
		t.Fatalf("expected default for missing key, got %q", got)
	}
	if SnapshotUpdatedAt().IsZero() {
		t.Fatal("expected snapshot update time to be set")
	}
}
