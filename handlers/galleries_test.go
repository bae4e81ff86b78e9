// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/photo-faceoff/models"
	"github.com/danielhkuo/photo-faceoff/testutil"
)

func TestCreateGallery(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewGalleryHandler(db, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/galleries",
		models.CreateGalleryRequest{Handle: "alice", Public: true}, nil)
	w := httptest.NewRecorder()
	h.CreateGallery(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CreateGalleryResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.GalleryID == "" {
		t.Fatal("Expected a gallery id")
	}

	var handle string
	var public bool
	err := db.QueryRow(`SELECT handle, public FROM gallery WHERE id = $1`, resp.GalleryID).
		Scan(&handle, &public)
	if err != nil {
		t.Fatalf("Failed to read gallery: %v", err)
	}
	if handle != "alice" || !public {
		t.Errorf("Stored gallery = %q/%v, want alice/true", handle, public)
	}
}

func TestCreateGallery_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewGalleryHandler(db, testutil.GetTestConfig())

	tests := []struct {
		name   string
		handle string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too short", "a"},
		{"too long", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/galleries",
				models.CreateGalleryRequest{Handle: tt.handle}, nil)
			w := httptest.NewRecorder()
			h.CreateGallery(w, req)
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestCreateGallery_DuplicateHandle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewGalleryHandler(db, testutil.GetTestConfig())
	testutil.CreateTestGallery(t, db, "taken", true)

	req := testutil.MakeRequest("POST", "/galleries",
		models.CreateGalleryRequest{Handle: "taken"}, nil)
	w := httptest.NewRecorder()
	h.CreateGallery(w, req)

	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestAddItem(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewGalleryHandler(db, testutil.GetTestConfig())
	galleryID := testutil.CreateTestGallery(t, db, "alice", false)

	req := testutil.MakeRequest("POST", "/galleries/"+galleryID+"/items",
		models.AddItemRequest{Subject: "portrait", MediaURL: "https://media.test/p1.jpg"}, nil)
	req.SetPathValue("id", galleryID)
	w := httptest.NewRecorder()
	h.AddItem(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.AddItemResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Rating != 1500 {
		t.Errorf("New item rating = %v, want 1500", resp.Rating)
	}

	var active bool
	var wins, losses int
	err := db.QueryRow(`SELECT active, win_count, loss_count FROM item WHERE id = $1`, resp.ItemID).
		Scan(&active, &wins, &losses)
	if err != nil {
		t.Fatalf("Failed to read item: %v", err)
	}
	if !active || wins != 0 || losses != 0 {
		t.Errorf("New item state = active=%v %d/%d, want active 0/0", active, wins, losses)
	}
}

func TestAddItem_Errors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewGalleryHandler(db, testutil.GetTestConfig())
	galleryID := testutil.CreateTestGallery(t, db, "alice", false)

	addItem := func(target string, body models.AddItemRequest) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/galleries/"+target+"/items", body, nil)
		req.SetPathValue("id", target)
		w := httptest.NewRecorder()
		h.AddItem(w, req)
		return w
	}

	w := addItem("no-such-gallery", models.AddItemRequest{Subject: "x", MediaURL: "https://media.test/x.jpg"})
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = addItem(galleryID, models.AddItemRequest{Subject: "portrait"})
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	w = addItem(galleryID, models.AddItemRequest{MediaURL: "https://media.test/x.jpg"})
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestSetVisibility(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewGalleryHandler(db, testutil.GetTestConfig())
	galleryID := testutil.CreateTestGallery(t, db, "alice", false)

	req := testutil.MakeRequest("POST", "/galleries/"+galleryID+"/visibility",
		models.SetVisibilityRequest{Public: true}, nil)
	req.SetPathValue("id", galleryID)
	w := httptest.NewRecorder()
	h.SetVisibility(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var public bool
	if err := db.QueryRow(`SELECT public FROM gallery WHERE id = $1`, galleryID).Scan(&public); err != nil {
		t.Fatalf("Failed to read gallery: %v", err)
	}
	if !public {
		t.Error("Gallery should be public after the flip")
	}

	req = testutil.MakeRequest("POST", "/galleries/no-such/visibility",
		models.SetVisibilityRequest{Public: true}, nil)
	req.SetPathValue("id", "no-such")
	w = httptest.NewRecorder()
	h.SetVisibility(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestDeactivateItem(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewGalleryHandler(db, testutil.GetTestConfig())
	galleryID := testutil.CreateTestGallery(t, db, "alice", false)
	itemID := testutil.AddTestItem(t, db, galleryID, "portrait")

	req := testutil.MakeRequest("POST", "/items/"+itemID+"/deactivate", nil, nil)
	req.SetPathValue("id", itemID)
	w := httptest.NewRecorder()
	h.DeactivateItem(w, req)

	testutil.AssertStatus(t, w, http.StatusNoContent)

	var active bool
	if err := db.QueryRow(`SELECT active FROM item WHERE id = $1`, itemID).Scan(&active); err != nil {
		t.Fatalf("Failed to read item: %v", err)
	}
	if active {
		t.Error("Item should be inactive")
	}

	req = testutil.MakeRequest("POST", "/items/no-such/deactivate", nil, nil)
	req.SetPathValue("id", "no-such")
	w = httptest.NewRecorder()
	h.DeactivateItem(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestGetGallery(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewGalleryHandler(db, testutil.GetTestConfig())
	galleryID := testutil.CreateTestGallery(t, db, "alice", false)
	testutil.AddTestItem(t, db, galleryID, "portrait")
	retired := testutil.AddTestItem(t, db, galleryID, "landscape")
	testutil.DeactivateTestItem(t, db, retired)

	req := testutil.MakeRequest("GET", "/galleries/"+galleryID, nil, nil)
	req.SetPathValue("id", galleryID)
	w := httptest.NewRecorder()
	h.GetGallery(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.GalleryWithItems
	testutil.AssertJSON(t, w, &resp)

	if resp.Gallery.Handle != "alice" {
		t.Errorf("Handle = %q, want alice", resp.Gallery.Handle)
	}
	// The management view includes deactivated items
	if len(resp.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(resp.Items))
	}

	sawInactive := false
	for _, it := range resp.Items {
		if it.ID == retired && !it.Active {
			sawInactive = true
		}
	}
	if !sawInactive {
		t.Error("Deactivated item missing from the management view")
	}
}

func TestGetGallery_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewGalleryHandler(db, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/galleries/no-such", nil, nil)
	req.SetPathValue("id", "no-such")
	w := httptest.NewRecorder()
	h.GetGallery(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}
