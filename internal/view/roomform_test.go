package view

import (
	"testing"

	"github.com/UnibsMatt/roomates/internal/api"
)

func TestRoomForm_Validate(t *testing.T) {
	errs := RoomForm{}.Validate()
	if errs["title"] == "" || errs["price"] == "" {
		t.Errorf("expected title and price errors, got %v", errs)
	}

	errs = RoomForm{Title: "Stanza", Price: "0"}.Validate()
	if errs["price"] == "" {
		t.Error("zero price must be rejected")
	}
	errs = RoomForm{Title: "Stanza", Price: "-50"}.Validate()
	if errs["price"] == "" {
		t.Error("negative price must be rejected")
	}

	errs = RoomForm{Title: "Stanza", Price: "450"}.Validate()
	if len(errs) != 0 {
		t.Errorf("expected valid form, got %v", errs)
	}
}

func TestRoomForm_Create(t *testing.T) {
	f := RoomForm{Title: " Stanza luminosa ", Description: "", Location: " Brescia ", Price: "450.50"}
	got := f.Create()
	if got.Title != "Stanza luminosa" || got.Location != "Brescia" || got.Price != 450.50 {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestFormFromRoom(t *testing.T) {
	room := &api.Room{Title: "Stanza", Description: "desc", Location: "Brescia", Price: 450}
	f := FormFromRoom(room)
	if f.Title != "Stanza" || f.Price != "450" {
		t.Errorf("unexpected form: %+v", f)
	}
}
