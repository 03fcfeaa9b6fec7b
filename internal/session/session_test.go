package session

import (
	"errors"
	"testing"
	"time"

	"github.com/botaynabessar/meteo-pro-2.000/internal/weather"
)

func TestStoreCreateGetUpdate(t *testing.T) {
	store := NewStore(time.Hour)

	sess := store.Create(weather.UnitsMetric)
	if sess.ID == "" {
		t.Fatal("session id must not be empty")
	}
	if sess.Units != weather.UnitsMetric {
		t.Errorf("units = %q, want metric", sess.Units)
	}

	got, err := store.Get(sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != sess.ID {
		t.Errorf("got id %q, want %q", got.ID, sess.ID)
	}

	updated, err := store.Update(sess.ID, func(s *Session) {
		s.City = "Casablanca"
		s.ComparisonCities = []string{"Casablanca", "Mohammedia"}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.City != "Casablanca" {
		t.Errorf("city = %q, want Casablanca", updated.City)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && updated.UpdatedAt != updated.CreatedAt {
		t.Error("UpdatedAt was not stamped")
	}
}

func TestStoreUnknownID(t *testing.T) {
	store := NewStore(time.Hour)

	if _, err := store.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get = %v, want ErrNotFound", err)
	}
	if _, err := store.Update("nope", func(*Session) {}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update = %v, want ErrNotFound", err)
	}
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(30 * time.Millisecond)

	sess := store.Create(weather.UnitsMetric)
	time.Sleep(50 * time.Millisecond)

	if _, err := store.Get(sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired session Get = %v, want ErrNotFound", err)
	}
}
