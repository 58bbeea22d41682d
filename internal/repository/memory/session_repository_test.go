package memory

import (
	"testing"

	"telemed-be/pkg/store"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	repo := NewSessionRepository()

	session := store.NewVoiceSession("abc", "user-1")
	repo.Save(session)

	got, found := repo.Get("abc")
	if !found {
		t.Fatal("Get() did not find saved session")
	}
	if got != session {
		t.Fatal("Get() returned a different session instance")
	}

	repo.Delete("abc")
	if _, found := repo.Get("abc"); found {
		t.Fatal("Get() found session after Delete()")
	}
}

func TestSessionRepositoryMissing(t *testing.T) {
	repo := NewSessionRepository()

	if _, found := repo.Get("nope"); found {
		t.Fatal("Get() found a session that was never saved")
	}

	// Touch and Delete on unknown ids are no-ops.
	repo.Touch("nope")
	repo.Delete("nope")
}

func TestSessionRepositoryTouchKeepsSession(t *testing.T) {
	repo := NewSessionRepository()
	repo.Save(store.NewVoiceSession("abc", "user-1"))

	repo.Touch("abc")

	if _, found := repo.Get("abc"); !found {
		t.Fatal("session gone after Touch()")
	}
}
