package photos

import (
	"errors"
	"testing"
	"time"
)

func loggedInManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(tempStore(t))
	if _, err := m.CreateUserAccount("alice", "pw"); err != nil {
		t.Fatalf("create account: %v", err)
	}
	if err := m.Login("alice", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	return m
}

func TestManagerMutationsPersist(t *testing.T) {
	m := loggedInManager(t)

	if ok, err := m.CreateAlbum("Trip"); !ok || err != nil {
		t.Fatalf("create album: %v %v", ok, err)
	}
	photo := NewPhoto("/p/a.jpg", time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	if ok, err := m.AddPhotoToAlbum("Trip", photo); !ok || err != nil {
		t.Fatalf("add photo: %v %v", ok, err)
	}
	if ok, err := m.AddTag(photo, NewTag("person", "Alice")); !ok || err != nil {
		t.Fatalf("add tag: %v %v", ok, err)
	}
	if err := m.SetCaption(photo, "Day one"); err != nil {
		t.Fatalf("set caption: %v", err)
	}

	// Everything above hit the disk; a fresh load sees it.
	loaded, err := m.Store().Load("alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	album := loaded.Album("Trip")
	if album == nil || album.Count() != 1 {
		t.Fatalf("album did not persist")
	}
	got := album.PhotoAt(0)
	if got.Caption() != "Day one" || !got.HasTag(NewTag("person", "Alice")) {
		t.Fatalf("photo edits did not persist")
	}
}

func TestManagerRefusalsDoNotError(t *testing.T) {
	m := loggedInManager(t)
	m.CreateAlbum("Trip")

	if ok, err := m.CreateAlbum("Trip"); ok || err != nil {
		t.Fatalf("duplicate album: want false and no error, got %v %v", ok, err)
	}
	if ok, err := m.DeleteAlbum("Missing"); ok || err != nil {
		t.Fatalf("absent album: want false and no error, got %v %v", ok, err)
	}
	if _, err := m.CreateAlbum("   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank album name: want ErrInvalidInput, got %v", err)
	}
	if _, err := m.AddPhotoToAlbum("Missing", NewPhoto("/p/a.jpg", time.Now())); err == nil {
		t.Fatalf("adding to an absent album must error")
	}

	photo := NewPhoto("/p/a.jpg", time.Now())
	m.AddPhotoToAlbum("Trip", photo)
	if _, err := m.AddTag(photo, NewTag("", "Alice")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank tag type: want ErrInvalidInput, got %v", err)
	}
	if ok, err := m.RemoveTag(photo, NewTag("person", "Nobody")); ok || err != nil {
		t.Fatalf("absent tag: want false and no error, got %v %v", ok, err)
	}
}

func TestCreateAlbumFromPhotos(t *testing.T) {
	m := loggedInManager(t)
	m.CreateAlbum("Trip")
	paris := taggedPhoto("/p/paris.jpg", NewTag("location", "Paris"))
	oslo := taggedPhoto("/p/oslo.jpg", NewTag("location", "Oslo"))
	m.AddPhotoToAlbum("Trip", paris)
	m.AddPhotoToAlbum("Trip", oslo)

	results := ByTag(m.CurrentUser().AllPhotos(), "location", "Paris")
	if ok, err := m.CreateAlbumFromPhotos("Paris only", results); !ok || err != nil {
		t.Fatalf("save results: %v %v", ok, err)
	}

	loaded, err := m.Store().Load("alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	album := loaded.Album("Paris only")
	if album == nil || album.Count() != 1 || album.PhotoAt(0).Path() != "/p/paris.jpg" {
		t.Fatalf("result album did not persist correctly")
	}
	// The saved photo is shared with the source album, not a copy.
	if loaded.Album("Trip").PhotoAt(0) != album.PhotoAt(0) {
		t.Fatalf("result album must share photo objects with the source")
	}
}

func TestManagerLoginAndLogout(t *testing.T) {
	m := NewManager(tempStore(t))
	if _, err := m.CreateUserAccount("alice", "pw"); err != nil {
		t.Fatalf("create account: %v", err)
	}

	if err := m.Login("alice", "wrong"); err == nil {
		t.Fatalf("wrong password must fail")
	}
	if err := m.Login("ghost", "pw"); err == nil {
		t.Fatalf("missing account must fail")
	}
	if m.CurrentUser() != nil {
		t.Fatalf("failed logins must not bind a user")
	}

	if err := m.Login("alice", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if m.CurrentUser() == nil {
		t.Fatalf("login must bind the user")
	}
	m.Logout()
	if m.CurrentUser() != nil {
		t.Fatalf("logout must drop the user")
	}
	if err := m.Save(); err == nil {
		t.Fatalf("save with nobody logged in must error")
	}
}

func TestAdminAccountManagement(t *testing.T) {
	m := NewManager(tempStore(t))
	if err := m.Store().SeedDefaults(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := m.CreateUserAccount("bob", "pw"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := m.CreateUserAccount("bob", "other"); err == nil {
		t.Fatalf("duplicate account must be refused")
	}

	usernames, err := m.Usernames()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"admin", "bob", "stock"}
	if len(usernames) != len(want) {
		t.Fatalf("want %v, got %v", want, usernames)
	}
	for i := range want {
		if usernames[i] != want[i] {
			t.Fatalf("usernames must be sorted: want %v, got %v", want, usernames)
		}
	}

	if _, err := m.DeleteUserAccount(WellKnownAdmin); err == nil {
		t.Fatalf("the admin account must not be deletable")
	}
	if _, err := m.DeleteUserAccount(WellKnownStock); err == nil {
		t.Fatalf("the stock account must not be deletable")
	}
	if ok, err := m.DeleteUserAccount("bob"); !ok || err != nil {
		t.Fatalf("delete bob: %v %v", ok, err)
	}
}
