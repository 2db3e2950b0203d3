package photos

import (
	"fmt"
	"sort"
)

// Manager is the façade a front-end drives: one store, one logged-in user,
// and every successful mutation persisted before it returns. Album, photo,
// and tag methods require a logged-in user; the admin methods only require
// the store.
type Manager struct {
	store *Store
	user  *User
}

// NewManager builds a manager over the given store with nobody logged in.
func NewManager(store *Store) *Manager {
	return &Manager{store: store}
}

// Store exposes the underlying store.
func (m *Manager) Store() *Store { return m.store }

// CurrentUser returns the logged-in user, or nil.
func (m *Manager) CurrentUser() *User { return m.user }

// Login authenticates and binds the session to the user. The error text
// carries no hint of whether the account exists.
func (m *Manager) Login(username, password string) error {
	user := m.store.Authenticate(username, password)
	if user == nil {
		return fmt.Errorf("invalid username or password")
	}
	m.user = user
	return nil
}

// Logout drops the session's user.
func (m *Manager) Logout() { m.user = nil }

// Save persists the current user's graph.
func (m *Manager) Save() error {
	if m.user == nil {
		return fmt.Errorf("no user logged in")
	}
	return m.store.Save(m.user)
}

// ------------------ Album operations ------------------

// CreateAlbum adds an empty album. The bool is false when the name is
// already taken.
func (m *Manager) CreateAlbum(name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}
	if !m.user.CreateAlbum(name) {
		return false, nil
	}
	return true, m.Save()
}

// DeleteAlbum removes the named album. The bool is false when it was absent.
func (m *Manager) DeleteAlbum(name string) (bool, error) {
	if !m.user.DeleteAlbum(name) {
		return false, nil
	}
	return true, m.Save()
}

// RenameAlbum renames oldName to newName. The bool is false when oldName is
// absent or newName is taken.
func (m *Manager) RenameAlbum(oldName, newName string) (bool, error) {
	if err := ValidateName(newName); err != nil {
		return false, err
	}
	if !m.user.RenameAlbum(oldName, newName) {
		return false, nil
	}
	return true, m.Save()
}

// CreateAlbumFromPhotos materializes a photo list — typically a search
// result — as a new album. The bool is false when the name is taken.
func (m *Manager) CreateAlbumFromPhotos(name string, photoList []*Photo) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}
	if !m.user.CreateAlbum(name) {
		return false, nil
	}
	album := m.user.Album(name)
	for _, p := range photoList {
		album.AddPhoto(p)
	}
	return true, m.Save()
}

// ------------------ Photo operations ------------------

// AddPhotoToAlbum appends p to the named album. The bool is false on a
// duplicate path.
func (m *Manager) AddPhotoToAlbum(albumName string, p *Photo) (bool, error) {
	album := m.user.Album(albumName)
	if album == nil {
		return false, fmt.Errorf("no album named %q", albumName)
	}
	if !album.AddPhoto(p) {
		return false, nil
	}
	return true, m.Save()
}

// RemovePhotoFromAlbum removes p from the named album. The bool is false
// when the album did not hold the photo.
func (m *Manager) RemovePhotoFromAlbum(albumName string, p *Photo) (bool, error) {
	album := m.user.Album(albumName)
	if album == nil {
		return false, fmt.Errorf("no album named %q", albumName)
	}
	if !album.RemovePhoto(p) {
		return false, nil
	}
	return true, m.Save()
}

// CopyPhoto adds the photo to the destination album, keeping it in the
// source. The bool is false when the destination already holds it.
func (m *Manager) CopyPhoto(srcAlbum, dstAlbum string, p *Photo) (bool, error) {
	if !m.user.CopyPhoto(srcAlbum, dstAlbum, p) {
		return false, nil
	}
	return true, m.Save()
}

// MovePhoto moves the photo between albums. A duplicate destination makes
// the whole move a no-op and the bool false.
func (m *Manager) MovePhoto(srcAlbum, dstAlbum string, p *Photo) (bool, error) {
	if !m.user.MovePhoto(srcAlbum, dstAlbum, p) {
		return false, nil
	}
	return true, m.Save()
}

// SetCaption replaces p's caption. The edit is visible through every album
// sharing the photo.
func (m *Manager) SetCaption(p *Photo, caption string) error {
	p.SetCaption(caption)
	return m.Save()
}

// AddTag attaches tag to p. The bool is false on a duplicate tag.
func (m *Manager) AddTag(p *Photo, tag Tag) (bool, error) {
	if err := ValidateName(tag.Type); err != nil {
		return false, err
	}
	if err := ValidateName(tag.Value); err != nil {
		return false, err
	}
	if !p.AddTag(tag) {
		return false, nil
	}
	return true, m.Save()
}

// RemoveTag detaches tag from p. The bool is false when p did not carry it.
func (m *Manager) RemoveTag(p *Photo, tag Tag) (bool, error) {
	if !p.RemoveTag(tag) {
		return false, nil
	}
	return true, m.Save()
}

// ------------------ Admin surface ------------------

// Usernames lists the accounts on disk, sorted for display.
func (m *Manager) Usernames() ([]string, error) {
	usernames, err := m.store.ListUsernames()
	if err != nil {
		return nil, err
	}
	sort.Strings(usernames)
	return usernames, nil
}

// CreateUserAccount registers a new account, refusing duplicates.
func (m *Manager) CreateUserAccount(username, password string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if m.store.Exists(username) {
		return nil, fmt.Errorf("user %q already exists", username)
	}
	return m.store.CreateUser(username, password)
}

// DeleteUserAccount removes an account. The well-known accounts stay.
func (m *Manager) DeleteUserAccount(username string) (bool, error) {
	if username == WellKnownAdmin || username == WellKnownStock {
		return false, fmt.Errorf("the %s account cannot be deleted", username)
	}
	return m.store.Delete(username)
}
