package photos

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// The two accounts every store ships with. They are created on first start
// and never deleted.
const (
	WellKnownAdmin = "admin"
	WellKnownStock = "stock"
)

// StockAlbumName is the album non-admin accounts start out with.
const StockAlbumName = "stock"

const (
	userFileExt   = ".dat"
	schemaVersion = 1
)

// Store persists each user's full album graph as one SQLite file under
// {root}/users/{username}.dat. The store assumes exclusive ownership of that
// directory; a second process pointed at the same root is undefined
// behavior.
type Store struct {
	root string
}

// NewStore binds a store to a data directory, typically "data".
func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) usersDir() string {
	return filepath.Join(s.root, "users")
}

// StockDir is the read-only directory of starter images used to populate the
// stock album.
func (s *Store) StockDir() string {
	return filepath.Join(s.root, "photos", "stock")
}

func (s *Store) userFile(username string) string {
	return filepath.Join(s.usersDir(), username+userFileExt)
}

// Exists reports whether a user file is present for username.
func (s *Store) Exists(username string) bool {
	_, err := os.Stat(s.userFile(username))
	return err == nil
}

// ListUsernames enumerates the accounts on disk. Order is whatever the
// directory listing yields; callers that need stability sort.
func (s *Store) ListUsernames() ([]string, error) {
	entries, err := os.ReadDir(s.usersDir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var usernames []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), userFileExt) {
			continue
		}
		usernames = append(usernames, strings.TrimSuffix(entry.Name(), userFileExt))
	}
	return usernames, nil
}

// Delete removes username's file and reports whether a deletion occurred.
// Policy around the well-known accounts lives in the admin surface, not
// here.
func (s *Store) Delete(username string) (bool, error) {
	err := os.Remove(s.userFile(username))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return true, nil
}

// Authenticate loads username and compares the stored password byte for
// byte. Every failure — unknown user, wrong password, unreadable or corrupt
// file — comes back as a plain nil so a caller cannot probe which accounts
// exist.
func (s *Store) Authenticate(username, password string) *User {
	if !s.Exists(username) {
		return nil
	}
	user, err := s.Load(username)
	if err != nil || user == nil {
		return nil
	}
	if user.Password() != password {
		return nil
	}
	return user
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

// Load reads a user's graph from disk. A missing file yields (nil, nil); a
// file that exists but cannot be decoded yields an ErrCorruptStore error.
func (s *Store) Load(username string) (*User, error) {
	path := s.userFile(username)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("open user file: %w", err)
	}
	defer db.Close()

	user, err := readUser(db)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, username, err)
	}
	return user, nil
}

func readUser(db *sql.DB) (*User, error) {
	var username, password, role string
	if err := db.QueryRow(`SELECT username, password, role FROM account`).
		Scan(&username, &password, &role); err != nil {
		return nil, err
	}
	user := NewUser(username, password, Role(role))

	// Photos first: the intern table keyed by path is what turns a photo
	// shared between albums back into a single in-memory object.
	interned, err := readPhotos(db)
	if err != nil {
		return nil, err
	}
	if err := readTags(db, interned); err != nil {
		return nil, err
	}

	type albumRow struct {
		id   int64
		name string
	}
	var albumRows []albumRow
	rows, err := db.Query(`SELECT id, name FROM albums ORDER BY position`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var r albumRow
		if err := rows.Scan(&r.id, &r.name); err != nil {
			rows.Close()
			return nil, err
		}
		albumRows = append(albumRows, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, r := range albumRows {
		if !user.CreateAlbum(r.name) {
			return nil, fmt.Errorf("duplicate album %q", r.name)
		}
		if err := readAlbumPhotos(db, r.id, user.Album(r.name), interned); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func readPhotos(db *sql.DB) (map[string]*Photo, error) {
	rows, err := db.Query(`SELECT path, taken_at, caption FROM photos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interned := make(map[string]*Photo)
	for rows.Next() {
		var path, caption string
		var takenAt time.Time
		if err := rows.Scan(&path, &takenAt, &caption); err != nil {
			return nil, err
		}
		photo := NewPhoto(path, takenAt)
		photo.SetCaption(caption)
		interned[path] = photo
	}
	return interned, rows.Err()
}

func readTags(db *sql.DB, interned map[string]*Photo) error {
	rows, err := db.Query(`SELECT path, type, value FROM tags ORDER BY path, position`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var path, tagType, value string
		if err := rows.Scan(&path, &tagType, &value); err != nil {
			return err
		}
		photo := interned[path]
		if photo == nil {
			return fmt.Errorf("tag references unknown photo %q", path)
		}
		photo.AddTag(NewTag(tagType, value))
	}
	return rows.Err()
}

func readAlbumPhotos(db *sql.DB, albumID int64, album *Album, interned map[string]*Photo) error {
	rows, err := db.Query(`SELECT path FROM album_photos WHERE album_id = ? ORDER BY position`, albumID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return err
		}
		photo := interned[path]
		if photo == nil {
			return fmt.Errorf("album %q references unknown photo %q", album.Name(), path)
		}
		album.AddPhoto(photo)
	}
	return rows.Err()
}

// ---------------------------------------------------------------------------
// Save
// ---------------------------------------------------------------------------

// Save writes the user's entire graph to disk. The graph goes into a fresh
// database at {file}.tmp which then replaces the old file, so a crash
// mid-write never leaves a truncated user file behind.
func (s *Store) Save(user *User) error {
	if err := os.MkdirAll(s.usersDir(), 0o755); err != nil {
		return fmt.Errorf("create users dir: %w", err)
	}

	final := s.userFile(user.Username())
	tmp := final + ".tmp"
	os.Remove(tmp)

	if err := writeUserFile(tmp, user); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace user file: %w", err)
	}
	return nil
}

func writeUserFile(path string, user *User) error {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", path))
	if err != nil {
		return fmt.Errorf("open user file: %w", err)
	}
	defer db.Close()

	if err := createSchema(db); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO account(username, password, role) VALUES(?,?,?)`,
		user.Username(), user.Password(), string(user.Role())); err != nil {
		return fmt.Errorf("write account: %w", err)
	}

	insertAlbum, err := tx.Prepare(`INSERT INTO albums(name, position) VALUES(?,?)`)
	if err != nil {
		return err
	}
	defer insertAlbum.Close()
	insertPhoto, err := tx.Prepare(`INSERT INTO photos(path, taken_at, caption) VALUES(?,?,?)`)
	if err != nil {
		return err
	}
	defer insertPhoto.Close()
	insertSlot, err := tx.Prepare(`INSERT INTO album_photos(album_id, path, position) VALUES(?,?,?)`)
	if err != nil {
		return err
	}
	defer insertSlot.Close()
	insertTag, err := tx.Prepare(`INSERT INTO tags(path, type, value, position) VALUES(?,?,?,?)`)
	if err != nil {
		return err
	}
	defer insertTag.Close()

	// A photo shared by several albums serializes once; its slots carry the
	// per-album ordering.
	written := make(map[string]bool)
	for albumPos, album := range user.Albums() {
		res, err := insertAlbum.Exec(album.Name(), albumPos)
		if err != nil {
			return fmt.Errorf("write album %q: %w", album.Name(), err)
		}
		albumID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for photoPos, photo := range album.Photos() {
			if !written[photo.Path()] {
				written[photo.Path()] = true
				if _, err := insertPhoto.Exec(photo.Path(), photo.TakenAt(), photo.Caption()); err != nil {
					return fmt.Errorf("write photo %q: %w", photo.Path(), err)
				}
				for tagPos, tag := range photo.Tags() {
					if _, err := insertTag.Exec(photo.Path(), tag.Type, tag.Value, tagPos); err != nil {
						return fmt.Errorf("write tag %s: %w", tag, err)
					}
				}
			}
			if _, err := insertSlot.Exec(albumID, photo.Path(), photoPos); err != nil {
				return fmt.Errorf("write album photo %q: %w", photo.Path(), err)
			}
		}
	}
	return tx.Commit()
}

func createSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE meta (key TEXT PRIMARY KEY, value TEXT);`,
		`CREATE TABLE account (
            username TEXT NOT NULL,
            password TEXT NOT NULL,
            role TEXT NOT NULL
        );`,
		`CREATE TABLE albums (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL UNIQUE,
            position INTEGER NOT NULL
        );`,
		`CREATE TABLE photos (
            path TEXT PRIMARY KEY,
            taken_at DATETIME NOT NULL,
            caption TEXT NOT NULL
        );`,
		`CREATE TABLE album_photos (
            album_id INTEGER NOT NULL REFERENCES albums(id),
            path TEXT NOT NULL REFERENCES photos(path),
            position INTEGER NOT NULL,
            PRIMARY KEY (album_id, path)
        );`,
		`CREATE TABLE tags (
            path TEXT NOT NULL REFERENCES photos(path),
            type TEXT NOT NULL,
            value TEXT NOT NULL,
            position INTEGER NOT NULL
        );`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	if _, err := db.Exec(`INSERT INTO meta(key, value) VALUES('schema_version', ?)`, schemaVersion); err != nil {
		return fmt.Errorf("write schema version: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Account creation and seeding
// ---------------------------------------------------------------------------

// CreateUser registers a fresh account and persists it. Everyone but the
// admin starts out with the stock album.
func (s *Store) CreateUser(username, password string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	role := RoleRegular
	switch username {
	case WellKnownAdmin:
		role = RoleAdmin
	case WellKnownStock:
		role = RoleStock
	}

	user := NewUser(username, password, role)
	if role != RoleAdmin {
		s.seedStockAlbum(user)
	}
	if err := s.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SeedDefaults creates the admin and stock accounts when missing. Safe to
// call on every start.
func (s *Store) SeedDefaults() error {
	if !s.Exists(WellKnownAdmin) {
		if _, err := s.CreateUser(WellKnownAdmin, "admin"); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}
	if !s.Exists(WellKnownStock) {
		if _, err := s.CreateUser(WellKnownStock, "stock"); err != nil {
			return fmt.Errorf("seed stock: %w", err)
		}
	}
	return nil
}

// seedStockAlbum fills the stock album from the stock asset directory,
// dating each photo by its modification time and deriving a caption from the
// file name. Unreadable files are logged and skipped; seeding never fails
// the account.
func (s *Store) seedStockAlbum(user *User) {
	user.CreateAlbum(StockAlbumName)
	album := user.Album(StockAlbumName)

	entries, err := os.ReadDir(s.StockDir())
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("skipping stock photos for %s: %v", user.Username(), err)
		}
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !IsImageFile(entry.Name()) {
			continue
		}
		photo, err := NewPhotoFromFile(filepath.Join(s.StockDir(), entry.Name()))
		if err != nil {
			log.Printf("skipping stock photo %s: %v", entry.Name(), err)
			continue
		}
		photo.SetCaption(CaptionFromFilename(entry.Name()))
		album.AddPhoto(photo)
	}
}
