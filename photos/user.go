package photos

// Role marks what an account may do. The admin account manages other
// accounts, the stock account ships with the preloaded album, and regular
// accounts manage their own albums.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStock   Role = "stock"
	RoleRegular Role = "regular"
)

// User is a credentialed principal owning a list of uniquely named albums.
type User struct {
	username string
	password string
	role     Role
	albums   []*Album
}

// NewUser builds a user with no albums.
func NewUser(username, password string, role Role) *User {
	return &User{username: username, password: password, role: role}
}

// Username returns the account name.
func (u *User) Username() string { return u.username }

// Password returns the stored password, possibly empty.
func (u *User) Password() string { return u.password }

// SetPassword replaces the password.
func (u *User) SetPassword(password string) { u.password = password }

// Role returns the account's capability tag.
func (u *User) Role() Role { return u.role }

// IsAdmin reports whether the account may manage other accounts.
func (u *User) IsAdmin() bool { return u.role == RoleAdmin }

// Album returns the album with the given name, or nil when absent. Lookup is
// by exact name.
func (u *User) Album(name string) *Album {
	for _, a := range u.albums {
		if a.Name() == name {
			return a
		}
	}
	return nil
}

// CreateAlbum appends a new empty album and reports whether it was created;
// an existing album with the same name refuses the create.
func (u *User) CreateAlbum(name string) bool {
	if u.Album(name) != nil {
		return false
	}
	u.albums = append(u.albums, NewAlbum(name))
	return true
}

// DeleteAlbum removes the album with the given name and reports whether a
// removal happened.
func (u *User) DeleteAlbum(name string) bool {
	for i, a := range u.albums {
		if a.Name() == name {
			u.albums = append(u.albums[:i], u.albums[i+1:]...)
			return true
		}
	}
	return false
}

// RenameAlbum renames oldName to newName in place, keeping the album's
// position and contents. It refuses when oldName is absent or newName is
// already taken.
func (u *User) RenameAlbum(oldName, newName string) bool {
	album := u.Album(oldName)
	if album == nil || u.Album(newName) != nil {
		return false
	}
	album.SetName(newName)
	return true
}

// Albums returns a snapshot of the album list in creation order.
func (u *User) Albums() []*Album {
	out := make([]*Album, len(u.albums))
	copy(out, u.albums)
	return out
}

// AlbumCount returns the number of albums.
func (u *User) AlbumCount() int { return len(u.albums) }

// AllPhotos flattens every album into one list, keeping only the first
// occurrence of each photo path. This is the deduplicated view the search
// functions take.
func (u *User) AllPhotos() []*Photo {
	seen := make(map[string]bool)
	var out []*Photo
	for _, a := range u.albums {
		for _, p := range a.photos {
			if !seen[p.Path()] {
				seen[p.Path()] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// CopyPhoto adds a photo from the source album to the destination album.
// It reports false when either album is missing, the source does not hold the
// photo, or the destination already does.
func (u *User) CopyPhoto(srcAlbum, dstAlbum string, p *Photo) bool {
	src, dst := u.Album(srcAlbum), u.Album(dstAlbum)
	if src == nil || dst == nil || !src.ContainsPhoto(p) {
		return false
	}
	return dst.AddPhoto(p)
}

// MovePhoto copies the photo to the destination album and then removes it
// from the source. A duplicate in the destination makes the whole move a
// no-op: the photo stays where it was.
func (u *User) MovePhoto(srcAlbum, dstAlbum string, p *Photo) bool {
	if !u.CopyPhoto(srcAlbum, dstAlbum, p) {
		return false
	}
	return u.Album(srcAlbum).RemovePhoto(p)
}
