package photos

import "time"

// Album is a named, ordered collection of unique photos. Photo order is
// insertion order and is the order the front-end displays and navigates by
// index, so it has to survive persistence unchanged.
type Album struct {
	name   string
	photos []*Photo
}

// NewAlbum builds an empty album with the given name.
func NewAlbum(name string) *Album {
	return &Album{name: name}
}

// Name returns the album name.
func (a *Album) Name() string { return a.name }

// SetName renames the album. Name uniqueness is the owning user's concern,
// not the album's.
func (a *Album) SetName(name string) { a.name = name }

// AddPhoto appends p and reports whether it was added. A photo with the same
// path already present makes this a no-op and the album keeps the record it
// already has.
func (a *Album) AddPhoto(p *Photo) bool {
	if a.ContainsPhoto(p) {
		return false
	}
	a.photos = append(a.photos, p)
	return true
}

// RemovePhoto removes the first photo sharing p's path and reports whether a
// removal happened.
func (a *Album) RemovePhoto(p *Photo) bool {
	for i, have := range a.photos {
		if have.Same(p) {
			a.photos = append(a.photos[:i], a.photos[i+1:]...)
			return true
		}
	}
	return false
}

// ContainsPhoto reports whether the album holds a photo with p's path.
func (a *Album) ContainsPhoto(p *Photo) bool {
	for _, have := range a.photos {
		if have.Same(p) {
			return true
		}
	}
	return false
}

// PhotoAt returns the photo at index i. Indexing outside [0, Count()) is a
// caller error.
func (a *Album) PhotoAt(i int) *Photo { return a.photos[i] }

// Count returns the number of photos in the album.
func (a *Album) Count() int { return len(a.photos) }

// Photos returns a copy of the photo list in display order.
func (a *Album) Photos() []*Photo {
	out := make([]*Photo, len(a.photos))
	copy(out, a.photos)
	return out
}

// EarliestDate returns the oldest capture date in the album; ok is false
// when the album is empty.
func (a *Album) EarliestDate() (t time.Time, ok bool) {
	for i, p := range a.photos {
		if i == 0 || p.TakenAt().Before(t) {
			t = p.TakenAt()
		}
	}
	return t, len(a.photos) > 0
}

// LatestDate returns the newest capture date in the album; ok is false when
// the album is empty.
func (a *Album) LatestDate() (t time.Time, ok bool) {
	for i, p := range a.photos {
		if i == 0 || p.TakenAt().After(t) {
			t = p.TakenAt()
		}
	}
	return t, len(a.photos) > 0
}
