package photos

import (
	"strings"
	"time"
)

// Photo is one image file in the library. Identity is the file path: two
// records with the same path are the same photo no matter what their
// captions, dates, or tags say. Albums hold *Photo, so a photo placed in
// several albums is one shared object and an edit made through any album is
// visible through all of them.
//
// The library never touches pixel data; if the file behind the path moves or
// disappears, the record stays valid and rendering becomes the viewer's
// problem.
type Photo struct {
	path    string
	takenAt time.Time
	caption string
	tags    []Tag
}

// NewPhoto builds a photo for the given file path and capture timestamp.
// The caption starts empty and no tags are attached.
func NewPhoto(path string, takenAt time.Time) *Photo {
	return &Photo{path: path, takenAt: takenAt}
}

// Path returns the file path that identifies this photo.
func (p *Photo) Path() string { return p.path }

// TakenAt returns the capture timestamp.
func (p *Photo) TakenAt() time.Time { return p.takenAt }

// SetTakenAt replaces the capture timestamp.
func (p *Photo) SetTakenAt(takenAt time.Time) { p.takenAt = takenAt }

// Caption returns the free-form caption, possibly empty.
func (p *Photo) Caption() string { return p.caption }

// SetCaption replaces the caption.
func (p *Photo) SetCaption(caption string) { p.caption = caption }

// FileName returns the last component of the path. Paths may come from
// either Unix or Windows pickers, so both separators count.
func (p *Photo) FileName() string {
	i := strings.LastIndexAny(p.path, `/\`)
	return p.path[i+1:]
}

// Same reports whether other refers to the same photo, i.e. the same path.
func (p *Photo) Same(other *Photo) bool {
	return other != nil && p.path == other.path
}

// Tags returns a copy of the tag list in insertion order. Mutating the
// returned slice does not touch the photo.
func (p *Photo) Tags() []Tag {
	out := make([]Tag, len(p.tags))
	copy(out, p.tags)
	return out
}

// AddTag appends t and reports whether it was added; an equal tag already
// present makes this a no-op.
func (p *Photo) AddTag(t Tag) bool {
	if p.HasTag(t) {
		return false
	}
	p.tags = append(p.tags, t)
	return true
}

// RemoveTag removes the first tag equal to t and reports whether a removal
// happened.
func (p *Photo) RemoveTag(t Tag) bool {
	for i, have := range p.tags {
		if have == t {
			p.tags = append(p.tags[:i], p.tags[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveTagsByType drops every tag of the given type.
func (p *Photo) RemoveTagsByType(tagType string) {
	kept := p.tags[:0]
	for _, t := range p.tags {
		if t.Type != tagType {
			kept = append(kept, t)
		}
	}
	p.tags = kept
}

// TagsByType returns the tags of the given type, in insertion order.
func (p *Photo) TagsByType(tagType string) []Tag {
	var out []Tag
	for _, t := range p.tags {
		if t.Type == tagType {
			out = append(out, t)
		}
	}
	return out
}

// HasTag reports structural membership of t in the photo's tag list.
func (p *Photo) HasTag(t Tag) bool {
	for _, have := range p.tags {
		if have == t {
			return true
		}
	}
	return false
}
