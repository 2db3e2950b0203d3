package photos

import (
	"testing"
	"time"
)

func TestTagEquality(t *testing.T) {
	a := NewTag("person", "Alice")
	b := NewTag("person", "Alice")
	c := NewTag("location", "Alice")

	if a != b {
		t.Fatalf("tags with equal type and value must be equal")
	}
	if a == c {
		t.Fatalf("tags with different types must not be equal")
	}
	if got := a.String(); got != "person:Alice" {
		t.Fatalf("render: want person:Alice, got %s", got)
	}
}

func TestPhotoIdentityIsPathOnly(t *testing.T) {
	p1 := NewPhoto("/p/a.jpg", time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	p2 := NewPhoto("/p/a.jpg", time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC))
	p2.SetCaption("different caption")
	p2.AddTag(NewTag("person", "Alice"))

	if !p1.Same(p2) {
		t.Fatalf("photos with equal paths are the same photo")
	}
	if p1.Same(NewPhoto("/p/b.jpg", p1.TakenAt())) {
		t.Fatalf("photos with different paths are different photos")
	}
	if p1.Same(nil) {
		t.Fatalf("nil is never the same photo")
	}
}

func TestPhotoTags(t *testing.T) {
	p := NewPhoto("/p/a.jpg", time.Now())

	if !p.AddTag(NewTag("person", "Alice")) {
		t.Fatalf("first add should succeed")
	}
	if p.AddTag(NewTag("person", "Alice")) {
		t.Fatalf("duplicate add should be a no-op")
	}
	p.AddTag(NewTag("location", "Paris"))
	p.AddTag(NewTag("person", "Bob"))

	tags := p.Tags()
	want := []Tag{{"person", "Alice"}, {"location", "Paris"}, {"person", "Bob"}}
	if len(tags) != len(want) {
		t.Fatalf("want %d tags, got %d", len(want), len(tags))
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("tag order: position %d want %s, got %s", i, want[i], tags[i])
		}
	}

	people := p.TagsByType("person")
	if len(people) != 2 || people[0].Value != "Alice" || people[1].Value != "Bob" {
		t.Fatalf("TagsByType must keep insertion order, got %v", people)
	}

	if !p.RemoveTag(NewTag("person", "Alice")) {
		t.Fatalf("removing an attached tag should report true")
	}
	if p.RemoveTag(NewTag("person", "Alice")) {
		t.Fatalf("removing an absent tag should report false")
	}

	p.RemoveTagsByType("person")
	if p.HasTag(NewTag("person", "Bob")) {
		t.Fatalf("RemoveTagsByType should drop every person tag")
	}
	if !p.HasTag(NewTag("location", "Paris")) {
		t.Fatalf("RemoveTagsByType must not touch other types")
	}
}

func TestPhotoTagsDefensiveCopy(t *testing.T) {
	p := NewPhoto("/p/a.jpg", time.Now())
	p.AddTag(NewTag("person", "Alice"))

	tags := p.Tags()
	tags[0] = NewTag("person", "Mallory")

	if !p.HasTag(NewTag("person", "Alice")) {
		t.Fatalf("mutating the returned slice must not mutate the photo")
	}
}

func TestPhotoFileName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/home/alice/pics/beach.jpg", "beach.jpg"},
		{`C:\Users\alice\pics\beach.jpg`, "beach.jpg"},
		{"beach.jpg", "beach.jpg"},
		{"/mixed\\separators/last\\name.png", "name.png"},
	}
	for _, tt := range tests {
		p := NewPhoto(tt.path, time.Now())
		if got := p.FileName(); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCaptionFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"new_york.jpg", "New york"},
		{"beach.JPEG", "Beach"},
		{"a.png", "A"},
		{"snow_day_2024.gif", "Snow day 2024"},
	}
	for _, tt := range tests {
		if got := CaptionFromFilename(tt.name); got != tt.want {
			t.Errorf("CaptionFromFilename(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestIsImageFile(t *testing.T) {
	for _, path := range []string{"a.jpg", "b.JPEG", "c.png", "d.GIF", "e.bmp"} {
		if !IsImageFile(path) {
			t.Errorf("IsImageFile(%q) should be true", path)
		}
	}
	for _, path := range []string{"a.txt", "b.jpg.json", "noext", "c.tiff"} {
		if IsImageFile(path) {
			t.Errorf("IsImageFile(%q) should be false", path)
		}
	}
}
