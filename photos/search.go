package photos

import (
	"sort"
	"time"
)

// The search functions are pure: they take any photo slice (typically
// User.AllPhotos), never mutate it, and preserve its relative order in every
// result.

// ByDateRange returns the photos taken within [start, end]. Both endpoints
// are inclusive.
func ByDateRange(photoList []*Photo, start, end time.Time) []*Photo {
	var out []*Photo
	for _, p := range photoList {
		if !p.TakenAt().Before(start) && !p.TakenAt().After(end) {
			out = append(out, p)
		}
	}
	return out
}

// ByTag returns the photos carrying the (tagType, value) tag.
func ByTag(photoList []*Photo, tagType, value string) []*Photo {
	return ByTagsAnd(photoList, []Tag{NewTag(tagType, value)})
}

// ByTagsAnd returns the photos carrying every tag in tags.
func ByTagsAnd(photoList []*Photo, tags []Tag) []*Photo {
	var out []*Photo
	for _, p := range photoList {
		matched := true
		for _, t := range tags {
			if !p.HasTag(t) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, p)
		}
	}
	return out
}

// ByTagsOr returns the photos carrying at least one tag in tags. Each photo
// appears once, at its first match.
func ByTagsOr(photoList []*Photo, tags []Tag) []*Photo {
	var out []*Photo
	for _, p := range photoList {
		for _, t := range tags {
			if p.HasTag(t) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// ByTwoTagsAnd is ByTagsAnd for the two-predicate form the search screen
// offers.
func ByTwoTagsAnd(photoList []*Photo, type1, value1, type2, value2 string) []*Photo {
	return ByTagsAnd(photoList, []Tag{NewTag(type1, value1), NewTag(type2, value2)})
}

// ByTwoTagsOr is ByTagsOr for the two-predicate form the search screen
// offers.
func ByTwoTagsOr(photoList []*Photo, type1, value1, type2, value2 string) []*Photo {
	return ByTagsOr(photoList, []Tag{NewTag(type1, value1), NewTag(type2, value2)})
}

// AllTagTypes returns every tag type used across the photos, sorted.
func AllTagTypes(photoList []*Photo) []string {
	set := make(map[string]bool)
	for _, p := range photoList {
		for _, t := range p.tags {
			set[t.Type] = true
		}
	}
	return sortedKeys(set)
}

// TagValues returns every value used with the given tag type, sorted.
func TagValues(photoList []*Photo, tagType string) []string {
	set := make(map[string]bool)
	for _, p := range photoList {
		for _, t := range p.tags {
			if t.Type == tagType {
				set[t.Value] = true
			}
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
