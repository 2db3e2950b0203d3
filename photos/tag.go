package photos

// Tag is a typed label attached to a photo, e.g. {Type: "location", Value:
// "Prague"}. Tags are value objects: two tags are the same tag exactly when
// both fields match.
type Tag struct {
	Type  string
	Value string
}

// NewTag builds a tag from a type and a value. Callers trim their input.
func NewTag(tagType, value string) Tag {
	return Tag{Type: tagType, Value: value}
}

// String renders the tag as "type:value", the form shown in tag lists and
// search pickers.
func (t Tag) String() string {
	return t.Type + ":" + t.Value
}
