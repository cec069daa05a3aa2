package docparse

// Tag is a single structured documentation tag, e.g. "@since 1.2" or
// "@param name the description".
type Tag struct {
	Name string
	Text string
}

// Docstring is the structured form of a raw comment block: free prose plus
// the tags extracted from it. A docstring always exists on a registered
// entity, even when the source carried no comments.
type Docstring struct {
	Text string
	Tags []*Tag

	// HashFlag is true when the originating comment block used the reserved
	// double-hash convention.
	HashFlag bool

	// LineRange is the [start, end] line span of the originating comment
	// block, or [0, 0] when there was none.
	LineRange [2]int
}

// Tag returns the first tag with the given name, or nil.
func (d *Docstring) Tag(name string) *Tag {
	for _, t := range d.Tags {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// HasTag reports whether the docstring defines at least one tag with the
// given name.
func (d *Docstring) HasTag(name string) bool {
	return d.Tag(name) != nil
}

// TagsNamed returns all tags with the given name in declaration order.
func (d *Docstring) TagsNamed(name string) []*Tag {
	var out []*Tag
	for _, t := range d.Tags {
		if t.Name == name {
			out = append(out, t)
		}
	}
	return out
}

// AddTag appends a tag to the docstring.
func (d *Docstring) AddTag(t *Tag) {
	d.Tags = append(d.Tags, t)
}
