package player

import (
	"slices"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/club-roster/internal/platform/validation"
)

// TagSet is an ordered set of tags using exact string equality.
type TagSet struct {
	tags []Tag
}

func NewTagSet(tags ...Tag) (TagSet, error) {
	set := TagSet{}
	for _, tag := range tags {
		if err := validation.Var("tag", string(tag), validation.RuleAlnum); err != nil {
			return TagSet{}, err
		}
		if set.Contains(tag) {
			return TagSet{}, crerr.Wrapf(ErrDuplicateTag, "tag=%s", tag)
		}
		set.tags = append(set.tags, tag)
	}
	return set, nil
}

func (s TagSet) Contains(tag Tag) bool {
	return slices.Contains(s.tags, tag)
}

func (s TagSet) Tags() []Tag {
	out := make([]Tag, 0, len(s.tags))
	out = append(out, s.tags...)
	return out
}

func (s TagSet) Len() int {
	return len(s.tags)
}

func (s TagSet) Equal(other TagSet) bool {
	if len(s.tags) != len(other.tags) {
		return false
	}
	for _, tag := range s.tags {
		if !other.Contains(tag) {
			return false
		}
	}
	return true
}
