package post

import (
	"strings"

	"git.sr.ht/~mariusor/tagextractor"
)

type tags []string

func renderTagsText(t tags, tagPref string) string {
	rendered := make([]string, len(t))
	for i, g := range t {
		rendered[i] = tagPref + tagextractor.TagNormalize(g)
	}
	return strings.Join(uniqueValues(rendered, stringsContain), " ")
}

func (t tags) Render(tagPref string) string {
	return renderTagsText(t, tagPref)
}

func stringsContain(sl []string, v string) bool {
	for _, vs := range sl {
		if vs == v {
			return true
		}
	}
	return false
}

func uniqueValues[T comparable](sl []T, containsFn func(sl []T, u T) bool) []T {
	newSl := make([]T, 0, len(sl))
	for _, v := range sl {
		if !containsFn(newSl, v) {
			newSl = append(newSl, v)
		}
	}
	return newSl
}
