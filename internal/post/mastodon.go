package post

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/McKael/madon"
)

const maxPostSize = 500
const mastodonTitleTpl = `Planned for {{ .Format "Monday, 02 Jan 2006" -}}`
const mastodonContentTpl = `{{- range $it := .Items }}
{{ $it | sanitize }} {{ renderTags $it.Tags "#" }}
{{ end }}
#{{ .Date.Month.String | lower }}{{ range $p := .PlatformTags }} #{{ $p }}{{ end }} #contentplan`

var badStrings = []string{"â€‹"}

func removeStrings(s string, replace ...string) string {
	for _, r := range replace {
		s = strings.ReplaceAll(s, r, "")
	}
	return s
}

func sanitize(it Item) string {
	return removeStrings(it.String(), badStrings...)
}

var contTemplate = template.Must(template.New("daily-PostToMastodon").
	Funcs(template.FuncMap{
		"sanitize":   sanitize,
		"lower":      strings.ToLower,
		"renderTags": renderTagsText,
	}).Parse(mastodonContentTpl))

var titleTemplate = template.Must(template.New("daily-PostToMastodon-title").
	Funcs(template.FuncMap{
		"sanitize": sanitize,
	}).Parse(mastodonTitleTpl))

type postContent struct {
	Date  time.Time
	Items Items
}

// PlatformTags collects the distinct target platform names of the group.
func (c postContent) PlatformTags() []string {
	names := make([]string, 0)
	for _, it := range c.Items {
		for _, p := range it.Platforms {
			names = append(names, strings.ToLower(p))
		}
	}
	return uniqueValues(names, stringsContain)
}

type postModel struct {
	title, content string
}

func renderTitle(gd time.Time) (string, error) {
	title := bytes.NewBuffer(nil)
	if err := titleTemplate.Execute(title, gd); err != nil {
		return "", fmt.Errorf("unable to build post title: %w", err)
	}
	return title.String(), nil
}

func renderPosts(d time.Time, items Items) (string, error) {
	model := postContent{Date: d, Items: items}
	contBuff := bytes.NewBuffer(nil)
	if err := contTemplate.Execute(contBuff, model); err != nil {
		infFn("unable to render post %s", err)
		return "", err
	}
	return contBuff.String(), nil
}

const unlisted = "unlisted"

func ToMastodon(client *madon.Client) PosterFn {
	if client == nil {
		return ToStdout
	}
	return func(group map[time.Time]Items) error {
		var inReplyTo int64 = 0
		posts := make([]postModel, 0)

		for d, items := range group {
			title, err := renderTitle(d)
			if err != nil {
				errFn("Unable to render title: %s", err)
			}

			cleaveFn := func(d time.Time, content *string) func(rel []Item) bool {
				return func(rel []Item) bool {
					var err error
					*content, err = renderPosts(d, rel)
					if err != nil {
						return false
					}
					return len(*content) < maxPostSize
				}
			}

			for {
				var content string
				_, items = cleaveSlice(items, cleaveFn(d, &content))

				posts = append(posts, postModel{title: title, content: content})
				if items == nil {
					break
				}
			}
		}

		for i, model := range posts {
			if len(posts) > 1 {
				model.title = fmt.Sprintf("%s: %d/%d", model.title, i+1, len(posts))
			}
			if inReplyTo > 0 {
				time.Sleep(500 * time.Millisecond)
			}
			s, err := client.PostStatus(model.content, inReplyTo, nil, len(model.title) > 0, model.title, unlisted)
			if err != nil {
				return fmt.Errorf("%s: %w", client.InstanceURL, err)
			} else {
				infFn("Post at: %s", s.URI)
			}
		}

		return nil
	}
}

func InstanceName(inst string) string {
	if u, err := url.ParseRequestURI(inst); err == nil {
		inst = u.Host
	}
	return url.PathEscape(filepath.Clean(filepath.Base(inst)))
}

// LoadCredentials gob-decodes every saved Mastodon client found under path.
func LoadCredentials(path string) ([]*madon.Client, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials path %s: %w", path, err)
	}
	creds := make([]*madon.Client, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		f, err := os.Open(filepath.Join(path, entry.Name()))
		if err != nil {
			continue
		}
		app := new(madon.Client)
		err = gob.NewDecoder(f).Decode(app)
		f.Close()
		if err != nil || app.InstanceURL == "" {
			continue
		}
		creds = append(creds, app)
	}
	return creds, nil
}

func splitSlice[T any](sl []T, size int) [][]T {
	result := make([][]T, 0)
	if len(sl) <= size {
		result = append(result, sl)
		return result
	}
	if size == 0 {
		size = 1
	}
	cur := 0
	end := size
	for {
		if cur+size < len(sl) {
			end = cur + size
		} else {
			end = len(sl)
		}
		chunk := sl[cur:end]
		cur += size
		result = append(result, chunk)
		if cur >= len(sl) {
			break
		}
	}
	return result
}

func cleaveSlice[T any](incoming []T, checkFn func([]T) bool) ([]T, []T) {
	if checkFn(incoming) {
		return incoming, nil
	}

	var remainder []T
	for {
		cleaveLen := len(incoming) / 2
		halves := splitSlice[T](incoming, cleaveLen)
		if len(halves) >= 2 {
			for _, h := range halves[1:] {
				remainder = append(remainder, h...)
			}
		}
		if checkFn(halves[0]) {
			return halves[0], remainder
		}
		if len(halves[0]) == len(incoming) {
			break
		}
		incoming = halves[0]
	}
	return incoming, nil
}
