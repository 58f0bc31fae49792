// Package docs embeds the help topics shown by `studhub docs` and the TUI
// support modal.
package docs

import (
	"embed"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

// Topics returns the topic names, sorted.
func Topics() []string {
	entries, err := fs.ReadDir(contentFS, "content")
	if err != nil {
		return []string{}
	}
	topics := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".md"); ok && name != "" {
			topics = append(topics, name)
		}
	}
	slices.Sort(topics)
	return topics
}

// Get returns the markdown for topic. Lookup ignores case and surrounding space.
func Get(topic string) (string, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" || strings.ContainsAny(topic, `/\`) {
		return "", false
	}
	b, err := contentFS.ReadFile(path.Join("content", topic+".md"))
	if err != nil {
		return "", false
	}
	return string(b), true
}
