package dockharden

import (
	"regexp"
	"sort"
	"strings"
)

// fromLineRe matches a source-image declaration: FROM, whitespace, then
// optional --flags, the image reference, and an optional stage alias. The
// reference must be a plain name ending at whitespace, so quoted references
// and build-arg substitutions such as ${BASE} do not match.
var fromLineRe = regexp.MustCompile(`(?i)^from\s+((?:--\S+\s+)*)([\w\-/\.:@]+)(?:\s+as\s+(\S+))?(?:\s|$)`)

// ParseBaseImages returns the distinct base image names referenced by the
// FROM lines of a Dockerfile, sorted. Registry and repository path segments
// are stripped, as are tags and digests. References to earlier build stages
// are not images and are skipped.
//
// An empty result means the Dockerfile declares no base images.
func ParseBaseImages(contents string) []string {
	seen := make(map[string]struct{})
	stages := make(map[string]struct{})

	for _, line := range strings.Split(contents, "\n") {
		m := fromLineRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		ref, alias := m[2], m[3]
		if strings.HasPrefix(ref, "-") {
			continue
		}

		if _, ok := stages[strings.ToLower(ref)]; !ok {
			if name := ImageName(ref); name != "" {
				seen[name] = struct{}{}
			}
		}
		if alias != "" {
			stages[strings.ToLower(alias)] = struct{}{}
		}
	}

	images := make([]string, 0, len(seen))
	for name := range seen {
		images = append(images, name)
	}
	sort.Strings(images)
	return images
}

// ImageName reduces an image reference to its short name:
// "docker.io/library/python:3.12" becomes "python".
func ImageName(ref string) string {
	name := ref[strings.LastIndex(ref, "/")+1:]
	if i := strings.IndexAny(name, ":@"); i >= 0 {
		name = name[:i]
	}
	return name
}
