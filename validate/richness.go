package validate

import (
	"strings"

	"github.com/fwojciec/ldcurate"
)

// AnalyzeRichness profiles identity markers and nesting of obj.
//
// Depth grows by one when descending into an object's values; array
// elements stay at the array's depth. The walk uses an explicit stack and
// stops descending once maxDepth containers deep, setting DepthLimited; a
// maxDepth of zero or less disables the cap. qualityDomains are matched as
// case-insensitive substrings of sameAs entries.
func AnalyzeRichness(obj ldcurate.Object, qualityDomains []string, maxDepth int) *ldcurate.RichnessProfile {
	p := &ldcurate.RichnessProfile{}

	_, p.HasID = obj["@id"]

	if sameAs, ok := obj["sameAs"]; ok {
		p.HasSameAs = true
		switch v := sameAs.(type) {
		case []any:
			p.SameAsCount = len(v)
			for _, link := range v {
				if isQualityLink(stringForm(link), qualityDomains) {
					p.HasQualityLinks = true
					break
				}
			}
		case string:
			p.SameAsCount = 1
			p.HasQualityLinks = isQualityLink(v, qualityDomains)
		}
	}

	type frame struct {
		value any
		depth int // reported depth: objects only
		level int // container nesting: objects and arrays
	}

	stack := []frame{{value: obj}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth > p.NestedDepth {
			p.NestedDepth = f.depth
		}

		switch v := f.value.(type) {
		case map[string]any:
			if _, ok := v["@type"]; ok {
				p.NestedEntitiesCount++
			}
			if len(v) == 0 {
				continue
			}
			if maxDepth > 0 && f.level >= maxDepth {
				p.DepthLimited = true
				continue
			}
			for _, child := range v {
				stack = append(stack, frame{value: child, depth: f.depth + 1, level: f.level + 1})
			}
		case []any:
			if len(v) == 0 {
				continue
			}
			if maxDepth > 0 && f.level >= maxDepth {
				p.DepthLimited = true
				continue
			}
			for _, child := range v {
				stack = append(stack, frame{value: child, depth: f.depth, level: f.level + 1})
			}
		}
	}

	return p
}

func isQualityLink(link string, qualityDomains []string) bool {
	link = strings.ToLower(link)
	for _, d := range qualityDomains {
		if strings.Contains(link, strings.ToLower(d)) {
			return true
		}
	}
	return false
}
