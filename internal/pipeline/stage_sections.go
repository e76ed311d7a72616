package pipeline

import (
	"regexp"
	"sort"
	"strings"
)

const sortMarker = "[[sort]]"

var headingRe = regexp.MustCompile(`^(#+)\s`)

// SectionSorterStage reorders the sibling subsections following a heading
// marked with [[sort]] and strips the marker. Sorting an already-sorted
// document is a no-op, and once the marker is gone re-running the stage
// leaves the text untouched.
func SectionSorterStage() Stage {
	return Stage{Name: "sections", Fn: sortSections}
}

func sortSections(ctx *Context, content string) (string, error) {
	trailingNewline := strings.HasSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	if trailingNewline {
		lines = lines[:len(lines)-1]
	}

	for i := 0; i < len(lines); i++ {
		depth := headingDepth(lines[i])
		if depth == 0 || !strings.HasSuffix(strings.TrimRight(lines[i], " \t"), sortMarker) {
			continue
		}

		// The sortable region runs from after the marked heading up to the
		// next strictly shallower heading.
		end := len(lines)
		for j := i + 1; j < len(lines); j++ {
			if d := headingDepth(lines[j]); d > 0 && d < depth {
				end = j
				break
			}
		}

		sortRegion(lines[i+1:end], depth)
	}

	for i, line := range lines {
		if headingDepth(line) > 0 && strings.Contains(line, sortMarker) {
			lines[i] = strings.TrimRight(strings.ReplaceAll(line, sortMarker, ""), " \t")
		}
	}

	out := strings.Join(lines, "\n")
	if trailingNewline {
		out += "\n"
	}
	return out, nil
}

// sortRegion splits the region on same-depth heading lines and reorders the
// resulting sibling blocks lexicographically by their full text. Any
// preamble before the first sibling heading stays in place.
func sortRegion(region []string, depth int) {
	var starts []int
	for i, line := range region {
		if headingDepth(line) == depth {
			starts = append(starts, i)
		}
	}
	if len(starts) < 2 {
		return
	}

	blocks := make([][]string, 0, len(starts))
	for i, start := range starts {
		end := len(region)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		// Copy: the blocks are written back over the region they came from.
		blocks = append(blocks, append([]string(nil), region[start:end]...))
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		return strings.Join(blocks[i], "\n") < strings.Join(blocks[j], "\n")
	})

	pos := starts[0]
	for _, block := range blocks {
		copy(region[pos:pos+len(block)], block)
		pos += len(block)
	}
}

func headingDepth(line string) int {
	m := headingRe.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	return len(m[1])
}
