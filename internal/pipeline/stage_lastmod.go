package pipeline

import (
	"errors"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/streamfold/docgen/internal/frontmatter"
)

var lastModifiedLineRe = regexp.MustCompile(`(?m)^last_modified_on:.*\n?`)

// LastModifiedStage stamps last_modified_on into the front matter of files
// under the configured subtree whose content actually changed. The date
// line itself is excluded from the comparison so re-running on an already
// stamped file is a no-op.
func LastModifiedStage() Stage {
	return Stage{Name: "lastmod", Fn: setLastModified}
}

func setLastModified(ctx *Context, content string) (string, error) {
	if ctx.LastModifiedDir == "" || !underDir(ctx.FilePath, ctx.LastModifiedDir) {
		return content, nil
	}
	if _, _, _, err := frontmatter.Split(content); err != nil {
		// Malformed front matter is the validator stage's failure to
		// report; stamping here would bury it under a synthetic block.
		return content, nil
	}

	existing, err := ctx.readFile(ctx.FilePath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	if existing != "" && stripLastModified(existing) == stripLastModified(content) {
		// Unchanged apart from the stamp, keep the disk date.
		return existing, nil
	}

	date := ctx.today().Format("2006-01-02")
	return injectLastModified(content, date), nil
}

func underDir(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func stripLastModified(content string) string {
	raw, body, had, err := frontmatter.Split(content)
	if err != nil || !had {
		return content
	}
	return frontmatter.Join(lastModifiedLineRe.ReplaceAllString(raw, ""), body, true)
}

// injectLastModified writes the date as the first front-matter field,
// creating the block when the document has none. Callers have already
// verified the front matter splits cleanly.
func injectLastModified(content, date string) string {
	line := `last_modified_on: "` + date + `"` + "\n"

	raw, body, had, err := frontmatter.Split(content)
	if err != nil {
		return content
	}
	if !had {
		return frontmatter.Join(line, content, true)
	}
	raw = lastModifiedLineRe.ReplaceAllString(raw, "")
	return frontmatter.Join(line+raw, body, true)
}
