package services

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"content-cms/pkg/config"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Lint rule identifiers, one per structural check.
const (
	RuleFrontMatter = "front-matter"
	RuleTitle       = "title"
	RuleDate        = "date"
	RuleCodeFence   = "code-fence"
	RuleLink        = "link"
)

type LintIssue struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

type LintReport struct {
	Path   string      `json:"path"`
	Issues []LintIssue `json:"issues"`
}

func (r LintReport) OK() bool { return len(r.Issues) == 0 }

// LintContent runs every structural check against one content file.
func LintContent(content []byte) []LintIssue {
	var issues []LintIssue

	fm, body, _, err := ParseFrontMatter(content)
	switch {
	case errors.Is(err, ErrNoFrontMatter):
		return append(issues, LintIssue{Rule: RuleFrontMatter, Message: "missing front matter block"})
	case errors.Is(err, ErrUnterminated):
		return append(issues, LintIssue{Rule: RuleFrontMatter, Message: "unterminated front matter block"})
	case err != nil:
		return append(issues, LintIssue{Rule: RuleFrontMatter, Message: err.Error()})
	}

	issues = append(issues, lintMeta(fm)...)
	issues = append(issues, lintCodeFences(body)...)
	issues = append(issues, lintLinks(body)...)
	return issues
}

func lintMeta(fm map[string]interface{}) []LintIssue {
	var issues []LintIssue

	if title, ok := fm["title"].(string); !ok || strings.TrimSpace(title) == "" {
		issues = append(issues, LintIssue{Rule: RuleTitle, Message: "title is required and must be non-empty"})
	}

	dateVal, ok := fm["date"]
	if !ok || dateVal == nil {
		issues = append(issues, LintIssue{Rule: RuleDate, Message: "date is required"})
	} else if t, ok := parseDateValue(dateVal); !ok || t.IsZero() {
		issues = append(issues, LintIssue{Rule: RuleDate, Message: fmt.Sprintf("invalid date: %v", dateVal)})
	}

	return issues
}

// lintCodeFences verifies every opened fence is closed. The markdown parser
// silently closes dangling fences at EOF, so this works on the raw body.
func lintCodeFences(body string) []LintIssue {
	var issues []LintIssue

	openLine := 0
	var openMarker byte
	openLen := 0

	for i, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimLeft(line, " ")
		// Four or more leading spaces make an indented code block, not a fence.
		if len(line)-len(trimmed) > 3 {
			continue
		}
		if !strings.HasPrefix(trimmed, "```") && !strings.HasPrefix(trimmed, "~~~") {
			continue
		}

		marker := trimmed[0]
		length := 0
		for length < len(trimmed) && trimmed[length] == marker {
			length++
		}

		if openLine == 0 {
			openLine = i + 1
			openMarker = marker
			openLen = length
			continue
		}

		// A closing fence uses the same marker, at least as long, with
		// nothing but whitespace after it.
		if marker == openMarker && length >= openLen && strings.TrimSpace(trimmed[length:]) == "" {
			openLine = 0
		}
	}

	if openLine != 0 {
		issues = append(issues, LintIssue{
			Rule:    RuleCodeFence,
			Message: "unterminated fenced code block",
			Line:    openLine,
		})
	}
	return issues
}

var lintMarkdown = goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Linkify))

func lintLinks(body string) []LintIssue {
	var issues []LintIssue

	source := []byte(body)
	doc := lintMarkdown.Parser().Parse(text.NewReader(source))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		var dest string
		switch node := n.(type) {
		case *ast.Link:
			dest = string(node.Destination)
		case *ast.Image:
			dest = string(node.Destination)
		case *ast.AutoLink:
			dest = string(node.URL(source))
		default:
			return ast.WalkContinue, nil
		}

		if !validLinkTarget(dest) {
			issues = append(issues, LintIssue{
				Rule:    RuleLink,
				Message: fmt.Sprintf("invalid link target: %q", dest),
			})
		}
		return ast.WalkContinue, nil
	})

	return issues
}

// validLinkTarget accepts absolute URLs with a scheme and host, fragment and
// mailto links, and clean relative paths.
func validLinkTarget(dest string) bool {
	if dest == "" {
		return false
	}
	if strings.ContainsAny(dest, " \t\n<>") {
		return false
	}
	if strings.Contains(dest, "://") {
		u, err := url.ParseRequestURI(dest)
		return err == nil && u.Scheme != "" && u.Host != ""
	}
	if strings.HasPrefix(dest, "mailto:") {
		return strings.Contains(dest, "@")
	}
	_, err := url.Parse(dest)
	return err == nil
}

// LintTree lints every content file under dir matching pattern, returning one
// report per file in path order. Draft records are skipped unless
// includeDrafts is set; files too malformed to carry a draft flag are always
// reported.
func LintTree(dir, pattern string, includeDrafts bool) ([]LintReport, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	reports := make([]LintReport, 0, len(matches))
	for _, relPath := range matches {
		content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(relPath)))
		if err != nil {
			reports = append(reports, LintReport{
				Path:   relPath,
				Issues: []LintIssue{{Rule: RuleFrontMatter, Message: err.Error()}},
			})
			continue
		}
		if !includeDrafts && isDraftContent(content) {
			continue
		}
		reports = append(reports, LintReport{Path: relPath, Issues: LintContent(content)})
	}
	return reports, nil
}

func isDraftContent(content []byte) bool {
	fm, _, _, err := ParseFrontMatter(content)
	if err != nil {
		return false
	}
	draft, ok := fm["draft"].(bool)
	return ok && draft
}

// LintContentTree lints the repository's content directory with the
// configured pattern. The editor view covers drafts too.
func LintContentTree() ([]LintReport, error) {
	return LintTree(filepath.Join(config.RepoPath, "content"), config.ContentPattern, true)
}
