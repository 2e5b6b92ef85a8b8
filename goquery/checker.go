// Package goquery inspects article HTML with goquery.
package goquery

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pressroom"
)

// Ensure Checker implements pressroom.ContentChecker at compile time.
var _ pressroom.ContentChecker = (*Checker)(nil)

// Checker reports duplicate ids, in-page links without a target, empty
// headings and headings that skip a level.
type Checker struct{}

// NewChecker creates a new Checker.
func NewChecker() *Checker {
	return &Checker{}
}

// Check parses html and returns the issues found, in document order.
func (c *Checker) Check(html string) ([]pressroom.Issue, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pressroom.Errorf(pressroom.EINVALID, "failed to parse HTML: %v", err)
	}

	// Anchor targets: element ids plus legacy <a name>.
	targets := make(map[string]bool)
	doc.Find("[id]").Each(func(_ int, sel *goquery.Selection) {
		targets[sel.AttrOr("id", "")] = true
	})
	doc.Find("a[name]").Each(func(_ int, sel *goquery.Selection) {
		targets[sel.AttrOr("name", "")] = true
	})

	var issues []pressroom.Issue
	seenIDs := make(map[string]int)
	prevLevel := 0

	// "*" matches in document order, which keeps issues ordered.
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if id, ok := sel.Attr("id"); ok {
			seenIDs[id]++
			if seenIDs[id] == 2 {
				issues = append(issues, pressroom.Issue{
					Kind:    pressroom.IssueDuplicateID,
					Target:  id,
					Message: fmt.Sprintf("id %q is used by more than one element", id),
				})
			}
		}

		name := goquery.NodeName(sel)
		if level := headingLevel(name); level > 0 {
			text := strings.TrimSpace(sel.Text())
			if text == "" {
				issues = append(issues, pressroom.Issue{
					Kind:    pressroom.IssueEmptyHeading,
					Target:  name,
					Message: name + " has no text",
				})
			}
			if prevLevel > 0 && level > prevLevel+1 {
				issues = append(issues, pressroom.Issue{
					Kind:    pressroom.IssueSkippedLevel,
					Target:  text,
					Message: fmt.Sprintf("h%d follows h%d", level, prevLevel),
				})
			}
			prevLevel = level
			return
		}

		if name == "a" {
			href, ok := sel.Attr("href")
			if !ok || !strings.HasPrefix(href, "#") {
				return
			}
			fragment := href[1:]
			if fragment == "" || fragment == "top" {
				return
			}
			if targets[fragment] {
				return
			}
			if decoded, err := url.PathUnescape(fragment); err == nil && targets[decoded] {
				return
			}
			issues = append(issues, pressroom.Issue{
				Kind:    pressroom.IssueBrokenAnchor,
				Target:  href,
				Message: fmt.Sprintf("link to %s matches no element id", href),
			})
		}
	})

	return issues, nil
}

func headingLevel(name string) int {
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 0
}
