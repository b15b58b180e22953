package view

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DeleteAffordance is a remove-participant button found in rendered markup.
type DeleteAffordance struct {
	Activity string `json:"activity"`
	Email    string `json:"email"`
}

func parseFragment(fragment string) ([]*html.Node, error) {
	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), container)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	return nodes, nil
}

func walk(nodes []*html.Node, fn func(*html.Node)) {
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		fn(n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	for _, n := range nodes {
		visit(n)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// DeleteAffordances returns every .delete-btn in the fragment, in document
// order, with the activity and email it carries.
func DeleteAffordances(fragment string) ([]DeleteAffordance, error) {
	nodes, err := parseFragment(fragment)
	if err != nil {
		return nil, err
	}
	var found []DeleteAffordance
	walk(nodes, func(n *html.Node) {
		if n.Type != html.ElementNode || !hasClass(n, "delete-btn") {
			return
		}
		activity, _ := attr(n, "data-activity")
		email, _ := attr(n, "data-email")
		found = append(found, DeleteAffordance{Activity: activity, Email: email})
	})
	return found, nil
}

// TextContent returns the visible text of the fragment with runs of
// whitespace collapsed to single spaces.
func TextContent(fragment string) (string, error) {
	nodes, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}
	var parts []string
	walk(nodes, func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, strings.Fields(n.Data)...)
		}
	})
	return strings.Join(parts, " "), nil
}

// CountElements returns how many elements in the fragment carry the class.
func CountElements(fragment, class string) (int, error) {
	nodes, err := parseFragment(fragment)
	if err != nil {
		return 0, err
	}
	count := 0
	walk(nodes, func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, class) {
			count++
		}
	})
	return count, nil
}
