// Package kind classifies rendered list-form controls. Host platforms embed a
// structural comment in every control cell naming the field type that
// produced it; Detect reads that marker and maps it onto a closed set of
// kinds.
package kind

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Kind is the detected field type of a control cell.
type Kind int

const (
	Unknown Kind = iota
	Text
	Number
	Currency
	Choice
	MultiChoice
	DateTime
	Boolean
	User
	UserMulti
	URL
	Lookup
	LookupMulti
	Note
	File
)

var markers = map[Kind]string{
	Text:        "SPFieldText",
	Number:      "SPFieldNumber",
	Currency:    "SPFieldCurrency",
	Choice:      "SPFieldChoice",
	MultiChoice: "SPFieldMultiChoice",
	DateTime:    "SPFieldDateTime",
	Boolean:     "SPFieldBoolean",
	User:        "SPFieldUser",
	UserMulti:   "SPFieldUserMulti",
	URL:         "SPFieldURL",
	Lookup:      "SPFieldLookup",
	LookupMulti: "SPFieldLookupMulti",
	Note:        "SPFieldNote",
	File:        "SPFieldFile",
}

var byMarker = func() map[string]Kind {
	out := make(map[string]Kind, len(markers))
	for k, marker := range markers {
		out[marker] = k
	}
	return out
}()

var markerPattern = regexp.MustCompile(`SPField\w+`)

// String renders the kind as its structural marker.
func (k Kind) String() string {
	if marker, ok := markers[k]; ok {
		return marker
	}
	return "Unknown"
}

// Known reports whether k is one of the recognised kinds.
func (k Kind) Known() bool {
	_, ok := markers[k]
	return ok
}

// Parse maps a marker such as "SPFieldText" onto its kind. Unrecognised
// markers yield Unknown.
func Parse(marker string) Kind {
	if k, ok := byMarker[strings.TrimSpace(marker)]; ok {
		return k
	}
	return Unknown
}

// All lists the recognised kinds in declaration order.
func All() []Kind {
	out := make([]Kind, 0, len(markers))
	for k := Text; k <= File; k++ {
		out = append(out, k)
	}
	return out
}

// DetectNode inspects the immediate comment children of node in order and
// returns the kind and raw marker of the first one carrying a marker. Comments
// nested deeper in the subtree are ignored. An empty marker means none was
// found.
func DetectNode(node *html.Node) (Kind, string) {
	if node == nil {
		return Unknown, ""
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if k, marker, ok := fromComment(child); ok {
			return k, marker
		}
	}
	return Unknown, ""
}

// Detect classifies the inner markup of a control cell. Markup that cannot be
// parsed is reported as undetected.
func Detect(markup string) (Kind, string) {
	context := &html.Node{Type: html.ElementNode, Data: "td", DataAtom: atom.Td}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return Unknown, ""
	}
	for _, node := range nodes {
		if k, marker, ok := fromComment(node); ok {
			return k, marker
		}
	}
	return Unknown, ""
}

func fromComment(node *html.Node) (Kind, string, bool) {
	if node.Type != html.CommentNode {
		return Unknown, "", false
	}
	marker := markerPattern.FindString(node.Data)
	if marker == "" {
		return Unknown, "", false
	}
	return Parse(marker), marker, true
}
