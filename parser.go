package xctid

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

var (
	ondemandFileRe = regexp.MustCompile(`['"]{1}ondemand\.s['"]{1}:\s*['"]{1}([\w]*)['"]{1}`)
	keyIndicesRe   = regexp.MustCompile(`\(\w{1}\[(\d{1,2})\],\s*16\)`)
	pathNumberRe   = regexp.MustCompile(`-?\d+`)
)

// document wraps a parsed home page. Lookups walk the DOM rather than regex
// the markup, since the attribute order inside the tags is not stable.
type document struct {
	root *html.Node
}

func parseDocument(pageHTML string) (*document, error) {
	root, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil, err
	}
	return &document{root: root}, nil
}

// verificationKey returns the content of the twitter-site-verification meta
// tag, or "" if the page has none.
func (d *document) verificationKey() string {
	meta := findNode(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "meta" &&
			attr(n, "name") == "twitter-site-verification"
	})
	if meta == nil {
		return ""
	}
	return attr(meta, "content")
}

type svgFrame struct {
	id   int
	data [][]int
}

// animationFrames extracts the four loading-x-anim-{0..3} SVG spinner
// frames. The animation path is the one painted #1d9bf008; its d attribute
// encodes the frame rows as cubic curve segments.
func (d *document) animationFrames() []svgFrame {
	frames := make([]svgFrame, 4)
	for i := range frames {
		frames[i].id = i
		svg := findNode(d.root, func(n *html.Node) bool {
			return n.Type == html.ElementNode && attr(n, "id") == "loading-x-anim-"+strconv.Itoa(i)
		})
		if svg == nil {
			continue
		}
		path := findNode(svg, func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.Data == "path" &&
				attr(n, "fill") == "#1d9bf008"
		})
		if path == nil {
			continue
		}
		frames[i].data = parsePathData(attr(path, "d"))
	}
	return frames
}

// parsePathData splits a path's d attribute on its cubic curve commands and
// collects the integers of each segment as one frame row.
func parsePathData(pathData string) [][]int {
	parts := strings.Split(pathData, "C")
	rows := make([][]int, 0, len(parts))
	for i, part := range parts {
		if i == 0 {
			continue
		}
		var row []int
		for _, raw := range pathNumberRe.FindAllString(part, -1) {
			n, err := strconv.Atoi(raw)
			if err == nil {
				row = append(row, n)
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

// OndemandFileURL extracts the versioned ondemand.s bundle URL from the raw
// home page markup. Callers fetch that file themselves and pass its contents
// to New. Returns "" when the reference is missing.
func OndemandFileURL(homePageHTML string) string {
	matches := ondemandFileRe.FindStringSubmatch(homePageHTML)
	if len(matches) > 1 {
		return "https://abs.twimg.com/responsive-web/client-web/ondemand.s." + matches[1] + "a.js"
	}
	return ""
}

// keyIndices pulls the parseInt(k[N], 16) offsets out of the ondemand
// bundle. The first offset selects the frame row, the rest drive the frame
// time.
func keyIndices(js string) (rowIndex int, frameIndices []int) {
	matches := keyIndicesRe.FindAllStringSubmatch(js, -1)
	if len(matches) == 0 {
		return 0, nil
	}

	indices := make([]int, 0, len(matches))
	for _, match := range matches {
		if len(match) > 1 {
			idx, err := strconv.Atoi(match[1])
			if err == nil {
				indices = append(indices, idx)
			}
		}
	}

	if len(indices) == 0 {
		return 0, nil
	}
	return indices[0], indices[1:]
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// findNode walks the tree depth-first and returns the first node match
// accepts, or nil.
func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}
