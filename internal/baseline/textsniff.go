package baseline

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// errorIndicators are phrases common to templated error pages, in
// English and Portuguese.
var errorIndicators = []string{
	"not found",
	"404",
	"página não encontrada",
	"pagina nao encontrada",
	"does not exist",
	"no encontrada",
	"error occurred",
	"an error has occurred",
	"forbidden",
	"access denied",
	"acesso negado",
	"bad request",
}

// maxErrorPageText caps the visible-text length considered an error
// page. Real content pages carry more text than a stock error stub.
const maxErrorPageText = 512

// looksLikeErrorPage reports whether an HTML response reads like a
// templated error page despite its status code. Only the sample
// prefix is inspected.
func looksLikeErrorPage(o Outcome) bool {
	if !strings.Contains(strings.ToLower(o.ContentType), "text/html") {
		return false
	}
	if len(o.Sample) == 0 {
		return false
	}

	text := strings.ToLower(visibleText(o.Sample))
	if len(text) == 0 || len(text) > maxErrorPageText {
		return false
	}

	for _, indicator := range errorIndicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}
	return false
}

// visibleText strips tags, scripts, and styles from an HTML fragment.
func visibleText(sample []byte) string {
	doc, err := html.Parse(bytes.NewReader(sample))
	if err != nil {
		return string(sample)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(b.String()), " ")
}
