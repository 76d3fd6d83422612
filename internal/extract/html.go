package extract

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// htmlConverter wraps html-to-markdown so headings survive for title
// extraction and sections keep their structure.
type htmlConverter struct {
	conv *converter.Converter
}

func newHTMLConverter() *htmlConverter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &htmlConverter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *htmlConverter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	return c.conv.ConvertString(html)
}
