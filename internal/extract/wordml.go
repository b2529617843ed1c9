package extract

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strings"

	apperrors "github.com/zatekoja/pricelist-ingestion/pkg/errors"
)

// xmlNode is a generic XML tree node; the word-processor body is parsed
// into it once and then walked by tag name at each level.
type xmlNode struct {
	XMLName  xml.Name
	Text     string    `xml:",chardata"`
	Children []xmlNode `xml:",any"`
}

// collectByTag appends every descendant of n whose local tag name matches,
// irrespective of nesting depth.
func collectByTag(n *xmlNode, local string, out *[]*xmlNode) {
	for i := range n.Children {
		child := &n.Children[i]
		if child.XMLName.Local == local {
			*out = append(*out, child)
		}
		collectByTag(child, local, out)
	}
}

// wordTableRows extracts every table row from the body of a zipped-XML
// word-processor document, in document order. Tables without rows
// contribute nothing.
func wordTableRows(path string) ([]Row, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, apperrors.NewValidationError("not a readable zip archive: " + err.Error())
	}
	defer archive.Close()

	var body []byte
	for _, f := range archive.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, apperrors.NewInternalError("open document body", err)
		}
		body, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, apperrors.NewInternalError("read document body", err)
		}
		break
	}
	if body == nil {
		return nil, apperrors.NewValidationError("archive has no document body")
	}

	var root xmlNode
	if err := xml.Unmarshal(body, &root); err != nil {
		return nil, apperrors.NewValidationError("malformed document xml: " + err.Error())
	}

	var rows []Row
	var tables []*xmlNode
	collectByTag(&root, "tbl", &tables)
	for _, tbl := range tables {
		var trs []*xmlNode
		collectByTag(tbl, "tr", &trs)
		for _, tr := range trs {
			var tcs []*xmlNode
			collectByTag(tr, "tc", &tcs)
			cells := make([]string, 0, len(tcs))
			for _, tc := range tcs {
				cells = append(cells, cellText(tc))
			}
			rows = append(rows, normalizeRow(cells))
		}
	}

	return rows, nil
}

// cellText joins the text runs of a cell, one paragraph per line.
func cellText(tc *xmlNode) string {
	var paras []*xmlNode
	collectByTag(tc, "p", &paras)

	var lines []string
	for _, p := range paras {
		var runs []*xmlNode
		collectByTag(p, "t", &runs)
		var b strings.Builder
		for _, r := range runs {
			b.WriteString(r.Text)
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			lines = append(lines, text)
		}
	}
	if len(lines) > 0 {
		return strings.Join(lines, "\n")
	}

	// cells without paragraph markup still carry text runs
	var runs []*xmlNode
	collectByTag(tc, "t", &runs)
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}
