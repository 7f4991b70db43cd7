// Package notion is a small client for the parts of the Notion REST API the
// portfolio reads: database queries, page retrieval and block children.
//
// Property values are kept as raw JSON and decoded one at a time by the
// extractors in extract.go, so a single malformed property never prevents
// the rest of a page from being read.
package notion

import "encoding/json"

// Page is a Notion page as returned by the pages and database query endpoints.
type Page struct {
	Object         string     `json:"object"`
	ID             string     `json:"id"`
	CreatedTime    string     `json:"created_time,omitempty"`
	LastEditedTime string     `json:"last_edited_time,omitempty"`
	Archived       bool       `json:"archived,omitempty"`
	URL            string     `json:"url,omitempty"`
	Icon           RawValue   `json:"icon,omitempty"`
	Cover          RawValue   `json:"cover,omitempty"`
	Properties     Properties `json:"properties"`

	// raw is the body the page was decoded from, including fields the
	// struct does not model.
	raw json.RawMessage
}

// UnmarshalJSON decodes the modelled fields and keeps the full body.
func (p *Page) UnmarshalJSON(data []byte) error {
	type plain Page
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Page(v)
	p.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON re-encodes a decoded page byte for byte, so unmodelled fields
// such as parent or public_url survive. Pages built in code encode their
// fields.
func (p Page) MarshalJSON() ([]byte, error) {
	if len(p.raw) > 0 {
		return p.raw, nil
	}
	type plain Page
	return json.Marshal(plain(p))
}

// RawValue is an undecoded JSON value that is passed through untouched.
type RawValue = json.RawMessage

// Properties maps a property name to its undecoded value.
type Properties map[string]json.RawMessage

// RichText is one run of a rich text array. Only the plain text is read.
type RichText struct {
	Type      string `json:"type,omitempty"`
	PlainText string `json:"plain_text"`
	Href      string `json:"href,omitempty"`
}

// SelectOption is an option of a select or multi_select property.
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// FileURL holds the URL of a hosted or external file.
type FileURL struct {
	URL string `json:"url"`
}

// File is one entry of a files property.
type File struct {
	Name     string   `json:"name,omitempty"`
	Type     string   `json:"type"`
	File     *FileURL `json:"file,omitempty"`
	External *FileURL `json:"external,omitempty"`
}

// DateValue is the value of a date property.
type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// Block is a child block of a page. The type-specific payload stays raw;
// only paragraphs are interpreted.
type Block struct {
	Object    string          `json:"object"`
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Paragraph json.RawMessage `json:"paragraph,omitempty"`
}

// Block types the portfolio cares about.
const (
	BlockTypeParagraph = "paragraph"
	BlockTypeDivider   = "divider"
)

// File types.
const (
	FileTypeExternal = "external"
	FileTypeFile     = "file"
)

// Descending is the sort direction for newest-first and featured-first queries.
const Descending = "descending"

// Sort orders a database query by a property.
type Sort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

// QueryRequest is the body of a database query.
type QueryRequest struct {
	Sorts []Sort `json:"sorts,omitempty"`
}

// QueryResponse is one page of database query results.
type QueryResponse struct {
	Object     string `json:"object"`
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// BlockChildrenResponse is one page of a block's children.
type BlockChildrenResponse struct {
	Object     string  `json:"object"`
	Results    []Block `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor string  `json:"next_cursor,omitempty"`
}
