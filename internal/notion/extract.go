package notion

import "encoding/json"

// Every extractor below is total: a missing property, a JSON null or a value
// of the wrong shape yields the documented default instead of an error.

// PlainText concatenates the plain text of each run in order.
func PlainText(runs []RichText) string {
	if len(runs) == 0 {
		return ""
	}
	n := 0
	for _, r := range runs {
		n += len(r.PlainText)
	}
	buf := make([]byte, 0, n)
	for _, r := range runs {
		buf = append(buf, r.PlainText...)
	}
	return string(buf)
}

// ImageURL returns the URL of the first file only. Later entries are ignored
// even when the first one has no usable URL.
func ImageURL(files []File) string {
	if len(files) == 0 {
		return ""
	}
	first := files[0]
	switch first.Type {
	case FileTypeExternal:
		if first.External != nil {
			return first.External.URL
		}
	case FileTypeFile:
		if first.File != nil {
			return first.File.URL
		}
	}
	return ""
}

func (p Properties) decode(name string, v any) bool {
	raw, ok := p[name]
	if !ok || len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// Title reads a title property as plain text.
func (p Properties) Title(name string) string {
	var prop struct {
		Title []RichText `json:"title"`
	}
	if !p.decode(name, &prop) {
		return ""
	}
	return PlainText(prop.Title)
}

// RichText reads a rich_text property as plain text.
func (p Properties) RichText(name string) string {
	var prop struct {
		RichText []RichText `json:"rich_text"`
	}
	if !p.decode(name, &prop) {
		return ""
	}
	return PlainText(prop.RichText)
}

// Select reads the option name of a select property, or def when unset.
func (p Properties) Select(name, def string) string {
	var prop struct {
		Select *SelectOption `json:"select"`
	}
	if !p.decode(name, &prop) || prop.Select == nil || prop.Select.Name == "" {
		return def
	}
	return prop.Select.Name
}

// MultiSelect reads the option names of a multi_select property in order.
// The result is never nil.
func (p Properties) MultiSelect(name string) []string {
	var prop struct {
		MultiSelect []SelectOption `json:"multi_select"`
	}
	if !p.decode(name, &prop) {
		return []string{}
	}
	names := make([]string, 0, len(prop.MultiSelect))
	for _, opt := range prop.MultiSelect {
		names = append(names, opt.Name)
	}
	return names
}

// Checkbox reads a checkbox property, false when unset.
func (p Properties) Checkbox(name string) bool {
	var prop struct {
		Checkbox bool `json:"checkbox"`
	}
	if !p.decode(name, &prop) {
		return false
	}
	return prop.Checkbox
}

// Date reads the ISO-8601 start of a date property.
func (p Properties) Date(name string) string {
	var prop struct {
		Date *DateValue `json:"date"`
	}
	if !p.decode(name, &prop) || prop.Date == nil {
		return ""
	}
	return prop.Date.Start
}

// URL reads a url property.
func (p Properties) URL(name string) string {
	var prop struct {
		URL *string `json:"url"`
	}
	if !p.decode(name, &prop) || prop.URL == nil {
		return ""
	}
	return *prop.URL
}

// Image reads the first file of a files property.
func (p Properties) Image(name string) string {
	var prop struct {
		Files []File `json:"files"`
	}
	if !p.decode(name, &prop) {
		return ""
	}
	return ImageURL(prop.Files)
}

// ParagraphText returns the plain text of a paragraph block, and "" for any
// other block type.
func ParagraphText(b Block) string {
	if b.Type != BlockTypeParagraph || len(b.Paragraph) == 0 {
		return ""
	}
	var para struct {
		RichText []RichText `json:"rich_text"`
	}
	if err := json.Unmarshal(b.Paragraph, &para); err != nil {
		return ""
	}
	return PlainText(para.RichText)
}
