// Package content maps Notion databases and pages into the portfolio's
// display model.
package content

// Page holds the fields every content type shares. Values are built fresh
// per fetch and never mutated afterwards.
type Page struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
	Image       string   `json:"image"`
	Date        string   `json:"date"`
	Featured    bool     `json:"featured"`
}

// Project is a portfolio project.
type Project struct {
	Page
	Technologies []string `json:"technologies"`
	GitHub       string   `json:"github"`
	Demo         string   `json:"demo"`
}

// BlogPost is a blog entry. Content is only filled by Adapter.BlogPost.
type BlogPost struct {
	Page
	Excerpt string `json:"excerpt"`
	Content string `json:"content"`
}

// Certificate is a certification or course completion.
type Certificate struct {
	Page
	Issuer       string `json:"issuer"`
	CredentialID string `json:"credentialId"`
	Level        string `json:"level"`
}

// Defaults substituted when a select property is unset.
const (
	DefaultCategory = "General"
	DefaultLevel    = "Basic"
)

// Property names used in the Notion databases.
const (
	propTitle        = "Title"
	propDescription  = "Description"
	propCategory     = "Category"
	propTags         = "Tags"
	propTechnologies = "Technologies"
	propURL          = "URL"
	propGitHub       = "GitHub"
	propDemo         = "Demo"
	propImage        = "Image"
	propDate         = "Date"
	propFeatured     = "Featured"
	propExcerpt      = "Excerpt"
	propIssuer       = "Issuer"
	propCredentialID = "CredentialId"
	propLevel        = "Level"
)
