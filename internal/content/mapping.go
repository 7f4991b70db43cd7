package content

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Zachkp/portfolio/internal/notion"
)

const paragraphSeparator = "\n\n"

func basePage(p notion.Page) Page {
	props := p.Properties
	return Page{
		ID:       p.ID,
		Title:    props.Title(propTitle),
		Category: props.Select(propCategory, DefaultCategory),
		Tags:     []string{},
		Image:    props.Image(propImage),
		Date:     props.Date(propDate),
	}
}

// MapProject maps a row of the Projects database.
func MapProject(p notion.Page) Project {
	props := p.Properties
	page := basePage(p)
	page.Description = props.RichText(propDescription)
	page.URL = props.URL(propURL)
	page.Featured = props.Checkbox(propFeatured)

	return Project{
		Page:         page,
		Technologies: props.MultiSelect(propTechnologies),
		GitHub:       props.URL(propGitHub),
		Demo:         props.URL(propDemo),
	}
}

// MapBlogPost maps a row of the Blogs database. Content stays empty.
func MapBlogPost(p notion.Page) BlogPost {
	props := p.Properties
	page := basePage(p)
	page.Tags = props.MultiSelect(propTags)
	page.Featured = props.Checkbox(propFeatured)

	return BlogPost{
		Page:    page,
		Excerpt: props.RichText(propExcerpt),
	}
}

// MapCertificate maps a row of the Certificates database.
func MapCertificate(p notion.Page) Certificate {
	props := p.Properties
	page := basePage(p)
	page.Description = props.RichText(propDescription)
	page.URL = props.URL(propURL)

	return Certificate{
		Page:         page,
		Issuer:       props.RichText(propIssuer),
		CredentialID: props.RichText(propCredentialID),
		Level:        props.Select(propLevel, DefaultLevel),
	}
}

// MapBlogPostWithContent maps a single blog page and its body blocks.
func MapBlogPostWithContent(p notion.Page, blocks []notion.Block) BlogPost {
	page := basePage(p)
	page.Tags = p.Properties.MultiSelect(propTags)

	return BlogPost{
		Page:    page,
		Content: JoinParagraphs(blocks),
	}
}

// JoinParagraphs joins the plain text of paragraph blocks in order with a
// blank line. Other block types contribute neither text nor a separator.
func JoinParagraphs(blocks []notion.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.Type != notion.BlockTypeParagraph {
			continue
		}
		parts = append(parts, notion.ParagraphText(b))
	}
	return strings.Join(parts, paragraphSeparator)
}

// sortProjects orders featured projects first, then newest first. The sort
// is stable so equal keys keep the provider's order.
func sortProjects(projects []Project) {
	slices.SortStableFunc(projects, func(a, b Project) int {
		if a.Featured != b.Featured {
			if a.Featured {
				return -1
			}
			return 1
		}
		return cmp.Compare(b.Date, a.Date)
	})
}

func mapAll[T any](pages []notion.Page, mapFn func(notion.Page) T) []T {
	out := make([]T, 0, len(pages))
	for _, p := range pages {
		out = append(out, mapFn(p))
	}
	return out
}
