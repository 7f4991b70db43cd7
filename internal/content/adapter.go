package content

import (
	"context"
	"errors"

	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/notion"
)

// Source is the subset of the Notion client the adapter reads from.
type Source interface {
	QueryDatabase(ctx context.Context, databaseID string, req notion.QueryRequest) (*notion.QueryResponse, error)
	RetrievePage(ctx context.Context, pageID string) (*notion.Page, error)
	ListBlockChildren(ctx context.Context, blockID string) (*notion.BlockChildrenResponse, error)
}

// Collections names the Notion databases and the About page.
type Collections struct {
	Projects     string
	Blogs        string
	Certificates string
	About        string
}

// Collection labels used in logs and metrics.
const (
	CollectionProjects     = "projects"
	CollectionBlogs        = "blogs"
	CollectionCertificates = "certificates"
	CollectionAbout        = "about"
	CollectionBlogPost     = "blog_post"
)

var errEmptyResponse = errors.New("empty response")

// Adapter fetches content and maps it to the display model. None of its
// methods return an error: failures are logged and replaced by an empty
// list or a nil result.
type Adapter struct {
	source      Source
	collections Collections
	log         logger.Logger
	metrics     *metrics.Metrics
}

// NewAdapter creates an Adapter. m may be nil.
func NewAdapter(source Source, collections Collections, log logger.Logger, m *metrics.Metrics) *Adapter {
	return &Adapter{
		source:      source,
		collections: collections,
		log:         log,
		metrics:     m,
	}
}

// ListProjects returns projects, featured first and then newest first.
func (a *Adapter) ListProjects(ctx context.Context) []Project {
	pages, err := a.query(ctx, a.collections.Projects,
		notion.Sort{Property: propFeatured, Direction: notion.Descending},
		notion.Sort{Property: propDate, Direction: notion.Descending},
	)
	projects := mapAll(degrade(ctx, a, CollectionProjects, pages, err), MapProject)
	sortProjects(projects)
	return projects
}

// ListBlogPosts returns blog posts, newest first, without their content.
func (a *Adapter) ListBlogPosts(ctx context.Context) []BlogPost {
	pages, err := a.query(ctx, a.collections.Blogs,
		notion.Sort{Property: propDate, Direction: notion.Descending},
	)
	return mapAll(degrade(ctx, a, CollectionBlogs, pages, err), MapBlogPost)
}

// ListCertificates returns certificates, newest first.
func (a *Adapter) ListCertificates(ctx context.Context) []Certificate {
	pages, err := a.query(ctx, a.collections.Certificates,
		notion.Sort{Property: propDate, Direction: notion.Descending},
	)
	return mapAll(degrade(ctx, a, CollectionCertificates, pages, err), MapCertificate)
}

// About returns the About page exactly as Notion returned it, or nil.
func (a *Adapter) About(ctx context.Context) *notion.Page {
	page, err := a.source.RetrievePage(ctx, a.collections.About)
	if err == nil && page == nil {
		err = errEmptyResponse
	}
	return degrade(ctx, a, CollectionAbout, page, err)
}

// BlogPost returns one post with its paragraph content, or nil.
func (a *Adapter) BlogPost(ctx context.Context, id string) *BlogPost {
	post, err := a.fetchBlogPost(ctx, id)
	return degrade(ctx, a, CollectionBlogPost, post, err, logger.String("page_id", id))
}

func (a *Adapter) fetchBlogPost(ctx context.Context, id string) (*BlogPost, error) {
	page, err := a.source.RetrievePage(ctx, id)
	if err != nil {
		return nil, err
	}
	blocks, err := a.source.ListBlockChildren(ctx, id)
	if err != nil {
		return nil, err
	}
	if page == nil || blocks == nil {
		return nil, errEmptyResponse
	}

	post := MapBlogPostWithContent(*page, blocks.Results)
	return &post, nil
}

func (a *Adapter) query(ctx context.Context, databaseID string, sorts ...notion.Sort) ([]notion.Page, error) {
	resp, err := a.source.QueryDatabase(ctx, databaseID, notion.QueryRequest{Sorts: sorts})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errEmptyResponse
	}
	return resp.Results, nil
}

// degrade is where every fetch result leaves the transport boundary. A
// failure is logged and counted, and the zero value takes the result's
// place: callers turn a nil page list into an empty slice, and a nil
// document is the absent result. The request logger in ctx is preferred so
// failures carry the request id.
func degrade[T any](ctx context.Context, a *Adapter, collection string, value T, err error, fields ...logger.Field) T {
	a.metrics.ContentFetched(collection, err)
	if err == nil {
		return value
	}

	fields = append(fields, logger.String("collection", collection), logger.Error(err))
	logger.FromContext(ctx, a.log).Error("Error fetching content", fields...)
	var zero T
	return zero
}
