package site

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/ift-institute/ift-site/internal/collection"
	"github.com/ift-institute/ift-site/internal/widgets"
)

// Page is one entry of the site catalog. Render assembles the page body from
// editable widgets against the request's session state.
type Page struct {
	Slug   string
	Title  string
	Render func(env *widgets.Env) template.HTML
}

// Catalog is the fixed set of marketing pages. Home lives at the empty slug.
type Catalog struct {
	pages []Page
	index map[string]int
}

// NewCatalog builds the page catalog. Slugs are normalized so route lookup
// is exact.
func NewCatalog() (*Catalog, error) {
	declared := []Page{
		{Slug: "", Title: "Home", Render: renderHome},
		{Slug: "about", Title: "About", Render: renderAbout},
		{Slug: "research", Title: "Research", Render: renderResearch},
		{Slug: "education", Title: "Education", Render: renderEducation},
		{Slug: "events", Title: "Events", Render: renderEvents},
		{Slug: "team", Title: "Team", Render: renderTeam},
		{Slug: "collaborate", Title: "Collaborate", Render: renderCollaborate},
	}

	c := &Catalog{index: make(map[string]int, len(declared))}
	for _, page := range declared {
		if page.Slug != "" {
			normalized, err := slug.Normalize(page.Slug)
			if err != nil {
				return nil, fmt.Errorf("site: page slug %q: %w", page.Slug, err)
			}
			page.Slug = normalized
		}
		c.index[page.Slug] = len(c.pages)
		c.pages = append(c.pages, page)
	}
	return c, nil
}

// Pages returns the catalog in declaration order.
func (c *Catalog) Pages() []Page {
	out := make([]Page, len(c.pages))
	copy(out, c.pages)
	return out
}

// BySlug resolves a page by its normalized slug.
func (c *Catalog) BySlug(s string) (Page, bool) {
	trimmed := strings.Trim(s, "/")
	if trimmed != "" && !slug.IsValid(trimmed) {
		return Page{}, false
	}
	i, ok := c.index[trimmed]
	if !ok {
		return Page{}, false
	}
	return c.pages[i], true
}

func text(env *widgets.Env, key, tag, class string) template.HTML {
	return env.Text(widgets.Text{Key: key, Default: DefaultText(key), Tag: tag, Class: class})
}

func multiline(env *widgets.Env, key, tag, class string) template.HTML {
	return env.Text(widgets.Text{Key: key, Default: DefaultText(key), Tag: tag, Class: class, Multiline: true})
}

func section(class string, parts ...template.HTML) template.HTML {
	var b strings.Builder
	fmt.Fprintf(&b, `<section class="%s">`, class)
	for _, part := range parts {
		b.WriteString(string(part))
	}
	b.WriteString(`</section>`)
	return template.HTML(b.String())
}

func renderHome(env *widgets.Env) template.HTML {
	hero := section("hero",
		env.Video(widgets.Video{Key: KeyHeroVideoURL, Default: DefaultText(KeyHeroVideoURL), Class: "hero-video"}),
		text(env, KeyHeroTitle, "h1", "hero-title"),
		multiline(env, KeyHeroBlurb, "p", "hero-blurb"),
		env.Link(widgets.Link{
			Key:     KeyHeroButtonURL,
			Default: DefaultText(KeyHeroButtonURL),
			Class:   "hero-button",
			Text: env.Text(widgets.Text{
				Key:              KeyHeroButton,
				Default:          DefaultText(KeyHeroButton),
				Tag:              "span",
				SecondaryKey:     KeyHeroButtonURL,
				SecondaryLabel:   "Redirection",
				SecondaryDefault: DefaultText(KeyHeroButtonURL),
			}),
		}),
	)

	latest := section("latest-events",
		text(env, KeyLatestEventsLabel, "span", "section-label"),
		text(env, KeyLatestEventsTitle, "h2", "section-title"),
		env.Collection(LatestEvents()),
		env.Link(widgets.Link{
			Key:     KeyLatestEventsButtonURL,
			Default: DefaultText(KeyLatestEventsButtonURL),
			Class:   "section-button",
			Text:    text(env, KeyLatestEventsButton, "span", ""),
		}),
	)

	featured := section("featured-projects",
		text(env, KeyFeaturedLabel, "span", "section-label"),
		text(env, KeyFeaturedTitle, "h2", "section-title"),
		renderFeatured(env),
		env.Link(widgets.Link{
			Key:     KeyFeaturedButtonURL,
			Default: DefaultText(KeyFeaturedButtonURL),
			Class:   "section-button",
			Text:    text(env, KeyFeaturedButton, "span", ""),
		}),
	)

	return hero + latest + featured
}

// renderFeatured shows the research themes picked by the stored id list.
// Unknown ids are skipped; an empty selection shows the first three themes.
func renderFeatured(env *widgets.Env) template.HTML {
	themes := ResearchThemes()
	items := env.Items(themes)

	selected := FeaturedItems(env, items)
	view := themes
	view.DisplayItems = func([]collection.Item) []collection.Item { return selected }
	return env.Collection(view)
}

// FeaturedItems resolves the featured-project-ids selection against the
// canonical theme list.
func FeaturedItems(env *widgets.Env, items []collection.Item) []collection.Item {
	raw := env.Content(KeyFeaturedProjectIDs, nil)
	ids := stringList(raw)
	if len(ids) == 0 {
		if len(items) > 3 {
			return items[:3]
		}
		return items
	}

	out := make([]collection.Item, 0, len(ids))
	for _, id := range ids {
		if i := collection.FindIndex(items, id); i != -1 {
			out = append(out, items[i])
		}
	}
	return out
}

func stringList(value any) []string {
	switch typed := value.(type) {
	case []string:
		return typed
	case []any:
		out := make([]string, 0, len(typed))
		for _, element := range typed {
			s, ok := element.(string)
			if !ok {
				return nil
			}
			out = append(out, s)
		}
		return out
	default:
		return nil
	}
}

func renderAbout(env *widgets.Env) template.HTML {
	pillars := make([]template.HTML, 0, 6)
	for i := 1; i <= 3; i++ {
		pillars = append(pillars,
			text(env, fmt.Sprintf("about-pillar-%d-title", i), "h4", "pillar-title"),
			multiline(env, fmt.Sprintf("about-pillar-%d-desc", i), "p", "pillar-desc"),
		)
	}
	return section("about",
		text(env, KeyAboutTitle, "h1", "page-title"),
		text(env, KeyAboutSubtitle, "h2", "page-subtitle"),
		multiline(env, KeyAboutIntro, "p", "page-intro"),
		env.Image(widgets.Image{Key: KeyAboutCampusImage, Default: DefaultText(KeyAboutCampusImage), Alt: "Campus", Class: "campus-image"}),
		section("pillars", pillars...),
	)
}

func renderResearch(env *widgets.Env) template.HTML {
	return section("research",
		text(env, KeyResearchTitle, "h1", "page-title"),
		multiline(env, KeyResearchTagline, "p", "page-tagline"),
		text(env, KeyResearchThemesLabel, "h3", "section-label"),
		env.Collection(ResearchThemes()),
		env.Collection(Publications()),
	)
}

func renderEducation(env *widgets.Env) template.HTML {
	philosophy := make([]template.HTML, 0, 6)
	for i, titleKey := range []string{
		"education-cursus-innovation-title",
		"education-cursus-research-led-title",
		"education-cursus-valorization-title",
	} {
		philosophy = append(philosophy,
			text(env, titleKey, "h4", "cursus-title"),
			multiline(env, fmt.Sprintf("edu-phil-%d", i+1), "p", "cursus-desc"),
		)
	}
	return section("education",
		text(env, KeyEducationTitle, "h1", "page-title"),
		multiline(env, KeyEducationTagline, "p", "page-tagline"),
		text(env, KeyEducationTracksLabel, "h3", "section-label"),
		env.Collection(EduPrograms()),
		text(env, KeyEducationCursusTitle, "h3", "section-label"),
		section("philosophy", philosophy...),
		env.Collection(StudentProjects()),
	)
}

func renderEvents(env *widgets.Env) template.HTML {
	return section("events",
		multiline(env, KeyEventsIntro, "p", "page-intro"),
		env.Collection(Talks()),
		env.Collection(Festivals()),
		env.Collection(MiscEvents()),
	)
}

func renderTeam(env *widgets.Env) template.HTML {
	return section("team",
		text(env, KeyTeamTitlePrefix, "span", "title-prefix"),
		text(env, KeyTeamTitleHighlight, "span", "title-highlight"),
		text(env, KeyTeamSubtitle, "p", "page-subtitle"),
		env.Collection(TeamCore()),
		env.Collection(TeamAffiliated()),
		text(env, KeyTeamCTATitle, "h3", "cta-title"),
		env.Link(widgets.Link{
			Key:     KeyTeamCTALink,
			Default: DefaultText(KeyTeamCTALink),
			Class:   "cta-link",
			Text:    template.HTML("Get in touch"),
		}),
	)
}

func renderCollaborate(env *widgets.Env) template.HTML {
	return section("collaborate",
		text(env, KeyCollaborateTitle, "h1", "page-title"),
		multiline(env, KeyCollaborateTagline, "p", "page-tagline"),
		text(env, KeyCollaboratePathwaysLabel, "h3", "section-label"),
		env.Collection(CollaborateTypes()),
		env.Collection(Partners()),
	)
}
