package site

import (
	"github.com/ift-institute/ift-site/internal/collection"
	"github.com/ift-institute/ift-site/internal/widgets"
)

// Collection declarations for every structured content block. Field lists
// drive the edit modal; defaults ship the launch content with static ids so
// the edit controls rendered for a default-seeded list stay addressable.

// Talks is the events page talks block.
func Talks() widgets.Collection {
	return widgets.Collection{
		Key:   KeyEventsTalks,
		Title: "Talk",
		Schema: collection.Schema{
			{Key: "title", Label: "Title", Type: collection.FieldText},
			{Key: "date", Label: "Date", Type: collection.FieldText},
			{Key: "time", Label: "Time", Type: collection.FieldText},
			{Key: "location", Label: "Location", Type: collection.FieldText},
			{Key: "speaker", Label: "Speaker", Type: collection.FieldText},
			{Key: "role", Label: "Speaker Role", Type: collection.FieldText},
			{Key: "organization", Label: "Organization", Type: collection.FieldText},
			{Key: "image", Label: "Image", Type: collection.FieldImage},
			{Key: "description", Label: "Description", Type: collection.FieldTextarea},
			{Key: "tags", Label: "Tags (comma separated)", Type: collection.FieldText},
		},
		Defaults: []collection.Item{
			{
				"id":           "01",
				"title":        "Designing With Living Systems",
				"date":         "March 14, 2026",
				"time":         "18:00",
				"location":     "Auditorium A",
				"speaker":      "Dr. Lena Moreau",
				"role":         "Principal Investigator",
				"organization": "IFT",
				"description":  "How biological materials reshape what we consider buildable.",
				"tags":         "biodesign, materials",
			},
		},
	}
}

// Festivals is the events page festivals block.
func Festivals() widgets.Collection {
	return widgets.Collection{
		Key:   KeyEventsFestivals,
		Title: "Festival",
		Schema: collection.Schema{
			{Key: "theme", Label: "Theme", Type: collection.FieldText},
			{Key: "year", Label: "Year", Type: collection.FieldText},
			{Key: "date", Label: "Date", Type: collection.FieldText},
			{Key: "location", Label: "Location", Type: collection.FieldText},
			{Key: "image", Label: "Image", Type: collection.FieldImage},
			{Key: "description", Label: "Description", Type: collection.FieldTextarea},
			{Key: "highlights", Label: "Highlights (comma separated)", Type: collection.FieldText},
			{Key: "tags", Label: "Tags (comma separated)", Type: collection.FieldText},
		},
		Defaults: []collection.Item{
			{
				"id":          "01",
				"theme":       "Symbiosis",
				"year":        "2025",
				"date":        "June 2025",
				"location":    "Campus Courtyard",
				"description": "A week of installations and performances on human-machine symbiosis.",
				"highlights":  "opening night, robotics demos",
				"tags":        "festival",
			},
		},
	}
}

// MiscEvents is the events page awards-and-press block. Category is the one
// select field on the site.
func MiscEvents() widgets.Collection {
	return widgets.Collection{
		Key:   KeyEventsMisc,
		Title: "Item",
		Schema: collection.Schema{
			{Key: "title", Label: "Title", Type: collection.FieldText},
			{Key: "category", Label: "Category", Type: collection.FieldSelect, Options: []string{"Award", "Press"}},
			{Key: "date", Label: "Date", Type: collection.FieldText},
			{Key: "image", Label: "Image", Type: collection.FieldImage},
			{Key: "description", Label: "Description", Type: collection.FieldTextarea},
			{Key: "award", Label: "Award (if applicable)", Type: collection.FieldText},
			{Key: "team", Label: "Team (comma separated)", Type: collection.FieldText},
			{Key: "publication", Label: "Publication (if press)", Type: collection.FieldText},
			{Key: "author", Label: "Author (if press)", Type: collection.FieldText},
			{Key: "tags", Label: "Tags (comma separated)", Type: collection.FieldText},
		},
		Defaults: []collection.Item{
			{
				"id":          "01",
				"title":       "Laval Virtual Grand Prix",
				"category":    "Award",
				"date":        "April 2025",
				"description": "Best immersive experience for the haptic garden installation.",
				"award":       "Grand Prix",
				"team":        "Haptics Group",
			},
		},
	}
}

func teamSchema() collection.Schema {
	return collection.Schema{
		{Key: "name", Label: "Name", Type: collection.FieldText},
		{Key: "role", Label: "Role/Title", Type: collection.FieldText},
		{Key: "details", Label: "Details", Type: collection.FieldText},
		{Key: "bio", Label: "Bio", Type: collection.FieldTextarea},
		{Key: "image", Label: "Image", Type: collection.FieldImage},
	}
}

// TeamCore is the core staff block on the team page.
func TeamCore() widgets.Collection {
	return widgets.Collection{
		Key:    KeyTeamCore,
		Title:  "Team Member",
		Schema: teamSchema(),
		Defaults: []collection.Item{
			{"id": "01", "name": "Clément Duhart", "role": "Director", "bio": "Founded the institute's research program."},
			{"id": "02", "name": "Lena Moreau", "role": "Principal Investigator", "bio": "Leads the living systems group."},
		},
	}
}

// TeamAffiliated is the affiliated researchers block on the team page.
func TeamAffiliated() widgets.Collection {
	return widgets.Collection{
		Key:    KeyTeamAffiliated,
		Title:  "Affiliated Member",
		Schema: teamSchema(),
		Defaults: []collection.Item{
			{"id": "01", "name": "Marc Teyssier", "role": "Affiliated Researcher"},
		},
	}
}

// ResearchThemes is the core themes block on the research page.
func ResearchThemes() widgets.Collection {
	return widgets.Collection{
		Key:   KeyResearchThemes,
		Title: "Research Theme",
		Schema: collection.Schema{
			{Key: "title", Label: "Theme Title", Type: collection.FieldText},
			{Key: "description", Label: "Description", Type: collection.FieldTextarea},
			{Key: "image", Label: "Image", Type: collection.FieldImage},
			{Key: "tags", Label: "Tags (comma separated)", Type: collection.FieldText},
		},
		Defaults: []collection.Item{
			{"id": "01", "title": "Resilient Futures", "description": "Infrastructure and ecosystems under climate stress.", "tags": "climate, systems"},
			{"id": "02", "title": "Augmented Creativity", "description": "Tools that extend human imagination.", "tags": "hci, ai"},
			{"id": "03", "title": "Living Machines", "description": "Robotics grounded in biological principles.", "tags": "robotics, biology"},
		},
	}
}

// Publications is the publications block on the research page.
func Publications() widgets.Collection {
	return widgets.Collection{
		Key:   KeyResearchPubs,
		Title: "Publication",
		Schema: collection.Schema{
			{Key: "title", Label: "Title", Type: collection.FieldText},
			{Key: "authors", Label: "Authors", Type: collection.FieldText},
			{Key: "year", Label: "Year", Type: collection.FieldText},
			{Key: "journal", Label: "Journal/Conference", Type: collection.FieldText},
			{Key: "abstract", Label: "Abstract", Type: collection.FieldTextarea},
			{Key: "image", Label: "Image", Type: collection.FieldImage},
			{Key: "video", Label: "Video (Optional)", Type: collection.FieldVideo},
			{Key: "tags", Label: "Tags (comma separated)", Type: collection.FieldText},
			{Key: "featured", Label: "Featured? (true/false)", Type: collection.FieldText},
		},
		Defaults: []collection.Item{
			{
				"id":       "01",
				"title":    "Growing Interfaces",
				"authors":  "Moreau, Duhart",
				"year":     "2025",
				"journal":  "CHI",
				"abstract": "A fabrication method for mycelium-based touch surfaces.",
				"featured": "true",
			},
		},
	}
}

// EduPrograms is the academic tracks block on the education page.
func EduPrograms() widgets.Collection {
	return widgets.Collection{
		Key:   KeyEduPrograms,
		Title: "Program",
		Schema: collection.Schema{
			{Key: "title", Label: "Program Title", Type: collection.FieldText},
			{Key: "description", Label: "Description", Type: collection.FieldTextarea},
			{Key: "image", Label: "Image", Type: collection.FieldImage},
			{Key: "tags", Label: "Tags (comma separated)", Type: collection.FieldText},
		},
		Defaults: []collection.Item{
			{"id": "01", "title": "Creative Technology", "description": "A five-year track mixing engineering and design studios.", "tags": "msc"},
			{"id": "02", "title": "Research Residency", "description": "One year embedded in a research group.", "tags": "residency"},
		},
	}
}

// StudentProjects is the student showcase block on the education page. The
// visible flag hides an item from visitors without deleting it.
func StudentProjects() widgets.Collection {
	return widgets.Collection{
		Key:   KeyEduStudentProjects,
		Title: "Student Project",
		Schema: collection.Schema{
			{Key: "title", Label: "Project Title", Type: collection.FieldText},
			{Key: "student", Label: "Student / Class", Type: collection.FieldText},
			{Key: "image", Label: "Image URL", Type: collection.FieldImage},
			{Key: "video", Label: "Video (Optional)", Type: collection.FieldVideo},
			{Key: "visible", Label: "Visibility (shown / hidden)", Type: collection.FieldText},
		},
		Defaults: []collection.Item{
			{"id": "01", "title": "Haptic Garden", "student": "Class of 2025", "visible": "shown"},
		},
		DisplayItems: visibleOnly,
	}
}

func visibleOnly(items []collection.Item) []collection.Item {
	out := make([]collection.Item, 0, len(items))
	for _, item := range items {
		if visible, _ := item["visible"].(string); visible == "hidden" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// CollaborateTypes is the partnership pathways block on the collaborate page.
func CollaborateTypes() widgets.Collection {
	return widgets.Collection{
		Key:   KeyCollaborateTypes,
		Title: "Collaboration Type",
		Schema: collection.Schema{
			{Key: "title", Label: "Title", Type: collection.FieldText},
			{Key: "subtitle", Label: "Subtitle", Type: collection.FieldText},
			{Key: "description", Label: "Description", Type: collection.FieldTextarea},
			{Key: "points", Label: "Points (comma separated)", Type: collection.FieldText},
			{Key: "cta", Label: "CTA Button Text", Type: collection.FieldText},
			{Key: "cta_url", Label: "CTA URL (/page or https://...)", Type: collection.FieldText},
			{Key: "image", Label: "Image", Type: collection.FieldImage},
		},
		Defaults: []collection.Item{
			{"id": "01", "title": "Industry", "subtitle": "Sponsored research", "description": "Co-develop prototypes with our research groups.", "cta": "Start a project", "cta_url": "/collaborate"},
			{"id": "02", "title": "Academia", "subtitle": "Joint programs", "description": "Exchange researchers and run shared studios.", "cta": "Propose a program", "cta_url": "/collaborate"},
		},
	}
}

// Partners is the partner logo wall on the collaborate page.
func Partners() widgets.Collection {
	return widgets.Collection{
		Key:   KeyCollaboratePartners,
		Title: "Partner",
		Schema: collection.Schema{
			{Key: "name", Label: "Partner Name", Type: collection.FieldText},
			{Key: "href", Label: "Partner URL", Type: collection.FieldText},
			{Key: "logo", Label: "Logo Image", Type: collection.FieldImage},
		},
		Defaults: []collection.Item{
			{"id": "01", "name": "Pôle Léonard de Vinci", "href": "https://www.devinci.fr"},
		},
	}
}

// LatestEvents is the home page agenda strip, capped at four slots.
func LatestEvents() widgets.Collection {
	return widgets.Collection{
		Key:      KeyLatestEvents,
		Title:    "Event",
		MaxItems: 4,
		Schema: collection.Schema{
			{Key: "title", Label: "Event Title", Type: collection.FieldText},
			{Key: "date", Label: "Date / Time", Type: collection.FieldText},
			{Key: "location", Label: "Location (Optional)", Type: collection.FieldText},
			{Key: "type", Label: "Type (flagship, weekly, internal)", Type: collection.FieldSelect, Options: []string{"flagship", "weekly", "internal"}},
			{Key: "image", Label: "Image", Type: collection.FieldImage},
			{Key: "video", Label: "Video URL (Optional)", Type: collection.FieldText},
		},
		Defaults: []collection.Item{
			{"id": "01", "title": "Open Lab Night", "date": "Every Thursday, 18:00", "type": "weekly"},
			{"id": "02", "title": "De Vinci Festival", "date": "June 2026", "type": "flagship"},
		},
	}
}

// Collections returns every declared collection, keyed by content key. The
// HTTP layer uses it to resolve mutation routes.
func Collections() map[string]widgets.Collection {
	all := []widgets.Collection{
		Talks(), Festivals(), MiscEvents(),
		TeamCore(), TeamAffiliated(),
		ResearchThemes(), Publications(),
		EduPrograms(), StudentProjects(),
		CollaborateTypes(), Partners(),
		LatestEvents(),
	}
	out := make(map[string]widgets.Collection, len(all))
	for _, c := range all {
		out[c.Key] = c
	}
	return out
}
