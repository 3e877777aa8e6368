package site

// Default copy for every scalar content key. Pages fall back to these when
// no override is stored; editors only ever persist deltas.

const (
	KeyHeroTitle     = "hero-title"
	KeyHeroBlurb     = "hero-blurb"
	KeyHeroButton    = "hero-button"
	KeyHeroButtonURL = "hero-button-url"
	KeyHeroVideoURL  = "hero-video-url"

	KeyAboutTitle       = "about-title"
	KeyAboutSubtitle    = "about-subtitle"
	KeyAboutIntro       = "about-intro"
	KeyAboutCampusImage = "about-campus-image"

	KeyResearchTitle       = "research-title"
	KeyResearchTagline     = "research-tagline"
	KeyResearchThemesLabel = "research-core-themes-label"
	KeyResearchThemes      = "research-themes"
	KeyResearchPubs        = "research-publications"

	KeyEducationTitle       = "education-title"
	KeyEducationTagline     = "education-tagline"
	KeyEducationTracksLabel = "education-academic-tracks-label"
	KeyEducationCursusTitle = "education-cursus-title"
	KeyEduPrograms          = "edu-programs"
	KeyEduStudentProjects   = "edu-student-projects"

	KeyEventsIntro     = "events-intro"
	KeyEventsTalks     = "events-talks"
	KeyEventsFestivals = "events-festivals"
	KeyEventsMisc      = "events-misc"

	KeyTeamTitlePrefix    = "team-title-prefix"
	KeyTeamTitleHighlight = "team-title-highlight"
	KeyTeamSubtitle       = "team-subtitle"
	KeyTeamCTATitle       = "team-cta-title"
	KeyTeamCTALink        = "team-cta-link"
	KeyTeamCore           = "team-members-core"
	KeyTeamAffiliated     = "team-members-affiliated"

	KeyCollaborateTitle         = "collaborate-title"
	KeyCollaborateTagline       = "collaborate-tagline"
	KeyCollaboratePathwaysLabel = "collaborate-pathways-label"
	KeyCollaborateTypes         = "collaborate-types"
	KeyCollaboratePartners      = "collaborate-partners"

	KeyLatestEvents          = "latest-events"
	KeyLatestEventsLabel     = "latest-events-label"
	KeyLatestEventsTitle     = "latest-events-title"
	KeyLatestEventsButton    = "latest-events-button"
	KeyLatestEventsButtonURL = "latest-events-button-url"

	KeyFeaturedLabel      = "featured-projects-label"
	KeyFeaturedTitle      = "featured-projects-title"
	KeyFeaturedButton     = "featured-projects-button"
	KeyFeaturedButtonURL  = "featured-projects-button-url"
	KeyFeaturedProjectIDs = "featured-project-ids"
)

// textDefaults carries the shipped copy for scalar keys.
var textDefaults = map[string]string{
	KeyHeroTitle:     "Experiments in Building Futures",
	KeyHeroBlurb:     "A lab studio embedded in education, where students and researchers explore new forms of inquiry at the intersection of technology, human experience, and the natural world",
	KeyHeroButton:    "Engage With IFT",
	KeyHeroButtonURL: "/collaborate",
	KeyHeroVideoURL:  "",

	KeyAboutTitle:       "About",
	KeyAboutSubtitle:    "Institute for Future Technologies",
	KeyAboutIntro:       "The Institute for Future Technologies (IFT) at Pôle Léonard de Vinci is dedicated to inventing technologies that shape the future. We bridge the gap between engineering, management, and design to foster a unique ecosystem of innovation.",
	KeyAboutCampusImage: "/assets/campus.jpg",

	"about-pillar-1-title": "Human-Centered Design",
	"about-pillar-1-desc":  "Focusing on technology that serves humanity and improves lives.",
	"about-pillar-2-title": "Sustainable Future",
	"about-pillar-2-desc":  "Developing solutions with long-term environmental perspectives.",
	"about-pillar-3-title": "Hands-on Learning",
	"about-pillar-3-desc":  "Learning by doing through our various labs and workshops.",

	KeyResearchTitle:       "Research",
	KeyResearchTagline:     "We explore the intersection of humanity and technology, designing systems that are not just functional, but meaningful, ethical, and sustainable.",
	KeyResearchThemesLabel: "Core Research Themes",

	KeyEducationTitle:       "Education",
	KeyEducationTagline:     "Where Engineering meets Design. We train the next generation of creative technologists to build the tools that shape the future.",
	KeyEducationTracksLabel: "Academic Tracks",
	KeyEducationCursusTitle: "Cursus & Philosophy",

	"education-cursus-innovation-title":   "Innovation & Autonomy",
	"education-cursus-research-led-title": "Research-Led Groups",
	"education-cursus-valorization-title": "Real-World Valorization",
	"edu-phil-1":                          "One primary goal is to develop learning methods and strategies to foster autonomy. Every course's evaluation is related to a project development: conducting research, large-scale manufacturing with a Kickstarter campaign, or developing disruptive innovations.",
	"edu-phil-2":                          "Each student is part of an innovative group leaded by a Principal Investigator who follows their work on a daily basis. Our researchers come from MIT, Royal College of London, EPFL, Google, and Formlabs.",
	"edu-phil-3":                          "Every student's production is valorized in research publications, press communications, company partnerships, or startups. Inspired by the MIT Media Lab leitmotiv 'Demo or Die', students maintain an operational project demonstration at all times.",

	KeyEventsIntro: "Join us for talks, festivals, and celebrations at the intersection of technology, art, and innovation.",

	KeyTeamTitlePrefix:    "The",
	KeyTeamTitleHighlight: "Team",
	KeyTeamSubtitle:       "Visionaries, Engineers, and Artists",
	KeyTeamCTATitle:       "Interested in joining our team?",
	KeyTeamCTALink:        "/collaborate",

	KeyCollaborateTitle:         "Collaborate",
	KeyCollaborateTagline:       "Building the future together. Select your profile to discover how we can collaborate and create meaningful impact through technology.",
	KeyCollaboratePathwaysLabel: "Collaboration Pathways",

	KeyLatestEventsLabel:     "Agenda",
	KeyLatestEventsTitle:     "Latest Events",
	KeyLatestEventsButton:    "View Full Calendar",
	KeyLatestEventsButtonURL: "/events",

	KeyFeaturedLabel:     "Research",
	KeyFeaturedTitle:     "Featured Projects",
	KeyFeaturedButton:    "View All Research",
	KeyFeaturedButtonURL: "/research",
}

// DefaultText returns the shipped copy for a scalar key, empty when the key
// has none.
func DefaultText(key string) string {
	return textDefaults[key]
}
