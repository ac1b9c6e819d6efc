// Package markup composes a CV data tree into an ordered Markdown document.
package markup

import "strings"

const (
	defaultName         = "Name"
	divider             = "---"
	placeholderLink     = "#"
	sectionHeadingLevel = "## "
	entryHeadingLevel   = "### "
)

// contactFields lists the sidebar contact fields in output order with their labels.
var contactFields = []struct {
	key   string
	label string
}{
	{"email", "Email"},
	{"phone", "Phone"},
	{"website", "Website"},
	{"linkedin", "LinkedIn"},
	{"github", "GitHub"},
}

// Document is a composed Markdown document, one element per line.
type Document []string

// String joins the lines with newlines. There is no trailing newline.
func (d Document) String() string {
	return strings.Join(d, "\n")
}

// Headings returns the section headings in document order.
func (d Document) Headings() []string {
	var headings []string
	for _, line := range d {
		if strings.HasPrefix(line, sectionHeadingLevel) {
			headings = append(headings, strings.TrimPrefix(line, sectionHeadingLevel))
		}
	}
	return headings
}

// composer accumulates lines while walking the data tree once.
type composer struct {
	root    node
	sidebar node
	lines   Document
}

func (c *composer) emit(lines ...string) {
	c.lines = append(c.lines, lines...)
}

// openSection writes the divider and heading that introduce an optional section.
func (c *composer) openSection(title string) {
	c.emit(divider, "", sectionHeadingLevel+title, "")
}

// Compose transforms the root data mapping into a Markdown document.
// Absent optional fields fall back to defaults. A field of the wrong shape
// returns a *MalformedInputError and no document.
func Compose(data map[string]any) (Document, error) {
	c := &composer{root: node{m: data}}

	sidebar, err := c.root.mapping("sidebar")
	if err != nil {
		return nil, err
	}
	c.sidebar = sidebar

	steps := []func() error{
		c.header,
		c.contact,
		c.languages,
		c.experience,
		c.education,
		c.certifications,
		c.skills,
		c.projects,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	return c.lines, nil
}

func (c *composer) header() error {
	v, err := c.sidebar.texts("name", "tagline")
	if err != nil {
		return err
	}
	name, tagline := v[0], v[1]
	if name == "" {
		name = defaultName
	}

	c.emit("# " + name)
	if tagline != "" {
		c.emit("**" + tagline + "**")
	}
	c.emit("", divider, "")
	return nil
}

// contact is the one section whose heading is written even when empty.
func (c *composer) contact() error {
	c.emit(sectionHeadingLevel+"Contact", "")
	for _, f := range contactFields {
		value, err := c.sidebar.text(f.key)
		if err != nil {
			return err
		}
		if value != "" {
			c.emit("- " + f.label + ": " + value)
		}
	}
	c.emit("")
	return nil
}

// languages prefers the sidebar list and falls back to the root-level one.
func (c *composer) languages() error {
	langs, err := c.sidebar.nestedList("languages", "info")
	if err != nil {
		return err
	}
	if len(langs) == 0 {
		if langs, err = c.root.nestedList("languages", "info"); err != nil {
			return err
		}
	}
	if len(langs) == 0 {
		return nil
	}

	c.openSection("Languages")
	for _, lang := range langs {
		v, err := lang.texts("idiom", "level")
		if err != nil {
			return err
		}
		c.emit("- " + v[0] + " (" + v[1] + ")")
	}
	c.emit("")
	return nil
}

func (c *composer) experience() error {
	entries, err := c.root.nestedList("experiences", "info")
	if err != nil || len(entries) == 0 {
		return err
	}

	c.openSection("Experience")
	for _, exp := range entries {
		v, err := exp.texts("role", "company", "time", "details")
		if err != nil {
			return err
		}
		role, company, period, details := v[0], v[1], v[2], v[3]

		c.emit(entryHeadingLevel + role + " | " + company)
		if period != "" {
			c.emit("*" + period + "*")
		}
		c.emit("")
		c.emitDetails(details)
		c.emit("")
	}
	return nil
}

func (c *composer) education() error {
	entries, err := c.root.nestedList("education", "info")
	if err != nil || len(entries) == 0 {
		return err
	}

	c.openSection("Education")
	for _, edu := range entries {
		v, err := edu.texts("degree", "university", "time")
		if err != nil {
			return err
		}
		degree, university, period := v[0], v[1], v[2]

		line := "- **" + degree + "** - " + university
		if period != "" {
			line += " (" + period + ")"
		}
		c.emit(line)
	}
	c.emit("")
	return nil
}

func (c *composer) certifications() error {
	certs, err := c.root.nestedList("certifications", "list")
	if err != nil || len(certs) == 0 {
		return err
	}

	c.openSection("Certifications")
	for _, cert := range certs {
		v, err := cert.texts("name", "organization", "start", "end", "details")
		if err != nil {
			return err
		}
		name, org, start, end, details := v[0], v[1], v[2], v[3], v[4]

		c.emit(entryHeadingLevel + name)
		switch {
		case org != "" && start != "" && end != "":
			c.emit("*" + org + " (" + start + "-" + end + ")*")
		case org != "":
			c.emit("*" + org + "*")
		}
		c.emit("")
		c.emitDetails(details)
		c.emit("")
	}
	return nil
}

func (c *composer) skills() error {
	toolset, err := c.root.nestedList("skills", "toolset")
	if err != nil || len(toolset) == 0 {
		return err
	}

	c.openSection("Skills")
	for _, skill := range toolset {
		name, err := skill.text("name")
		if err != nil {
			return err
		}
		if name != "" {
			c.emit(name)
		}
	}
	c.emit("")
	return nil
}

func (c *composer) projects() error {
	projects, err := c.root.mapping("projects")
	if err != nil {
		return err
	}
	assignments, err := projects.list("assignments")
	if err != nil || len(assignments) == 0 {
		return err
	}
	intro, err := projects.text("intro")
	if err != nil {
		return err
	}

	c.openSection("Projects")
	if intro != "" {
		c.emit(intro)
	}
	c.emit("")
	for _, proj := range assignments {
		v, err := proj.texts("title", "tagline", "link")
		if err != nil {
			return err
		}
		title, tagline, link := v[0], v[1], v[2]

		if link != "" && link != placeholderLink {
			c.emit(entryHeadingLevel + "[" + title + "](" + link + ")")
		} else {
			c.emit(entryHeadingLevel + title)
		}
		if tagline != "" {
			c.emit(tagline)
		}
		c.emit("")
	}
	return nil
}

// emitDetails writes a multi-line details block with surrounding whitespace
// trimmed, or nothing when the block is blank.
func (c *composer) emitDetails(details string) {
	if trimmed := strings.TrimSpace(details); trimmed != "" {
		c.emit(trimmed)
	}
}
