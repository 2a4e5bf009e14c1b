// Package skills implements progressive disclosure of agent skills.
// Skills are packaged as directories containing a SKILL.md file with YAML
// frontmatter. Disclosure happens in three levels: discovery loads only
// the frontmatter metadata (Level 1), activation loads the instruction
// body (Level 2), and supporting files are fetched on demand (Level 3).
package skills

// Skill represents a discovered skill. Only Level-1 metadata is held;
// the instruction body is read when the skill is activated.
type Skill struct {
	Name        string // Unique name from frontmatter
	Description string // Brief description for model decision-making
	License     string // Optional license identifier from frontmatter
	Directory   string // Full path to the skill directory
}

// ActivatedSkill pairs a skill with its Level-2 instruction body.
type ActivatedSkill struct {
	Skill   *Skill
	Content string // SKILL.md body, frontmatter stripped
}
