package progression

import "fmt"

// Skill identifies one of the four independently progressed language skills.
type Skill string

const (
	SkillReading   Skill = "reading"
	SkillListening Skill = "listening"
	SkillWriting   Skill = "writing"
	SkillSpeaking  Skill = "speaking"
)

// AllSkills returns the four skills in canonical order.
func AllSkills() []Skill {
	return []Skill{SkillReading, SkillListening, SkillWriting, SkillSpeaking}
}

// ParseSkill validates a skill name. Unknown names are rejected at the
// boundary, before any state is read.
func ParseSkill(name string) (Skill, error) {
	switch Skill(name) {
	case SkillReading, SkillListening, SkillWriting, SkillSpeaking:
		return Skill(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSkill, name)
}

func (s Skill) String() string { return string(s) }
