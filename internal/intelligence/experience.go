package intelligence

import "fmt"

// ExperienceLevel identifies the seniority of the developer the generated
// tasks will be assigned to. Estimates scale with it.
type ExperienceLevel string

const (
	LevelFresher ExperienceLevel = "fresher"
	LevelJunior  ExperienceLevel = "junior"
	LevelMid     ExperienceLevel = "mid"
	LevelSenior  ExperienceLevel = "senior"
)

type experienceProfile struct {
	Multiplier    float64
	PromptContext string
}

var experienceProfiles = map[ExperienceLevel]experienceProfile{
	LevelFresher: {
		Multiplier:    2.0,
		PromptContext: "a fresher developer (0-1 years experience) who is still learning the technology stack and needs detailed guidance, extra time for research, and frequent code reviews",
	},
	LevelJunior: {
		Multiplier:    1.5,
		PromptContext: "a junior developer (1-2 years experience) who needs some guidance, may need to look up documentation, and requires code review time",
	},
	LevelMid: {
		Multiplier:    1.0,
		PromptContext: "a mid-level developer (2-5 years experience) who works independently and has good knowledge of the tech stack",
	},
	LevelSenior: {
		Multiplier:    0.75,
		PromptContext: "a senior developer (5+ years experience) who is an expert, works very efficiently, and can implement complex features quickly",
	},
}

// ParseExperienceLevel validates a raw level string.
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	level := ExperienceLevel(s)
	if _, ok := experienceProfiles[level]; !ok {
		return "", fmt.Errorf("unknown experience level %q (want fresher, junior, mid or senior)", s)
	}
	return level, nil
}

// Multiplier returns the estimate scaling factor for a level. Unknown
// levels scale by 1.
func (l ExperienceLevel) Multiplier() float64 {
	if p, ok := experienceProfiles[l]; ok {
		return p.Multiplier
	}
	return 1.0
}

func (l ExperienceLevel) promptContext() string {
	if p, ok := experienceProfiles[l]; ok {
		return p.PromptContext
	}
	return experienceProfiles[LevelMid].PromptContext
}
