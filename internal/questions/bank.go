package questions

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// RoleQuestions is one role's entry in the bank file.
type RoleQuestions struct {
	Role      string   `yaml:"role"`
	Questions []string `yaml:"questions"`
}

// Bank is a static question source: a role-to-questions mapping with a
// fallback set for roles the bank does not know.
type Bank struct {
	Entries  []RoleQuestions `yaml:"roles"`
	Fallback []string        `yaml:"fallback"`
}

// defaultBank covers the built-in role list when no bank file is configured.
var defaultBank = Bank{
	Entries: []RoleQuestions{
		{
			Role: "Software Engineer",
			Questions: []string{
				"Tell me about yourself and your engineering background.",
				"Describe a challenging bug you tracked down. How did you approach it?",
				"How do you decide when code is ready to ship?",
				"Tell me about a time you disagreed with a teammate on a technical choice.",
				"What would you improve about the last system you worked on?",
			},
		},
		{
			Role: "Data Analyst",
			Questions: []string{
				"Walk me through a dataset you analyzed end to end.",
				"How do you handle missing or inconsistent data?",
				"Describe a time your analysis changed a decision.",
				"Which metrics would you track for a product like ours, and why?",
				"How do you explain a statistical result to a non-technical audience?",
			},
		},
		{
			Role: "UX Designer",
			Questions: []string{
				"Walk me through your design process for a recent project.",
				"How do you incorporate user feedback into your designs?",
				"Tell me about a design decision you reversed after testing.",
				"How do you balance business goals against user needs?",
				"Which product's user experience do you admire, and why?",
			},
		},
		{
			Role: "Product Manager",
			Questions: []string{
				"How do you prioritize a backlog when everything feels urgent?",
				"Tell me about a product bet that did not work out.",
				"How do you measure whether a launched feature succeeded?",
				"Describe a time you aligned engineering and design on a contested scope.",
				"What would you build first for a brand-new user of our product?",
			},
		},
	},
	Fallback: []string{
		"Tell me about yourself.",
		"What interests you about this role?",
		"Describe a challenge you faced recently and how you handled it.",
		"What is your biggest strength, and how has it helped you?",
		"Where do you see yourself in five years?",
	},
}

// LoadBank reads a bank file, or returns the built-in bank when path is empty.
func LoadBank(path string) (*Bank, error) {
	if path == "" {
		b := defaultBank
		return &b, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "questions: read bank %s", path)
	}
	var b Bank
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, eris.Wrapf(err, "questions: parse bank %s", path)
	}
	return &b, nil
}

// ForRole returns the bank's questions for an exact role match, or the
// fallback set for unknown roles.
func (b *Bank) ForRole(ctx context.Context, role string) ([]string, error) {
	for _, entry := range b.Entries {
		if entry.Role == role {
			return entry.Questions, nil
		}
	}
	return b.Fallback, nil
}

// Roles lists the known roles in bank-file order.
func (b *Bank) Roles() []string {
	roles := make([]string, len(b.Entries))
	for i, entry := range b.Entries {
		roles[i] = entry.Role
	}
	return roles
}
