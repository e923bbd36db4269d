// Package prompt renders the fixed prompt templates sent to the text
// generation provider. Rendering is pure substitution; every template field
// is supplied by the typed argument lists, so an unfilled placeholder is a
// programming error rather than a runtime condition.
package prompt

import (
	"fmt"
	"strings"

	"github.com/pokemcp/pokemcp/domain/pokemon"
)

const descriptionTemplate = `You are a Pokemon expert. Provide a detailed and engaging description for %s.

Pokemon Details:
- Types: %s
- Abilities: %s
- Base Stats: %s

Write a 2-3 sentence description that includes:
1. What this Pokemon looks like or represents
2. Its key characteristics or personality
3. What makes it special in battle or as a companion

Keep it informative but engaging, suitable for trainers who want to know more about this Pokemon.`

const battleTemplate = `You are a Pokemon battle expert. Analyze this head-to-head matchup and determine who would likely win.

Pokemon 1: %s
Types: %s
Stats: %s

Pokemon 2: %s
Types: %s
Stats: %s

Consider:
- Type effectiveness and weaknesses
- Base stat comparison (especially Attack, Defense, Speed)
- Overall battle potential

Respond with:
Winner: [Pokemon Name]
Confidence: [High/Medium/Low]
Reasoning: [2-3 sentence explanation of why this Pokemon would win]
Key Factors: [List 2-3 main factors that determine the outcome]

Format your response exactly as shown above.`

const counterTemplate = `You are a Pokemon strategy expert. Suggest 3-4 Pokemon that would be effective counters against %s.

Target Pokemon Details:
- Types: %s
- Base Stats: %s

For each counter Pokemon, provide:
- Name: [Exact Pokemon name]
- Type: [Primary type, or Primary/Secondary if dual-type]
- Reason: [Brief explanation of why it's an effective counter]

Focus on:
- Type advantages
- Stat advantages
- Common strategies that work well

Format each suggestion as:
Name: [Pokemon Name]
Type: [Type(s)]
Reason: [One sentence explanation]

Separate each Pokemon with a line break.`

const teamTemplate = `Generate a Pokemon team of 6 Pokemon based on this description: %s

For each Pokemon, provide:
- name: [Exact Pokemon name]
- type: [Primary type]
- role: [Role in team like Attacker, Tank, Support, etc.]

Format each Pokemon as:
Name: [Pokemon Name]
Type: [Type]
Role: [Role]

Separate each Pokemon with a line break.`

const teamAnalysisTemplate = `You are a Pokemon team strategy expert. Analyze why this team is well-suited for the user's request.

User Request: %s

Generated Team: %s

Provide a detailed analysis explaining:
1. How this team addresses the user's specific requirements
2. The strategic synergy between team members
3. Type coverage and balance
4. Strengths and potential weaknesses
5. Overall team effectiveness

Write 3-4 sentences that explain why this team composition is excellent for the user's needs.
Focus on strategy, synergy, and how it fulfills their request.`

// Description renders the single-record description prompt.
func Description(p pokemon.Pokemon) string {
	return fmt.Sprintf(descriptionTemplate,
		p.Name(),
		strings.Join(p.Types(), ", "),
		strings.Join(p.Abilities(), ", "),
		p.Stats().String(),
	)
}

// Battle renders the head-to-head matchup prompt.
func Battle(p1, p2 pokemon.Pokemon) string {
	return fmt.Sprintf(battleTemplate,
		p1.Name(), strings.Join(p1.Types(), ", "), p1.Stats().String(),
		p2.Name(), strings.Join(p2.Types(), ", "), p2.Stats().String(),
	)
}

// Counters renders the counter-suggestion prompt for a target record.
func Counters(target pokemon.Pokemon) string {
	return fmt.Sprintf(counterTemplate,
		target.Name(),
		strings.Join(target.Types(), ", "),
		target.Stats().String(),
	)
}

// Team renders the team-generation prompt from a free-text description.
func Team(description string) string {
	return fmt.Sprintf(teamTemplate, description)
}

// TeamAnalysis renders the rationale prompt from the description and a
// member summary line such as "Pikachu (Attacker), Snorlax (Tank)".
func TeamAnalysis(description, memberSummary string) string {
	return fmt.Sprintf(teamAnalysisTemplate, description, memberSummary)
}

// BasicTeam renders the raw-passthrough variant's team prompt, which asks
// for JSON output instead of marker lines.
func BasicTeam(description string) string {
	return fmt.Sprintf("You are a Pokémon team-building expert. "+
		"Given this team description: '%s', "+
		"suggest a team of 6 Pokémon with type and role diversity. "+
		"Also write why this team is considered. "+
		"Format: JSON list with each Pokémon's name, main type, and suggested role.", description)
}

// BasicCounters renders the raw-passthrough variant's counter prompt, which
// asks for JSON output and needs only the subject's name.
func BasicCounters(name string) string {
	return fmt.Sprintf("You are a Pokémon battle strategist. "+
		"Suggest 5 strong counter Pokémon against '%s'. "+
		"For each, provide the Pokémon's name, main type, and a brief reason why it is a good counter. "+
		"Format: JSON list with name, type, reason.", name)
}
