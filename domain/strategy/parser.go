package strategy

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// The parsers in this file are total: any input, however malformed, yields a
// best-effort record with documented fallbacks. They never touch the network;
// sprite and stat resolution happens after parsing.

// ParseBattleVerdict scans model output line by line for the four marker
// prefixes (Winner:, Confidence:, Reasoning:, Key Factors:) and returns a
// verdict with defaults for any marker never seen. Matching is case-sensitive
// and the last occurrence of a repeated marker wins.
func ParseBattleVerdict(text string) BattleVerdict {
	var winner, confidence, reasoning string
	var keyFactors []string

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Winner:"):
			winner = afterColon(line)
		case strings.HasPrefix(line, "Confidence:"):
			confidence = afterColon(line)
		case strings.HasPrefix(line, "Reasoning:"):
			reasoning = afterColon(line)
		case strings.HasPrefix(line, "Key Factors:"):
			keyFactors = splitFactors(afterColon(line))
		}
	}

	return NewBattleVerdict(winner, confidence, reasoning, keyFactors)
}

// afterColon returns the trimmed remainder of a line after its first colon.
func afterColon(line string) string {
	_, rest, _ := strings.Cut(line, ":")
	return strings.TrimSpace(rest)
}

// splitFactors splits a factor list on commas after removing every literal
// "-" character. Hyphens embedded inside factor text are removed too; that
// matches the historical contract and is deliberately not corrected.
func splitFactors(text string) []string {
	var factors []string
	for _, f := range strings.Split(strings.ReplaceAll(text, "-", ""), ",") {
		if f = strings.TrimSpace(f); f != "" {
			factors = append(factors, f)
		}
	}
	return factors
}

// ParseCounters splits model output into blank-line-delimited blocks and
// reads Name:, Type: and Reason: markers within each. Blocks without a name
// are dropped. Sprites are unresolved in the returned suggestions.
func ParseCounters(text string) []CounterSuggestion {
	var counters []CounterSuggestion
	for _, b := range parseBlocks(text, "Name:", "Type:", "Reason:") {
		if b["Name:"] == "" {
			continue
		}
		counters = append(counters, NewCounterSuggestion(b["Name:"], b["Type:"], b["Reason:"]))
	}
	return counters
}

// ParseTeam splits model output into blank-line-delimited blocks and reads
// Name:, Type: and Role: markers within each. Blocks without a name are
// dropped. Members are returned unresolved.
func ParseTeam(text string) []TeamMember {
	var team []TeamMember
	for _, b := range parseBlocks(text, "Name:", "Type:", "Role:") {
		if b["Name:"] == "" {
			continue
		}
		team = append(team, NewTeamMember(b["Name:"], b["Type:"], b["Role:"]))
	}
	return team
}

// parseBlocks groups trimmed lines into blocks separated by blank lines and
// captures the remainder-after-colon value of each recognized prefix. A block
// with no recognized prefix produces no entry.
func parseBlocks(text string, prefixes ...string) []map[string]string {
	var blocks []map[string]string
	current := map[string]string{}

	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, current)
			current = map[string]string{}
		}
	}

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		for _, p := range prefixes {
			if strings.HasPrefix(line, p) {
				current[p] = afterColon(line)
				break
			}
		}
	}
	flush()

	return blocks
}

// ErrNoJSONList indicates model output contained no extractable JSON list.
var ErrNoJSONList = errors.New("no JSON list found in model output")

var jsonListPattern = regexp.MustCompile(`(?s)\[.*\]`)

// ExtractJSONList recovers a JSON array from model output. It first tries the
// whole trimmed text, then falls back to the outermost bracketed span. Unlike
// the marker parsers this one can fail: the raw-passthrough server variant
// surfaces that failure instead of degrading.
func ExtractJSONList(text string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)

	var list []json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
		return json.RawMessage(trimmed), nil
	}

	match := jsonListPattern.FindString(trimmed)
	if match == "" {
		return nil, ErrNoJSONList
	}
	if err := json.Unmarshal([]byte(match), &list); err != nil {
		return nil, ErrNoJSONList
	}
	return json.RawMessage(match), nil
}
