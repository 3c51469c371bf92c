package mcp

import "strings"

// ToolDescription provides enhanced descriptions for AI agents
type ToolDescription struct {
	Description string
	WhenToUse   []string
	Examples    []string
	NextTools   []string
}

var toolDescriptions = map[string]ToolDescription{
	"bitting_analyze": {
		Description: "Analyse a partial key code: position counts, number of possible codes, MACS violations, shallow-to-deep cutting order, keyway tips and rule advisories. Optionally lists the matching codes",
		WhenToUse: []string{
			"When a locksmith has decoded some positions and wants to know how many codes remain",
			"When checking a fully decoded code against the keyway's MACS",
			"Before cutting, to get the order to cut the known depths in",
		},
		Examples: []string{
			`bitting_analyze(code: "13?2", keyway: "HU66")`,
			`bitting_analyze(code: "2 4?1", spaces: 6, depths: "1,2,3,4,5", macs: 3)`,
		},
		NextTools: []string{
			"bitting_match - List the codes that fit",
			"keyway_show - Read the keyway's tips and rules",
		},
	},
	"bitting_match": {
		Description: "List every code that fits a partial key code and the keyway's MACS. Code characters: 1-9 known depth, ? unknown, X wildcard, A/B/T half readings, any other character (_ or space) not read yet",
		WhenToUse: []string{
			"When at most a few positions are unknown and the candidates should be tried",
			"When a half reading (A, B or T) needs to be resolved to full depths",
		},
		Examples: []string{
			`bitting_match(code: "1?3?", spaces: 4, depths: "4", macs: 2)`,
			`bitting_match(code: "12A3B1", keyway: "HU100", enforce_rules: true)`,
		},
		NextTools: []string{
			"bitting_analyze - Get the cutting order for a chosen code",
		},
	},
	"keyway_list": {
		Description: "List the keyways in the keyway table with their spec and Lishi tool",
		WhenToUse: []string{
			"When the keyway name is unknown or misspelled",
			"To see which keyways have built-in specs",
		},
		Examples: []string{
			`keyway_list()`,
		},
		NextTools: []string{
			"keyway_show - Read one keyway in detail",
		},
	},
	"keyway_show": {
		Description: "Show one keyway: spec, Lishi tool, decoding tip, fixed positions, door and ignition positions",
		WhenToUse: []string{
			"Before decoding, to learn which positions the door lock reads",
			"When an analysis reports a keyway advisory",
		},
		Examples: []string{
			`keyway_show(name: "HU66")`,
		},
		NextTools: []string{
			"bitting_analyze - Analyse a code for this keyway",
			"session_open - Start decoding a key of this keyway",
		},
	},
	"session_open": {
		Description: "Open a calculator session on the workbench. The session keeps the positions entered so far between calls and returns a short handle",
		WhenToUse: []string{
			"When a key is decoded over several steps",
			"When the positions will be read from door and ignition separately",
		},
		Examples: []string{
			`session_open(keyway: "HU92")`,
			`session_open(code: "12??", spaces: 6, depths: "5", macs: 3)`,
		},
		NextTools: []string{
			"session_update - Enter more positions",
			"session_match - List the codes that fit",
		},
	},
	"session_update": {
		Description: "Edit an open session: set one position (1-based), replace all positions from a code, or reset",
		WhenToUse: []string{
			"When another position has been read",
			"When a reading turned out to be wrong",
		},
		Examples: []string{
			`session_update(session: "1", position: 3, value: "4")`,
			`session_update(session: "1", code: "1342??")`,
			`session_update(session: "1", reset: true)`,
		},
		NextTools: []string{
			"session_match - List the codes that fit",
		},
	},
	"session_match": {
		Description: "List the codes that fit an open session's positions",
		Examples: []string{
			`session_match(session: "1")`,
		},
		NextTools: []string{
			"session_update - Narrow the search with more positions",
			"session_close - Close the session when done",
		},
	},
	"session_show": {
		Description: "Show an open session's positions, counts, cutting order and advisories",
		Examples: []string{
			`session_show(session: "1")`,
		},
		NextTools: []string{
			"session_update - Enter more positions",
		},
	},
	"session_list": {
		Description: "List the sessions open on the workbench",
		NextTools: []string{
			"session_show - Show one session",
		},
	},
	"session_close": {
		Description: "Close a session and remove it from the workbench",
		Examples: []string{
			`session_close(session: "1")`,
		},
		NextTools: []string{
			"session_list - Check what is still open",
		},
	},
}

// GetEnhancedDescription returns the enhanced description for a tool
func GetEnhancedDescription(toolName string) string {
	desc, ok := toolDescriptions[toolName]
	if !ok {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(desc.Description)
	if len(desc.WhenToUse) > 0 {
		sb.WriteString("\n\nWHEN TO USE THIS TOOL:\n")
		for _, when := range desc.WhenToUse {
			sb.WriteString("- " + when + "\n")
		}
	}
	if len(desc.Examples) > 0 {
		sb.WriteString("\nEXAMPLES:\n")
		for _, example := range desc.Examples {
			sb.WriteString(example + "\n")
		}
	}
	return sb.String()
}

// GetNextToolSuggestions returns suggested next tools for a given tool
func GetNextToolSuggestions(toolName string) []map[string]string {
	desc, ok := toolDescriptions[toolName]
	if !ok {
		return nil
	}
	suggestions := make([]map[string]string, 0, len(desc.NextTools))
	for _, next := range desc.NextTools {
		suggestions = append(suggestions, map[string]string{
			"tool": next,
		})
	}
	return suggestions
}
