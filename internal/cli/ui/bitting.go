package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aki/keybit/internal/core/bitting"
	"github.com/aki/keybit/internal/core/calculator"
	"github.com/aki/keybit/internal/core/keyway"
	"github.com/aki/keybit/internal/core/workbench"
)

// blankMark is shown for positions nothing has been entered for
const blankMark = "·"

// RenderPositions renders one styled cell per position, separated by spaces.
// Positions listed in violations are highlighted.
func RenderPositions(values []bitting.Value, violations []int) string {
	bad := make(map[int]bool, len(violations))
	for _, i := range violations {
		bad[i] = true
	}

	cells := make([]string, len(values))
	for i, v := range values {
		switch v.Kind() {
		case bitting.KindBlank:
			cells[i] = DimStyle.Render(blankMark)
		case bitting.KindUnknown, bitting.KindWildcard:
			cells[i] = UnknownStyle.Render(v.DisplayChar())
		case bitting.KindHalf:
			cells[i] = HalfStyle.Render(v.DisplayChar())
		case bitting.KindDepth:
			if bad[i] {
				cells[i] = ViolationStyle.Render(v.DisplayChar())
			} else {
				cells[i] = BoldStyle.Render(v.DisplayChar())
			}
		}
	}
	return strings.Join(cells, " ")
}

// RenderIndexRuler renders 1-based position numbers aligned with RenderPositions
func RenderIndexRuler(n int) string {
	cells := make([]string, n)
	for i := range cells {
		cells[i] = fmt.Sprint((i + 1) % 10)
	}
	return DimStyle.Render(strings.Join(cells, " "))
}

// RenderProfile draws the cut profile of the concrete positions, one row per
// depth from shallow to deep
func RenderProfile(values []bitting.Value, maxDepth int) string {
	var sb strings.Builder
	for depth := 1; depth <= maxDepth; depth++ {
		cells := make([]string, len(values))
		for i, v := range values {
			d, ok := v.DepthValue()
			switch {
			case !ok:
				cells[i] = " "
			case d >= depth:
				cells[i] = "█"
			default:
				cells[i] = DimStyle.Render("░")
			}
		}
		sb.WriteString(DimStyle.Render(fmt.Sprintf("%d ", depth)))
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// PrintSession displays the state of a calculator session
func PrintSession(handle string, s *calculator.Session) {
	spec := s.Spec()
	title := "Key"
	if spec.Keyway != "" {
		title = spec.Keyway
	}
	id := s.ID()
	if handle != "" {
		id = handle
	}
	OutputLine("%s %s %s %s", KeyIcon, BoldStyle.Render(title),
		DimStyle.Render(fmt.Sprintf("(%s)", id)),
		DimStyle.Render(spec.Describe()))

	OutputLine("")
	OutputLine("   %s", RenderIndexRuler(len(s.Values())))
	OutputLine("   %s", RenderPositions(s.Values(), s.Violations()))
	OutputLine("")
	if s.Stats().KnownCount > 0 {
		profile := strings.TrimRight(RenderProfile(s.Values(), s.MaxDepth()), "\n")
		for _, line := range strings.Split(profile, "\n") {
			OutputLine(" %s", line)
		}
		OutputLine("")
	}

	PrintField("Status", s.Status())
	if code := s.Code(); code != "" {
		PrintField("Code", code)
	}
	PrintStats(s.Stats())
	if spec.Lishi != "" {
		PrintField("Lishi", spec.Lishi)
	}
	if spec.CodeSeries != "" {
		PrintField("Series", spec.CodeSeries)
	}
	if s.RulesEnforced() {
		PrintField("Rules", "enforced")
	}
	if handle != "" {
		PrintField("Updated", FormatTime(s.UpdatedAt()))
	}

	if v := s.Violations(); len(v) > 0 {
		Warning("MACS %d exceeded at positions %s", spec.MaxAdjacent(), joinOneBased(v))
	}
	if hint, ok := s.KeywayHint(); ok {
		Info("%s", hint)
	}
	PrintAdvisories(s.Advisories())
}

// PrintStats displays position counts
func PrintStats(st calculator.Stats) {
	PrintField("Known", st.KnownCount)
	PrintField("Unknown", fmt.Sprintf("%d (%d half, %d blank)", st.UnknownCount, st.HalfCount, st.BlankCount))
	PrintField("Combinations", FormatCount(st.TotalCombinations))
}

// PrintMatches displays an enumeration result
func PrintMatches(result bitting.MatchResult) {
	if result.TooMany {
		Warning("Too many combinations (%s); enter more positions to narrow the search",
			FormatCountShort(result.Total))
		return
	}
	if len(result.Candidates) == 0 {
		Info("No valid codes match these positions")
		return
	}

	PrintSectionHeader(KeyIcon, "Matching codes", len(result.Candidates))
	tbl := NewTable("#", "CODE")
	for i, c := range result.Candidates {
		tbl.AddRow(i+1, c.String())
	}
	tbl.Print()

	if result.Truncated {
		OutputLine("")
		Info("Showing the first %d codes; more exist", len(result.Candidates))
	}
}

// PrintCuttingOrder displays the suggested shallow-to-deep cutting order
func PrintCuttingOrder(steps []bitting.CutStep) {
	if len(steps) == 0 {
		Info("No known depths to cut yet")
		return
	}
	PrintSectionHeader(CutIcon, "Cutting order", len(steps))
	tbl := NewTable("STEP", "POSITION", "DEPTH")
	for _, st := range steps {
		tbl.AddRow(st.Order, st.Index+1, st.Depth)
	}
	tbl.Print()
}

// PrintAdvisories displays keyway rule advisories
func PrintAdvisories(advisories []keyway.Advisory) {
	for _, a := range advisories {
		switch a.Level {
		case keyway.LevelWarning:
			Warning("%s", a.Message)
		case keyway.LevelInfo:
			OutputLine("%s %s", InfoIcon, DimStyle.Render(a.Message))
		}
	}
}

// PrintKeywayList displays the keyway table
func PrintKeywayList(rules []keyway.Rule) {
	if len(rules) == 0 {
		Info("No keyways found")
		return
	}
	PrintSectionHeader(KeywayIcon, "Keyways", len(rules))
	tbl := NewTable("KEYWAY", "SPEC", "LISHI", "ALIASES")
	for _, r := range rules {
		spec, lishi := "-", "-"
		if r.Spec != nil {
			spec = r.Spec.Describe()
			if r.Spec.Lishi != "" {
				lishi = r.Spec.Lishi
			}
		}
		aliases := "-"
		if len(r.Aliases) > 0 {
			aliases = strings.Join(r.Aliases, ", ")
		}
		tbl.AddRow(r.Name, spec, lishi, aliases)
	}
	tbl.Print()
}

// PrintKeyway displays one keyway rule
func PrintKeyway(r keyway.Rule) {
	OutputLine("%s %s", KeywayIcon, BoldStyle.Render(r.Name))
	if r.Hint != "" {
		OutputLine("   %s", r.Hint)
	}
	OutputLine("")
	if r.Spec != nil {
		PrintField("Spec", r.Spec.Describe())
		if r.Spec.CodeSeries != "" {
			PrintField("Series", r.Spec.CodeSeries)
		}
		if r.Spec.Lishi != "" {
			PrintField("Lishi", r.Spec.Lishi)
		}
	}
	if len(r.Aliases) > 0 {
		PrintField("Aliases", strings.Join(r.Aliases, ", "))
	}
	for _, pos := range sortedPositions(r.FixedPositions) {
		PrintField(fmt.Sprintf("Position %d", pos), fmt.Sprintf("fixed at depth %d", r.FixedPositions[pos]))
	}
	if len(r.DoorOnly) > 0 {
		PrintField("Door reads", joinInts(r.DoorOnly))
	}
	if len(r.IgnitionOnly) > 0 {
		PrintField("Ignition only", joinInts(r.IgnitionOnly))
	}
	if r.MaxConsecutiveSame > 0 {
		PrintField("Max same in a row", r.MaxConsecutiveSame)
	}
	if r.ReverseDepth {
		PrintField("Depth numbering", "reversed")
	}
	if r.Angular {
		PrintField("Cuts", "angular")
	}
}

// PrintSessionList displays the open sessions of the workbench
func PrintSessionList(entries []*workbench.Entry) {
	if len(entries) == 0 {
		Info("No open sessions")
		return
	}
	PrintSectionHeader(KeyIcon, "Open sessions", len(entries))
	tbl := NewTable("ID", "KEYWAY", "POSITIONS", "SPEC", "UPDATED")
	for _, e := range entries {
		id := e.Handle
		if id == "" {
			id = e.Snapshot.ID
		}
		kw := e.Snapshot.Spec.Keyway
		if kw == "" {
			kw = "-"
		}
		tbl.AddRow(id, kw, e.Snapshot.Positions, e.Snapshot.Spec.Describe(), FormatTime(e.Snapshot.UpdatedAt))
	}
	tbl.Print()
}

func joinOneBased(indices []int) string {
	oneBased := make([]int, len(indices))
	for i, idx := range indices {
		oneBased[i] = idx + 1
	}
	return joinInts(oneBased)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

func sortedPositions(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
