package autorev

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/teranos/promptrev/revision"
)

// DefaultDescription is the description stamped on generated revisions.
const DefaultDescription = "Auto-generated from manual changes"

// GenerateSource emits a complete Go source file for pkg containing one
// catalog entry whose transform replays the change set. Additions and
// modifications are emitted in name order so regeneration is stable.
func GenerateSource(pkg, id, description string, c Changes) []byte {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("// Auto-generated revision capturing manual edits to the prompt document\n// on %s.\n\n",
		time.Now().Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("package %s\n\n", pkg))
	sb.WriteString("import \"github.com/teranos/promptrev/prompt\"\n\n")

	fn := "migrate" + idIdentifier(id)

	sb.WriteString("func init() {\n")
	sb.WriteString("\tcatalog = append(catalog, entry{\n")
	sb.WriteString(fmt.Sprintf("\t\tid:          %q,\n", id))
	sb.WriteString(fmt.Sprintf("\t\tdescription: %q,\n", description))
	sb.WriteString(fmt.Sprintf("\t\ttransform:   %s,\n", fn))
	sb.WriteString("\t})\n")
	sb.WriteString("}\n\n")

	sb.WriteString(fmt.Sprintf("func %s(doc *prompt.Document) error {\n", fn))

	wroteSection := false
	if len(c.Added) > 0 {
		sb.WriteString("\t// Add new prompts\n")
		for _, name := range sortedNames(c.Added) {
			sb.WriteString(fmt.Sprintf("\tdoc.Set(%q, %q)\n", name, c.Added[name]))
		}
		wroteSection = true
	}
	if len(c.Modified) > 0 {
		if wroteSection {
			sb.WriteString("\n")
		}
		sb.WriteString("\t// Update modified prompts\n")
		for _, name := range sortedNames(c.Modified) {
			sb.WriteString(fmt.Sprintf("\tdoc.Set(%q, %q)\n", name, c.Modified[name]))
		}
		wroteSection = true
	}
	if len(c.Removed) > 0 {
		if wroteSection {
			sb.WriteString("\n")
		}
		sb.WriteString("\t// Remove deleted prompts\n")
		for _, name := range c.Removed {
			sb.WriteString(fmt.Sprintf("\tdoc.Delete(%q)\n", name))
		}
	}

	sb.WriteString("\n\treturn nil\n")
	sb.WriteString("}\n")

	return []byte(sb.String())
}

// NextAutoID returns the next free auto-revision identifier,
// `NNN_auto_changes` with NNN one past the highest numeric prefix among the
// registered steps. No numbered steps yields 001.
func NextAutoID(steps []revision.Step) string {
	highest := 0
	for _, step := range steps {
		if n, ok := numericPrefix(step.ID); ok && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%03d_auto_changes", highest+1)
}

// numericPrefix parses the leading digit run of a revision identifier.
func numericPrefix(id string) (int, bool) {
	end := 0
	for end < len(id) && id[end] >= '0' && id[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(id[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// idIdentifier turns a revision identifier into a CamelCase identifier
// fragment: "003_auto_changes" becomes "003AutoChanges".
func idIdentifier(id string) string {
	parts := strings.Split(id, "_")
	var sb strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(part[:1]))
		sb.WriteString(part[1:])
	}
	return sb.String()
}

// sortedNames returns the mapping's keys in name order.
func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
