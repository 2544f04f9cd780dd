package prompt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/teranos/promptrev/errors"
	"github.com/teranos/promptrev/internal/util"
	"github.com/teranos/promptrev/logger"
)

// Placeholder patterns
var (
	// Any {{...}} span; directive detection happens on the inner content
	spanPattern = regexp.MustCompile(`\{\{(.*?)\}\}`)

	// Plain {{variable}} references for the substitution phase
	variablePattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_.]*)\s*\}\}`)

	// Single-brace {var} references inside text directive sub-templates
	subTemplatePattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)
)

const defaultDateFormat = "%Y-%m-%d"

// Resolver renders raw templates in two phases: inline directives
// ({{type:params}} spans) first, then variable substitution against the
// merged rendering context. Rendering never fails for a template that was
// successfully looked up; every malformed span degrades to its verbatim
// text with a warning. Output is computed fresh on every call because
// directives like date vary per access.
type Resolver struct {
	defaultContext map[string]any
}

// NewResolver creates a resolver with the given default rendering context.
// Context values may be string, fmt.Stringer, func() string or
// func() (string, error); anything else is formatted with %v. A nil context
// is allowed.
func NewResolver(defaultContext map[string]any) *Resolver {
	return &Resolver{defaultContext: defaultContext}
}

// Render resolves raw through both phases. override is merged over the
// default context, winning on key collision. A variable-phase failure falls
// back to the directive-phase output rather than the raw template.
func (r *Resolver) Render(raw string, override map[string]any) string {
	processed := r.applyDirectives(raw)

	rendered, err := substituteVariables(processed, r.mergedContext(override))
	if err != nil {
		logger.Errorw("Variable substitution failed, returning directive-phase output",
			logger.FieldError, err,
		)
		return processed
	}
	return rendered
}

// applyDirectives is phase one: every {{...}} span whose content carries a
// colon is interpreted as type:params. Spans without a colon are left for
// the variable phase.
func (r *Resolver) applyDirectives(raw string) string {
	matches := spanPattern.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return raw
	}

	var out strings.Builder
	out.Grow(len(raw) * 2)

	lastEnd := 0
	for _, match := range matches {
		start, end := match[0], match[1]
		inner := raw[match[2]:match[3]]

		out.WriteString(raw[lastEnd:start])
		out.WriteString(r.resolveSpan(raw[start:end], inner))
		lastEnd = end
	}
	out.WriteString(raw[lastEnd:])

	return out.String()
}

// resolveSpan renders one directive span, returning the span verbatim for
// anything it cannot handle.
func (r *Resolver) resolveSpan(span, inner string) string {
	content := strings.TrimSpace(inner)
	directive, params, found := strings.Cut(content, ":")
	if !found {
		// Plain variable reference, handled in phase two
		return span
	}

	switch strings.TrimSpace(directive) {
	case "date":
		return renderDate(span, params)
	case "number":
		return renderNumber(span, params)
	case "choice":
		return renderChoice(span, params)
	case "text":
		return renderText(span, params)
	default:
		logger.Debugw("Unknown directive type, leaving span verbatim",
			logger.FieldSpan, span,
		)
		return span
	}
}

// renderDate formats the current time with a strftime pattern, default
// %Y-%m-%d.
func renderDate(span, paramsStr string) string {
	params := parseParams(paramsStr)
	pattern := defaultDateFormat
	if f, ok := params["format"]; ok {
		pattern = f
	}

	layout, err := strftimeToLayout(pattern)
	if err != nil {
		logger.Warnw("Unsupported date format, leaving span verbatim",
			logger.FieldSpan, span,
			logger.FieldError, err,
		)
		return span
	}
	return time.Now().Format(layout)
}

// renderNumber returns the min parameter as a string. The max parameter is
// parsed for validation but does not influence the value: output stays
// deterministic between accesses.
func renderNumber(span, paramsStr string) string {
	min, max, err := parseNumberParams(paramsStr)
	if err != nil {
		logger.Warnw("Malformed number directive, leaving span verbatim",
			logger.FieldSpan, span,
			logger.FieldError, err,
		)
		return span
	}
	if max != nil {
		logger.Debugw("number directive max is parsed but unused, value is deterministic",
			logger.FieldSpan, span,
			"max", *max,
		)
	}
	return strconv.Itoa(min)
}

// parseNumberParams extracts min (required) and max (optional) as integers.
func parseNumberParams(paramsStr string) (int, *int, error) {
	params := parseParams(paramsStr)

	minStr, ok := params["min"]
	if !ok {
		return 0, nil, errors.New("missing min parameter")
	}
	min, err := strconv.Atoi(strings.TrimSpace(minStr))
	if err != nil {
		return 0, nil, errors.Newf("min %q is not an integer", minStr)
	}

	var max *int
	if maxStr, ok := params["max"]; ok {
		v, err := strconv.Atoi(strings.TrimSpace(maxStr))
		if err != nil {
			return 0, nil, errors.Newf("max %q is not an integer", maxStr)
		}
		max = util.Ptr(v)
	}
	return min, max, nil
}

// renderChoice returns the first listed value. Deterministic between
// accesses, like renderNumber.
func renderChoice(span, paramsStr string) string {
	if strings.TrimSpace(paramsStr) == "" {
		logger.Warnw("choice directive with empty list, leaving span verbatim",
			logger.FieldSpan, span,
		)
		return span
	}
	values := strings.Split(paramsStr, ",")
	return values[0]
}

// renderText renders an inline sub-template using only its inline key=value
// pairs as context. Sub-template placeholders use single braces; an unset
// {var} stays verbatim.
func renderText(span, paramsStr string) string {
	sub, rest, _ := strings.Cut(paramsStr, ",")
	params := parseParams(rest)

	return subTemplatePattern.ReplaceAllStringFunc(sub, func(m string) string {
		key := m[1 : len(m)-1]
		if v, ok := params[key]; ok {
			return v
		}
		return m
	})
}

// parseParams parses a flat comma-separated key=value list. Pairs without
// an = are skipped. Keys are trimmed; values are kept verbatim so format
// strings survive intact.
func parseParams(s string) map[string]string {
	params := make(map[string]string)
	for _, part := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		params[strings.TrimSpace(key)] = value
	}
	return params
}

// substituteVariables is phase two: plain {{variable}} spans are replaced
// from the context. Undefined variables render back as their own span text,
// never as empty string and never as an error.
func substituteVariables(s string, ctx map[string]any) (string, error) {
	matches := variablePattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	var out strings.Builder
	out.Grow(len(s) * 2)

	lastEnd := 0
	for _, match := range matches {
		start, end := match[0], match[1]
		name := s[match[2]:match[3]]

		out.WriteString(s[lastEnd:start])

		value, ok := ctx[name]
		if !ok {
			out.WriteString(s[start:end])
		} else {
			text, err := contextValueString(value)
			if err != nil {
				return "", errors.Wrapf(err, "context value %q", name)
			}
			out.WriteString(text)
		}
		lastEnd = end
	}
	out.WriteString(s[lastEnd:])

	return out.String(), nil
}

// contextValueString stringifies one context value, invoking callables per
// render.
func contextValueString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case func() string:
		return val(), nil
	case func() (string, error):
		return val()
	case fmt.Stringer:
		return val.String(), nil
	default:
		return fmt.Sprintf("%v", val), nil
	}
}

// mergedContext unions the default context with a per-call override,
// override winning. Returns the default map unchanged when there is no
// override.
func (r *Resolver) mergedContext(override map[string]any) map[string]any {
	if len(override) == 0 {
		return r.defaultContext
	}
	merged := make(map[string]any, len(r.defaultContext)+len(override))
	for k, v := range r.defaultContext {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}
