// Package template resolves {{ path }} expressions against the layered data
// context of a running execution: the current node input, the trigger
// payload, and every upstream node's recorded output.
//
// Resolution is fail-soft: a span whose path cannot be resolved is left in
// the output verbatim. The caller decides whether that is worth a warning.
package template

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/weftflow/weft/pkg/domain"
)

// Context is the data visible to one template resolution.
type Context struct {
	// Input is the current node's resolved input ($json).
	Input any
	// Packet is the full data packet ($all, and node-id paths).
	Packet domain.DataPacket
	// Trigger is the trigger payload ($trigger).
	Trigger any
}

var spanPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Resolve substitutes every {{ expr }} span in tmpl. Each span resolves
// independently; unresolvable spans stay literal.
func Resolve(tmpl string, ctx Context) string {
	if tmpl == "" || !strings.Contains(tmpl, "{{") {
		return tmpl
	}
	return spanPattern.ReplaceAllStringFunc(tmpl, func(span string) string {
		path := strings.TrimSpace(span[2 : len(span)-2])
		value, ok := resolvePath(path, ctx)
		if !ok {
			return span
		}
		return formatValue(value)
	})
}

func resolvePath(path string, ctx Context) (any, bool) {
	switch path {
	case "":
		return nil, false
	case "$json":
		return ctx.Input, true
	case "$trigger":
		return ctx.Trigger, true
	case "$all":
		return ctx.Packet, true
	}

	if rest, ok := strings.CutPrefix(path, "$json."); ok {
		return nestedValue(ctx.Input, rest)
	}
	if rest, ok := strings.CutPrefix(path, "$trigger."); ok {
		return nestedValue(ctx.Trigger, rest)
	}
	if rest, ok := strings.CutPrefix(path, "$all."); ok {
		return resolvePath(rest, ctx)
	}

	if head, rest, dotted := strings.Cut(path, "."); dotted {
		if entry, ok := ctx.Packet[head]; ok {
			switch {
			case rest == "output":
				return entry.Output, true
			case rest == "handle":
				return entry.Handle, true
			case strings.HasPrefix(rest, "output."):
				return nestedValue(entry.Output, rest[len("output."):])
			case strings.HasPrefix(rest, "output["):
				return nestedValue(entry.Output, rest[len("output"):])
			}
			return nestedValue(entry.Output, rest)
		}
		if head == domain.TriggerKey {
			return nestedValue(ctx.Trigger, rest)
		}
		return nestedValue(ctx.Input, path)
	}

	// Bare key: try the current input first, then a whole-node packet entry.
	if v, ok := nestedValue(ctx.Input, path); ok {
		return v, true
	}
	if entry, ok := ctx.Packet[path]; ok {
		return entry, true
	}
	return nil, false
}

// nestedValue walks a dotted path through decoded JSON data. Parts may carry
// one bracketed index ("items[0]" or "[0]").
func nestedValue(v any, path string) (any, bool) {
	if path == "" {
		return v, true
	}
	for _, part := range strings.Split(path, ".") {
		key, index, indexed := splitIndex(part)
		if key != "" {
			m, ok := v.(map[string]any)
			if !ok {
				return nil, false
			}
			v, ok = m[key]
			if !ok {
				return nil, false
			}
		}
		if indexed {
			arr, ok := v.([]any)
			if !ok || index < 0 || index >= len(arr) {
				return nil, false
			}
			v = arr[index]
		}
	}
	return v, true
}

func splitIndex(part string) (key string, index int, ok bool) {
	open := strings.IndexByte(part, '[')
	if open < 0 || !strings.HasSuffix(part, "]") {
		return part, 0, false
	}
	n, err := strconv.Atoi(part[open+1 : len(part)-1])
	if err != nil {
		return part, 0, false
	}
	return part[:open], n, true
}

// formatValue serializes a resolved value for substitution: strings pass
// through, scalars use their JSON encoding, objects and arrays get indented
// JSON.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	}
	switch v.(type) {
	case map[string]any, []any, domain.DataPacket, domain.NodeData:
		if data, err := json.MarshalIndent(v, "", "  "); err == nil {
			return string(data)
		}
	}
	if data, err := json.Marshal(v); err == nil {
		return strings.Trim(string(data), `"`)
	}
	return ""
}
