// Package intent defines the fixed vocabulary of Git intents the classifier
// may return and generates the classifier's system prompt from it.
package intent

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// NotApplicable is the sentinel label for requests that are not about Git.
const NotApplicable = "N/A"

//go:embed intents.yaml
var builtinDefinitions []byte

// Definition describes a single intent: what it means and example phrasings
// used in the classifier prompt and the evaluation harness.
type Definition struct {
	Description string   `yaml:"description"`
	Examples    []string `yaml:"examples"`
}

// Registry holds the intent vocabulary in its declared order.
type Registry struct {
	names []string
	defs  map[string]Definition
}

// Load reads intent definitions from path, or the embedded defaults when
// path is empty.
func Load(path string) (*Registry, error) {
	data := builtinDefinitions
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read intent definitions %s: %w", path, err)
		}
		data = content
	}
	return parse(data)
}

// parse decodes the definitions file preserving the declared intent order,
// which fixes the prompt layout and keeps it deterministic.
func parse(data []byte) (*Registry, error) {
	var doc struct {
		Intents yaml.Node `yaml:"intents"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse intent definitions: %w", err)
	}
	if doc.Intents.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("intent definitions must contain an 'intents' mapping")
	}

	reg := &Registry{defs: make(map[string]Definition)}
	for i := 0; i+1 < len(doc.Intents.Content); i += 2 {
		name := doc.Intents.Content[i].Value
		var def Definition
		if err := doc.Intents.Content[i+1].Decode(&def); err != nil {
			return nil, fmt.Errorf("failed to parse intent %q: %w", name, err)
		}
		reg.names = append(reg.names, name)
		reg.defs[name] = def
	}

	if len(reg.names) == 0 {
		return nil, fmt.Errorf("intent definitions are empty")
	}
	return reg, nil
}

// Names returns all intent names in declared order, including N/A.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// GitNames returns the command intents, excluding the N/A sentinel.
func (r *Registry) GitNames() []string {
	var out []string
	for _, name := range r.names {
		if name != NotApplicable {
			out = append(out, name)
		}
	}
	return out
}

// Valid reports whether name is part of the vocabulary.
func (r *Registry) Valid(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Examples returns the example phrasings for an intent.
func (r *Registry) Examples(name string) []string {
	return r.defs[name].Examples
}

// Mapping returns example message to intent name, for evaluation runs.
func (r *Registry) Mapping() map[string]string {
	m := make(map[string]string)
	for _, name := range r.names {
		for _, example := range r.defs[name].Examples {
			m[example] = name
		}
	}
	return m
}

// Resolve maps a raw classifier reply onto the vocabulary. The model may
// wrap the label in whitespace, quotes, or backticks, or reply in a
// different case; anything that still does not match is returned trimmed
// with ok=false so the caller can surface it verbatim.
func (r *Registry) Resolve(raw string) (string, bool) {
	reply := strings.TrimSpace(raw)
	if i := strings.IndexByte(reply, '\n'); i >= 0 {
		reply = strings.TrimSpace(reply[:i])
	}
	reply = strings.Trim(reply, "`'\"")

	for _, name := range r.names {
		if strings.EqualFold(reply, name) {
			return name, true
		}
	}
	return reply, false
}

// SystemPrompt generates the intent detection prompt from the definitions.
func (r *Registry) SystemPrompt() string {
	var b strings.Builder

	b.WriteString("# GitMate Intent Detection\n\n")
	b.WriteString("You are a Git intent detection system. Analyze the user's message and ")
	b.WriteString("determine which Git command they want to execute.\n\n")
	b.WriteString("## Available Intents\n\n")
	b.WriteString("Output ONLY one of these intent commands:\n\n")

	for _, name := range r.names {
		def := r.defs[name]
		fmt.Fprintf(&b, "- **%s** - %s\n", name, def.Description)
		if len(def.Examples) > 0 {
			quoted := make([]string, 0, 3)
			for _, example := range def.Examples {
				if len(quoted) == 3 {
					break
				}
				quoted = append(quoted, fmt.Sprintf("%q", example))
			}
			fmt.Fprintf(&b, "  Examples: %s\n", strings.Join(quoted, ", "))
		}
	}

	b.WriteString("\n## Instructions\n\n")
	b.WriteString("1. Analyze the user's natural language input\n")
	b.WriteString("2. Determine which Git command they want to execute\n")
	b.WriteString("3. If the input is not related to Git operations, output N/A\n")
	b.WriteString("4. Output ONLY the intent command name\n")
	b.WriteString("5. Do not output any explanation or additional text\n\n")
	b.WriteString("**IMPORTANT: Output only the command name, nothing else.**")

	return b.String()
}
