package advisor

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const enhancementsSchemaURL = "https://exitplan.local/schemas/enhancements.schema.json"

//go:embed schema/enhancements.schema.json
var enhancementsSchemaJSON string

var enhancementsSchema = compileEnhancementsSchema()

func compileEnhancementsSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(enhancementsSchemaURL, strings.NewReader(enhancementsSchemaJSON)); err != nil {
		panic(fmt.Sprintf("advisor: load enhancements schema: %v", err))
	}
	return c.MustCompile(enhancementsSchemaURL)
}

// ParseEnhancements decodes the provider content string into an ordered list of
// enhancements. Null entries decode to empty enhancements.
func ParseEnhancements(content string) ([]Enhancement, error) {
	raw := stripCodeFence(content)
	if raw == "" {
		return nil, newFailure(KindDecode, fmt.Errorf("empty content"))
	}

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, newFailure(KindDecode, fmt.Errorf("content is not json: %w", err))
	}
	if err := enhancementsSchema.Validate(doc); err != nil {
		return nil, newFailure(KindDecode, fmt.Errorf("content schema: %w", err))
	}

	var items []*Enhancement
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, newFailure(KindDecode, fmt.Errorf("content decode: %w", err))
	}
	out := make([]Enhancement, len(items))
	for i, item := range items {
		if item != nil {
			out[i] = *item
		}
	}
	return out, nil
}

// stripCodeFence removes a surrounding markdown fence some models add despite
// being asked not to. An optional language tag after the opening fence is
// dropped, on its own line or run together with the payload.
func stripCodeFence(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	tag := 0
	for tag < len(s) && isFenceTagByte(s[tag]) {
		tag++
	}
	if tag == len(s) || strings.IndexByte(" \t\r\n[{", s[tag]) >= 0 {
		s = s[tag:]
	}
	return strings.TrimSpace(s)
}

func isFenceTagByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '-' || b == '_' || b == '+'
}
