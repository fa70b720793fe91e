package csscompile

import "strings"

var propertyPrefixes = map[string][]string{
	"user-select":           {"-webkit-", "-moz-", "-ms-"},
	"appearance":            {"-webkit-", "-moz-"},
	"backface-visibility":   {"-webkit-"},
	"text-size-adjust":      {"-webkit-", "-moz-", "-ms-"},
	"hyphens":               {"-webkit-", "-moz-", "-ms-"},
	"mask":                  {"-webkit-"},
	"mask-image":            {"-webkit-"},
	"clip-path":             {"-webkit-"},
	"backdrop-filter":       {"-webkit-"},
	"box-decoration-break":  {"-webkit-"},
	"tab-size":              {"-moz-"},
	"font-feature-settings": {"-webkit-"},
	"transform":             {"-webkit-", "-ms-"},
	"transition":            {"-webkit-"},
	"animation":             {"-webkit-"},
	"flex":                  {"-webkit-", "-ms-"},
	"flex-direction":        {"-webkit-", "-ms-"},
	"flex-wrap":             {"-webkit-", "-ms-"},
	"flex-grow":             {"-webkit-"},
	"flex-shrink":           {"-webkit-"},
	"flex-basis":            {"-webkit-"},
	"order":                 {"-webkit-"},
}

var valuePrefixes = map[string]map[string][]string{
	"display": {
		"flex":        {"-webkit-box", "-webkit-flex", "-ms-flexbox"},
		"inline-flex": {"-webkit-inline-box", "-webkit-inline-flex", "-ms-inline-flexbox"},
	},
	"position": {
		"sticky": {"-webkit-sticky"},
	},
}

var sizingProperties = map[string]bool{
	"width": true, "min-width": true, "max-width": true,
	"height": true, "min-height": true, "max-height": true,
}

var sizingValues = map[string]bool{
	"fit-content": true, "max-content": true, "min-content": true,
}

// prefixed returns the vendor-prefixed declarations that precede d.
func prefixed(d declaration) []declaration {
	prop := strings.ToLower(d.Property)
	value := strings.ToLower(d.Value)

	var out []declaration
	for _, p := range propertyPrefixes[prop] {
		out = append(out, declaration{Property: p + d.Property, Value: d.Value})
	}
	for _, v := range valuePrefixes[prop][value] {
		out = append(out, declaration{Property: d.Property, Value: v})
	}
	if sizingProperties[prop] && sizingValues[value] {
		out = append(out,
			declaration{Property: d.Property, Value: "-webkit-" + d.Value},
			declaration{Property: d.Property, Value: "-moz-" + d.Value})
	}
	return out
}
