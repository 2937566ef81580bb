// Package categories contains the fixed category registry.
package categories

// OtherKey is the designated catch-all key for free-text categories.
const OtherKey = "others"

// Category ...
type Category struct {
	Label string
	Color string
}

// Registry is the fixed enumeration of post categories exposed to clients.
var Registry = map[string]Category{
	"political":     {Label: "Political", Color: "#E63946"},
	"education":     {Label: "Educational/Philosophical", Color: "#457B9D"},
	"entertainment": {Label: "Entertainment", Color: "#9B5DE5"},
	"religious":     {Label: "Religious", Color: "#2A9D8F"},
	"sports":        {Label: "Sports", Color: "#FFA500"},
	"public":        {Label: "Public Information", Color: "#264653"},
	"development":   {Label: "Development/Socioeconomic", Color: "#E9C46A"},
	"personal":      {Label: "Personal/Warm Touch", Color: "#FF99C8"},
	"health":        {Label: "Health", Color: "#06D6A0"},
	OtherKey:        {Label: "Others", Color: "#8D99AE"},
}

// IsKnown reports whether key is a member of the registry.
func IsKnown(key string) bool {
	_, ok := Registry[key]
	return ok
}
