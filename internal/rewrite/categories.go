package rewrite

// DisplayCategories is the fixed tag vocabulary the model may choose from
// when tagging a generated post.
var DisplayCategories = []string{
	"Product Updates",
	"Grants",
	"CRM",
	"Sales & Marketing",
	"Product Support",
}

// defaultSlugs maps the source site's tag identifiers to the category slugs
// used in generated frontmatter and image paths.
var defaultSlugs = map[string]string{
	"product-update":      "product-updates",
	"grant":               "grants",
	"crm":                 "crm",
	"sales-and-marketing": "sales-marketing",
	"product-support":     "product-support",
}

// DefaultSlugs returns a copy of the built-in category slug table so callers
// can extend it without mutating the package default.
func DefaultSlugs() map[string]string {
	out := make(map[string]string, len(defaultSlugs))
	for k, v := range defaultSlugs {
		out[k] = v
	}
	return out
}

// CategorySlug resolves a tag identifier against the slug table, falling
// back to the literal "General" for anything outside the known vocabulary.
func CategorySlug(slugs map[string]string, category string) string {
	if slugs == nil {
		slugs = defaultSlugs
	}
	if slug, ok := slugs[category]; ok {
		return slug
	}
	return "General"
}
