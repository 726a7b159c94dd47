package nav

import (
	"context"
	"regexp"
	"strings"
)

// Crumb is one entry in a breadcrumb trail. The last crumb carries no href.
type Crumb struct {
	Label string `json:"label"`
	Href  string `json:"href,omitempty"`
}

// LookupFunc resolves an entity id to a display name.
type LookupFunc func(ctx context.Context, id string) (string, bool)

// Resolver maps panel paths to breadcrumb trails. Known path segments get
// fixed labels; id-shaped segments are resolved to entity names through
// the lookup registered for their section.
type Resolver struct {
	labels  map[string]string
	lookups map[string]LookupFunc
}

func NewResolver() *Resolver {
	return &Resolver{
		labels: map[string]string{
			"dashboard": "Dashboard",
			"products":  "Products",
			"users":     "Users",
			"orders":    "Orders",
			"cart":      "Cart",
			"new":       "New",
			"edit":      "Edit",
			"settings":  "Settings",
		},
		lookups: make(map[string]LookupFunc),
	}
}

// RegisterLookup wires a name lookup for id segments under a section
// (e.g. "products").
func (res *Resolver) RegisterLookup(section string, fn LookupFunc) {
	res.lookups[section] = fn
}

var (
	hexIDPattern      = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
	prefixedIDPattern = regexp.MustCompile(`^[puo][A-Za-z0-9_]{10,}$`)
)

// looksLikeEntityID separates generated ids from ordinary path words. Plain
// lowercase words ("categories") are never ids; generated ids carry a known
// prefix and mix in digits or uppercase letters.
func looksLikeEntityID(segment string) bool {
	if hexIDPattern.MatchString(segment) {
		return true
	}
	if !prefixedIDPattern.MatchString(segment) {
		return false
	}
	return strings.ContainsAny(segment, "0123456789") || strings.ToLower(segment) != segment
}

// Resolve splits the path and builds the trail. Crumbs link to their path
// prefix except the last one and id segments; unresolvable ids fall back
// to a shortened form.
func (res *Resolver) Resolve(ctx context.Context, path string) []Crumb {
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })

	crumbs := []Crumb{{Label: "Home", Href: "/"}}

	section := ""
	for i, segment := range segments {
		last := i == len(segments)-1
		href := "/" + strings.Join(segments[:i+1], "/")

		if label, ok := res.labels[segment]; ok {
			crumb := Crumb{Label: label}
			if !last {
				crumb.Href = href
			}
			crumbs = append(crumbs, crumb)
			section = segment
			continue
		}

		if looksLikeEntityID(segment) {
			crumbs = append(crumbs, Crumb{Label: res.entityLabel(ctx, section, segment)})
			continue
		}

		crumb := Crumb{Label: segment}
		if !last {
			crumb.Href = href
		}
		crumbs = append(crumbs, crumb)
	}

	return crumbs
}

func (res *Resolver) entityLabel(ctx context.Context, section, id string) string {
	if fn, ok := res.lookups[section]; ok {
		if name, found := fn(ctx, id); found {
			return name
		}
	}
	if len(id) > 8 {
		return id[:8] + "..."
	}
	return id
}
