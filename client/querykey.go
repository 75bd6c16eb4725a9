package client

import "strings"

// Resource kinds. Invalidation after a mutation is coarse-grained: every key
// of the mutated kind is invalidated, not just the one entry.
const (
	KindProjects = "projects"
	KindSkills   = "skills"
	KindContact  = "contact"
)

// QueryKey addresses one cache entry: a resource kind plus whatever filter
// parameters distinguish the query, joined with "/".
type QueryKey string

// NewQueryKey builds a key from a kind and filter parts.
func NewQueryKey(kind string, parts ...string) QueryKey {
	if len(parts) == 0 {
		return QueryKey(kind)
	}
	return QueryKey(kind + "/" + strings.Join(parts, "/"))
}

// Kind returns the resource kind the key belongs to.
func (k QueryKey) Kind() string {
	key := string(k)
	if i := strings.IndexByte(key, '/'); i >= 0 {
		return key[:i]
	}
	return key
}

// Well-known keys used by the admin views.

func ProjectsKey() QueryKey {
	return NewQueryKey(KindProjects, "all")
}

func ProjectsAdminKey() QueryKey {
	return NewQueryKey(KindProjects, "admin")
}

func ProjectKey(slug string) QueryKey {
	return NewQueryKey(KindProjects, "detail", slug)
}

func SkillCategoriesKey() QueryKey {
	return NewQueryKey(KindSkills, "categories")
}

func SkillCategoriesAdminKey() QueryKey {
	return NewQueryKey(KindSkills, "admin")
}

func ContactMessagesKey(filter string) QueryKey {
	return NewQueryKey(KindContact, "messages", filter)
}

func ContactStatsKey() QueryKey {
	return NewQueryKey(KindContact, "stats")
}
