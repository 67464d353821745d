package graph

import "strings"

// PropString returns the named property as a string. Missing keys and
// non-string values report ok=false, never an error; filter predicates
// rely on that to treat absent fields as non-matching.
func PropString(n Node, key string) (string, bool) {
	if n.Properties == nil {
		return "", false
	}
	v, ok := n.Properties[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// PropMap returns the named property as a string-keyed map.
func PropMap(n Node, key string) (map[string]any, bool) {
	if n.Properties == nil {
		return nil, false
	}
	v, ok := n.Properties[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// Tags extracts the node's tag set. Two representations occur in the
// wild: a keyed map ({"env": "prod"} yields tags "env" and "env:prod")
// and a comma-separated string ("env,prod"). Anything else degrades to
// no tags.
func Tags(n Node) []string {
	if n.Properties == nil {
		return nil
	}
	raw, ok := n.Properties["tags"]
	if !ok {
		return nil
	}

	switch t := raw.(type) {
	case map[string]any:
		tags := make([]string, 0, len(t)*2)
		for k, v := range t {
			tags = append(tags, k)
			if s, ok := v.(string); ok && s != "" {
				tags = append(tags, k+":"+s)
			}
		}
		return tags
	case string:
		if t == "" {
			return nil
		}
		parts := strings.Split(t, ",")
		tags := parts[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				tags = append(tags, p)
			}
		}
		return tags
	default:
		return nil
	}
}
