package main

import (
	"regexp"
	"strings"
)

var createPattern = regexp.MustCompile(`(?i)^CREATE\s+(?:UNIQUE\s+)?(?:NULL_FILTERED\s+)?(TABLE|INDEX)\s+` + "`?" + `(\w+)`)

// splitDDLStatements strips comment lines and splits on semicolons.
func splitDDLStatements(content string) []string {
	lines := strings.Split(content, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}

// createdObject returns "table:name" or "index:name" for CREATE statements.
func createdObject(stmt string) (string, bool) {
	m := createPattern.FindStringSubmatch(stmt)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1]) + ":" + strings.ToLower(m[2]), true
}

func existingObjects(statements []string) map[string]struct{} {
	objects := make(map[string]struct{}, len(statements))
	for _, stmt := range statements {
		if obj, ok := createdObject(stmt); ok {
			objects[obj] = struct{}{}
		}
	}
	return objects
}

// pendingStatements drops CREATE statements for objects that already exist.
// Other statements are always kept.
func pendingStatements(statements []string, existing map[string]struct{}) []string {
	var pending []string
	for _, stmt := range statements {
		if obj, ok := createdObject(stmt); ok {
			if _, found := existing[obj]; found {
				continue
			}
		}
		pending = append(pending, stmt)
	}
	return pending
}
