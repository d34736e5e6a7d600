package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	s := String()
	for _, want := range []string{"version: ", "commit: ", "built: "} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestCacheScope(t *testing.T) {
	scope := CacheScope()
	if !strings.HasSuffix(scope, ":") {
		t.Errorf("CacheScope() = %q, want trailing colon", scope)
	}
	if scope == ":" {
		t.Error("CacheScope() is empty")
	}
	if CacheScope() != scope {
		t.Error("CacheScope() is not stable")
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version "+Current()) {
		t.Errorf("Template() = %q", Template())
	}
}
