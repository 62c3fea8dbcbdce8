package pkg

import (
	"regexp"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "sngc" {
		t.Errorf("Expected Name to be %q, got %q", "sngc", Name)
	}
}

func TestVersion(t *testing.T) {
	semver := regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)
	if !semver.MatchString(Version) {
		t.Errorf("Expected Version to be a semantic version, got %q", Version)
	}

	if Version == version {
		t.Errorf("Expected Version %q to be trimmed of surrounding space", Version)
	}
}

func TestAuthor(t *testing.T) {
	if len(Author) == 0 {
		t.Error("Expected Author to have at least one entry")
	}

	for i, a := range Author {
		if a.Name == "" || a.Email == "" {
			t.Errorf("Author[%d] is incomplete: %+v", i, a)
		}
	}
}
