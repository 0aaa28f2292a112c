package buildinfo

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	t.Cleanup(func() { Version = old })

	if got := Get(); got.Version != "v9.9.9" || got.Commit != Commit {
		t.Errorf("Get() = %+v", got)
	}
	if !strings.Contains(String(), "v9.9.9") || !strings.Contains(Template(), "v9.9.9") {
		t.Error("String/Template missing version")
	}
}
