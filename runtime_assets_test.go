package publishing

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-publishing/pkg/settings"
)

func TestRuntimeAssetsFSContainsSettingsScript(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), RuntimeScript)
	if err != nil {
		t.Fatalf("expected runtime script to be readable: %v", err)
	}
	if !strings.Contains(string(data), settings.LocalizationObject) {
		t.Fatalf("expected runtime script to read %s", settings.LocalizationObject)
	}
	for key := range settings.Localization().Data {
		if key == "option_field_id_categories" {
			continue
		}
		if !strings.Contains(string(data), key) {
			t.Fatalf("expected runtime script to reference %q", key)
		}
	}
}

func TestEmbeddedTemplatesContainsPage(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "page.tmpl"); err != nil {
		t.Fatalf("expected page template: %v", err)
	}
}
