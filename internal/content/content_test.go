package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPortfolio(t *testing.T) {
	p := Default()

	wantIcons := []string{"about", "entrepreneurship", "projects", "essays", "venture", "research"}
	if len(p.Icons) != len(wantIcons) {
		t.Fatalf("expected %d icons, got %d", len(wantIcons), len(p.Icons))
	}
	for i, want := range wantIcons {
		icon := p.Icons[i]
		if icon.Content != want || icon.Kind != "finder" || icon.Action != ActionOpen {
			t.Errorf("icon %d: unexpected %+v", i, icon)
		}
	}

	projects, ok := p.Sections["projects"]
	if !ok {
		t.Fatal("projects section missing")
	}
	if projects.Key != "projects" || len(projects.Items) != 4 {
		t.Errorf("unexpected projects section %+v", projects)
	}
	if p.Sections["trash"].Empty != "Trash is empty" {
		t.Errorf("unexpected trash section %+v", p.Sections["trash"])
	}
	if len(p.Browser.Tabs) != 2 || p.Browser.Tabs[0].Title != "Feedback Form" {
		t.Errorf("unexpected browser tabs %+v", p.Browser.Tabs)
	}
	for _, app := range p.Dock {
		if strings.Contains(app.URL, "mailto:") || strings.Contains(app.URL, "sms:") {
			t.Errorf("dock app %q should not carry personal contact links", app.Name)
		}
	}
}

func TestSectionFallback(t *testing.T) {
	p := Default()

	tests := []struct {
		name          string
		key           string
		fallbackTitle string
		wantHeading   string
		wantSummary   string
	}{
		{name: "known", key: "essays", fallbackTitle: "ignored", wantHeading: "Essays & Writing"},
		{
			name: "unknown uses title", key: "podcasts", fallbackTitle: "Podcasts",
			wantHeading: "Podcasts", wantSummary: "Content for Podcasts will be displayed here.",
		},
		{
			name: "unknown without title", key: "misc",
			wantHeading: "misc", wantSummary: "Content for misc will be displayed here.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := p.Section(tt.key, tt.fallbackTitle)
			if s.Heading != tt.wantHeading {
				t.Errorf("expected heading %q, got %q", tt.wantHeading, s.Heading)
			}
			if tt.wantSummary != "" && s.Summary != tt.wantSummary {
				t.Errorf("expected summary %q, got %q", tt.wantSummary, s.Summary)
			}
		})
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	p, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Owner.Name != Default().Owner.Name {
		t.Errorf("expected default owner, got %q", p.Owner.Name)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.yaml")
	data := `
owner:
  name: Ada Lovelace
  tagline: Analyst
sections:
  podcasts:
    title: Podcasts
    items:
      - title: Episode 1
  projects:
    heading: Things I Made
    items:
      - title: Analytical Engine Notes
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Owner.Name != "Ada Lovelace" {
		t.Errorf("expected owner override, got %q", p.Owner.Name)
	}
	if _, ok := p.Sections["essays"]; !ok {
		t.Error("default sections should survive a partial file")
	}
	pod := p.Sections["podcasts"]
	if pod.Key != "podcasts" || pod.Heading != "Podcasts" {
		t.Errorf("expected new section with derived heading, got %+v", pod)
	}
	proj := p.Sections["projects"]
	if proj.Heading != "Things I Made" || len(proj.Items) != 1 || proj.Title != "projects" {
		t.Errorf("expected projects section replaced, got %+v", proj)
	}
	if len(p.Icons) != len(Default().Icons) {
		t.Error("icons should keep defaults when the file omits them")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("sections: [not, a, map"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(bad)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "failed to parse content file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSidebarSections(t *testing.T) {
	p := Default()
	p.Sidebar = append(p.Sidebar, "does-not-exist")
	got := p.SidebarSections()
	if len(got) != len(p.Sidebar)-1 {
		t.Errorf("expected unknown sidebar keys dropped, got %d", len(got))
	}
	if got[0].Key != "about" {
		t.Errorf("expected sidebar order kept, got %q first", got[0].Key)
	}
}

func TestMarshalRoundTripKeepsSections(t *testing.T) {
	p := Default()
	data, err := p.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), "Machine Learning in Healthcare") {
		t.Error("expected research items in marshalled output")
	}
}
