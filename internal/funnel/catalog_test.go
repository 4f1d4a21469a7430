package funnel_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/relata/relata/internal/funnel"
)

func TestDefaultCatalog(t *testing.T) {
	c := funnel.Default()

	for _, pt := range []string{"prospect", "client", "collaborator", "institution"} {
		if len(c.Stages(pt)) == 0 {
			t.Errorf("expected stages for pipeline %q", pt)
		}
	}

	if !c.ValidStage("prospect", "contract-signed") {
		t.Error("contract-signed should be a prospect stage")
	}
	if c.ValidStage("prospect", "kickoff") {
		t.Error("kickoff is a client stage, not a prospect stage")
	}
	if c.ValidStage("nonexistent", "interest") {
		t.Error("unknown pipeline type should have no valid stages")
	}
}

func TestDefaultTrigger(t *testing.T) {
	c := funnel.Default()

	to, ok := c.Trigger("prospect", "contract-signed")
	if !ok {
		t.Fatal("expected trigger for prospect/contract-signed")
	}
	if to.Pipeline != "client" || to.Stage != "kickoff" {
		t.Errorf("trigger target = %s/%s, want client/kickoff", to.Pipeline, to.Stage)
	}

	if _, ok := c.Trigger("client", "renewal"); ok {
		t.Error("client/renewal should not match any rule")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "funnels.yaml")
	cfg := `
pipelines:
  - type: lead
    stages: [new, won]
  - type: member
    stages: [onboarding, active]
triggers:
  - from: {pipeline: lead, stage: won}
    to: {pipeline: member, stage: onboarding}
`
	if err := os.WriteFile(path, []byte(cfg), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := funnel.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	to, ok := c.Trigger("lead", "won")
	if !ok || to.Pipeline != "member" || to.Stage != "onboarding" {
		t.Errorf("trigger = %+v ok=%v, want member/onboarding", to, ok)
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	c, err := funnel.Load("")
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	if _, ok := c.Trigger("prospect", "contract-signed"); !ok {
		t.Error("default catalog should carry the prospect conversion rule")
	}
}

func TestParseRejectsUnknownTriggerStage(t *testing.T) {
	cases := map[string]string{
		"unknown source": `
pipelines:
  - type: lead
    stages: [new]
triggers:
  - from: {pipeline: lead, stage: bogus}
    to: {pipeline: lead, stage: new}
`,
		"unknown target": `
pipelines:
  - type: lead
    stages: [new]
triggers:
  - from: {pipeline: lead, stage: new}
    to: {pipeline: member, stage: active}
`,
		"no pipelines": `
triggers: []
`,
		"duplicate pipeline": `
pipelines:
  - type: lead
    stages: [new]
  - type: lead
    stages: [old]
`,
	}

	for name, cfg := range cases {
		if _, err := funnel.Parse([]byte(cfg)); err == nil {
			t.Errorf("%s: expected parse error", name)
		}
	}
}
