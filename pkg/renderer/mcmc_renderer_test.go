package renderer

import (
	"testing"

	"github.com/kjhall/pathlight/pkg/config"
	"github.com/kjhall/pathlight/pkg/scene"
)

func mcmcConfig() config.Config {
	cfg := config.Default()
	cfg.MutationStrength = 0.5
	return cfg
}

func TestMCMCRenderer_ValidateConfigRequiresMutationStrength(t *testing.T) {
	s := scene.NewSingleLightScene(8, 8)
	if err := s.Preprocess(); err != nil {
		t.Fatal(err)
	}
	r := NewMCMCRenderer(s, config.Default(), nil)
	if err := r.ValidateConfig(); err == nil {
		t.Error("expected an error when mutation_strength is unset")
	}
}

func TestMCMCRenderer_RenderStageRunsPhase1ThenProducesSamples(t *testing.T) {
	s := scene.NewSingleLightScene(8, 8)
	if err := s.Preprocess(); err != nil {
		t.Fatal(err)
	}
	r := NewMCMCRenderer(s, mcmcConfig(), nil)
	if r.phase1Done {
		t.Fatal("phase 1 should not have run yet")
	}
	r.RenderStage()
	if !r.phase1Done {
		t.Error("expected phase 1 to complete during the first RenderStage call")
	}
	if r.sampleCount != float64(8*8) {
		t.Errorf("expected sampleCount = 64 after one stage, got %v", r.sampleCount)
	}
}

func TestMCMCRenderer_SampleCountAccumulatesAcrossStages(t *testing.T) {
	s := scene.NewSingleLightScene(4, 4)
	if err := s.Preprocess(); err != nil {
		t.Fatal(err)
	}
	r := NewMCMCRenderer(s, mcmcConfig(), nil)
	r.RenderStage()
	r.RenderStage()
	if r.sampleCount != float64(2*4*4) {
		t.Errorf("expected sampleCount = 32 after two stages, got %v", r.sampleCount)
	}
}

func TestMCMCRenderer_OutputHasNoNegativeLuminance(t *testing.T) {
	s := scene.NewSingleLightScene(4, 4)
	if err := s.Preprocess(); err != nil {
		t.Fatal(err)
	}
	r := NewMCMCRenderer(s, mcmcConfig(), nil)
	r.RenderStage()
	for _, c := range r.Output() {
		if c.Luminance() < 0 {
			t.Errorf("luminance should never be negative, got %v", c)
		}
	}
}
