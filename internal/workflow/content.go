package workflow

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/campaignforge/backend/internal/gen"
	"github.com/campaignforge/backend/internal/models"
)

var contentContract = gen.Contract{
	Required: map[string]gen.Kind{
		"headline":       gen.KindString,
		"body":           gen.KindString,
		"call_to_action": gen.KindString,
	},
	Optional: map[string]gen.Kind{
		"subject_line": gen.KindString,
		"hashtags":     gen.KindStringList,
		"keywords":     gen.KindStringList,
		"tone":         gen.KindString,
	},
}

var visualDescriptorContract = gen.Contract{
	Required: map[string]gen.Kind{
		"image_prompt": gen.KindString,
	},
}

// generateContent fans out one copy request per platform. Every platform
// must yield an asset; a single failure fails the stage.
func (o *Orchestrator) generateContent(ctx context.Context, c *models.Campaign, analysis *models.BrandAnalysis) ([]models.ContentAsset, error) {
	assets := make([]models.ContentAsset, len(c.Platforms))

	g, gctx := errgroup.WithContext(ctx)
	for i, platform := range c.Platforms {
		i, platform := i, platform
		g.Go(func() error {
			raw, err := o.generator.GenerateStructured(gctx, systemCreativeEngine, contentPrompt(c, analysis, platform), contentSchema())
			if err != nil {
				return &gen.GenerationError{Stage: "content_" + platform, Err: err}
			}
			obj, err := gen.SanitizeObject("content_"+platform, raw, contentContract)
			if err != nil {
				return err
			}
			// The brand keyword list backstops copy the model returned
			// without keywords of its own.
			keywords := gen.AsStringList(obj, "keywords")
			if len(keywords) == 0 {
				keywords = analysis.Profile.BrandKeywords
			}
			assets[i] = models.ContentAsset{
				Platform:     platform,
				ContentType:  models.ContentTypeFor(platform),
				Headline:     gen.AsString(obj, "headline"),
				Body:         gen.AsString(obj, "body"),
				CallToAction: gen.AsString(obj, "call_to_action"),
				SubjectLine:  gen.AsString(obj, "subject_line"),
				Hashtags:     gen.AsStringList(obj, "hashtags"),
				Keywords:     keywords,
				Tone:         gen.AsString(obj, "tone"),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	got := make(map[string]bool, len(assets))
	for _, a := range assets {
		got[a.Platform] = true
	}
	for _, p := range c.Platforms {
		if !got[p] {
			return nil, fmt.Errorf("no content produced for platform %s", p)
		}
	}

	return assets, nil
}

// generateVisuals renders one image per visual platform. Best-effort: a
// failed descriptor or render is logged and the asset omitted.
func (o *Orchestrator) generateVisuals(ctx context.Context, analysis *models.BrandAnalysis, assets []models.ContentAsset) []models.VisualAsset {
	var mu sync.Mutex
	var visuals []models.VisualAsset
	var wg sync.WaitGroup

	for _, asset := range assets {
		if !models.PlatformWantsVisual(asset.Platform) {
			continue
		}
		wg.Add(1)
		go func(asset models.ContentAsset) {
			defer wg.Done()

			v, err := o.renderVisual(ctx, analysis, asset)
			if err != nil {
				o.log.Warn("visual generation skipped",
					zap.String("platform", asset.Platform),
					zap.Error(err))
				return
			}
			mu.Lock()
			visuals = append(visuals, *v)
			mu.Unlock()
		}(asset)
	}
	wg.Wait()

	return visuals
}

func (o *Orchestrator) renderVisual(ctx context.Context, analysis *models.BrandAnalysis, asset models.ContentAsset) (*models.VisualAsset, error) {
	raw, err := o.generator.GenerateStructured(ctx, systemCreativeEngine, visualDescriptorPrompt(analysis, asset), visualDescriptorSchema())
	if err != nil {
		return nil, err
	}
	obj, err := gen.SanitizeObject("visual_"+asset.Platform, raw, visualDescriptorContract)
	if err != nil {
		return nil, err
	}
	prompt := gen.AsString(obj, "image_prompt")

	ref, err := o.generator.GenerateImage(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &models.VisualAsset{
		Platform:    asset.Platform,
		Description: prompt,
		ImageRef:    ref,
	}, nil
}
