package browser

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// modalDismissSelectors are probed in order; the first match is clicked.
var modalDismissSelectors = []string{
	"button[aria-label=Dismiss]",
	".artdeco-modal__dismiss",
	".msg-overlay-bubble-header__control--new-convo-btn ~ button",
	"button[data-test-modal-close-btn]",
}

// expandSelectors match "see more" affordances on profile sections.
var expandSelectors = []string{
	"button.inline-show-more-text__button",
	"button[aria-expanded=false].inline-show-more-text__button",
	".pv-profile-section__see-more-inline",
}

// bestEffortStep is an operation whose failure is logged but never aborts
// the enclosing workflow.
type bestEffortStep struct {
	name string
	run  func() error
}

// runBestEffort executes steps in order, swallowing per-step failures.
// It stops early only when the context is done.
func runBestEffort(ctx context.Context, steps []bestEffortStep) {
	for _, step := range steps {
		if ctx.Err() != nil {
			slog.Debug("best-effort sequence cut short", "step", step.name, "error", ctx.Err())
			return
		}
		if err := step.run(); err != nil {
			slog.Debug("best-effort step failed", "step", step.name, "error", err)
		}
	}
}

// ExpandContent makes as much of the profile visible as possible before
// capture: dismiss any modal overlay, scroll until lazy-loaded content stops
// growing the page, return to the top, and expand collapsed sections.
// Nothing here can fail the workflow.
func (s *Session) ExpandContent(ctx context.Context) {
	p := s.page.Context(ctx)

	runBestEffort(ctx, []bestEffortStep{
		{"dismiss_modal", func() error { return dismissModal(p) }},
		{"scroll_to_load", func() error { return s.scrollToLoad(ctx, p) }},
		{"scroll_to_top", func() error { return scrollToTop(p) }},
		{"expand_sections", func() error { return s.expandSections(p) }},
	})
}

// dismissModal clicks the first matching dismissal control, if any.
func dismissModal(p *rod.Page) error {
	for _, sel := range modalDismissSelectors {
		el, err := p.Timeout(2 * time.Second).Element(sel)
		if err != nil {
			continue
		}
		return el.Click(proto.InputMouseButtonLeft, 1)
	}
	return nil // no modal present
}

// scrollToLoad scrolls to the bottom repeatedly until the page height stops
// growing or the round cap is reached.
func (s *Session) scrollToLoad(ctx context.Context, p *rod.Page) error {
	prevHeight := -1
	for round := 0; round < s.captureCfg.ScrollMaxRounds; round++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if _, err := p.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
			return err
		}

		// Give lazy loaders a beat to fire.
		select {
		case <-time.After(700 * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}

		res, err := p.Eval(`() => document.body.scrollHeight`)
		if err != nil {
			return err
		}
		height := res.Value.Int()
		if heightStabilized(prevHeight, height) {
			slog.Debug("page height stabilised", "rounds", round+1, "height", height)
			return nil
		}
		prevHeight = height
	}
	return nil
}

// heightStabilized reports whether two consecutive height samples indicate
// the page has stopped loading content.
func heightStabilized(prev, cur int) bool {
	return prev >= 0 && cur == prev
}

func scrollToTop(p *rod.Page) error {
	_, err := p.Eval(`() => window.scrollTo(0, 0)`)
	return err
}

// expandSections clicks up to ExpandMaxClicks "see more" affordances.
// Individual click failures are skipped; a section that refuses to expand is
// still in the screenshot, just collapsed.
func (s *Session) expandSections(p *rod.Page) error {
	clicks := 0
	for _, sel := range expandSelectors {
		els, err := p.Elements(sel)
		if err != nil {
			continue
		}
		for _, el := range els {
			if clicks >= s.captureCfg.ExpandMaxClicks {
				return nil
			}
			if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
				slog.Debug("expand click failed", "selector", sel, "error", err)
				continue
			}
			clicks++
			time.Sleep(200 * time.Millisecond)
		}
	}
	slog.Debug("expanded collapsed sections", "clicks", clicks)
	return nil
}
