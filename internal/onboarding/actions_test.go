package onboarding_test

import (
	"testing"

	"onboard/internal/onboarding"
)

func TestActionTable(t *testing.T) {
	cases := []struct {
		stepIndex int
		present   bool
		kind      onboarding.ActionKind
	}{
		{0, false, ""},
		{1, true, onboarding.ActionLink},
		{2, true, onboarding.ActionLink},
		{3, true, onboarding.ActionUpload},
		{4, true, onboarding.ActionLink},
		{5, false, ""},
	}
	for _, tc := range cases {
		action, ok := onboarding.ActionFor(tc.stepIndex)
		if ok != tc.present {
			t.Fatalf("ActionFor(%d) present = %v, want %v", tc.stepIndex, ok, tc.present)
		}
		if !ok {
			continue
		}
		if action.Kind != tc.kind {
			t.Fatalf("ActionFor(%d).Kind = %s, want %s", tc.stepIndex, action.Kind, tc.kind)
		}
		if action.Label == "" {
			t.Fatalf("ActionFor(%d) has empty label", tc.stepIndex)
		}
		if action.Kind == onboarding.ActionLink && action.Target == "" {
			t.Fatalf("ActionFor(%d) link has empty target", tc.stepIndex)
		}
	}
}

func TestCompletedStatusHasNoAction(t *testing.T) {
	progress := onboarding.Resolve(onboarding.StatusCompletedOnboarding)
	if !progress.IsComplete {
		t.Fatal("expected completed_onboarding to resolve complete")
	}
	if _, ok := onboarding.ActionFor(progress.StepIndex); ok {
		t.Fatal("expected no action descriptor for the final step")
	}
}
