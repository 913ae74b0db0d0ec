package main

import (
	"bytes"
	"testing"

	"onboard/internal/onboarding"
	"onboard/internal/portal"
)

func TestStatusTitle(t *testing.T) {
	cases := []struct {
		status onboarding.Status
		want   string
	}{
		{onboarding.StatusRegistered, "Registered"},
		{onboarding.StatusUploadedResume, "Uploaded Resume"},
		{onboarding.StatusCompletedOnboarding, "Completed Onboarding"},
		{onboarding.Status(""), "Unknown"},
	}
	for _, tc := range cases {
		if got := statusTitle(tc.status); got != tc.want {
			t.Errorf("statusTitle(%q) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestRenderProgressMarksCurrentStep(t *testing.T) {
	var buf bytes.Buffer
	record := &portal.UserRecord{Name: "Ada Lovelace", Status: onboarding.StatusScheduledIntake}
	renderProgress(&buf, record, onboarding.Resolve(record.Status))

	out := buf.String()
	requireContains(t, out, "Onboarding progress for Ada Lovelace")
	requireContains(t, out, "→")
	requireContains(t, out, "✓")
	requireContains(t, out, "Next: Take assessment (/assessment)")
}

func TestRenderProgressUnknownStatusFallsBackToFirstStep(t *testing.T) {
	var buf bytes.Buffer
	record := &portal.UserRecord{Name: "Ada Lovelace", Status: onboarding.Status("mystery")}
	renderProgress(&buf, record, onboarding.Resolve(record.Status))

	out := buf.String()
	requireContains(t, out, "Next: upload your resume with 'onboard upload <file>'.")
}

func TestRenderProgressComplete(t *testing.T) {
	var buf bytes.Buffer
	record := &portal.UserRecord{Name: "Ada Lovelace", Status: onboarding.StatusCompletedOnboarding}
	renderProgress(&buf, record, onboarding.Resolve(record.Status))

	requireContains(t, buf.String(), "Onboarding complete.")
}

func TestRenderProgressBlankNameFallback(t *testing.T) {
	var buf bytes.Buffer
	record := &portal.UserRecord{Status: onboarding.StatusRegistered}
	renderProgress(&buf, record, onboarding.Resolve(record.Status))

	requireContains(t, buf.String(), "Onboarding progress for candidate")
}

func TestRenderUploadResult(t *testing.T) {
	var buf bytes.Buffer
	renderUploadResult(&buf, &portal.UploadResult{
		Name:          "Ada Lovelace",
		Location:      "London",
		Skills:        []string{"Go", "SQL"},
		HasEmbeddings: true,
	})

	out := buf.String()
	requireContains(t, out, "Resume processed for Ada Lovelace")
	requireContains(t, out, "Location: London")
	requireContains(t, out, "Skills: Go, SQL")
	requireContains(t, out, "Profile embeddings generated.")
}

func TestRenderUploadResultCapsSkills(t *testing.T) {
	skills := make([]string, 14)
	for i := range skills {
		skills[i] = "skill"
	}
	var buf bytes.Buffer
	renderUploadResult(&buf, &portal.UploadResult{Name: "Ada", Skills: skills})

	requireContains(t, buf.String(), "(and 4 more)")
}

func TestFormatSize(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{3 * 1024 * 1024, "3.0 MiB"},
	}
	for _, tc := range cases {
		if got := formatSize(tc.size); got != tc.want {
			t.Errorf("formatSize(%d) = %q, want %q", tc.size, got, tc.want)
		}
	}
}
