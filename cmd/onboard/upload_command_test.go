package main

import (
	"path/filepath"
	"testing"

	"onboard/internal/onboarding"
	"onboard/internal/testsupport"
	"onboard/internal/upload"
)

func TestUploadAdvancesOnboarding(t *testing.T) {
	env := setupCLITestEnv(t)
	mustLogin(t, env)

	resume := writeResumeFile(t, "resume.pdf")
	out, _, err := runCLI(t, env, "upload", resume)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	requireContains(t, out, "Resume processed for Ada Lovelace")
	requireContains(t, out, "Skills: Go, SQL")
	requireContains(t, out, "Profile embeddings generated.")
	requireContains(t, out, "Uploaded Resume")

	if env.portal.uploads != 1 {
		t.Fatalf("uploads = %d, want 1", env.portal.uploads)
	}
	if got := env.portal.user.Status; got != onboarding.StatusUploadedResume {
		t.Fatalf("status = %q, want %q", got, onboarding.StatusUploadedResume)
	}

	journal := testsupport.MustOpenStore(t, env.cfg)
	attempts, err := journal.Recent(t.Context(), 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("attempts = %d, want 1", len(attempts))
	}
	if attempts[0].State != upload.StateSucceeded {
		t.Fatalf("attempt state = %q, want succeeded", attempts[0].State)
	}
	if !attempts[0].HasEmbeddings {
		t.Fatal("expected attempt to record embeddings")
	}
}

func TestReuploadAtLaterMilestoneDoesNotRegress(t *testing.T) {
	env := setupCLITestEnv(t)
	env.portal.user.Status = onboarding.StatusScheduledIntake
	mustLogin(t, env)

	resume := writeResumeFile(t, "revised.pdf")
	out, _, err := runCLI(t, env, "upload", resume)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	requireContains(t, out, "Resume processed for Ada Lovelace")

	if env.portal.uploads != 1 {
		t.Fatalf("uploads = %d, want 1", env.portal.uploads)
	}
	// The record is already past uploaded_resume; no transition may be
	// requested, only a refresh.
	if env.portal.statusUpdates != 0 {
		t.Fatalf("statusUpdates = %d, want 0", env.portal.statusUpdates)
	}
	if got := env.portal.user.Status; got != onboarding.StatusScheduledIntake {
		t.Fatalf("status = %q, want %q", got, onboarding.StatusScheduledIntake)
	}
	requireContains(t, out, "Scheduled Intake")
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	env := setupCLITestEnv(t)
	mustLogin(t, env)

	resume := writeResumeFile(t, "resume.txt")
	_, _, err := runCLI(t, env, "upload", resume)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if env.portal.uploads != 0 {
		t.Fatalf("uploads = %d, want 0 for rejected file", env.portal.uploads)
	}
}

func TestUploadFailureKeepsSelectionGuidance(t *testing.T) {
	env := setupCLITestEnv(t)
	env.portal.failUpload = true
	mustLogin(t, env)

	resume := writeResumeFile(t, "resume.pdf")
	out, _, err := runCLI(t, env, "upload", resume)
	if err == nil {
		t.Fatal("expected upload failure")
	}
	requireContains(t, out, "Upload failed: Could not parse the resume")
	requireContains(t, out, "try again")

	journal := testsupport.MustOpenStore(t, env.cfg)
	attempts, err := journal.Recent(t.Context(), 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(attempts) != 1 || attempts[0].State != upload.StateFailed {
		t.Fatalf("attempts = %+v, want one failed attempt", attempts)
	}
	if attempts[0].FailureReason != "Could not parse the resume" {
		t.Fatalf("failure reason = %q", attempts[0].FailureReason)
	}
}

func TestUploadStatusSyncFailureWarnsAgainstReupload(t *testing.T) {
	env := setupCLITestEnv(t)
	env.portal.failStatusUpdate = true
	mustLogin(t, env)

	resume := writeResumeFile(t, "resume.pdf")
	out, _, err := runCLI(t, env, "upload", resume)
	if err == nil {
		t.Fatal("expected sync failure to surface as an error")
	}
	// The upload itself landed; the user must not be told to redo it.
	if env.portal.uploads != 1 {
		t.Fatalf("uploads = %d, want 1", env.portal.uploads)
	}
	requireContains(t, out, "resume was uploaded")
	requireContains(t, out, "Do not upload the file again")
}

func TestUploadRequiresLogin(t *testing.T) {
	env := setupCLITestEnv(t)

	resume := writeResumeFile(t, "resume.pdf")
	_, _, err := runCLI(t, env, "upload", resume)
	if err == nil {
		t.Fatal("expected upload to require a session")
	}
	requireContains(t, err.Error(), "not logged in")
}

func TestUploadMissingFile(t *testing.T) {
	env := setupCLITestEnv(t)
	mustLogin(t, env)

	_, _, err := runCLI(t, env, "upload", filepath.Join(t.TempDir(), "missing.pdf"))
	if err == nil {
		t.Fatal("expected missing file to fail")
	}
	if env.portal.uploads != 0 {
		t.Fatalf("uploads = %d, want 0", env.portal.uploads)
	}
}

func TestUploadRecordsSnapshot(t *testing.T) {
	env := setupCLITestEnv(t)
	mustLogin(t, env)

	resume := writeResumeFile(t, "resume.pdf")
	if _, _, err := runCLI(t, env, "upload", resume); err != nil {
		t.Fatalf("upload: %v", err)
	}

	journal := testsupport.MustOpenStore(t, env.cfg)
	record, _, err := journal.Snapshot(t.Context())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if record == nil || record.Status != onboarding.StatusUploadedResume {
		t.Fatalf("snapshot = %+v, want uploaded_resume", record)
	}
}
