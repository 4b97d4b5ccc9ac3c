package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/anvayahealth/yogatherapy-backend/internal/repos"
	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

const diabetesSeed = `
disease:
  name: Diabetes
  description: Type 2 diabetes mellitus
modules:
  - developed_by: S-VYASA
    paper_link: https://example.org/paper
    practices:
      - english_name: Skull Shining Breath
        sanskrit_name: Kapalabhati
        category: Breathing
        kosha: Pranamaya
        code: KAP01
        rounds: 3
        citation: Hatha Yoga Pradipika 2.35
      - english_name: Cobra Pose
        sanskrit_name: Bhujangasana
        category: Yogasana
        kosha: Annamaya
contraindications:
  - practice_english: Twisted Pose
    category: Yogasana
    reason: Avoid spinal twists
rcts:
  - title: Kapalabhati and glycemic control
    year: 2019
    interventions:
      - practice: Kapalabhati
        category: Breathing
    symptoms:
      - name: HbA1c
        p_value: 0.01
`

func newSeedService(t *testing.T) (SeedService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	rctSvc := NewRCTService(env.tx, env.log,
		repos.NewRCTRepo(env.tx, env.log),
		repos.NewDiseaseRepo(env.tx, env.log),
		repos.NewPracticeRepo(env.tx, env.log),
	)
	svc := NewSeedService(env.tx, env.log,
		repos.NewDiseaseRepo(env.tx, env.log),
		repos.NewModuleRepo(env.tx, env.log),
		repos.NewPracticeRepo(env.tx, env.log),
		repos.NewCitationRepo(env.tx, env.log),
		repos.NewContraindicationRepo(env.tx, env.log),
		repos.NewRCTRepo(env.tx, env.log),
		rctSvc,
	)
	return svc, env
}

func writeSeedFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
}

func TestSeedImportDir(t *testing.T) {
	svc, env := newSeedService(t)

	dir := t.TempDir()
	writeSeedFile(t, dir, "diabetes.yaml", diabetesSeed)

	report, err := svc.ImportDir(env.ctx, dir)
	if err != nil {
		t.Fatalf("ImportDir(): %v", err)
	}
	if report.Diseases != 1 || report.Modules != 1 || report.Practices != 2 {
		t.Errorf("report = %+v, want 1 disease, 1 module, 2 practices", report)
	}
	if report.Contraindications != 1 || report.RCTs != 1 {
		t.Errorf("report = %+v, want 1 contraindication and 1 trial", report)
	}
	// Kapalabhati matches the imported trial by name.
	if report.CountsRefreshed != 1 {
		t.Errorf("counts refreshed = %d, want 1", report.CountsRefreshed)
	}

	var p types.Practice
	if err := env.tx.WithContext(env.ctx).First(&p, "code = ?", "KAP01").Error; err != nil {
		t.Fatalf("find imported practice: %v", err)
	}
	if p.RCTCount != 1 {
		t.Errorf("rct_count = %d, want 1", p.RCTCount)
	}
	if p.CitationID == nil {
		t.Error("inline citation was not created")
	}
}

func TestSeedImportDirIdempotent(t *testing.T) {
	svc, env := newSeedService(t)

	dir := t.TempDir()
	writeSeedFile(t, dir, "diabetes.yaml", diabetesSeed)

	if _, err := svc.ImportDir(env.ctx, dir); err != nil {
		t.Fatalf("first ImportDir(): %v", err)
	}
	report, err := svc.ImportDir(env.ctx, dir)
	if err != nil {
		t.Fatalf("second ImportDir(): %v", err)
	}
	if report.Diseases != 0 {
		t.Errorf("second run created %d diseases, want 0", report.Diseases)
	}
}

func TestSeedImportDirRejectsMalformedFile(t *testing.T) {
	svc, env := newSeedService(t)

	dir := t.TempDir()
	writeSeedFile(t, dir, "bad.yaml", "disease:\n  name: ''\n")

	if _, err := svc.ImportDir(env.ctx, dir); err == nil {
		t.Fatal("ImportDir() should fail on a seed file without a disease name")
	}
}
