package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/repos"
	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

type SeedService interface {
	ImportDir(ctx context.Context, dir string) (*SeedReport, error)
}

// SeedReport counts what one import run created.
type SeedReport struct {
	Files             int `json:"files"`
	Diseases          int `json:"diseases"`
	Modules           int `json:"modules"`
	Practices         int `json:"practices"`
	Contraindications int `json:"contraindications"`
	RCTs              int `json:"rcts"`
	CountsRefreshed   int `json:"counts_refreshed"`
}

// Seed file shapes. One YAML file per disease: the disease, its modules with
// their practices, and the contraindications and trials linked to it.
type seedFile struct {
	Disease           seedDisease            `yaml:"disease"`
	Modules           []seedModule           `yaml:"modules"`
	Contraindications []seedContraindication `yaml:"contraindications"`
	RCTs              []seedRCT              `yaml:"rcts"`
}

type seedDisease struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type seedModule struct {
	DevelopedBy string         `yaml:"developed_by"`
	PaperLink   string         `yaml:"paper_link"`
	Description string         `yaml:"description"`
	Practices   []seedPractice `yaml:"practices"`
}

type seedPractice struct {
	SanskritName         string   `yaml:"sanskrit_name"`
	EnglishName          string   `yaml:"english_name"`
	Category             string   `yaml:"category"`
	SubCategory          string   `yaml:"sub_category"`
	Kosha                string   `yaml:"kosha"`
	Code                 string   `yaml:"code"`
	Rounds               int      `yaml:"rounds"`
	TimeMinutes          float64  `yaml:"time_minutes"`
	StrokesPerMin        int      `yaml:"strokes_per_min"`
	StrokesPerCycle      int      `yaml:"strokes_per_cycle"`
	RestBetweenCyclesSec int      `yaml:"rest_between_cycles_sec"`
	Variations           []string `yaml:"variations"`
	Steps                []string `yaml:"steps"`
	Description          string   `yaml:"description"`
	HowToDo              string   `yaml:"how_to_do"`
	CVRScore             float64  `yaml:"cvr_score"`
	PhotoPath            string   `yaml:"photo_path"`
	VideoPath            string   `yaml:"video_path"`
	Citation             string   `yaml:"citation"`
}

type seedContraindication struct {
	PracticeEnglish  string `yaml:"practice_english"`
	PracticeSanskrit string `yaml:"practice_sanskrit"`
	Category         string `yaml:"category"`
	SubCategory      string `yaml:"sub_category"`
	Reason           string `yaml:"reason"`
	Source           string `yaml:"source"`
}

type seedRCT struct {
	Title         string `yaml:"title"`
	Authors       string `yaml:"authors"`
	Journal       string `yaml:"journal"`
	Year          int    `yaml:"year"`
	URL           string `yaml:"url"`
	Interventions []struct {
		Practice string `yaml:"practice"`
		Category string `yaml:"category"`
	} `yaml:"interventions"`
	Symptoms []struct {
		Name   string  `yaml:"name"`
		PValue float64 `yaml:"p_value"`
	} `yaml:"symptoms"`
}

type seedService struct {
	db                   *gorm.DB
	log                  *logger.Logger
	diseaseRepo          repos.DiseaseRepo
	moduleRepo           repos.ModuleRepo
	practiceRepo         repos.PracticeRepo
	citationRepo         repos.CitationRepo
	contraindicationRepo repos.ContraindicationRepo
	rctRepo              repos.RCTRepo
	rctService           RCTService
}

func NewSeedService(
	db *gorm.DB,
	baseLog *logger.Logger,
	diseaseRepo repos.DiseaseRepo,
	moduleRepo repos.ModuleRepo,
	practiceRepo repos.PracticeRepo,
	citationRepo repos.CitationRepo,
	contraindicationRepo repos.ContraindicationRepo,
	rctRepo repos.RCTRepo,
	rctService RCTService,
) SeedService {
	return &seedService{
		db:                   db,
		log:                  baseLog.With("service", "SeedService"),
		diseaseRepo:          diseaseRepo,
		moduleRepo:           moduleRepo,
		practiceRepo:         practiceRepo,
		citationRepo:         citationRepo,
		contraindicationRepo: contraindicationRepo,
		rctRepo:              rctRepo,
		rctService:           rctService,
	}
}

// ImportDir parses every *.yaml file under dir concurrently, then imports the
// lot in a single transaction so a malformed file never leaves a half-seeded
// catalog. Already-present diseases (matched case-insensitively by name) are
// skipped, so re-running an import is safe.
func (s *seedService) ImportDir(ctx context.Context, dir string) (*SeedReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read seed dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no yaml seed files in %s", ErrInvalidInput, dir)
	}
	sort.Strings(paths)

	files := make([]*seedFile, len(paths))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			parsed, err := parseSeedFile(path)
			if err != nil {
				return err
			}
			mu.Lock()
			files[i] = parsed
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &SeedReport{Files: len(files)}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, f := range files {
			if err := s.importFile(ctx, tx, f, report); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	refreshed, err := s.rctService.RefreshRCTCounts(ctx)
	if err != nil {
		return nil, err
	}
	report.CountsRefreshed = refreshed

	s.log.Info("Seed import finished",
		"files", report.Files,
		"diseases", report.Diseases,
		"practices", report.Practices,
	)
	return report, nil
}

func parseSeedFile(path string) (*seedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if strings.TrimSpace(f.Disease.Name) == "" {
		return nil, fmt.Errorf("%w: %s has no disease name", ErrInvalidInput, path)
	}
	return &f, nil
}

func (s *seedService) importFile(ctx context.Context, tx *gorm.DB, f *seedFile, report *SeedReport) error {
	exists, err := s.diseaseRepo.NameExists(ctx, tx, f.Disease.Name)
	if err != nil {
		return err
	}
	if exists {
		s.log.Info("Skipping already seeded disease", "name", f.Disease.Name)
		return nil
	}

	disease := &types.Disease{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(f.Disease.Name),
		Description: f.Disease.Description,
	}
	if _, err := s.diseaseRepo.Create(ctx, tx, []*types.Disease{disease}); err != nil {
		return err
	}
	report.Diseases++

	for _, sm := range f.Modules {
		module := &types.Module{
			ID:          uuid.New(),
			DiseaseID:   disease.ID,
			DevelopedBy: sm.DevelopedBy,
			PaperLink:   sm.PaperLink,
			Description: sm.Description,
		}
		if _, err := s.moduleRepo.Create(ctx, tx, []*types.Module{module}); err != nil {
			return err
		}
		report.Modules++

		for _, sp := range sm.Practices {
			practice, err := s.buildPractice(ctx, tx, module.ID, sp)
			if err != nil {
				return fmt.Errorf("disease %s: %w", disease.Name, err)
			}
			if _, err := s.practiceRepo.Create(ctx, tx, []*types.Practice{practice}); err != nil {
				return err
			}
			if err := s.practiceRepo.ReplaceDiseases(ctx, tx, practice, []*types.Disease{disease}); err != nil {
				return err
			}
			report.Practices++
		}
	}

	for _, sc := range f.Contraindications {
		if !types.IsValidCategory(sc.Category) {
			return fmt.Errorf("%w: contraindication %q has unknown category %q", ErrInvalidInput, sc.PracticeEnglish, sc.Category)
		}
		contraindication := &types.Contraindication{
			ID:               uuid.New(),
			PracticeEnglish:  strings.TrimSpace(sc.PracticeEnglish),
			PracticeSanskrit: strings.TrimSpace(sc.PracticeSanskrit),
			Category:         sc.Category,
			SubCategory:      strings.TrimSpace(sc.SubCategory),
			Reason:           sc.Reason,
			Source:           sc.Source,
		}
		if _, err := s.contraindicationRepo.Create(ctx, tx, []*types.Contraindication{contraindication}); err != nil {
			return err
		}
		if err := s.contraindicationRepo.ReplaceDiseases(ctx, tx, contraindication, []*types.Disease{disease}); err != nil {
			return err
		}
		report.Contraindications++
	}

	for _, sr := range f.RCTs {
		rct, err := buildRCT(sr)
		if err != nil {
			return fmt.Errorf("disease %s: %w", disease.Name, err)
		}
		if _, err := s.rctRepo.Create(ctx, tx, []*types.RCT{rct}); err != nil {
			return err
		}
		if err := s.rctRepo.ReplaceDiseases(ctx, tx, rct, []*types.Disease{disease}); err != nil {
			return err
		}
		report.RCTs++
	}

	return nil
}

func (s *seedService) buildPractice(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, sp seedPractice) (*types.Practice, error) {
	if strings.TrimSpace(sp.EnglishName) == "" {
		return nil, fmt.Errorf("%w: practice without english name", ErrInvalidInput)
	}
	if !types.IsValidCategory(sp.Category) {
		return nil, fmt.Errorf("%w: practice %q has unknown category %q", ErrInvalidInput, sp.EnglishName, sp.Category)
	}
	if !types.IsValidKosha(sp.Kosha) {
		return nil, fmt.Errorf("%w: practice %q has unknown kosha %q", ErrInvalidInput, sp.EnglishName, sp.Kosha)
	}

	mid := moduleID
	practice := &types.Practice{
		ID:                   uuid.New(),
		ModuleID:             &mid,
		SanskritName:         strings.TrimSpace(sp.SanskritName),
		EnglishName:          strings.TrimSpace(sp.EnglishName),
		Category:             sp.Category,
		SubCategory:          strings.TrimSpace(sp.SubCategory),
		Kosha:                sp.Kosha,
		Code:                 strings.TrimSpace(sp.Code),
		Rounds:               sp.Rounds,
		TimeMinutes:          sp.TimeMinutes,
		StrokesPerMin:        sp.StrokesPerMin,
		StrokesPerCycle:      sp.StrokesPerCycle,
		RestBetweenCyclesSec: sp.RestBetweenCyclesSec,
		Description:          sp.Description,
		HowToDo:              sp.HowToDo,
		CVRScore:             sp.CVRScore,
		PhotoPath:            sp.PhotoPath,
		VideoPath:            sp.VideoPath,
	}

	if len(sp.Variations) > 0 {
		raw, err := json.Marshal(sp.Variations)
		if err != nil {
			return nil, err
		}
		practice.Variations = datatypes.JSON(raw)
	}
	if len(sp.Steps) > 0 {
		raw, err := json.Marshal(sp.Steps)
		if err != nil {
			return nil, err
		}
		practice.Steps = datatypes.JSON(raw)
	}

	if text := strings.TrimSpace(sp.Citation); text != "" {
		citation := &types.Citation{
			ID:   uuid.New(),
			Text: text,
			Type: "traditional",
		}
		if _, err := s.citationRepo.Create(ctx, tx, []*types.Citation{citation}); err != nil {
			return nil, err
		}
		practice.CitationID = &citation.ID
	}

	return practice, nil
}

func buildRCT(sr seedRCT) (*types.RCT, error) {
	if strings.TrimSpace(sr.Title) == "" {
		return nil, fmt.Errorf("%w: rct without title", ErrInvalidInput)
	}

	rct := &types.RCT{
		ID:      uuid.New(),
		Title:   strings.TrimSpace(sr.Title),
		Authors: sr.Authors,
		Journal: sr.Journal,
		Year:    sr.Year,
		URL:     sr.URL,
	}

	if len(sr.Interventions) > 0 {
		entries := make([]types.RCTIntervention, 0, len(sr.Interventions))
		for _, e := range sr.Interventions {
			entries = append(entries, types.RCTIntervention{
				Practice: strings.TrimSpace(e.Practice),
				Category: e.Category,
			})
		}
		raw, err := json.Marshal(entries)
		if err != nil {
			return nil, err
		}
		rct.Interventions = datatypes.JSON(raw)
	}

	for _, sym := range sr.Symptoms {
		rct.Symptoms = append(rct.Symptoms, &types.RCTSymptom{
			ID:     uuid.New(),
			RCTID:  rct.ID,
			Name:   sym.Name,
			PValue: sym.PValue,
		})
	}

	return rct, nil
}
