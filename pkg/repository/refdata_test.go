package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/Qctopus/contingento-engine/pkg/domain/interfaces"
	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
	"github.com/Qctopus/contingento-engine/pkg/repository/firestore"
	"github.com/Qctopus/contingento-engine/pkg/repository/memory"
)

func runRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("hazard profile put and get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		profile := &model.HazardProfile{
			LocationID: "kingston",
			HazardID:   "hurricane",
			Level:      8,
			Rationale:  "Atlantic hurricane corridor",
		}
		if err := repo.HazardProfile().Put(ctx, profile); err != nil {
			t.Fatalf("failed to put hazard profile: %v", err)
		}

		got, err := repo.HazardProfile().Get(ctx, "kingston", "hurricane")
		if err != nil {
			t.Fatalf("failed to get hazard profile: %v", err)
		}
		if got.Level != 8 {
			t.Errorf("expected level=8, got %d", got.Level)
		}
		if got.Rationale != profile.Rationale {
			t.Errorf("expected rationale=%q, got %q", profile.Rationale, got.Rationale)
		}
		if got.UpdatedAt.IsZero() {
			t.Error("expected non-zero UpdatedAt")
		}
	})

	t.Run("hazard profile rejects level out of range", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.HazardProfile().Put(ctx, &model.HazardProfile{
			LocationID: "kingston",
			HazardID:   "hurricane",
			Level:      11,
		})
		if err == nil {
			t.Fatal("expected validation error for level=11")
		}
	})

	t.Run("missing hazard profile returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.HazardProfile().Get(ctx, "atlantis", "flood")
		if !errors.Is(err, interfaces.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("vulnerability profile list by hazard", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		profiles := []*model.VulnerabilityProfile{
			{BusinessTypeID: "small-hotel", HazardID: "hurricane", Vulnerability: 8, ImpactSeverity: 9},
			{BusinessTypeID: "bakery", HazardID: "hurricane", Vulnerability: 5, ImpactSeverity: 6},
			{BusinessTypeID: "bakery", HazardID: "drought", Vulnerability: 3, ImpactSeverity: 4},
		}
		for _, p := range profiles {
			if err := repo.Vulnerability().Put(ctx, p); err != nil {
				t.Fatalf("failed to put vulnerability profile: %v", err)
			}
		}

		got, err := repo.Vulnerability().ListByHazard(ctx, "hurricane")
		if err != nil {
			t.Fatalf("failed to list vulnerability profiles: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 profiles, got %d", len(got))
		}
	})

	t.Run("multiplier rules filtered by hazard and ordered by priority", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		rules := []*model.MultiplierRule{
			{
				Name:              "Backup power missing",
				CharacteristicKey: "power_dependency",
				Condition:         model.BooleanCondition(),
				Factor:            1.2,
				ApplicableHazards: []types.HazardID{"hurricane"},
				Priority:          3,
				Active:            true,
			},
			{
				Name:              "Grid dependent operations",
				CharacteristicKey: "power_dependency",
				Condition:         model.BooleanCondition(),
				Factor:            1.5,
				ApplicableHazards: []types.HazardID{"hurricane", "flood"},
				Priority:          1,
				Active:            true,
			},
			{
				Name:              "Inactive rule",
				CharacteristicKey: "power_dependency",
				Condition:         model.BooleanCondition(),
				Factor:            1.9,
				ApplicableHazards: []types.HazardID{"hurricane"},
				Priority:          0,
				Active:            false,
			},
			{
				Name:              "Drought only",
				CharacteristicKey: "water_dependency",
				Condition:         model.BooleanCondition(),
				Factor:            1.3,
				ApplicableHazards: []types.HazardID{"drought"},
				Priority:          2,
				Active:            true,
			},
		}
		for _, rule := range rules {
			if err := repo.MultiplierRule().Put(ctx, rule); err != nil {
				t.Fatalf("failed to put rule %q: %v", rule.Name, err)
			}
		}

		got, err := repo.MultiplierRule().ListByHazard(ctx, "hurricane")
		if err != nil {
			t.Fatalf("failed to list rules: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 active hurricane rules, got %d", len(got))
		}
		if got[0].Name != "Grid dependent operations" {
			t.Errorf("expected priority 1 rule first, got %q", got[0].Name)
		}
		if got[1].Name != "Backup power missing" {
			t.Errorf("expected priority 3 rule second, got %q", got[1].Name)
		}
	})

	t.Run("multiplier rule with factor below 1.0 is rejected", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.MultiplierRule().Put(ctx, &model.MultiplierRule{
			Name:              "Broken rule",
			CharacteristicKey: "power_dependency",
			Condition:         model.BooleanCondition(),
			Factor:            0.9,
			ApplicableHazards: []types.HazardID{"hurricane"},
			Active:            true,
		})
		if err == nil {
			t.Fatal("expected validation error for factor=0.9")
		}
	})

	t.Run("strategy round trip preserves steps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		strategy := &model.Strategy{
			ID:                "storm-shutters",
			Name:              "Install storm shutters",
			Category:          types.CategoryPrevention,
			ApplicableHazards: []types.HazardID{"hurricane"},
			Effectiveness:     8,
			Cost:              types.CostMedium,
			Selection:         types.SelectionEssential,
			Active:            true,
			Steps: []model.ActionStep{
				{
					Title:     "Measure windows",
					Phase:     types.PhaseImmediate,
					Timing:    types.TimingBeforeCrisis,
					SortOrder: 1,
				},
				{
					Title:     "Fit and test shutters",
					Phase:     types.PhaseShortTerm,
					Timing:    types.TimingBeforeCrisis,
					SortOrder: 2,
				},
			},
		}
		if err := repo.Strategy().Put(ctx, strategy); err != nil {
			t.Fatalf("failed to put strategy: %v", err)
		}

		got, err := repo.Strategy().Get(ctx, "storm-shutters")
		if err != nil {
			t.Fatalf("failed to get strategy: %v", err)
		}
		if len(got.Steps) != 2 {
			t.Fatalf("expected 2 steps, got %d", len(got.Steps))
		}
		if got.Steps[0].Title != "Measure windows" {
			t.Errorf("unexpected first step: %q", got.Steps[0].Title)
		}

		active, err := repo.Strategy().ListActive(ctx)
		if err != nil {
			t.Fatalf("failed to list strategies: %v", err)
		}
		if len(active) != 1 {
			t.Fatalf("expected 1 active strategy, got %d", len(active))
		}
	})

	t.Run("assessment upsert preserves CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		assessment := &model.RiskAssessment{
			SessionID:      "session-1",
			HazardID:       "hurricane",
			LocationID:     "kingston",
			BusinessTypeID: "small-hotel",
			CompositeBase:  8,
			FinalScore:     10,
			Tier:           types.TierExtreme,
		}
		if err := repo.Assessment().Put(ctx, assessment); err != nil {
			t.Fatalf("failed to put assessment: %v", err)
		}

		first, err := repo.Assessment().Get(ctx, "session-1", "hurricane")
		if err != nil {
			t.Fatalf("failed to get assessment: %v", err)
		}

		// Re-put with a manual rating attached
		first.Manual = &model.ManualRating{Likelihood: 2, Severity: 2, Score: 4, Tier: types.TierModerate}
		if err := repo.Assessment().Put(ctx, first); err != nil {
			t.Fatalf("failed to update assessment: %v", err)
		}

		second, err := repo.Assessment().Get(ctx, "session-1", "hurricane")
		if err != nil {
			t.Fatalf("failed to get updated assessment: %v", err)
		}
		if second.Manual == nil || second.Manual.Score != 4 {
			t.Fatal("expected manual rating to persist")
		}
		if second.FinalScore != 10 {
			t.Error("automated score must not change when manual rating is attached")
		}
		if !second.CreatedAt.Equal(first.CreatedAt) {
			t.Errorf("expected CreatedAt preserved: %v != %v", second.CreatedAt, first.CreatedAt)
		}

		bySession, err := repo.Assessment().ListBySession(ctx, "session-1")
		if err != nil {
			t.Fatalf("failed to list assessments: %v", err)
		}
		if len(bySession) != 1 {
			t.Fatalf("expected 1 assessment in session, got %d", len(bySession))
		}
	})
}

func newFirestoreRepo(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	if err != nil {
		t.Fatalf("failed to create firestore repository: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close firestore repository: %v", err)
		}
	})
	return repo
}

func TestMemoryRepository(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreRepository(t *testing.T) {
	runRepositoryTest(t, newFirestoreRepo)
}
