package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/Qctopus/contingento-engine/pkg/domain/interfaces"
)

// Firestore is the persistent repository backend
type Firestore struct {
	client        *firestore.Client
	hazard        *hazardRepository
	hazardProfile *hazardProfileRepository
	businessType  *businessTypeRepository
	vulnerability *vulnerabilityRepository
	rule          *multiplierRuleRepository
	strategy      *strategyRepository
	assessment    *assessmentRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, mainly for tests
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.hazard.collectionPrefix = prefix
		f.hazardProfile.collectionPrefix = prefix
		f.businessType.collectionPrefix = prefix
		f.vulnerability.collectionPrefix = prefix
		f.rule.collectionPrefix = prefix
		f.strategy.collectionPrefix = prefix
		f.assessment.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID == "" {
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:        client,
		hazard:        newHazardRepository(client),
		hazardProfile: newHazardProfileRepository(client),
		businessType:  newBusinessTypeRepository(client),
		vulnerability: newVulnerabilityRepository(client),
		rule:          newMultiplierRuleRepository(client),
		strategy:      newStrategyRepository(client),
		assessment:    newAssessmentRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Hazard() interfaces.HazardRepository {
	return f.hazard
}

func (f *Firestore) HazardProfile() interfaces.HazardProfileRepository {
	return f.hazardProfile
}

func (f *Firestore) BusinessType() interfaces.BusinessTypeRepository {
	return f.businessType
}

func (f *Firestore) Vulnerability() interfaces.VulnerabilityRepository {
	return f.vulnerability
}

func (f *Firestore) MultiplierRule() interfaces.MultiplierRuleRepository {
	return f.rule
}

func (f *Firestore) Strategy() interfaces.StrategyRepository {
	return f.strategy
}

func (f *Firestore) Assessment() interfaces.AssessmentRepository {
	return f.assessment
}

func (f *Firestore) Close() error {
	if err := f.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close firestore client")
	}
	return nil
}
