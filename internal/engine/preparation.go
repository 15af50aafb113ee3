package engine

import (
	"github.com/alexisbeaulieu97/dataprep/internal/errorlog"
	"github.com/alexisbeaulieu97/dataprep/internal/metadata"
	"github.com/alexisbeaulieu97/dataprep/internal/preparator"
)

// Preparation binds one preparator to a position in a pipeline. The pipeline
// pointer is a handle for repository access; the pipeline owns the preparation,
// not the other way round.
type Preparation struct {
	id         string
	preparator preparator.Preparator
	setup      preparator.MetadataSetup

	pipeline *Pipeline
	position int
}

// NewPreparation wraps p. An empty id defaults to the preparator name.
func NewPreparation(id string, p preparator.Preparator) *Preparation {
	if id == "" && p != nil {
		id = p.Name()
	}
	return &Preparation{id: id, preparator: p, position: -1}
}

func (p *Preparation) ID() string {
	return p.id
}

// Position is the index of the step in its pipeline, -1 until added.
func (p *Preparation) Position() int {
	return p.position
}

func (p *Preparation) Preparator() preparator.Preparator {
	return p.preparator
}

// MetadataSetup returns the contract declared when the step was added.
func (p *Preparation) MetadataSetup() preparator.MetadataSetup {
	return p.setup
}

func (p *Preparation) bind(pipeline *Pipeline, position int) {
	p.pipeline = pipeline
	p.position = position
}

// declareContract fixes the prerequisites and postconditions of this step.
func (p *Preparation) declareContract() {
	p.setup = p.preparator.BuildMetadataSetup()
}

// checkAgainst checks every prerequisite against repo. When all hold, the
// postconditions are registered and true is returned. Otherwise one plan error
// per unmet prerequisite is recorded and nothing is registered.
func (p *Preparation) checkAgainst(repo *metadata.Repository, errs *errorlog.Repository) bool {
	ok := true
	for _, req := range p.setup.Prerequisites {
		if repo.Check(req) {
			continue
		}
		ok = false
		errs.Add(errorlog.PlanError{
			Step:        p.id,
			Position:    p.position,
			Preparator:  p.preparator.Name(),
			Requirement: req.String(),
			Message:     "unmet prerequisite",
		})
	}
	if !ok {
		return false
	}

	for _, post := range p.setup.Postconditions {
		repo.Register(post)
	}
	return true
}
