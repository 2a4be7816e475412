package usecase

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidRequest     = goerr.New("invalid assessment request")
	ErrNoHazards          = goerr.New("no hazards specified and hazard catalog is empty")
	ErrHazardsRequired    = goerr.New("risk calculation requires explicit hazard IDs")
	ErrAssessmentNotFound = goerr.New("assessment not found for session and hazard")
)
