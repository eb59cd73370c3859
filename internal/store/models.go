package store

import (
	"time"

	"github.com/spincat/pixelpet/internal/factory"
)

// Run is one persisted production run.
type Run struct {
	ID   int64
	Card factory.ProductCard
}

// runModel mirrors the runs table row layout.
type runModel struct {
	ID             int64
	BatchGUID      string
	TrackingNumber string
	Recipe         int
	Production     int
	Quality        int
	Packaging      int
	Logistics      int
	Overall        int
	Rating         string
	CreatedAt      int64
}

func toRunModel(card factory.ProductCard) runModel {
	return runModel{
		BatchGUID:      card.BatchID,
		TrackingNumber: card.TrackingNumber,
		Recipe:         card.Scores[factory.Recipe],
		Production:     card.Scores[factory.Production],
		Quality:        card.Scores[factory.Quality],
		Packaging:      card.Scores[factory.Packaging],
		Logistics:      card.Scores[factory.Logistics],
		Overall:        card.Overall,
		Rating:         card.Rating,
		CreatedAt:      card.CreatedAt.Unix(),
	}
}

func (m runModel) toDomain() Run {
	return Run{
		ID: m.ID,
		Card: factory.ProductCard{
			TrackingNumber: m.TrackingNumber,
			BatchID:        m.BatchGUID,
			Scores: [factory.NumDimensions]int{
				factory.Recipe:     m.Recipe,
				factory.Production: m.Production,
				factory.Quality:    m.Quality,
				factory.Packaging:  m.Packaging,
				factory.Logistics:  m.Logistics,
			},
			Overall:   m.Overall,
			Rating:    m.Rating,
			CreatedAt: time.Unix(m.CreatedAt, 0),
		},
	}
}
