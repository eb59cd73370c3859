package factory

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProductCard is the artifact of a completed production run.
type ProductCard struct {
	TrackingNumber string
	BatchID        string
	Scores         [NumDimensions]int
	Overall        int
	Rating         string
	CreatedAt      time.Time
}

// NewProductCard snapshots the line into a card with a fresh tracking number
// and batch ID.
func NewProductCard(line *Line) ProductCard {
	overall := line.Overall()
	return ProductCard{
		TrackingNumber: NewTrackingNumber(),
		BatchID:        uuid.NewString(),
		Scores:         line.Snapshot(),
		Overall:        overall,
		Rating:         Rating(overall),
		CreatedAt:      time.Now(),
	}
}

// NewTrackingNumber returns a tracking number of the form TRK-########.
func NewTrackingNumber() string {
	return fmt.Sprintf("TRK-%08d", rand.IntN(100000000))
}

// Summary renders the card as a plain-text block suitable for the clipboard.
func (c ProductCard) Summary() string {
	var b strings.Builder
	b.WriteString("Pixelpet Cat Food\n")
	fmt.Fprintf(&b, "Tracking: %s\n", c.TrackingNumber)
	fmt.Fprintf(&b, "Batch:    %s\n", c.BatchID)
	for i, d := range Dimensions() {
		fmt.Fprintf(&b, "%-11s %3d%% (%s)\n", d.Label(), c.Scores[i], Rating(c.Scores[i]))
	}
	fmt.Fprintf(&b, "Overall:  %d%% %s\n", c.Overall, c.Rating)
	fmt.Fprintf(&b, "Produced: %s\n", c.CreatedAt.Format(time.RFC3339))
	return b.String()
}
