package domain

import "time"

// LawyerTier is the visibility class of a lawyer profile. Pro profiles sort
// before basic ones in the directory.
type LawyerTier string

const (
	TierBasic LawyerTier = "basic"
	TierPro   LawyerTier = "pro"
)

// Review is an append-only rating entry embedded in a lawyer profile. Once
// written it is never edited or removed, except by administrator purge of the
// whole profile.
type Review struct {
	Rating  int64  `json:"rating" bson:"rating"`
	Comment string `json:"comment" bson:"comment"`
}

// LawyerProfile is the directory record for a lawyer. The ID is the owning
// identity; at most one profile exists per identity.
type LawyerProfile struct {
	ID                   string     `json:"id" bson:"_id"`
	Name                 string     `json:"name" bson:"name"`
	Bio                  string     `json:"bio" bson:"bio"`
	Fee                  int64      `json:"fee" bson:"fee"`
	Tier                 LawyerTier `json:"status" bson:"tier"`
	Credentials          []string   `json:"credentials" bson:"credentials"`
	AreasOfExpertise     []string   `json:"areas_of_expertise" bson:"areas_of_expertise"`
	Languages            []string   `json:"languages" bson:"languages"`
	ConsultationsOffered int64      `json:"consultations_offered" bson:"consultations_offered"`
	Reviews              []Review   `json:"reviews" bson:"reviews"`
	CreatedAt            time.Time  `json:"created_at" bson:"created_at"`
}

// AverageRating recomputes the arithmetic mean of all review ratings. The
// average is never stored; an empty review list yields 0.
func (p *LawyerProfile) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	var sum int64
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(p.Reviews))
}
