package database

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScreeningRecord is the persisted audit trail of one screening run. Records
// for non-allowed outcomes never carry a risk score; the screening either
// produced a verdict or it did not.
type ScreeningRecord struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Correlation
	RequestID    string `bson:"request_id,omitempty" json:"request_id,omitempty"`
	AdmissionKey string `bson:"admission_key" json:"admission_key"`

	// Outcome
	Status    string `bson:"status" json:"status"`
	Reason    string `bson:"reason,omitempty" json:"reason,omitempty"`
	RiskScore int    `bson:"risk_score,omitempty" json:"risk_score,omitempty"`
	RiskLevel string `bson:"risk_level,omitempty" json:"risk_level,omitempty"`

	// Request shape
	HadImage bool `bson:"had_image" json:"had_image"`

	// Timestamps
	ScreenedAt time.Time `bson:"screened_at" json:"screened_at"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
