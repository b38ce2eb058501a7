package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsApproved(t *testing.T) {
	j := &Job{ID: 1}
	assert.False(t, j.IsApproved(), "pending jobs are not approved")

	rejected := false
	j.Status = &rejected
	assert.False(t, j.IsApproved())

	approved := true
	j.Status = &approved
	assert.True(t, j.IsApproved())
}

func TestTierFor(t *testing.T) {
	j := &Job{
		ID: 1,
		PriceTiers: []PriceTier{
			{JobID: 1, Price: 50, Description: "basic"},
			{JobID: 1, Price: 120, Description: "premium"},
		},
	}

	tier := j.TierFor(120)
	assert.NotNil(t, tier)
	assert.Equal(t, "premium", tier.Description)

	assert.Nil(t, j.TierFor(60), "off-tier prices must not match")
}
