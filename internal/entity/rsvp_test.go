package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateSubmissionInsert(t *testing.T) {
	valid := func() *SubmissionInsert {
		return &SubmissionInsert{Name: "Jo", Email: "jo@x.com", NumberOfGuests: MaxGuests, Attending: true, SubmittedAt: time.Now()}
	}

	assert.NoError(t, valid().ValidateSubmissionInsert())

	si := valid()
	si.NumberOfGuests = 0
	si.Attending = false
	assert.NoError(t, si.ValidateSubmissionInsert())

	si = valid()
	si.NumberOfGuests = MaxGuests + 1
	assert.Error(t, si.ValidateSubmissionInsert())

	si = valid()
	si.NumberOfGuests = -1
	assert.Error(t, si.ValidateSubmissionInsert())

	si = valid()
	si.Name = ""
	assert.Error(t, si.ValidateSubmissionInsert())
}

func TestSubmissionInsert_DeclineDropsGuests(t *testing.T) {
	si := &SubmissionInsert{Name: "Jo", Email: "jo@x.com", NumberOfGuests: 3}
	assert.Equal(t, 0, si.Submission().NumberOfGuests)
}
